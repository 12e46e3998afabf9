package taxonomy

// Default category tables of the reference humanoid avatar.
var defaultCategories = []Category{
	{
		Key:  "face",
		Name: "Face",
		Bones: []string{
			"mHead",
			"mSkull",
			"mEyeRight",
			"mEyeLeft",
			"mFaceRoot",
			"mFaceEyeAltRight",
			"mFaceEyeAltLeft",
			"mFaceForeheadLeft",
			"mFaceForeheadRight",
			"mFaceEyebrowOuterLeft",
			"mFaceEyebrowCenterLeft",
			"mFaceEyebrowInnerLeft",
			"mFaceEyebrowOuterRight",
			"mFaceEyebrowCenterRight",
			"mFaceEyebrowInnerRight",
			"mFaceEyeLidUpperLeft",
			"mFaceEyeLidLowerLeft",
			"mFaceEyeLidUpperRight",
			"mFaceEyeLidLowerRight",
			"mFaceNoseLeft",
			"mFaceNoseCenter",
			"mFaceNoseRight",
			"mFaceCheekLowerLeft",
			"mFaceCheekUpperLeft",
			"mFaceCheekLowerRight",
			"mFaceCheekUpperRight",
			"mFaceJaw",
			"mFaceChin",
			"mFaceTeethLower",
			"mFaceLipLowerLeft",
			"mFaceLipLowerRight",
			"mFaceLipLowerCenter",
			"mFaceTongueBase",
			"mFaceTongueTip",
		},
	},
	{
		Key:  "torso",
		Name: "Torso",
		Bones: []string{
			"mPelvis",
			"mTorso",
			"mChest",
			"mNeck",
			"CHEST",
			"BELLY",
			"LOWER_BACK",
			"UPPER_BACK",
			"LEFT_PEC",
			"RIGHT_PEC",
			"LEFT_HANDLE",
			"RIGHT_HANDLE",
			"PELVIS",
			"BUTT",
		},
	},
	{
		Key:  "arms",
		Name: "Arms",
		Bones: []string{
			"mCollarLeft",
			"mShoulderLeft",
			"mElbowLeft",
			"mWristLeft",
			"L_HAND",
			"L_LOWER_ARM",
			"L_UPPER_ARM",
			"L_CLAVICLE",
			"mCollarRight",
			"mShoulderRight",
			"mElbowRight",
			"mWristRight",
			"R_HAND",
			"R_LOWER_ARM",
			"R_UPPER_ARM",
			"R_CLAVICLE",
		},
	},
	{
		Key:  "hands",
		Name: "Hands",
		Bones: []string{
			"mHandMiddle1Left",
			"mHandMiddle2Left",
			"mHandMiddle3Left",
			"mHandIndex1Left",
			"mHandIndex2Left",
			"mHandIndex3Left",
			"mHandRing1Left",
			"mHandRing2Left",
			"mHandRing3Left",
			"mHandPinky1Left",
			"mHandPinky2Left",
			"mHandPinky3Left",
			"mHandThumb1Left",
			"mHandThumb2Left",
			"mHandThumb3Left",
			"mHandMiddle1Right",
			"mHandMiddle2Right",
			"mHandMiddle3Right",
			"mHandIndex1Right",
			"mHandIndex2Right",
			"mHandIndex3Right",
			"mHandRing1Right",
			"mHandRing2Right",
			"mHandRing3Right",
			"mHandPinky1Right",
			"mHandPinky2Right",
			"mHandPinky3Right",
			"mHandThumb1Right",
			"mHandThumb2Right",
			"mHandThumb3Right",
		},
	},
	{
		Key:  "legs",
		Name: "Legs",
		Bones: []string{
			"mHipRight",
			"mKneeRight",
			"mAnkleRight",
			"mFootRight",
			"mToeRight",
			"R_FOOT",
			"R_LOWER_LEG",
			"R_UPPER_LEG",
			"mHipLeft",
			"mKneeLeft",
			"mAnkleLeft",
			"mFootLeft",
			"mToeLeft",
			"L_FOOT",
			"L_LOWER_LEG",
			"L_UPPER_LEG",
		},
	},
}

// knownBones is the full bone list of the reference avatar, in model order.
var knownBones = []string{
	"mPelvis", "mTorso", "mChest", "mNeck", "mHead", "mSkull",
	"mEyeRight", "mEyeLeft", "mFaceRoot",
	"mFaceEyeAltRight", "mFaceEyeAltLeft",
	"mFaceForeheadLeft", "mFaceForeheadRight",
	"mFaceEyebrowOuterLeft", "mFaceEyebrowCenterLeft", "mFaceEyebrowInnerLeft",
	"mFaceEyebrowOuterRight", "mFaceEyebrowCenterRight", "mFaceEyebrowInnerRight",
	"mFaceEyeLidUpperLeft", "mFaceEyeLidLowerLeft",
	"mFaceEyeLidUpperRight", "mFaceEyeLidLowerRight",
	"mFaceEar1Left", "mFaceEar2Left", "mFaceEar1Right", "mFaceEar2Right",
	"mFaceNoseLeft", "mFaceNoseCenter", "mFaceNoseRight",
	"mFaceCheekLowerLeft", "mFaceCheekUpperLeft",
	"mFaceCheekLowerRight", "mFaceCheekUpperRight",
	"mFaceJaw", "mFaceChin", "mFaceTeethLower",
	"mFaceLipLowerLeft", "mFaceLipLowerRight", "mFaceLipLowerCenter",
	"mFaceTongueBase", "mFaceTongueTip",
	"mFaceJawShaper", "mFaceForeheadCenter", "mFaceNoseBase", "mFaceTeethUpper",
	"mFaceLipUpperLeft", "mFaceLipUpperRight",
	"mFaceLipCornerLeft", "mFaceLipCornerRight", "mFaceLipUpperCenter",
	"mFaceEyecornerInnerLeft", "mFaceEyecornerInnerRight", "mFaceNoseBridge",
	"HEAD", "NECK",
	"mCollarLeft", "mShoulderLeft", "mElbowLeft", "mWristLeft",
	"mHandMiddle1Left", "mHandMiddle2Left", "mHandMiddle3Left",
	"mHandIndex1Left", "mHandIndex2Left", "mHandIndex3Left",
	"mHandRing1Left", "mHandRing2Left", "mHandRing3Left",
	"mHandPinky1Left", "mHandPinky2Left", "mHandPinky3Left",
	"mHandThumb1Left", "mHandThumb2Left", "mHandThumb3Left",
	"L_HAND", "L_LOWER_ARM", "L_UPPER_ARM", "L_CLAVICLE",
	"mCollarRight", "mShoulderRight", "mElbowRight", "mWristRight",
	"mHandMiddle1Right", "mHandMiddle2Right", "mHandMiddle3Right",
	"mHandIndex1Right", "mHandIndex2Right", "mHandIndex3Right",
	"mHandRing1Right", "mHandRing2Right", "mHandRing3Right",
	"mHandPinky1Right", "mHandPinky2Right", "mHandPinky3Right",
	"mHandThumb1Right", "mHandThumb2Right", "mHandThumb3Right",
	"R_HAND", "R_LOWER_ARM", "R_UPPER_ARM", "R_CLAVICLE",
	"CHEST", "LEFT_PEC", "RIGHT_PEC", "UPPER_BACK", "BELLY",
	"LEFT_HANDLE", "RIGHT_HANDLE", "LOWER_BACK",
	"mHipRight", "mKneeRight", "mAnkleRight", "mFootRight", "mToeRight",
	"R_FOOT", "R_LOWER_LEG", "R_UPPER_LEG",
	"mHipLeft", "mKneeLeft", "mAnkleLeft", "mFootLeft", "mToeLeft",
	"L_FOOT", "L_LOWER_LEG", "L_UPPER_LEG",
	"PELVIS", "BUTT",
}
