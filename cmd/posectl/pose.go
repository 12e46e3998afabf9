package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"avatar-rig/internal/engine"
	"avatar-rig/internal/mathutil"
	"avatar-rig/internal/preview"
	"avatar-rig/internal/taxonomy"
)

type poseOptions struct {
	inputOptions
	Sets    []string
	OutFile string
	Yaw     float64

	Out io.Writer
}

func newPoseCommand(out io.Writer) *cobra.Command {
	o := &poseOptions{Out: out}
	cmd := &cobra.Command{
		Use:   "pose",
		Short: "Apply pose controls to a skeleton and write one WebP preview",
		Example: `  # Bend the left elbow and lift the pelvis
  posectl pose --skeleton avatar.yaml --set mElbowLeft.rot_z=60 --set PELVIS.pos_y=0.1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(); err != nil {
				return err
			}
			return o.Run()
		},
	}
	o.AddFlags(cmd.Flags())
	fs := cmd.Flags()
	fs.StringArrayVar(&o.Sets, "set", nil, "Control as BONE.TARGET=VALUE; rotations in degrees (repeatable)")
	fs.StringVar(&o.OutFile, "out", "pose.webp", "Output WebP file")
	fs.IntVar(&o.Flags.PreviewSize, "size", 0, "Preview size in pixels (default: 256)")
	fs.Float64Var(&o.Yaw, "yaw", 22.5, "Camera yaw in degrees")
	return cmd
}

type control struct {
	Bone   string
	Target string
	Value  float64
}

// parseControl parses "BONE.TARGET=VALUE". Rotation values are degrees.
func parseControl(s string) (control, error) {
	lhs, rhs, ok := strings.Cut(s, "=")
	if !ok {
		return control{}, fmt.Errorf("control %q: want BONE.TARGET=VALUE", s)
	}
	dot := strings.LastIndexByte(lhs, '.')
	if dot <= 0 {
		return control{}, fmt.Errorf("control %q: want BONE.TARGET=VALUE", s)
	}
	v, err := strconv.ParseFloat(rhs, 64)
	if err != nil {
		return control{}, fmt.Errorf("control %q: %w", s, err)
	}
	c := control{Bone: lhs[:dot], Target: lhs[dot+1:], Value: v}
	switch c.Target {
	case taxonomy.TargetRotX, taxonomy.TargetRotY, taxonomy.TargetRotZ:
		c.Value = mathutil.Deg2Rad(v)
	}
	return c, nil
}

func (o *poseOptions) Run() error {
	e, err := o.newEngine(nil)
	if err != nil {
		return err
	}
	for _, s := range o.Sets {
		c, err := parseControl(s)
		if err != nil {
			return err
		}
		if err := e.ApplyControl(c.Bone, c.Target, c.Value); err != nil {
			return err
		}
	}
	return o.write(e)
}

func (o *poseOptions) write(e *engine.Engine) error {
	skel, _ := e.Skeleton()
	img := preview.Render(preview.FigureOf(skel, e.Snapshot()), preview.Options{
		Size:        o.Config.PreviewSize,
		Supersample: o.Config.Supersample,
		Yaw:         mathutil.Deg2Rad(o.Yaw),
		BoneColor:   preview.CategoryColors(e.Taxonomy()),
	})

	if dir := filepath.Dir(o.OutFile); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(o.OutFile)
	if err != nil {
		return err
	}
	if err := preview.EncodeAndClose(f, img); err != nil {
		return err
	}
	fmt.Fprintf(o.Out, "Wrote %s (%d bones, %s)\n", o.OutFile, skel.Len(), posedSummary(o.Sets))
	return nil
}

func posedSummary(sets []string) string {
	switch len(sets) {
	case 0:
		return "rest pose"
	case 1:
		return "1 control"
	}
	return strconv.Itoa(len(sets)) + " controls"
}
