// Command posectl loads avatar skeletons, retargets BVH motion onto them and
// exports stick-figure previews of poses and playback.
package main

import (
	goflag "flag"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"
)

func main() {
	klog.InitFlags(nil)
	defer klog.Flush()

	pflag.CommandLine.AddGoFlagSet(goflag.CommandLine)

	cmd := newRootCommand(os.Stdout)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "posectl",
		Short:         "Pose and retarget humanoid avatar skeletons",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().AddFlagSet(pflag.CommandLine)

	cmd.AddCommand(
		newBonesCommand(out),
		newRetargetCommand(out),
		newPlayCommand(out),
		newPoseCommand(out),
	)
	return cmd
}
