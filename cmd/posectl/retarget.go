package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"avatar-rig/internal/clip"
)

type retargetOptions struct {
	inputOptions

	Out io.Writer
}

func newRetargetCommand(out io.Writer) *cobra.Command {
	o := &retargetOptions{Out: out}
	cmd := &cobra.Command{
		Use:   "retarget",
		Short: "Map a BVH clip onto a skeleton and report kept and dropped tracks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(); err != nil {
				return err
			}
			return o.Run()
		},
	}
	o.AddFlags(cmd.Flags())
	cmd.Flags().StringVar(&o.Flags.Clip, "clip", "", "BVH clip to retarget")
	return cmd
}

func (o *retargetOptions) Run() error {
	reg := prometheus.NewRegistry()
	e, err := o.newEngine(reg)
	if err != nil {
		return err
	}
	src, err := o.loadClip()
	if err != nil {
		return err
	}
	rep, err := e.Play(src)
	if err != nil {
		return err
	}

	fmt.Fprintf(o.Out, "Clip:     %s (%d tracks, %.3fs)\n", src.Name, len(src.Tracks), src.Duration)
	fmt.Fprintf(o.Out, "Report:   %s\n", rep.ID)
	fmt.Fprintf(o.Out, "Retained: %d\n", rep.Retained)
	fmt.Fprintf(o.Out, "Dropped:  %d (%.0f%%)\n", rep.Dropped, rep.DropRatio()*100)
	for _, j := range rep.Unmapped {
		fmt.Fprintf(o.Out, "  unmapped joint: %s\n", j)
	}
	for _, b := range rep.Missing {
		fmt.Fprintf(o.Out, "  missing bone:   %s\n", b)
	}
	if out, ok := e.ActiveClip(); ok {
		for _, bone := range out.Joints() {
			var channels []string
			for _, ch := range []clip.Channel{clip.Rotation, clip.Position} {
				if t, ok := out.Track(bone + "." + string(ch)); ok {
					channels = append(channels, fmt.Sprintf("%s/%d", ch, t.Len()))
				}
			}
			fmt.Fprintf(o.Out, "  driven bone:    %s [%s]\n", bone, strings.Join(channels, " "))
		}
	}
	fmt.Fprintln(o.Out, "Metrics:")
	return printMetrics(o.Out, reg)
}
