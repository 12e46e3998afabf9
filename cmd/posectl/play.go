package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"avatar-rig/internal/batch"
	"avatar-rig/internal/preview"
)

type playOptions struct {
	inputOptions

	Out io.Writer
}

func newPlayCommand(out io.Writer) *cobra.Command {
	o := &playOptions{Out: out}
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a retargeted BVH clip and export WebP preview frames",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(); err != nil {
				return err
			}
			return o.Run()
		},
	}
	o.AddFlags(cmd.Flags())
	fs := cmd.Flags()
	fs.StringVar(&o.Flags.Clip, "clip", "", "BVH clip to play")
	fs.StringVar(&o.Flags.OutputDir, "out", "", "Output directory (default: frames)")
	fs.Float64Var(&o.Flags.FPS, "fps", 0, "Frames per second (default: 30)")
	fs.IntVar(&o.Flags.Frames, "frames", 0, "Number of frames (default: whole clip)")
	fs.IntVar(&o.Flags.PreviewSize, "size", 0, "Preview size in pixels (default: 256)")
	fs.IntVar(&o.Flags.Workers, "workers", 0, "Number of worker goroutines (default: NumCPU)")
	return cmd
}

func (o *playOptions) Run() error {
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

	cfg := o.Config
	frames := cfg.Frames
	if frames <= 0 {
		frames = int(math.Ceil(src.Duration*cfg.FPS)) + 1
	}

	fmt.Fprintf(o.Out, "Clip: %s, %d/%d tracks retained\n", src.Name, rep.Retained, rep.Retained+rep.Dropped)
	fmt.Fprintf(o.Out, "Frames: %d at %g fps, Workers: %d\n", frames, cfg.FPS, cfg.Workers)
	fmt.Fprintf(o.Out, "Output: %s\n", cfg.OutputDir)

	start := time.Now()
	captured, err := batch.Capture(e, frames, cfg.FrameStep())
	if err != nil {
		return err
	}

	skel, _ := e.Skeleton()
	results := batch.Run(batch.Config{
		OutputDir: cfg.OutputDir,
		Preview: preview.Options{
			Size:        cfg.PreviewSize,
			Supersample: cfg.Supersample,
			Yaw:         math.Pi / 8,
			BoneColor:   preview.CategoryColors(e.Taxonomy()),
		},
		Workers: cfg.Workers,
	}, captured)
	klog.V(2).Infof("Rendered %d frames of %d bones in %s", len(results), skel.Len(), time.Since(start))

	failed := batch.Failed(results)
	fmt.Fprintf(o.Out, "Rendered: %d/%d in %.1fs\n", len(results)-len(failed), len(results), time.Since(start).Seconds())
	for i, r := range failed {
		if i == 20 {
			fmt.Fprintf(o.Out, "  ... %d more\n", len(failed)-i)
			break
		}
		fmt.Fprintf(o.Out, "  frame %d: %s\n", r.Index, r.Error)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return err
	}
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	manifest := batch.Manifest{Clip: src.Name, ReportID: rep.ID, FPS: cfg.FPS}
	if err := batch.WriteManifest(manifestPath, manifest, results); err != nil {
		klog.Warningf("Manifest write failed: %v", err)
	} else {
		fmt.Fprintf(o.Out, "Manifest: %s\n", manifestPath)
	}

	fmt.Fprintln(o.Out, "Metrics:")
	if err := printMetrics(o.Out, reg); err != nil {
		return err
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d frames failed", len(failed))
	}
	return nil
}
