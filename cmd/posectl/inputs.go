package main

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/pflag"

	"avatar-rig/internal/bvh"
	"avatar-rig/internal/clip"
	"avatar-rig/internal/config"
	"avatar-rig/internal/engine"
	"avatar-rig/internal/metrics"
	"avatar-rig/internal/retarget"
	"avatar-rig/internal/skeleton"
)

// inputOptions are the flags shared by commands that load a skeleton and
// optionally a clip.
type inputOptions struct {
	ConfigFile string
	Flags      config.Flags

	Config config.Config
}

func (o *inputOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.ConfigFile, "config", o.ConfigFile, "Path to a YAML or JSON config file")
	fs.StringVar(&o.Flags.Skeleton, "skeleton", o.Flags.Skeleton, "Skeleton file (YAML or JSON)")
	fs.StringVar(&o.Flags.Mapping, "mapping", o.Flags.Mapping, "Joint-name mapping file (default: built-in BVH table)")
}

func (o *inputOptions) Complete() error {
	if o.ConfigFile != "" {
		cfg, err := config.Load(o.ConfigFile)
		if err != nil {
			return err
		}
		o.Config = cfg
	}
	o.Config.Resolve(o.Flags)
	return nil
}

// newEngine builds an engine with the configured mapping and loads the
// configured skeleton.
func (o *inputOptions) newEngine(reg prometheus.Registerer) (*engine.Engine, error) {
	if o.Config.Skeleton == "" {
		return nil, fmt.Errorf("--skeleton is required")
	}
	opts := []engine.Option{engine.WithMetrics(metrics.New(reg))}
	if o.Config.Mapping != "" {
		m, err := retarget.LoadMapping(o.Config.Mapping)
		if err != nil {
			return nil, err
		}
		opts = append(opts, engine.WithMapping(m))
	}
	skel, err := skeleton.Load(o.Config.Skeleton)
	if err != nil {
		return nil, err
	}
	e := engine.New(opts...)
	e.SetSkeleton(skel)
	return e, nil
}

func (o *inputOptions) loadClip() (*clip.Clip, error) {
	if o.Config.Clip == "" {
		return nil, fmt.Errorf("--clip is required")
	}
	m, err := bvh.Load(o.Config.Clip)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(o.Config.Clip), filepath.Ext(o.Config.Clip))
	return m.Clip(name)
}

// printMetrics writes every non-zero counter in reg as "name{labels} value".
func printMetrics(w io.Writer, reg prometheus.Gatherer) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			c := m.GetCounter()
			if c == nil || c.GetValue() == 0 {
				continue
			}
			fmt.Fprintf(w, "  %s%s %g\n", mf.GetName(), labelString(m.GetLabel()), c.GetValue())
		}
	}
	return nil
}

func labelString(pairs []*dto.LabelPair) string {
	if len(pairs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, fmt.Sprintf("%s=%q", p.GetName(), p.GetValue()))
	}
	sort.Strings(parts)
	return "{" + strings.Join(parts, ",") + "}"
}
