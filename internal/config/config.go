package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"sigs.k8s.io/yaml"
)

// Config holds input paths, playback and preview settings.
type Config struct {
	// Paths
	BaseDir   string `json:"base_dir"`
	Skeleton  string `json:"skeleton"`
	Clip      string `json:"clip"`
	Mapping   string `json:"mapping"`
	OutputDir string `json:"output_dir"`

	// Playback
	FPS    float64 `json:"fps"`
	Frames int     `json:"frames"`

	// Preview settings
	PreviewSize int `json:"preview_size"`
	Supersample int `json:"supersample"`
	Workers     int `json:"workers"`
}

// Load reads a YAML or JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.BaseDir == "" {
		cfg.BaseDir = filepath.Dir(path)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// Relative paths from a config file are resolved against its directory
	if c.BaseDir != "" {
		if c.OutputDir == "" {
			c.OutputDir = "frames"
		}
		c.Skeleton = c.abs(c.Skeleton)
		c.Clip = c.abs(c.Clip)
		c.Mapping = c.abs(c.Mapping)
		c.OutputDir = c.abs(c.OutputDir)
	}

	// CLI flags override config file
	if flags.Skeleton != "" {
		c.Skeleton = flags.Skeleton
	}
	if flags.Clip != "" {
		c.Clip = flags.Clip
	}
	if flags.Mapping != "" {
		c.Mapping = flags.Mapping
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.FPS > 0 {
		c.FPS = flags.FPS
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.PreviewSize > 0 {
		c.PreviewSize = flags.PreviewSize
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.OutputDir == "" {
		c.OutputDir = "frames"
	}
	if c.FPS <= 0 {
		c.FPS = 30
	}
	if c.PreviewSize <= 0 {
		c.PreviewSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// FrameStep is the playback delta between exported frames, in seconds.
func (c *Config) FrameStep() float64 {
	return 1 / c.FPS
}

func (c *Config) abs(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Skeleton    string
	Clip        string
	Mapping     string
	OutputDir   string
	FPS         float64
	Frames      int
	PreviewSize int
	Workers     int
}
