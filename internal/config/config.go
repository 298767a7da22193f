package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"cardfx/internal/anim"
	"cardfx/internal/imageio"
)

// Config holds all configurable paths, pipeline and tilt settings.
type Config struct {
	// Paths
	InputDir  string `json:"input_dir"`
	OutputDir string `json:"output_dir"`

	// Background removal
	Format       string `json:"format"`
	MaxDimension int    `json:"max_dimension"`
	MaxPixels    int    `json:"max_pixels"`
	Fallback     *bool  `json:"fallback"`
	Workers      int    `json:"workers"`

	LogLevel string `json:"log_level"`

	Tilt Tilt `json:"tilt"`
}

// Tilt holds the card animation settings.
type Tilt struct {
	SmoothDurationMS  int     `json:"smooth_duration_ms"`
	InitialDurationMS int     `json:"initial_duration_ms"`
	InitialXOffset    float64 `json:"initial_x_offset"`
	InitialYOffset    float64 `json:"initial_y_offset"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Input        string
	Output       string
	Format       string
	MaxDimension int
	MaxPixels    int
	Workers      int
	LogLevel     string
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Input != "" {
		c.InputDir = flags.Input
	}
	if flags.Output != "" {
		c.OutputDir = flags.Output
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.MaxDimension > 0 {
		c.MaxDimension = flags.MaxDimension
	}
	if flags.MaxPixels > 0 {
		c.MaxPixels = flags.MaxPixels
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}

	// Output next to the input unless told otherwise
	if c.OutputDir == "" && c.InputDir != "" {
		base := c.InputDir
		if info, err := os.Stat(base); err == nil && !info.IsDir() {
			base = filepath.Dir(base)
		}
		c.OutputDir = filepath.Join(base, "nobg")
	}

	if c.Format == "" {
		c.Format = "png"
	}
	if c.MaxDimension < 0 {
		c.MaxDimension = 0
	}
	if c.MaxPixels <= 0 {
		c.MaxPixels = imageio.DefaultMaxPixels
	}
	if c.Fallback == nil {
		fallback := true
		c.Fallback = &fallback
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	c.Tilt.resolve()
}

func (t *Tilt) resolve() {
	def := anim.DefaultTiming()
	if t.SmoothDurationMS <= 0 {
		t.SmoothDurationMS = int(def.Smooth / time.Millisecond)
	}
	if t.InitialDurationMS <= 0 {
		t.InitialDurationMS = int(def.Initial / time.Millisecond)
	}
	if t.InitialXOffset == 0 {
		t.InitialXOffset = def.InitialXOffset
	}
	if t.InitialYOffset == 0 {
		t.InitialYOffset = def.InitialYOffset
	}
}

// Timing converts the tilt settings for anim.NewCard.
func (t Tilt) Timing() anim.Timing {
	return anim.Timing{
		Smooth:         time.Duration(t.SmoothDurationMS) * time.Millisecond,
		Initial:        time.Duration(t.InitialDurationMS) * time.Millisecond,
		InitialXOffset: t.InitialXOffset,
		InitialYOffset: t.InitialYOffset,
	}
}
