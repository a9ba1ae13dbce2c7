// Package config holds the framesim demo configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/Andrej220/go-utils/framesched"
)

// Config describes one simulated run.
type Config struct {
	LoadingFramerate int `yaml:"loading_framerate"`
	RenderFramerate  int `yaml:"render_framerate"`

	// Frames caps the run. 0 runs until the scheduler is idle.
	Frames int `yaml:"frames"`

	// Queue is "scan" or "heap".
	Queue string `yaml:"queue"`

	// PinCPU pins the frame loop thread. -1 disables pinning.
	PinCPU int `yaml:"pin_cpu"`

	Jobs    []JobConfig    `yaml:"jobs"`
	Streams []StreamConfig `yaml:"streams"`
}

// JobConfig is a synthetic job burning StepCost per step.
type JobConfig struct {
	Name            string        `yaml:"name"`
	Priority        float64       `yaml:"priority"`
	Steps           int           `yaml:"steps"`
	StepCost        time.Duration `yaml:"step_cost"`
	OneStepPerFrame bool          `yaml:"one_step_per_frame"`
}

// StreamConfig is a file streamed by a chunk loader.
type StreamConfig struct {
	Name      string  `yaml:"name"`
	Path      string  `yaml:"path"`
	ChunkSize int     `yaml:"chunk_size"`
	Priority  float64 `yaml:"priority"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		LoadingFramerate: framesched.DefaultLoadingFramerate,
		RenderFramerate:  60,
		Frames:           0,
		Queue:            "scan",
		PinCPU:           -1,
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the simulation cannot run.
func (c Config) Validate() error {
	var errs []error
	if c.LoadingFramerate <= 0 {
		errs = append(errs, fmt.Errorf("loading_framerate must be positive, got %d", c.LoadingFramerate))
	}
	if c.RenderFramerate <= 0 {
		errs = append(errs, fmt.Errorf("render_framerate must be positive, got %d", c.RenderFramerate))
	}
	if c.Frames < 0 {
		errs = append(errs, fmt.Errorf("frames must not be negative, got %d", c.Frames))
	}
	if _, err := framesched.ParseQueueType(c.Queue); err != nil {
		errs = append(errs, err)
	}
	for i, j := range c.Jobs {
		if j.Steps <= 0 {
			errs = append(errs, fmt.Errorf("jobs[%d]: steps must be positive, got %d", i, j.Steps))
		}
		if j.StepCost < 0 {
			errs = append(errs, fmt.Errorf("jobs[%d]: step_cost must not be negative", i))
		}
	}
	for i, s := range c.Streams {
		if s.Path == "" {
			errs = append(errs, fmt.Errorf("streams[%d]: path is required", i))
		}
	}
	return errors.Join(errs...)
}

// AssignNames gives every unnamed job and stream a random name.
func (c *Config) AssignNames() {
	for i := range c.Jobs {
		if c.Jobs[i].Name == "" {
			c.Jobs[i].Name = "job-" + uuid.NewString()
		}
	}
	for i := range c.Streams {
		if c.Streams[i].Name == "" {
			c.Streams[i].Name = "stream-" + uuid.NewString()
		}
	}
}
