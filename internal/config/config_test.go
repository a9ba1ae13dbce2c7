package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
loading_framerate: 20
queue: heap
frames: 120
jobs:
  - name: terrain
    priority: 3.5
    steps: 40
    step_cost: 2ms
    one_step_per_frame: true
  - steps: 5
streams:
  - path: /tmp/asset.bin
    chunk_size: 4096
    priority: 9
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 20, cfg.LoadingFramerate)
	require.Equal(t, 60, cfg.RenderFramerate, "unset fields keep defaults")
	require.Equal(t, -1, cfg.PinCPU)
	require.Equal(t, "heap", cfg.Queue)
	require.Len(t, cfg.Jobs, 2)
	require.Equal(t, JobConfig{
		Name:            "terrain",
		Priority:        3.5,
		Steps:           40,
		StepCost:        2 * time.Millisecond,
		OneStepPerFrame: true,
	}, cfg.Jobs[0])
	require.Equal(t, 4096, cfg.Streams[0].ChunkSize)
	require.NoError(t, cfg.Validate())

	cfg.AssignNames()
	require.Equal(t, "terrain", cfg.Jobs[0].Name)
	require.True(t, strings.HasPrefix(cfg.Jobs[1].Name, "job-"))
	require.True(t, strings.HasPrefix(cfg.Streams[0].Name, "stream-"))
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("frames: [1, 2"), 0o600))
	_, err = Load(path)
	require.ErrorContains(t, err, "parse config")
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LoadingFramerate = 0
	cfg.RenderFramerate = -1
	cfg.Queue = "fifo"
	cfg.Jobs = []JobConfig{{Steps: 0}}
	cfg.Streams = []StreamConfig{{}}

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{
		"loading_framerate",
		"render_framerate",
		"unknown queue type",
		"jobs[0]: steps",
		"streams[0]: path",
	} {
		require.ErrorContains(t, err, want)
	}
}
