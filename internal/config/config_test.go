// SPDX-License-Identifier: EPL-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ik5/lissajous"
	"github.com/ik5/lissajous/formats/wav"
)

func parse(t *testing.T, args ...string) *Config {
	t.Helper()

	fs := Flags("test")
	require.NoError(t, fs.Parse(args))

	cfg, err := Load(fs)
	require.NoError(t, err)

	return cfg
}

func TestLoad_Defaults(t *testing.T) {
	cfg := parse(t)

	assert.Equal(t, lissajous.DefaultParams(), cfg.Params)
	assert.Equal(t, wav.PCM16, cfg.WAVFormat)
	assert.Equal(t, "png", cfg.Plot.Format)
	assert.Zero(t, cfg.Plot.Size)
	assert.Equal(t, 1000, cfg.Play.Loops)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10_000_000, cfg.Server.MaxFrames)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.File)
}

func TestLoad_NilFlagSet(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, lissajous.DefaultParams(), cfg.Params)
}

func TestLoad_Flags(t *testing.T) {
	cfg := parse(t,
		"--base-freq", "500",
		"--ratio", "3",
		"--phase", "45",
		"--rate", "44100",
		"--wav-format", "float32",
		"--plot-format", "SVG",
		"--size", "800",
		"--loops", "2",
		"--addr", "127.0.0.1:9000",
	)

	assert.Equal(t, lissajous.Params{BaseFreq: 500, Ratio: 3, PhaseDeg: 45, SampleRate: 44100}, cfg.Params)
	assert.Equal(t, wav.Float32, cfg.WAVFormat)
	assert.Equal(t, "svg", cfg.Plot.Format)
	assert.Equal(t, 800, cfg.Plot.Size)
	assert.Equal(t, 2, cfg.Play.Loops)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("LISSAJOUS_BASE_FREQ", "700")
	t.Setenv("LISSAJOUS_RATIO", "2")
	t.Setenv("LISSAJOUS_WAV_FORMAT", "float32")
	t.Setenv("LISSAJOUS_SERVER_MAX_FRAMES", "1000")

	cfg := parse(t)
	assert.Equal(t, 700.0, cfg.Params.BaseFreq)
	assert.Equal(t, 2, cfg.Params.Ratio)
	assert.Equal(t, wav.Float32, cfg.WAVFormat)
	assert.Equal(t, 1000, cfg.Server.MaxFrames)

	// flags win over the environment
	cfg = parse(t, "--base-freq", "250")
	assert.Equal(t, 250.0, cfg.Params.BaseFreq)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lissajous.yaml")
	data := []byte(`
base_freq: 440
ratio: 5
phase_deg: 0
plot:
  format: txt
  size: 41
server:
  addr: ":7070"
log:
  level: debug
  format: console
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg := parse(t, "--config", path, "--ratio", "4")

	assert.Equal(t, path, cfg.File)
	assert.Equal(t, 440.0, cfg.Params.BaseFreq)
	assert.Equal(t, 4, cfg.Params.Ratio, "flag overrides file")
	assert.Zero(t, cfg.Params.PhaseDeg)
	assert.Equal(t, "txt", cfg.Plot.Format)
	assert.Equal(t, 41, cfg.Plot.Size)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_MissingFile(t *testing.T) {
	fs := Flags("test")
	require.NoError(t, fs.Parse([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml")}))

	_, err := Load(fs)
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"fractional ratio", []string{"--ratio", "2.5"}, lissajous.ErrInvalidParameter},
		{"zero ratio", []string{"--ratio", "0"}, lissajous.ErrInvalidParameter},
		{"negative base", []string{"--base-freq", "-1"}, lissajous.ErrInvalidParameter},
		{"zero rate", []string{"--rate", "0"}, lissajous.ErrInvalidParameter},
		{"wav format", []string{"--wav-format", "mulaw"}, ErrInvalidConfig},
		{"negative size", []string{"--size", "-5"}, ErrInvalidConfig},
		{"negative plot rate", []string{"--plot-rate", "-1"}, ErrInvalidConfig},
		{"zero loops", []string{"--loops", "0"}, ErrInvalidConfig},
		{"zero max frames", []string{"--max-frames", "0"}, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := Flags("test")
			require.NoError(t, fs.Parse(tt.args))

			_, err := Load(fs)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		cfg := &Config{Log: Log{Level: "debug", Format: format}}

		logger, err := cfg.NewLogger()
		require.NoError(t, err, format)
		assert.True(t, logger.Core().Enabled(zap.DebugLevel), "%s: debug enabled", format)
	}

	_, err := (&Config{Log: Log{Level: "loud", Format: "json"}}).NewLogger()
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = (&Config{Log: Log{Level: "info", Format: "xml"}}).NewLogger()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
