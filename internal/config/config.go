// SPDX-License-Identifier: EPL-2.0

// Package config loads the command line and server settings from
// defaults, an optional config file, LISSAJOUS_* environment variables
// and flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ik5/lissajous"
	"github.com/ik5/lissajous/formats/wav"
)

// EnvPrefix is prepended to every environment variable, so base_freq is
// read from LISSAJOUS_BASE_FREQ and wav.format from LISSAJOUS_WAV_FORMAT.
const EnvPrefix = "LISSAJOUS"

// Keys.
const (
	KeyBaseFreq   = "base_freq"
	KeyRatio      = "ratio"
	KeyPhaseDeg   = "phase_deg"
	KeySampleRate = "sample_rate"
	KeyWAVFormat  = "wav.format"
	KeyPlotFormat = "plot.format"
	KeyPlotSize   = "plot.size"
	KeyPlotRate   = "plot.rate"
	KeyPlayLoops  = "play.loops"
	KeyAddr       = "server.addr"
	KeyMaxFrames  = "server.max_frames"
	KeyLogLevel   = "log.level"
	KeyLogFormat  = "log.format"
)

// ErrInvalidConfig is returned for settings outside the generator's own
// parameters that fail validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the resolved configuration.
type Config struct {
	Params    lissajous.Params
	WAVFormat wav.SampleFormat

	Plot   Plot
	Play   Play
	Server Server
	Log    Log

	// File is the config file that was read, if any.
	File string
}

type Plot struct {
	Format string
	Size   int
	// Rate resamples decoded files before plotting; 0 keeps the source rate.
	Rate int
}

type Play struct {
	Loops int
}

type Server struct {
	Addr      string
	MaxFrames int
}

type Log struct {
	Level  string
	Format string
}

// flag name -> key
var flagKeys = map[string]string{
	"base-freq":   KeyBaseFreq,
	"ratio":       KeyRatio,
	"phase":       KeyPhaseDeg,
	"rate":        KeySampleRate,
	"wav-format":  KeyWAVFormat,
	"plot-format": KeyPlotFormat,
	"size":        KeyPlotSize,
	"plot-rate":   KeyPlotRate,
	"loops":       KeyPlayLoops,
	"addr":        KeyAddr,
	"max-frames":  KeyMaxFrames,
	"log-level":   KeyLogLevel,
	"log-format":  KeyLogFormat,
}

func setDefaults(v *viper.Viper) {
	p := lissajous.DefaultParams()

	v.SetDefault(KeyBaseFreq, p.BaseFreq)
	v.SetDefault(KeyRatio, p.Ratio)
	v.SetDefault(KeyPhaseDeg, p.PhaseDeg)
	v.SetDefault(KeySampleRate, p.SampleRate)
	v.SetDefault(KeyWAVFormat, wav.PCM16.String())
	v.SetDefault(KeyPlotFormat, "png")
	v.SetDefault(KeyPlotSize, 0)
	v.SetDefault(KeyPlotRate, 0)
	v.SetDefault(KeyPlayLoops, 1000)
	v.SetDefault(KeyAddr, ":8080")
	v.SetDefault(KeyMaxFrames, 10_000_000)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "json")
}

// Flags returns a flag set defining every setting plus --config.
func Flags(name string) *pflag.FlagSet {
	p := lissajous.DefaultParams()
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)

	fs.String("config", "", "config file (yaml, json or toml)")
	fs.Float64("base-freq", p.BaseFreq, "left channel frequency in Hz")
	fs.Float64("ratio", float64(p.Ratio), "right/left frequency ratio, a positive integer")
	fs.Float64("phase", p.PhaseDeg, "right channel phase offset in degrees")
	fs.Int("rate", p.SampleRate, "sample rate in Hz")
	fs.String("wav-format", wav.PCM16.String(), "WAV sample format: pcm16 or float32")
	fs.String("plot-format", "png", "plot output format")
	fs.Int("size", 0, "plot size in pixels (columns for txt), 0 for the default")
	fs.Int("plot-rate", 0, "resample decoded audio to this rate before plotting, 0 to keep it")
	fs.Int("loops", 1000, "how many closure periods to play")
	fs.String("addr", ":8080", "HTTP listen address")
	fs.Int("max-frames", 10_000_000, "largest figure the server will generate")
	fs.String("log-level", "info", "debug, info, warn or error")
	fs.String("log-format", "json", "json or console")

	return fs
}

// Load resolves the configuration. fs may be nil, in which case only
// defaults, the environment and configFile are consulted.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var file string
	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind --%s: %w", name, err)
				}
			}
		}
		file, _ = fs.GetString("config")
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	return decode(v, file)
}

func decode(v *viper.Viper, file string) (*Config, error) {
	ratio, err := lissajous.RatioFromFloat(v.GetFloat64(KeyRatio))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Params: lissajous.Params{
			BaseFreq:   v.GetFloat64(KeyBaseFreq),
			Ratio:      ratio,
			PhaseDeg:   v.GetFloat64(KeyPhaseDeg),
			SampleRate: v.GetInt(KeySampleRate),
		},
		Plot: Plot{
			Format: strings.ToLower(v.GetString(KeyPlotFormat)),
			Size:   v.GetInt(KeyPlotSize),
			Rate:   v.GetInt(KeyPlotRate),
		},
		Play: Play{Loops: v.GetInt(KeyPlayLoops)},
		Server: Server{
			Addr:      v.GetString(KeyAddr),
			MaxFrames: v.GetInt(KeyMaxFrames),
		},
		Log: Log{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
		},
		File: file,
	}

	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}

	cfg.WAVFormat, err = wav.ParseSampleFormat(v.GetString(KeyWAVFormat))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, KeyWAVFormat, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Plot.Size < 0:
		return fmt.Errorf("%w: %s must not be negative (got %d)", ErrInvalidConfig, KeyPlotSize, c.Plot.Size)
	case c.Plot.Rate < 0:
		return fmt.Errorf("%w: %s must not be negative (got %d)", ErrInvalidConfig, KeyPlotRate, c.Plot.Rate)
	case c.Play.Loops < 1:
		return fmt.Errorf("%w: %s must be at least 1 (got %d)", ErrInvalidConfig, KeyPlayLoops, c.Play.Loops)
	case c.Server.MaxFrames < 1:
		return fmt.Errorf("%w: %s must be at least 1 (got %d)", ErrInvalidConfig, KeyMaxFrames, c.Server.MaxFrames)
	}

	return nil
}
