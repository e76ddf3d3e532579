// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ik5/lissajous"
	"github.com/ik5/lissajous/audio"
	"github.com/ik5/lissajous/formats"
	"github.com/ik5/lissajous/formats/wav"
	"github.com/ik5/lissajous/internal/server"
	"github.com/ik5/lissajous/playback"
	"github.com/ik5/lissajous/plot"
)

func paramFields(p lissajous.Params) []zap.Field {
	return []zap.Field{
		zap.Float64("base_freq", p.BaseFreq),
		zap.Int("ratio", p.Ratio),
		zap.Float64("phase_deg", p.PhaseDeg),
		zap.Int("sample_rate", p.SampleRate),
	}
}

func runGenerate(_ context.Context, e *env, _ []string) error {
	p := e.cfg.Params

	buf, rate, err := p.Generate()
	if err != nil {
		return err
	}
	d, err := lissajous.ClosureDuration(p)
	if err != nil {
		return err
	}

	fmt.Fprintln(e.stdout, p)
	fmt.Fprintf(e.stdout, "frames=%d rate=%d duration=%v peak=%.6f\n", len(buf), rate, d, buf.Peak())

	return nil
}

func runSave(_ context.Context, e *env, args []string) error {
	path := "lissajous.wav"
	if len(args) > 0 {
		path = args[0]
	}

	p := e.cfg.Params
	if err := lissajous.SaveWAV(path, p, e.cfg.WAVFormat); err != nil {
		return err
	}

	e.logger.Info("saved",
		append(paramFields(p), zap.String("path", path), zap.Stringer("format", e.cfg.WAVFormat))...)

	return nil
}

func runPlay(ctx context.Context, e *env, _ []string) error {
	p := e.cfg.Params
	e.logger.Info("playing", append(paramFields(p), zap.Int("loops", e.cfg.Play.Loops))...)

	sink := playback.NewDeviceSink()
	return playback.PlayFigureContext(ctx, sink, p, e.cfg.Play.Loops)
}

// create opens the output named by --output, falling back to def. "-"
// is stdout.
func create(e *env, def string) (io.Writer, func() error, error) {
	path, _ := e.flags.GetString("output")
	if path == "" {
		path = def
	}
	if path == "-" {
		return e.stdout, func() error { return nil }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	e.logger.Debug("writing", zap.String("path", path))

	return f, f.Close, nil
}

func plotOptions(e *env) plot.Options {
	return plot.Options{Format: e.cfg.Plot.Format, Size: e.cfg.Plot.Size}
}

func runPlot(_ context.Context, e *env, _ []string) (err error) {
	opts := plotOptions(e)

	// check before creating the output file
	if _, err := plot.Lookup(opts.Format); err != nil {
		return err
	}

	w, closeFn, err := create(e, "lissajous."+opts.Format)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, closeFn()) }()

	return plot.RenderFigure(w, e.cfg.Params, opts)
}

func runScope(_ context.Context, e *env, args []string) (err error) {
	if len(args) != 1 {
		return errors.New("scope needs exactly one input file")
	}
	in := args[0]

	opts := plotOptions(e)
	if _, err := plot.Lookup(opts.Format); err != nil {
		return err
	}

	src, closeSrc, err := openSource(in)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, closeSrc()) }()

	if rate := e.cfg.Plot.Rate; rate > 0 && rate != src.SampleRate() {
		e.logger.Info("resampling",
			zap.Int("from", src.SampleRate()), zap.Int("to", rate))

		r, err := audio.NewResampler(src, rate)
		if err != nil {
			return err
		}
		src = r
	}

	frames, err := audio.CollectFrames(src, 0)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	e.logger.Info("scope", zap.String("input", in), zap.Int("frames", len(frames)))

	base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	w, closeFn, err := create(e, base+"."+opts.Format)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, closeFn()) }()

	opts.Title = "Vectorscope: " + filepath.Base(in)

	return plot.RenderFrames(w, frames, opts)
}

// openSource decodes path with the decoder registered for its extension.
func openSource(path string) (audio.Source, func() error, error) {
	dec, err := formats.NewRegistry().ForPath(path)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	src, err := dec.Decode(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return src, func() error { return errors.Join(src.Close(), f.Close()) }, nil
}

func runConvert(_ context.Context, e *env, args []string) (err error) {
	if len(args) != 2 {
		return errors.New("convert needs an input and an output file")
	}
	in, out := args[0], args[1]

	src, closeSrc, err := openSource(in)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, closeSrc()) }()

	rate := e.cfg.Params.SampleRate
	if rate != src.SampleRate() {
		r, err := audio.NewResampler(src, rate)
		if err != nil {
			return err
		}
		src = r
	}

	samples, err := audio.Collect(src, 0)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, f.Close()) }()

	if err := wav.Write(f, rate, src.Channels(), samples, e.cfg.WAVFormat); err != nil {
		return err
	}

	e.logger.Info("converted",
		zap.String("input", in),
		zap.String("output", out),
		zap.Int("rate", rate),
		zap.Int("channels", src.Channels()),
		zap.Int("frames", len(samples)/max(src.Channels(), 1)),
	)

	return nil
}

func runServe(ctx context.Context, e *env, _ []string) error {
	s := server.New(server.Options{
		Defaults:  e.cfg.Params,
		WAVFormat: e.cfg.WAVFormat,
		PlotSize:  e.cfg.Plot.Size,
		MaxFrames: e.cfg.Server.MaxFrames,
	}, e.logger)

	e.logger.Info("starting",
		zap.String("addr", e.cfg.Server.Addr),
		zap.Int("max_frames", e.cfg.Server.MaxFrames),
		zap.Strings("plot_formats", plot.Formats()),
	)

	return s.ListenAndServe(ctx, e.cfg.Server.Addr)
}
