// SPDX-License-Identifier: EPL-2.0

package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ik5/lissajous"
	"github.com/ik5/lissajous/formats/wav"
	"github.com/ik5/lissajous/internal/metrics"
	"github.com/ik5/lissajous/plot"
)

// ErrTooLarge is returned for figures above Options.MaxFrames.
var ErrTooLarge = errors.New("figure too large")

var contentTypes = map[string]string{
	"wav":  "audio/wav",
	"png":  "image/png",
	"svg":  "image/svg+xml",
	"pdf":  "application/pdf",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
	"eps":  "application/postscript",
	"txt":  "text/plain; charset=utf-8",
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// Figure handles GET /v1/lissajous.{format}. "wav" returns audio, any
// other format is rendered by the plot backend registered for it.
func (s *Server) Figure(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(chi.URLParam(r, "format"))
	kind := "plot"
	if format == "wav" {
		kind = "wav"
	}

	start := time.Now()
	body, err := s.figure(r.URL.Query(), format)
	if err != nil {
		s.fail(w, r, kind, err)
		return
	}
	metrics.RenderDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	metrics.FiguresTotal.WithLabelValues(kind, metrics.OutcomeOK).Inc()

	ct, ok := contentTypes[format]
	if !ok {
		ct = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Write(body)
}

func (s *Server) figure(q url.Values, format string) ([]byte, error) {
	p, err := s.params(q)
	if err != nil {
		return nil, err
	}

	var render func(*bytes.Buffer, lissajous.Buffer, int) error

	if format == "wav" {
		wf := s.opts.WAVFormat
		if v := q.Get("format"); v != "" {
			if wf, err = wav.ParseSampleFormat(v); err != nil {
				return nil, &lissajous.ParamError{Name: "format", Value: v, Reason: "must be pcm16 or float32"}
			}
		}
		render = func(out *bytes.Buffer, buf lissajous.Buffer, rate int) error {
			return lissajous.WriteWAV(out, buf, rate, wf)
		}
	} else {
		// fail on a missing backend before generating anything
		if _, err := plot.Lookup(format); err != nil {
			return nil, err
		}

		opts := plot.Options{Format: format, Size: s.opts.PlotSize, Title: plot.FigureTitle(p)}
		if v := q.Get("size"); v != "" {
			size, err := strconv.Atoi(v)
			if err != nil || size < 0 {
				return nil, &lissajous.ParamError{Name: "size", Value: v, Reason: "must be a non-negative integer"}
			}
			opts.Size = size
		}
		render = func(out *bytes.Buffer, buf lissajous.Buffer, rate int) error {
			return plot.Render(out, buf, rate, opts)
		}
	}

	n, err := lissajous.FrameCount(p)
	if err != nil {
		return nil, err
	}
	if n > s.opts.MaxFrames {
		return nil, fmt.Errorf("%w: %s needs %d frames, limit is %d", ErrTooLarge, p, n, s.opts.MaxFrames)
	}

	buf, rate, err := p.Generate()
	if err != nil {
		return nil, err
	}
	metrics.ObserveFigure(len(buf))

	var out bytes.Buffer
	if err := render(&out, buf, rate); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// params reads base, ratio, phase and rate, falling back to the defaults.
func (s *Server) params(q url.Values) (lissajous.Params, error) {
	p := s.opts.Defaults

	floats := []struct {
		key, name string
		dst       *float64
	}{
		{"base", "base_freq", &p.BaseFreq},
		{"phase", "phase_deg", &p.PhaseDeg},
	}
	for _, f := range floats {
		if v := q.Get(f.key); v != "" {
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return p, &lissajous.ParamError{Name: f.name, Value: v, Reason: "must be a number"}
			}
			*f.dst = x
		}
	}

	if v := q.Get("ratio"); v != "" {
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return p, &lissajous.ParamError{Name: "ratio", Value: v, Reason: "must be a positive integer"}
		}
		if p.Ratio, err = lissajous.RatioFromFloat(x); err != nil {
			return p, err
		}
	}

	if v := q.Get("rate"); v != "" {
		x, err := strconv.Atoi(v)
		if err != nil {
			return p, &lissajous.ParamError{Name: "sample_rate", Value: v, Reason: "must be an integer"}
		}
		p.SampleRate = x
	}

	return p, p.Validate()
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, kind string, err error) {
	status, outcome := http.StatusInternalServerError, metrics.OutcomeError

	switch {
	case errors.Is(err, lissajous.ErrInvalidParameter):
		status, outcome = http.StatusBadRequest, metrics.OutcomeInvalid
	case errors.Is(err, lissajous.ErrMissingDependency):
		status, outcome = http.StatusNotImplemented, metrics.OutcomeNoBackend
	case errors.Is(err, ErrTooLarge):
		status, outcome = http.StatusRequestEntityTooLarge, metrics.OutcomeTooLarge
	default:
		s.logger.Error("figure failed",
			zap.String("request_id", RequestIDFrom(r.Context())),
			zap.Error(err),
		)
	}
	metrics.FiguresTotal.WithLabelValues(kind, outcome).Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
