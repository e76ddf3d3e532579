// SPDX-License-Identifier: EPL-2.0

// Package metrics holds the Prometheus collectors of the preview server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels.
const (
	OutcomeOK        = "ok"
	OutcomeInvalid   = "invalid"
	OutcomeTooLarge  = "too_large"
	OutcomeNoBackend = "no_backend"
	OutcomeError     = "error"
)

// Counters
var (
	FiguresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lissajous_figures_total",
		Help: "Figure requests by output kind and outcome",
	}, []string{"kind", "outcome"})
	FramesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lissajous_frames_generated_total",
		Help: "Total stereo frames generated",
	})
)

// Histograms
var (
	FigureFrames = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lissajous_figure_frames",
		Help:    "Frames per generated figure",
		Buckets: prometheus.ExponentialBuckets(16, 4, 10),
	})
	RenderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lissajous_render_duration_seconds",
		Help:    "Time to generate and encode a figure by output kind",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})
)

// ObserveFigure records a successful generation of n frames.
func ObserveFigure(n int) {
	FramesTotal.Add(float64(n))
	FigureFrames.Observe(float64(n))
}
