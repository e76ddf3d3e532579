// SPDX-License-Identifier: EPL-2.0

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveFigure(t *testing.T) {
	before := testutil.ToFloat64(FramesTotal)

	ObserveFigure(288)
	ObserveFigure(48)

	assert.Equal(t, before+336, testutil.ToFloat64(FramesTotal))
}

func TestFiguresTotalLabels(t *testing.T) {
	c := FiguresTotal.WithLabelValues("wav", OutcomeInvalid)
	before := testutil.ToFloat64(c)

	c.Inc()

	assert.Equal(t, before+1, testutil.ToFloat64(c))
}
