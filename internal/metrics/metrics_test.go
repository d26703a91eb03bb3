package metrics_test

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/paperctl/internal/metrics"
)

func TestObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := metrics.New(reg)

	r.Observe("upload", metrics.OutcomeSuccess, time.Second)
	r.Observe("upload", metrics.OutcomeSuccess, time.Second)
	r.Observe("upload", metrics.OutcomeError, time.Millisecond)
	r.SetPapers(4)

	n, err := testutil.GatherAndCount(reg, "paperctl_commands_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "one series per command/outcome pair")

	n, err = testutil.GatherAndCount(reg, "paperctl_command_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	expected := `
# HELP paperctl_papers Number of papers currently held in the session catalog.
# TYPE paperctl_papers gauge
paperctl_papers 4
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "paperctl_papers"))
}

func TestNilRecorder(t *testing.T) {
	var r *metrics.Recorder
	assert.NotPanics(t, func() {
		r.Observe("edit", metrics.OutcomeError, 0)
		r.SetPapers(1)
	})
}
