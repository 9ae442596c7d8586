package report

import (
	"bytes"
	"context"
	"genetic-route-service/internal/domain"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newBufferedReporter(verbose bool) (*LogReporter, *bytes.Buffer) {
	var buf bytes.Buffer
	r := NewLogReporter("berlin.csv", verbose)
	r.Logger = log.New(&buf, "", 0)
	return r, &buf
}

func TestLogReporterReportsWhenVerbose(t *testing.T) {
	r, buf := newBufferedReporter(true)

	r.Report(context.Background(), domain.Snapshot{Generation: 12345, BestDistance: 42.5, Elapsed: time.Second})

	assert.Contains(t, buf.String(), "source=berlin.csv generation=12,345 best_distance=42.500")
}

func TestLogReporterQuietSkipsProgress(t *testing.T) {
	r, buf := newBufferedReporter(false)

	r.Report(context.Background(), domain.Snapshot{Generation: 1})
	assert.Empty(t, buf.String())

	r.Finish(context.Background(), domain.RoutePlan{Distance: 4, Baseline: 4.5, Generations: 1500, Elapsed: 1500 * time.Millisecond, StopReason: "time budget"})
	assert.Contains(t, buf.String(), "done distance=4.000 baseline=4.500 generations=1,500 elapsed=1.5s reason=\"time budget\"")
}
