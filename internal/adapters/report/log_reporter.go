package report

import (
	"context"
	"genetic-route-service/internal/domain"
	"log"
	"time"

	"github.com/dustin/go-humanize"
)

// LogReporter writes one line per improving generation and a summary when
// the run finishes. Verbose=false keeps only the summary.
type LogReporter struct {
	Source  string
	Verbose bool
	Logger  *log.Logger
}

func NewLogReporter(source string, verbose bool) *LogReporter {
	return &LogReporter{Source: source, Verbose: verbose, Logger: log.Default()}
}

func (r *LogReporter) Report(ctx context.Context, s domain.Snapshot) {
	if !r.Verbose {
		return
	}
	r.Logger.Printf(
		"source=%s generation=%s best_distance=%.3f best_fitness=%.6g mean_distance=%.3f stddev=%.3f elapsed=%s",
		r.Source,
		humanize.Comma(int64(s.Generation)),
		s.BestDistance,
		s.BestFitness,
		s.MeanDistance,
		s.StdDevDistance,
		s.Elapsed.Round(time.Millisecond),
	)
}

func (r *LogReporter) Finish(ctx context.Context, plan domain.RoutePlan) {
	r.Logger.Printf(
		"source=%s done distance=%.3f baseline=%.3f generations=%s elapsed=%s reason=%q",
		r.Source,
		plan.Distance,
		plan.Baseline,
		humanize.Comma(int64(plan.Generations)),
		humanize.FtoaWithDigits(plan.Elapsed.Seconds(), 2)+"s",
		plan.StopReason,
	)
}
