package domain

import "time"

// A persisted summary of one finished evolution run.
// Only the result is stored; populations never outlive their run.
type Run struct {
	RunID       int64
	Source      string
	Metric      string
	CityCount   int
	Params      Params
	Distance    float64
	Generations int
	ElapsedMs   int64
	StopReason  string
	Order       []int
	CreatedAt   time.Time
}

// Summarize a finished plan for persistence.
func NewRun(source string, cityCount int, params Params, plan RoutePlan, at time.Time) Run {
	return Run{
		Source:      source,
		Metric:      plan.Metric,
		CityCount:   cityCount,
		Params:      params,
		Distance:    plan.Distance,
		Generations: plan.Generations,
		ElapsedMs:   plan.Elapsed.Milliseconds(),
		StopReason:  plan.StopReason,
		Order:       append([]int(nil), plan.Order...),
		CreatedAt:   at,
	}
}
