package dto

import "time"

type RunResponse struct {
	RunID        int64     `json:"run_id"`
	Source       string    `json:"source"`
	Metric       string    `json:"metric"`
	CityCount    int       `json:"city_count"`
	PopSize      int       `json:"pop_size"`
	MutationRate float64   `json:"mutation_rate"`
	Elitism      int       `json:"elitism"`
	Distance     float64   `json:"distance"`
	Generations  int       `json:"generations"`
	ElapsedMs    int64     `json:"elapsed_ms"`
	StopReason   string    `json:"stop_reason"`
	Order        []int     `json:"order"`
	CreatedAt    time.Time `json:"created_at"`
}

type ListRunsResponse struct {
	Runs []RunResponse `json:"runs"`
}
