package dto

type CityRequest struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Optional fields left out of the request fall back to server defaults.
type SolveRequest struct {
	Name            string        `json:"name"`
	Cities          []CityRequest `json:"cities"`
	Metric          string        `json:"metric"`
	PopSize         *int          `json:"pop_size"`
	MutationPercent *float64      `json:"mutation_percent"`
	Elitism         *int          `json:"elitism"`
	TimeLimitMs     int64         `json:"time_limit_ms"`
	Generations     int           `json:"generations"`
	TargetDistance  float64       `json:"target_distance"`
	Seed            uint64        `json:"seed"`
}

type RouteStopResponse struct {
	Index int     `json:"index"`
	Name  string  `json:"name"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}

type SolveResponse struct {
	Name        string              `json:"name"`
	Metric      string              `json:"metric"`
	Distance    float64             `json:"distance"`
	Baseline    float64             `json:"baseline_distance"`
	Fitness     float64             `json:"fitness"`
	Generations int                 `json:"generations"`
	ElapsedMs   int64               `json:"elapsed_ms"`
	StopReason  string              `json:"stop_reason"`
	Route       []RouteStopResponse `json:"route"`
}
