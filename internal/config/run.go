package config

import (
	"bytes"
	"errors"
	"fmt"
	"genetic-route-service/internal/domain"
	"genetic-route-service/internal/services"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Supported output formats.
const (
	FormatCSV = "csv"
	FormatGPX = "gpx"
)

// RunConfig holds everything one solver invocation needs besides its inputs.
// It is filled from defaults, then an optional YAML file, then CLI flags.
type RunConfig struct {
	PopSize int `yaml:"pop"`
	// Percent, so 2.5 means a 2.5% chance per mutation trial.
	MutationPercent float64       `yaml:"mutation"`
	Elitism         int           `yaml:"elite"`
	TimeLimit       time.Duration `yaml:"time"`
	Generations     int           `yaml:"generations"`
	// Target tour length in the metric's unit; 0 disables it.
	Length float64 `yaml:"length"`
	Metric string  `yaml:"metric"`
	Format string  `yaml:"format"`
	Seed   uint64  `yaml:"seed"`
	OutDir string  `yaml:"out"`
}

func DefaultRunConfig() RunConfig {
	p := domain.DefaultParams()
	return RunConfig{
		PopSize:         p.PopSize,
		MutationPercent: p.MutationRate * 100,
		Elitism:         p.Elitism,
		TimeLimit:       10 * time.Second,
		Metric:          services.MetricHaversine,
		Format:          FormatCSV,
		OutDir:          ".",
	}
}

// Read a YAML run file over base. Keys missing from the file keep their base
// value; unknown keys are rejected.
func LoadRunFile(path string, base RunConfig) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, fmt.Errorf("load run file: %w", err)
	}

	cfg := base
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return RunConfig{}, fmt.Errorf("load run file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return RunConfig{}, fmt.Errorf("load run file %s: %w", path, err)
	}
	return cfg, nil
}

func (c RunConfig) Params() domain.Params {
	return domain.Params{
		PopSize:      c.PopSize,
		MutationRate: c.MutationPercent / 100,
		Elitism:      c.Elitism,
	}
}

func (c RunConfig) Budgets() services.Budgets {
	return services.Budgets{
		TimeLimit:      c.TimeLimit,
		MaxGenerations: c.Generations,
		TargetDistance: c.Length,
	}
}

func (c RunConfig) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("validate run config: %w", err)
	}
	if err := c.Budgets().Validate(); err != nil {
		return fmt.Errorf("validate run config: %w", err)
	}

	switch c.Metric {
	case services.MetricHaversine, services.MetricPlanar, services.MetricRoad:
	default:
		return fmt.Errorf("validate run config: metric %q: %w", c.Metric, services.ErrUnknownMetric)
	}

	switch c.Format {
	case FormatCSV, FormatGPX:
	default:
		return fmt.Errorf("validate run config: unknown format %q", c.Format)
	}
	return nil
}
