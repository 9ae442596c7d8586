package main

import (
	"flag"
	"fmt"
	"genetic-route-service/internal/config"
	"io"
	"os"
)

// parseFlags layers configuration: defaults, then the optional -config YAML
// file, then every flag given explicitly on the command line.
func parseFlags(args []string) (config.RunConfig, []string, bool, error) {
	def := config.DefaultRunConfig()
	fv := def

	fs := flag.NewFlagSet("tsp", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	configPath := fs.String("config", "", "YAML run configuration file")
	verbose := fs.Bool("v", false, "log every improving generation")
	fs.DurationVar(&fv.TimeLimit, "time", def.TimeLimit, "stop after this much time (0 disables)")
	fs.IntVar(&fv.Generations, "generations", def.Generations, "stop after this many generations (0 disables)")
	fs.Float64Var(&fv.Length, "length", def.Length, "stop once the route is no longer than this (0 disables)")
	fs.IntVar(&fv.PopSize, "pop", def.PopSize, "population size")
	fs.Float64Var(&fv.MutationPercent, "mutation", def.MutationPercent, "mutation rate in percent per trial")
	fs.IntVar(&fv.Elitism, "elite", def.Elitism, "number of best routes kept each generation")
	fs.StringVar(&fv.Format, "format", def.Format, "output format: csv or gpx")
	fs.StringVar(&fv.Metric, "metric", def.Metric, "distance metric: haversine, planar or road")
	fs.Uint64Var(&fv.Seed, "seed", def.Seed, "random seed (0 picks one from the clock)")
	fs.StringVar(&fv.OutDir, "out", def.OutDir, "directory for route files")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			fs.SetOutput(os.Stderr)
			fs.Usage()
		}
		return config.RunConfig{}, nil, false, err
	}

	cfg := def
	if *configPath != "" {
		loaded, err := config.LoadRunFile(*configPath, def)
		if err != nil {
			return config.RunConfig{}, nil, false, err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "time":
			cfg.TimeLimit = fv.TimeLimit
		case "generations":
			cfg.Generations = fv.Generations
		case "length":
			cfg.Length = fv.Length
		case "pop":
			cfg.PopSize = fv.PopSize
		case "mutation":
			cfg.MutationPercent = fv.MutationPercent
		case "elite":
			cfg.Elitism = fv.Elitism
		case "format":
			cfg.Format = fv.Format
		case "metric":
			cfg.Metric = fv.Metric
		case "seed":
			cfg.Seed = fv.Seed
		case "out":
			cfg.OutDir = fv.OutDir
		}
	})

	if err := cfg.Validate(); err != nil {
		return config.RunConfig{}, nil, false, fmt.Errorf("parse flags: %w", err)
	}
	return cfg, fs.Args(), *verbose, nil
}
