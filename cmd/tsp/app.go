package main

import (
	"context"
	"database/sql"
	"fmt"
	"genetic-route-service/internal/adapters/cache"
	"genetic-route-service/internal/adapters/cities"
	"genetic-route-service/internal/adapters/distance"
	"genetic-route-service/internal/adapters/report"
	"genetic-route-service/internal/adapters/repositories"
	"genetic-route-service/internal/adapters/routes"
	"genetic-route-service/internal/config"
	"genetic-route-service/internal/platform/db"
	"genetic-route-service/internal/platform/obs"
	"genetic-route-service/internal/ports"
	"genetic-route-service/internal/services"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
)

// app holds the adapters shared by every input of one invocation.
type app struct {
	cfg     config.RunConfig
	verbose bool
	writer  ports.RouteWriter
	db      *sql.DB
	// Set only for postgres, the one store holding city datasets.
	datasets *sql.DB
	runs     ports.RunRepository
	matrix   ports.DistanceMatrixProvider
}

// newApp wires optional storage and the road metric from the environment:
// DATABASE_URL selects postgres (runs, datasets, distance cache), otherwise
// DB_PATH selects a SQLite file. ORS_API_KEY is needed for -metric road.
func newApp(ctx context.Context, cfg config.RunConfig, verbose bool) (*app, error) {
	writer, err := routes.ForFormat(cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("new app: %w", err)
	}
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("new app: create output dir: %w", err)
	}

	a := &app{cfg: cfg, verbose: verbose, writer: writer}

	var distCache ports.DistanceCache
	switch {
	case config.Get("DATABASE_URL", "") != "":
		conn, err := db.Open(ctx, config.Get("DATABASE_URL", ""))
		if err != nil {
			return nil, fmt.Errorf("new app: %w", err)
		}
		a.db = conn
		a.datasets = conn
		a.runs = repositories.NewSQLRunRepository(conn)
		distCache = cache.NewSQLDistanceCache(conn)

	case config.Get("DB_PATH", "") != "":
		conn, err := db.OpenSqlite(ctx, config.Get("DB_PATH", ""))
		if err != nil {
			return nil, fmt.Errorf("new app: %w", err)
		}
		a.db = conn
		if err := repositories.InitSchema(ctx, conn); err != nil {
			conn.Close()
			return nil, fmt.Errorf("new app: %w", err)
		}
		a.runs = repositories.NewSqliteRunRepository(conn)
		distCache = cache.NewSqliteDistanceCache(conn)
	}

	if cfg.Metric == services.MetricRoad {
		key, err := config.Require("ORS_API_KEY")
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("new app: road metric: %w", err)
		}
		provider, err := distance.NewORSMatrixProvider(key, distCache)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("new app: %w", err)
		}
		a.matrix = provider
	}

	return a, nil
}

func (a *app) Close() {
	if a.db != nil {
		a.db.Close()
		a.db = nil
	}
}

// Return the number of inputs that failed. Inputs left after an interrupt
// are skipped and count as failed.
func (a *app) solveAll(ctx context.Context, inputs []string) int {
	start := time.Now()
	failed := 0

	for i, input := range inputs {
		if ctx.Err() != nil {
			log.Printf("interrupted, skipping %d remaining inputs", len(inputs)-i)
			failed += len(inputs) - i
			break
		}

		path, err := a.solveOne(obs.WithTask(ctx, input), input)
		if err != nil {
			log.Printf("input=%s err=%v", input, err)
			failed++
			continue
		}
		fmt.Println(path)
	}

	log.Printf(
		"solved %s of %s inputs in %ss",
		humanize.Comma(int64(len(inputs)-failed)),
		humanize.Comma(int64(len(inputs))),
		humanize.FtoaWithDigits(time.Since(start).Seconds(), 2),
	)
	return failed
}

// solveOne loads one input, evolves its route and writes the route file.
func (a *app) solveOne(ctx context.Context, input string) (_ string, err error) {
	defer obs.Time(ctx, "tsp.solveOne")(&err)

	src, err := cities.Open(input, a.datasets)
	if err != nil {
		return "", err
	}
	list, err := src.LoadCities(ctx)
	if err != nil {
		return "", err
	}

	solver := &services.Solver{
		Matrix:   a.matrix,
		Runs:     a.runs,
		Reporter: report.NewLogReporter(src.Name(), a.verbose),
	}
	plan, err := solver.Solve(ctx, services.SolveRequest{
		Source:  src.Name(),
		Cities:  list,
		Metric:  a.cfg.Metric,
		Params:  a.cfg.Params(),
		Budgets: a.cfg.Budgets(),
		Seed:    a.cfg.Seed,
	})
	if err != nil {
		return "", err
	}

	return routes.WriteFile(a.writer, a.cfg.OutDir, src.Name(), list, *plan)
}
