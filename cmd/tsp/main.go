package main

import (
	"context"
	"flag"
	"fmt"
	"genetic-route-service/internal/config"
	"log"
	"os"
	"os/signal"
	"syscall"
)

// main solves each input given on the command line and writes one route file
// per input. A failing input is reported and does not stop the others.
func main() {
	config.LoadEnv()

	cfg, inputs, verbose, err := parseFlags(os.Args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		log.Fatal(err)
	}
	if len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "usage: tsp [flags] FILE|db:DATASET ...")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApp(ctx, cfg, verbose)
	if err != nil {
		log.Fatal(err)
	}
	defer app.Close()

	if failed := app.solveAll(ctx, inputs); failed > 0 {
		log.Printf("%d of %d inputs failed", failed, len(inputs))
		stop()
		app.Close()
		os.Exit(1)
	}
}
