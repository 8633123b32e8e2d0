// Package main provides the battlesim binary, which resolves battle rosters
// with the combat engine and prints the results as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/config"
	"github.com/cory-johannsen/skirmish/internal/content"
	"github.com/cory-johannsen/skirmish/internal/game/rng"
	"github.com/cory-johannsen/skirmish/internal/sim"
)

// options are the command-line overrides applied on top of the roster and config.
type options struct {
	rosterPath string
	seed       string
	maxTurns   int
	runs       int
	workers    int
	summary    bool
	pretty     bool
}

func main() {
	configPath := flag.String("config", "", "path to configuration file; empty = defaults plus SKIRMISH_* environment")
	var opts options
	flag.StringVar(&opts.rosterPath, "roster", "content/rosters/duel.yaml", "roster YAML file, or a directory of them")
	flag.StringVar(&opts.seed, "seed", "", "seed override: a number or any string; empty = use the roster's seed")
	flag.IntVar(&opts.maxTurns, "max-turns", -1, "turn limit override; 0 = unlimited, -1 = use the roster's limit")
	flag.IntVar(&opts.runs, "runs", 0, "battles per roster with consecutive seeds; 0 = sim.runs from config")
	flag.IntVar(&opts.workers, "workers", 0, "concurrent battles; 0 = sim.workers from config")
	flag.BoolVar(&opts.summary, "summary", false, "print per-roster summaries instead of full results")
	flag.BoolVar(&opts.pretty, "pretty", false, "indent JSON output")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if opts.runs > 0 {
		cfg.Sim.Runs = opts.runs
	}
	if opts.workers > 0 {
		cfg.Sim.Workers = opts.workers
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	app, cleanup, err := initializeApp(cfg)
	if err != nil {
		log.Fatalf("initializing: %v", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, app, opts, os.Stdout); err != nil {
		app.Logger.Error("battlesim failed", zap.Error(err))
		cleanup()
		os.Exit(1)
	}
}

// run loads the rosters, resolves every battle, and writes JSON to out.
//
// Precondition: app must be fully wired.
// Postcondition: out receives one JSON document, or an error is returned and
// nothing is written.
func run(ctx context.Context, app *App, opts options, out io.Writer) error {
	start := time.Now()
	rosters, err := loadRosters(opts.rosterPath)
	if err != nil {
		return err
	}

	var jobs []sim.Job
	for _, r := range rosters {
		p, err := r.Params(app.Config.Stats)
		if err != nil {
			return err
		}
		if opts.seed != "" {
			p.Seed = rng.SeedFromString(opts.seed)
		}
		if opts.maxTurns >= 0 {
			p.MaxTurns = opts.maxTurns
		}
		if app.Config.Sim.Runs == 1 {
			jobs = append(jobs, sim.Job{Name: r.Name, Params: p})
			continue
		}
		jobs = append(jobs, sim.Repeat(r.Name, p, app.Config.Sim.Runs)...)
	}
	app.Logger.Info("rosters loaded",
		zap.Int("rosters", len(rosters)),
		zap.Int("battles", len(jobs)),
		zap.Duration("elapsed", time.Since(start)),
	)

	results, err := app.Runner.Run(ctx, jobs)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	if opts.pretty {
		enc.SetIndent("", "  ")
	}
	if opts.summary {
		return enc.Encode(summarizeByRoster(rosters, results, app.Config.Sim.Runs))
	}
	if len(results) == 1 {
		return enc.Encode(results[0].Result)
	}
	return enc.Encode(results)
}

func loadRosters(path string) ([]*content.Roster, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("roster path: %w", err)
	}
	if info.IsDir() {
		return content.LoadRosters(path)
	}
	r, err := content.LoadRoster(path)
	if err != nil {
		return nil, err
	}
	return []*content.Roster{r}, nil
}

// rosterSummary is the -summary output line for one roster.
type rosterSummary struct {
	Roster string `json:"roster"`
	sim.Summary
}

// summarizeByRoster splits results, which hold runs consecutive entries per
// roster, back into per-roster summaries.
func summarizeByRoster(rosters []*content.Roster, results []sim.Result, runs int) []rosterSummary {
	out := make([]rosterSummary, 0, len(rosters))
	for i, r := range rosters {
		lo := min(i*runs, len(results))
		hi := min(lo+runs, len(results))
		out = append(out, rosterSummary{Roster: r.Name, Summary: sim.Summarize(results[lo:hi])})
	}
	return out
}
