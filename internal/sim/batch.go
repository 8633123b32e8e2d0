// Package sim resolves many independent battles concurrently and summarizes them.
package sim

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/rng"
)

// Job is one battle to resolve.
type Job struct {
	Name   string
	Params combat.RunParams
}

// Result pairs a Job with its outcome. Index is the job's position in the input.
type Result struct {
	Index  int              `json:"index"`
	Name   string           `json:"name"`
	Result combat.RunResult `json:"result"`
}

// Runner resolves jobs on a bounded pool of goroutines sharing one Engine.
type Runner struct {
	engine  *combat.Engine
	workers int
	logger  *zap.Logger
}

// NewRunner creates a Runner. workers < 1 is treated as 1.
//
// Precondition: engine must be non-nil.
// Postcondition: Returns a non-nil Runner.
func NewRunner(engine *combat.Engine, workers int, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{engine: engine, workers: max(1, workers), logger: logger}
}

// Run resolves every job and returns the results in input order.
//
// Each battle owns its own RNG, so results do not depend on the worker count
// or on scheduling.
//
// Postcondition: on success len(results) == len(jobs) and results[i].Index == i;
// on cancellation returns ctx.Err() and no results.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	start := time.Now()
	results := make([]Result, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := r.engine.Run(job.Params)
			results[i] = Result{Index: i, Name: job.Name, Result: res}
			r.logger.Debug("battle done",
				zap.Int("index", i),
				zap.String("name", job.Name),
				zap.Uint32("seed", res.Seed),
				zap.Stringer("outcome", res.Outcome),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("running batch: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("running batch: %w", err)
	}

	r.logger.Info("batch complete",
		zap.Int("battles", len(jobs)),
		zap.Int("workers", r.workers),
		zap.Duration("elapsed", time.Since(start)),
	)
	return results, nil
}

// Repeat returns n jobs that replay base with consecutive seeds. A set seed
// s yields s, s+1, ..., s+n-1; an absent seed yields n generated seeds.
//
// Postcondition: len(result) == max(n, 0); every job has a set seed.
func Repeat(name string, base combat.RunParams, n int) []Job {
	if n <= 0 {
		return nil
	}
	first := base.Seed.Resolve()
	jobs := make([]Job, n)
	for i := range jobs {
		p := base
		seed := first + uint32(i)
		if !base.Seed.IsSet() && i > 0 {
			seed = rng.Generate()
		}
		p.Seed = rng.SeedFromInt(int64(seed))
		jobs[i] = Job{Name: fmt.Sprintf("%s#%d", name, i), Params: p}
	}
	return jobs
}

// Summary aggregates the outcomes of a batch.
type Summary struct {
	Battles   int     `json:"battles"`
	Victories int     `json:"victories"`
	Defeats   int     `json:"defeats"`
	WinRate   float64 `json:"winRate"`
	MeanTurns float64 `json:"meanTurns"`
	MinTurns  int     `json:"minTurns"`
	MaxTurns  int     `json:"maxTurns"`
	// MeanDamage is the average total damage dealt per battle across all log entries.
	MeanDamage float64 `json:"meanDamage"`
}

// Summarize aggregates results.
//
// Postcondition: Victories + Defeats == Battles == len(results); WinRate is a
// percentage rounded to two decimals.
func Summarize(results []Result) Summary {
	s := Summary{Battles: len(results)}
	if len(results) == 0 {
		return s
	}
	s.MinTurns = math.MaxInt
	turns, damage := 0, 0
	for _, r := range results {
		if r.Result.Outcome == combat.Victory {
			s.Victories++
		} else {
			s.Defeats++
		}
		turns += r.Result.Turns
		s.MinTurns = min(s.MinTurns, r.Result.Turns)
		s.MaxTurns = max(s.MaxTurns, r.Result.Turns)
		for _, e := range r.Result.Logs {
			if e.Damage != nil {
				damage += *e.Damage
			}
		}
	}
	n := float64(len(results))
	s.WinRate = math.Round(float64(s.Victories)/n*10000) / 100
	s.MeanTurns = math.Round(float64(turns)/n*100) / 100
	s.MeanDamage = math.Round(float64(damage)/n*100) / 100
	return s
}
