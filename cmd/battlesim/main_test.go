package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/skirmish/internal/config"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/sim"
)

var rosterDir = filepath.Join("..", "..", "content", "rosters")

func testApp(t *testing.T, runs int) *App {
	t.Helper()
	cfg := config.Default()
	cfg.Sim.Runs = runs
	logger := zaptest.NewLogger(t)
	eng := combat.NewEngine(cfg.Combat, logger)
	return &App{Config: cfg, Logger: logger, Engine: eng, Runner: sim.NewRunner(eng, 2, logger)}
}

func defaults() options {
	return options{rosterPath: filepath.Join(rosterDir, "duel.yaml"), maxTurns: -1}
}

func TestRun_SingleRosterPrintsResult(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), testApp(t, 1), defaults(), &out))

	var res map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.EqualValues(t, 12345, res["seed"])
	assert.EqualValues(t, 1, res["turns"])
	assert.Contains(t, []any{"victory", "defeat"}, res["outcome"])
	assert.NotEmpty(t, res["logs"])
}

func TestRun_IsDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, run(context.Background(), testApp(t, 1), defaults(), &a))
	require.NoError(t, run(context.Background(), testApp(t, 1), defaults(), &b))
	assert.Equal(t, a.String(), b.String())
}

func TestRun_Overrides(t *testing.T) {
	opts := defaults()
	opts.seed = "7"
	opts.maxTurns = 0

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), testApp(t, 1), opts, &out))

	var res map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.EqualValues(t, 7, res["seed"])
	assert.Equal(t, "victory", res["outcome"], "an unlimited duel ends when the goblin falls")
}

func TestRun_RepeatedRunsPrintArray(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), testApp(t, 3), defaults(), &out))

	var results []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &results))
	require.Len(t, results, 3)
	assert.Equal(t, "duel#0", results[0]["name"])
	assert.Equal(t, "duel#2", results[2]["name"])
}

func TestRun_SummaryByRoster(t *testing.T) {
	entries, err := os.ReadDir(rosterDir)
	require.NoError(t, err)

	opts := defaults()
	opts.rosterPath = rosterDir
	opts.summary = true

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), testApp(t, 4), opts, &out))

	var summaries []rosterSummary
	require.NoError(t, json.Unmarshal(out.Bytes(), &summaries))
	require.Len(t, summaries, len(entries))
	for _, s := range summaries {
		assert.NotEmpty(t, s.Roster)
		assert.Equal(t, 4, s.Battles)
		assert.Equal(t, s.Battles, s.Victories+s.Defeats)
	}
}

func TestRun_MissingRoster(t *testing.T) {
	opts := defaults()
	opts.rosterPath = filepath.Join(t.TempDir(), "absent.yaml")
	var out bytes.Buffer
	assert.Error(t, run(context.Background(), testApp(t, 1), opts, &out))
	assert.Zero(t, out.Len())
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	assert.ErrorIs(t, run(ctx, testApp(t, 2), defaults(), &out), context.Canceled)
	assert.Zero(t, out.Len())
}

func TestInitializeApp(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Output = filepath.Join(t.TempDir(), "battlesim.log")

	app, cleanup, err := initializeApp(cfg)
	require.NoError(t, err)
	defer cleanup()
	assert.NotNil(t, app.Logger)
	assert.NotNil(t, app.Engine)
	assert.NotNil(t, app.Runner)
	assert.Equal(t, cfg, app.Config)
}
