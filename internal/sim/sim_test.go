package sim_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-engine/internal/game"
	"github.com/robalobadob/wordle/apps/go-engine/internal/sim"
	"github.com/robalobadob/wordle/apps/go-engine/internal/solver"
	"github.com/robalobadob/wordle/apps/go-engine/internal/words"
)

func baseConfig(t *testing.T) sim.Config {
	t.Helper()
	l, err := words.LoadFiles("", "")
	require.NoError(t, err)
	return sim.Config{
		Answers: l.Answers,
		Allowed: l.Allowed,
		Games:   40,
		Seed:    11,
		NewSolver: func(r *rand.Rand) (solver.Solver, error) {
			return solver.NewBaseline(l.Answers, solver.StrategyRandom, r)
		},
	}
}

func summary(rep sim.Report) []string {
	out := make([]string, len(rep.Outcomes))
	for i, o := range rep.Outcomes {
		out[i] = o.Solution.String()
		for _, h := range o.History {
			out[i] += " " + h.Guess.String() + ":" + h.Feedback.String()
		}
	}
	return out
}

func TestRun_DeterministicAcrossWorkers(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Workers = 1
	a, err := sim.Run(context.Background(), cfg)
	require.NoError(t, err)

	cfg.Workers = 8
	b, err := sim.Run(context.Background(), cfg)
	require.NoError(t, err)

	if diff := cmp.Diff(summary(a), summary(b)); diff != "" {
		t.Errorf("worker count changed outcomes (-1 worker +8 workers)\n%s", diff)
	}
	assert.Equal(t, a.Distribution, b.Distribution)
}

func TestRun_ReportMath(t *testing.T) {
	cfg := baseConfig(t)
	rep, err := sim.Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, cfg.Games, rep.Played)
	assert.Equal(t, rep.Played, rep.Won+rep.Lost)
	assert.Len(t, rep.Failures, rep.Lost)

	wins, total := 0, 0
	for turns := 1; turns <= game.DefaultMaxTurns; turns++ {
		wins += rep.Distribution[turns]
		total += turns * rep.Distribution[turns]
	}
	assert.Equal(t, rep.Won, wins)
	total += rep.Lost * (game.DefaultMaxTurns + 1)
	assert.InDelta(t, float64(total)/float64(rep.Played), rep.AvgGuesses, 1e-9)
	assert.InDelta(t, float64(rep.Won)/float64(rep.Played), rep.WinRate, 1e-9)

	for _, o := range rep.Outcomes {
		assert.LessOrEqual(t, o.Guesses, game.DefaultMaxTurns)
		if o.Won {
			assert.Equal(t, o.Solution, o.History[len(o.History)-1].Guess)
		}
	}
}

func TestRun_FixedSolutions(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Solutions = []words.Word{words.MustParse("chase"), words.MustParse("ghost")}
	l := cfg.Answers
	cfg.NewSolver = func(*rand.Rand) (solver.Solver, error) {
		return solver.NewBaseline(l, solver.StrategyFirst, nil)
	}
	cfg.MaxTurns = 100

	rep, err := sim.Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Played)
	assert.Equal(t, 2, rep.Won)
	assert.Equal(t, "chase", rep.Outcomes[0].Solution.String())
	assert.Equal(t, "ghost", rep.Outcomes[1].Solution.String())
}

func TestRun_Errors(t *testing.T) {
	cfg := baseConfig(t)
	cfg.NewSolver = nil
	_, err := sim.Run(context.Background(), cfg)
	assert.Error(t, err)

	cfg = baseConfig(t)
	cfg.Games = 0
	_, err = sim.Run(context.Background(), cfg)
	assert.Error(t, err)

	cfg = baseConfig(t)
	cfg.Allowed = nil
	_, err = sim.Run(context.Background(), cfg)
	assert.ErrorIs(t, err, words.ErrEmptyVocabulary)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := sim.Run(ctx, baseConfig(t))
	assert.ErrorIs(t, err, context.Canceled)
}
