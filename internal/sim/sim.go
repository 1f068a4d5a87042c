// internal/sim/sim.go
//
// Simulator: plays many sessions with a solver and aggregates the results.
//
// Reproducibility:
//   - Solutions are drawn up front from a rand seeded with Config.Seed
//     (unless Config.Solutions is given).
//   - Game i hands its solver a rand seeded with Seed+i+1, so outcomes do not
//     depend on worker count or scheduling.
//
// A game the solver abandons (no candidates left) counts as lost. Lost games
// contribute MaxTurns+1 guesses to AvgGuesses.

package sim

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-engine/internal/game"
	"github.com/robalobadob/wordle/apps/go-engine/internal/solver"
	"github.com/robalobadob/wordle/apps/go-engine/internal/words"
)

// Config describes one simulation run.
type Config struct {
	Answers   *words.Vocabulary
	Allowed   *words.Vocabulary
	Solutions []words.Word // optional; overrides Games/Answers draws
	Games     int
	MaxTurns  int // 0 means game.DefaultMaxTurns
	Workers   int // 0 means GOMAXPROCS
	Seed      int64

	// NewSolver builds the solver for a single game. Each game gets its own
	// solver and rand, so solvers need not be safe for concurrent use.
	NewSolver func(r *rand.Rand) (solver.Solver, error)
}

// Outcome is the result of one game.
type Outcome struct {
	Solution words.Word
	Won      bool
	Guesses  int
	History  []game.GuessRecord
}

// Report aggregates a run.
type Report struct {
	Played       int
	Won          int
	Lost         int
	WinRate      float64
	AvgGuesses   float64
	Distribution map[int]int // guesses-to-win → games
	Failures     []words.Word
	Outcomes     []Outcome
	Elapsed      time.Duration
}

// Run plays every configured game and returns the aggregate. It stops
// scheduling new games once ctx is done and returns ctx.Err().
func Run(ctx context.Context, cfg Config) (Report, error) {
	if cfg.Allowed == nil || cfg.Allowed.Len() == 0 {
		return Report{}, fmt.Errorf("allowed: %w", words.ErrEmptyVocabulary)
	}
	if cfg.NewSolver == nil {
		return Report{}, errors.New("sim: NewSolver is required")
	}
	if cfg.MaxTurns == 0 {
		cfg.MaxTurns = game.DefaultMaxTurns
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}

	solutions, err := pickSolutions(cfg)
	if err != nil {
		return Report{}, err
	}

	start := time.Now()
	outcomes := make([]Outcome, len(solutions))
	jobs := make(chan int)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out, err := playOne(cfg, solutions[i], rand.New(rand.NewSource(cfg.Seed+int64(i)+1)))
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("game %d (%s): %w", i, solutions[i], err)
					}
					mu.Unlock()
					continue
				}
				outcomes[i] = out
			}
		}()
	}

schedule:
	for i := range solutions {
		select {
		case <-ctx.Done():
			break schedule
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	if firstErr != nil {
		return Report{}, firstErr
	}

	rep := summarize(outcomes, cfg.MaxTurns)
	rep.Elapsed = time.Since(start)
	log.Debug().
		Int("played", rep.Played).
		Int("won", rep.Won).
		Float64("avg_guesses", rep.AvgGuesses).
		Dur("elapsed", rep.Elapsed).
		Msg("simulation finished")
	return rep, nil
}

func pickSolutions(cfg Config) ([]words.Word, error) {
	if len(cfg.Solutions) > 0 {
		out := make([]words.Word, len(cfg.Solutions))
		copy(out, cfg.Solutions)
		return out, nil
	}
	if cfg.Answers == nil || cfg.Answers.Len() == 0 {
		return nil, fmt.Errorf("answers: %w", words.ErrEmptyVocabulary)
	}
	if cfg.Games <= 0 {
		return nil, fmt.Errorf("sim: games must be positive, got %d", cfg.Games)
	}
	r := rand.New(rand.NewSource(cfg.Seed))
	out := make([]words.Word, cfg.Games)
	for i := range out {
		out[i] = cfg.Answers.Pick(r)
	}
	return out, nil
}

func playOne(cfg Config, solution words.Word, r *rand.Rand) (Outcome, error) {
	sess, err := game.NewSession(game.Config{Solution: solution, Allowed: cfg.Allowed, MaxTurns: cfg.MaxTurns})
	if err != nil {
		return Outcome{}, err
	}
	s, err := cfg.NewSolver(r)
	if err != nil {
		return Outcome{}, err
	}
	for sess.Status() == game.StatusInProgress {
		guess, ok := s.Next(sess.History())
		if !ok {
			break
		}
		if _, err := sess.SubmitGuess(guess); err != nil {
			return Outcome{}, err
		}
	}
	return Outcome{
		Solution: solution,
		Won:      sess.Status() == game.StatusWon,
		Guesses:  sess.TurnsUsed(),
		History:  sess.History(),
	}, nil
}

func summarize(outcomes []Outcome, maxTurns int) Report {
	rep := Report{
		Played:       len(outcomes),
		Distribution: make(map[int]int, maxTurns),
		Outcomes:     outcomes,
	}
	for i := 1; i <= maxTurns; i++ {
		rep.Distribution[i] = 0
	}
	total := 0
	for _, o := range outcomes {
		if o.Won {
			rep.Won++
			rep.Distribution[o.Guesses]++
			total += o.Guesses
			continue
		}
		rep.Lost++
		rep.Failures = append(rep.Failures, o.Solution)
		total += maxTurns + 1
	}
	if rep.Played > 0 {
		rep.WinRate = float64(rep.Won) / float64(rep.Played)
		rep.AvgGuesses = float64(total) / float64(rep.Played)
	}
	return rep
}
