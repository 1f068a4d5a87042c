// Command wordle-sim plays many games with a baseline solver and prints the
// guess distribution.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/namsral/flag"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-engine/internal/sim"
	"github.com/robalobadob/wordle/apps/go-engine/internal/solver"
	"github.com/robalobadob/wordle/apps/go-engine/internal/words"
)

func main() {
	var (
		games     = flag.Int("games", 500, "Number of games to play")
		seed      = flag.Int64("seed", 1, "Seed for solution draws and solver randomness")
		workers   = flag.Int("workers", 0, "Concurrent games; 0 means GOMAXPROCS")
		strategy  = flag.String("strategy", "random", "Solver strategy: random or first")
		maxTurns  = flag.Int("max_turns", 6, "Guesses allowed per game")
		answers   = flag.String("answers", "", "Answers word list file (default: embedded)")
		allowed   = flag.String("allowed", "", "Allowed guesses word list file (default: embedded)")
		guessPool = flag.String("pool", "allowed", "Solver guess pool: allowed or answers")
		logLevel  = flag.String("log_level", "info", "zerolog level")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if lvl, err := zerolog.ParseLevel(*logLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := run(*games, *seed, *workers, *strategy, *maxTurns, *answers, *allowed, *guessPool); err != nil {
		log.Fatal().Err(err).Msg("simulation failed")
	}
}

func run(games int, seed int64, workers int, strategyName string, maxTurns int, answersPath, allowedPath, pool string) error {
	strategy, err := solver.ParseStrategy(strategyName)
	if err != nil {
		return err
	}
	lists, err := words.LoadFiles(answersPath, allowedPath)
	if err != nil {
		return err
	}
	if lists.Skipped > 0 {
		log.Warn().Int("skipped", lists.Skipped).Msg("malformed word list entries ignored")
	}

	vocab := lists.Allowed
	switch pool {
	case "allowed":
	case "answers":
		vocab = lists.Answers
	default:
		return fmt.Errorf("unknown pool %q", pool)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rep, err := sim.Run(ctx, sim.Config{
		Answers:  lists.Answers,
		Allowed:  lists.Allowed,
		Games:    games,
		MaxTurns: maxTurns,
		Workers:  workers,
		Seed:     seed,
		NewSolver: func(r *rand.Rand) (solver.Solver, error) {
			return solver.NewBaseline(vocab, strategy, r)
		},
	})
	if err != nil {
		return err
	}

	printReport(rep, maxTurns)
	return nil
}

func printReport(rep sim.Report, maxTurns int) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Guesses", "Games", "Share"})
	for i := 1; i <= maxTurns; i++ {
		table.Append([]string{strconv.Itoa(i), strconv.Itoa(rep.Distribution[i]), pct(rep.Distribution[i], rep.Played)})
	}
	table.Append([]string{"lost", strconv.Itoa(rep.Lost), pct(rep.Lost, rep.Played)})
	table.Render()

	fmt.Printf("played %d  won %d  win rate %.1f%%  avg guesses %.3f  elapsed %s\n",
		rep.Played, rep.Won, rep.WinRate*100, rep.AvgGuesses, rep.Elapsed)
	if len(rep.Failures) > 0 {
		limit := len(rep.Failures)
		if limit > 10 {
			limit = 10
		}
		fmt.Printf("failed on: %v\n", rep.Failures[:limit])
	}
}

func pct(n, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(n)*100/float64(total))
}
