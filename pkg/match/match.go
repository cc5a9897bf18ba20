// Package match plays series of reversi games between two players and
// aggregates the outcome, and reads and writes game transcripts.
package match

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/yourusername/reversiengine/pkg/engine"
	"github.com/yourusername/reversiengine/pkg/game"
)

// ErrNoGames is returned when a match is asked to play zero games
var ErrNoGames = errors.New("match needs at least one game")

// PlayerFactory creates a player for one worker. Each worker owns its
// players, so players need not be safe for concurrent use.
type PlayerFactory func() (game.Player, error)

// EngineFactory returns a factory for minimax engines at the given depth
func EngineFactory(depth int) PlayerFactory {
	return func() (game.Player, error) {
		return engine.NewEngine(engine.Options{Depth: depth})
	}
}

// RandomFactory returns a factory for random players. Worker n gets seed+n.
func RandomFactory(seed int64) PlayerFactory {
	var mu sync.Mutex
	next := seed
	return func() (game.Player, error) {
		mu.Lock()
		defer mu.Unlock()
		p := game.NewRandomPlayer(next)
		next++
		return p, nil
	}
}

// Options controls a match
type Options struct {
	Games       int   // Number of games (default 100)
	Workers     int   // Parallel workers (0 = GOMAXPROCS)
	RandomPlies int   // Random opening plies before the players take over
	Seed        int64 // Opening seed (0 = random)
	KeepGames   bool  // Keep every game record in Result.Records
}

// DefaultOptions returns sensible defaults
func DefaultOptions() Options {
	return Options{
		Games:       100,
		Workers:     0,
		RandomPlies: 4,
		Seed:        0,
	}
}

// Progress reports a running match
type Progress struct {
	GamesCompleted int
	GamesTotal     int
	Percent        float64
	WinsA          int
	WinsB          int
	Draws          int
}

// ProgressCallback is called after every finished game
type ProgressCallback func(progress Progress)

// Result is the outcome of a match, from player A's point of view
type Result struct {
	Games int
	WinsA int
	WinsB int
	Draws int

	ScoreA         float64 // (wins + draws/2) / games
	MeanDiscDiff   float64 // Mean of A's discs minus B's discs
	StdDevDiscDiff float64
	CI95           float64 // 95% confidence half-width of MeanDiscDiff

	Seed     int64
	Duration time.Duration
	Records  []*game.Result // Only with Options.KeepGames
}

// outcome is one finished game from a worker
type outcome struct {
	index  int
	res    *game.Result
	aBlack bool
	err    error
}

// Run plays a match between the players built by a and b
func Run(ctx context.Context, a, b PlayerFactory, opts Options) (*Result, error) {
	return RunWithProgress(ctx, a, b, opts, nil)
}

// RunWithProgress plays a match and calls callback after each game. Player A
// takes black in even-numbered games. Game i opens with RandomPlies random
// plies seeded by Seed+i, so results do not depend on the worker count.
func RunWithProgress(ctx context.Context, a, b PlayerFactory, opts Options, callback ProgressCallback) (*Result, error) {
	if opts.Games <= 0 {
		return nil, ErrNoGames
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Workers > opts.Games {
		opts.Workers = opts.Games
	}
	if opts.RandomPlies < 0 {
		opts.RandomPlies = 0
	}
	if opts.Seed == 0 {
		opts.Seed = rand.Int63()
	}

	start := time.Now()

	// Build all players before starting any worker
	type pair struct{ a, b game.Player }
	pairs := make([]pair, opts.Workers)
	for i := range pairs {
		pa, err := a()
		if err != nil {
			return nil, fmt.Errorf("creating player A: %w", err)
		}
		pb, err := b()
		if err != nil {
			return nil, fmt.Errorf("creating player B: %w", err)
		}
		pairs[i] = pair{pa, pb}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int)
	outcomes := make(chan outcome, opts.Workers)
	var wg sync.WaitGroup

	for _, p := range pairs {
		wg.Add(1)
		go func(pa, pb game.Player) {
			defer wg.Done()
			for i := range jobs {
				outcomes <- playOne(ctx, i, pa, pb, opts)
			}
		}(p.a, p.b)
	}

	go func() {
		defer close(jobs)
		for i := 0; i < opts.Games; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	records := make([]*game.Result, opts.Games)
	aBlack := make([]bool, opts.Games)
	var (
		firstErr  error
		completed int
		progress  = Progress{GamesTotal: opts.Games}
	)

	for o := range outcomes {
		if o.err != nil {
			if firstErr == nil {
				firstErr = o.err
				cancel()
			}
			continue
		}
		records[o.index] = o.res
		aBlack[o.index] = o.aBlack
		completed++

		if callback != nil {
			switch winnerIsA(o.res, o.aBlack) {
			case 1:
				progress.WinsA++
			case -1:
				progress.WinsB++
			default:
				progress.Draws++
			}
			progress.GamesCompleted = completed
			progress.Percent = 100.0 * float64(completed) / float64(opts.Games)
			callback(progress)
		}
	}

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil && completed < opts.Games {
		return nil, err
	}

	result := aggregate(records, aBlack)
	result.Seed = opts.Seed
	result.Duration = time.Since(start)
	if opts.KeepGames {
		result.Records = records
	}
	return result, nil
}

// playOne plays game i
func playOne(ctx context.Context, i int, pa, pb game.Player, opts Options) outcome {
	rng := rand.New(rand.NewSource(opts.Seed + int64(i)))
	board, mover := game.RandomOpening(rng, opts.RandomPlies)

	aBlack := i%2 == 0
	black, white := pa, pb
	if !aBlack {
		black, white = pb, pa
	}

	res, err := game.Play(ctx, black, white, game.Options{Start: &board, FirstToMove: mover})
	if err != nil {
		return outcome{index: i, err: fmt.Errorf("game %d: %w", i+1, err)}
	}
	return outcome{index: i, res: res, aBlack: aBlack}
}

// winnerIsA returns 1 if A won, -1 if B won and 0 for a draw
func winnerIsA(res *game.Result, aBlack bool) int {
	switch {
	case res.Winner == engine.Empty:
		return 0
	case (res.Winner == engine.Black) == aBlack:
		return 1
	default:
		return -1
	}
}

// aggregate computes the match statistics in game order
func aggregate(records []*game.Result, aBlack []bool) *Result {
	n := len(records)
	diffs := make([]float64, n)
	points := make([]float64, n)
	result := &Result{Games: n}

	for i, res := range records {
		aStone := engine.White
		if aBlack[i] {
			aStone = engine.Black
		}
		diffs[i] = float64(res.DiscDiff(aStone))

		switch winnerIsA(res, aBlack[i]) {
		case 1:
			result.WinsA++
			points[i] = 1
		case -1:
			result.WinsB++
		default:
			result.Draws++
			points[i] = 0.5
		}
	}

	result.ScoreA = floats.Sum(points) / float64(n)
	if n > 1 {
		result.MeanDiscDiff, result.StdDevDiscDiff = stat.MeanStdDev(diffs, nil)
		result.CI95 = 1.96 * result.StdDevDiscDiff / math.Sqrt(float64(n))
	} else {
		result.MeanDiscDiff = diffs[0]
	}
	return result
}
