// reversi - command line front end for the 6x6 reversi engine
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/yourusername/reversiengine/pkg/engine"
	"github.com/yourusername/reversiengine/pkg/external"
	"github.com/yourusername/reversiengine/pkg/game"
	"github.com/yourusername/reversiengine/pkg/match"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "move":
		cmdMove(args)
	case "eval":
		cmdEval(args)
	case "legal":
		cmdLegal(args)
	case "show":
		cmdShow(args)
	case "play":
		cmdPlay(args)
	case "selfplay":
		cmdSelfPlay(args)
	case "review":
		cmdReview(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`reversi - 6x6 Reversi Engine

Usage: reversi <command> [options]

Commands:
  move      Find the best placement for a player
  eval      Static evaluation of a position
  legal     List legal placements
  show      Print a position and its board ID
  play      Play one game between two players
  selfplay  Play a match and report statistics
  review    Review the games in a transcript file

Use "reversi <command> -h" for command-specific help.

Positions:
  -p takes a board ID ("AAAAYAAJAAAA" is the opening), 36 cells
  ("..............OX....XO..............") or rows separated by '/'.
  -f reads a text file with six rows of . X O.
  Without either, the opening position is used.`)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// positionFlags registers the flags shared by the position commands
type positionFlags struct {
	pos   *string
	file  *string
	stone *string
}

func addPositionFlags(fs *flag.FlagSet) positionFlags {
	return positionFlags{
		pos:   fs.String("p", "", "Position (board ID, 36 cells or rows)"),
		file:  fs.String("f", "", "Read the position from a text file"),
		stone: fs.String("s", "black", "Player to move (black/white, x/o, 1/2)"),
	}
}

func (pf positionFlags) board() (engine.Board, error) {
	switch {
	case *pf.pos != "" && *pf.file != "":
		return engine.Board{}, fmt.Errorf("use -p or -f, not both")
	case *pf.pos != "":
		return external.ParsePosition(*pf.pos)
	case *pf.file != "":
		data, err := os.ReadFile(*pf.file)
		if err != nil {
			return engine.Board{}, err
		}
		return engine.ParseBoard(string(data))
	}
	return engine.StartingPosition(), nil
}

func (pf positionFlags) parse() (engine.Board, engine.Stone) {
	b, err := pf.board()
	if err != nil {
		fatal(err)
	}
	s, err := engine.ParseStone(*pf.stone)
	if err != nil {
		fatal(err)
	}
	return b, s
}

func cmdMove(args []string) {
	fs := flag.NewFlagSet("move", flag.ExitOnError)
	pf := addPositionFlags(fs)
	depth := fs.Int("d", engine.DefaultDepth, "Search depth")
	numMoves := fs.Int("n", 5, "Number of moves to show")
	fs.Parse(args)

	b, s := pf.parse()

	e, err := engine.NewEngine(engine.Options{Depth: *depth})
	if err != nil {
		fatal(err)
	}

	start := time.Now()
	analysis := e.AnalyzePosition(b, s)
	elapsed := time.Since(start)

	fmt.Print(b)
	fmt.Println()
	if !analysis.HasMove {
		fmt.Printf("%s has no legal placement: pass\n", s)
		return
	}

	fmt.Printf("Best move for %s: %s (score %d)\n", s, analysis.BestMove, analysis.BestScore)
	fmt.Println()
	fmt.Println("Rank  Move  Score")
	for i, m := range analysis.Moves {
		if i >= *numMoves {
			break
		}
		fmt.Printf("%4d  %-4s  %5d\n", i+1, m.Move, m.Score)
	}
	fmt.Printf("\n%d legal moves, depth %d, %d nodes, %v\n",
		analysis.NumMoves, analysis.Depth, analysis.Nodes, elapsed)
}

func cmdEval(args []string) {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	pf := addPositionFlags(fs)
	fs.Parse(args)

	b, s := pf.parse()

	fmt.Printf("Score for %s: %+d\n", s, engine.Evaluate(b, s))
	fmt.Printf("  Discs: black %d, white %d, empty %d\n",
		b.Count(engine.Black), b.Count(engine.White), b.Empties())
	if engine.GameOver(b) {
		fmt.Println("  Game over")
	}
}

func cmdLegal(args []string) {
	fs := flag.NewFlagSet("legal", flag.ExitOnError)
	pf := addPositionFlags(fs)
	fs.Parse(args)

	b, s := pf.parse()

	moves := engine.LegalMoves(b, s)
	if len(moves) == 0 {
		fmt.Println("none")
		return
	}
	for _, m := range moves {
		after := engine.Simulate(b, s, m)
		fmt.Printf("%s  flips %d\n", m, after.Count(s)-b.Count(s)-1)
	}
}

func cmdShow(args []string) {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	pf := addPositionFlags(fs)
	fs.Parse(args)

	b, err := pf.board()
	if err != nil {
		fatal(err)
	}

	fmt.Print(b)
	fmt.Printf("\nBoard ID: %s\n", engine.BoardID(b))
	fmt.Printf("Cells:    %s\n", external.FormatPosition(b))
}

// newPlayer returns an engine of the given depth, or a random player when
// depth is negative.
func newPlayer(depth int, seed int64) (game.Player, error) {
	if depth < 0 {
		return game.NewRandomPlayer(seed), nil
	}
	return engine.NewEngine(engine.Options{Depth: depth})
}

func cmdPlay(args []string) {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	pf := addPositionFlags(fs)
	blackDepth := fs.Int("black", engine.DefaultDepth, "Black engine depth (-1 = random player)")
	whiteDepth := fs.Int("white", engine.DefaultDepth, "White engine depth (-1 = random player)")
	seed := fs.Int64("seed", time.Now().UnixNano(), "Seed for random players")
	verbose := fs.Bool("v", false, "Log every turn")
	transcript := fs.String("o", "", "Write the transcript to this file")
	fs.Parse(args)

	b, s := pf.parse()

	black, err := newPlayer(*blackDepth, *seed)
	if err != nil {
		fatal(err)
	}
	white, err := newPlayer(*whiteDepth, *seed+1)
	if err != nil {
		fatal(err)
	}

	opts := game.Options{Start: &b, FirstToMove: s}
	if *verbose {
		opts.Logger = log.New(os.Stderr, "", log.Ltime)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := game.Play(ctx, black, white, opts)
	if err != nil {
		fatal(err)
	}

	fmt.Print(res.Final)
	fmt.Println()
	for i, t := range res.Moves {
		fmt.Printf("%3d. %-5s %s\n", i+1, t.Stone, t)
	}
	fmt.Println()
	switch res.Winner {
	case engine.Empty:
		fmt.Printf("Draw %d-%d", res.BlackCount, res.WhiteCount)
	default:
		fmt.Printf("%s wins %d-%d", res.Winner, res.BlackCount, res.WhiteCount)
	}
	fmt.Printf(" in %v\n", res.Duration.Round(time.Millisecond))

	if *transcript != "" {
		if err := writeTranscripts(*transcript, []*game.Result{res}); err != nil {
			fatal(err)
		}
	}
}

func writeTranscripts(path string, results []*game.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := match.WriteTranscripts(f, results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func cmdSelfPlay(args []string) {
	def := match.DefaultOptions()
	fs := flag.NewFlagSet("selfplay", flag.ExitOnError)
	games := fs.Int("games", def.Games, "Number of games")
	depthA := fs.Int("a", 1, "Depth of player A (-1 = random player)")
	depthB := fs.Int("b", 0, "Depth of player B (-1 = random player)")
	plies := fs.Int("plies", def.RandomPlies, "Random opening plies")
	seed := fs.Int64("seed", 0, "Opening seed (0 = random)")
	workers := fs.Int("workers", 0, "Parallel workers (0 = all CPUs)")
	transcript := fs.String("o", "", "Write all game transcripts to this file")
	quiet := fs.Bool("q", false, "No progress output")
	fs.Parse(args)

	factory := func(depth int, seed int64) match.PlayerFactory {
		if depth < 0 {
			return match.RandomFactory(seed)
		}
		return match.EngineFactory(depth)
	}

	opts := match.Options{
		Games:       *games,
		Workers:     *workers,
		RandomPlies: *plies,
		Seed:        *seed,
		KeepGames:   *transcript != "",
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var progress match.ProgressCallback
	if !*quiet {
		progress = func(p match.Progress) {
			fmt.Fprintf(os.Stderr, "\r%d/%d games (%.0f%%)  A %d  B %d  draws %d",
				p.GamesCompleted, p.GamesTotal, p.Percent, p.WinsA, p.WinsB, p.Draws)
		}
	}

	res, err := match.RunWithProgress(ctx, factory(*depthA, *seed), factory(*depthB, *seed+1), opts, progress)
	if !*quiet {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		fatal(err)
	}

	fmt.Printf("Games:   %d (seed %d)\n", res.Games, res.Seed)
	fmt.Printf("A wins:  %d\n", res.WinsA)
	fmt.Printf("B wins:  %d\n", res.WinsB)
	fmt.Printf("Draws:   %d\n", res.Draws)
	fmt.Printf("Score A: %.1f%%\n", res.ScoreA*100)
	fmt.Printf("Discs:   %+.2f ± %.2f (sd %.2f)\n", res.MeanDiscDiff, res.CI95, res.StdDevDiscDiff)
	fmt.Printf("Time:    %v\n", res.Duration.Round(time.Millisecond))

	if *transcript != "" {
		if err := writeTranscripts(*transcript, res.Records); err != nil {
			fatal(err)
		}
	}
}

func cmdReview(args []string) {
	fs := flag.NewFlagSet("review", flag.ExitOnError)
	file := fs.String("t", "", "Transcript file")
	depth := fs.Int("d", engine.DefaultDepth, "Review depth")
	fs.Parse(args)

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Error: transcript required")
		fmt.Fprintln(os.Stderr, "Usage: reversi review -t <file>")
		os.Exit(1)
	}

	f, err := os.Open(*file)
	if err != nil {
		fatal(err)
	}
	records, err := match.ReadTranscripts(f)
	f.Close()
	if err != nil {
		fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	for n, res := range records {
		review, err := match.ReviewGame(ctx, res, *depth)
		if err != nil {
			fatal(fmt.Errorf("game %d: %w", n+1, err))
		}

		fmt.Printf("Game %d (%s), depth %d\n", n+1, res.ID, review.Depth)
		for _, p := range review.Players {
			fmt.Printf("  %-5s %-8s moves %2d  loss %4d  per move %6.2f  ?? %d  ? %d  ?! %d\n",
				p.Stone, p.Face, p.Moves, p.TotalLoss, p.LossPerMove, p.Blunders, p.Errors, p.Doubtful)
		}
		for _, e := range review.Errors {
			fmt.Printf("  %3d. %-5s %s%-2s  best %s  (%d vs %d)\n",
				e.Ply, e.Stone, e.Played, e.Skill.Abbr(), e.Best, e.PlayedScore, e.BestScore)
		}
		fmt.Println()
	}
}
