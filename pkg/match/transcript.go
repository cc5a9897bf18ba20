package match

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/yourusername/reversiengine/pkg/engine"
	"github.com/yourusername/reversiengine/pkg/game"
)

// Transcript format:
//
//	; id: 5f0c...
//	; black: 👾
//	; white: 🎲
//	; start: AAAAYAAJAAAA
//	; first: black
//	; result: 26-10
//	1. c2 d2
//	2. e4 pass
//
// Each numbered line holds the first mover's turn and the reply. Games in a
// multi-game file are separated by blank lines.

// ErrBadTranscript is returned for transcripts that cannot be parsed
var ErrBadTranscript = errors.New("bad transcript")

var (
	headerRE  = regexp.MustCompile(`^;\s*(\w+)\s*:\s*(.*?)\s*$`)
	moveRowRE = regexp.MustCompile(`^(\d+)\.\s+(\S+)(?:\s+(\S+))?\s*$`)
	resultRE  = regexp.MustCompile(`^(\d+)-(\d+)$`)
)

// WriteTranscript writes one game
func WriteTranscript(w io.Writer, res *game.Result) error {
	bw := bufio.NewWriter(w)

	first := res.FirstToMove
	if first == engine.Empty {
		first = engine.Black
	}

	fmt.Fprintf(bw, "; id: %s\n", res.ID)
	fmt.Fprintf(bw, "; black: %s\n", res.BlackFace)
	fmt.Fprintf(bw, "; white: %s\n", res.WhiteFace)
	fmt.Fprintf(bw, "; start: %s\n", engine.BoardID(res.Start))
	fmt.Fprintf(bw, "; first: %s\n", first)
	fmt.Fprintf(bw, "; result: %d-%d\n", res.BlackCount, res.WhiteCount)

	for i := 0; i < len(res.Moves); i += 2 {
		fmt.Fprintf(bw, "%d. %s", i/2+1, res.Moves[i])
		if i+1 < len(res.Moves) {
			fmt.Fprintf(bw, " %s", res.Moves[i+1])
		}
		bw.WriteString("\n")
	}

	return bw.Flush()
}

// WriteTranscripts writes several games separated by blank lines
func WriteTranscripts(w io.Writer, results []*game.Result) error {
	for i, res := range results {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := WriteTranscript(w, res); err != nil {
			return err
		}
	}
	return nil
}

// ReadTranscript reads a single game. The moves are replayed through the
// legality oracle; an illegal move or a result header that disagrees with
// the replay is an error.
func ReadTranscript(r io.Reader) (*game.Result, error) {
	games, err := ReadTranscripts(r)
	if err != nil {
		return nil, err
	}
	if len(games) != 1 {
		return nil, fmt.Errorf("%w: found %d games, want 1", ErrBadTranscript, len(games))
	}
	return games[0], nil
}

// ReadTranscripts reads every game in r
func ReadTranscripts(r io.Reader) ([]*game.Result, error) {
	scanner := bufio.NewScanner(r)

	var (
		games   []*game.Result
		current *transcriptReader
		lineNo  int
	)

	flush := func() error {
		if current == nil {
			return nil
		}
		res, err := current.finish()
		if err != nil {
			return err
		}
		games = append(games, res)
		current = nil
		return nil
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}

		if current == nil {
			current = newTranscriptReader()
		}
		if err := current.parseLine(line); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return games, nil
}

// transcriptReader accumulates the lines of one game
type transcriptReader struct {
	res       *game.Result
	result    string
	nextRow   int
	seenMoves bool
	mover     engine.Stone
}

func newTranscriptReader() *transcriptReader {
	return &transcriptReader{
		res: &game.Result{
			Start:       engine.StartingPosition(),
			FirstToMove: engine.Black,
		},
		nextRow: 1,
	}
}

func (tr *transcriptReader) parseLine(line string) error {
	if m := headerRE.FindStringSubmatch(line); m != nil {
		if tr.seenMoves {
			return fmt.Errorf("%w: header after moves", ErrBadTranscript)
		}
		return tr.header(strings.ToLower(m[1]), m[2])
	}

	m := moveRowRE.FindStringSubmatch(line)
	if m == nil {
		return fmt.Errorf("%w: unrecognised line %q", ErrBadTranscript, line)
	}
	if !tr.seenMoves {
		tr.seenMoves = true
		tr.mover = tr.res.FirstToMove
	}

	n, _ := strconv.Atoi(m[1])
	if n != tr.nextRow {
		return fmt.Errorf("%w: move number %d, want %d", ErrBadTranscript, n, tr.nextRow)
	}
	tr.nextRow++

	for _, tok := range m[2:] {
		if tok == "" {
			continue
		}
		mv, ok, err := engine.ParseMove(tok)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBadTranscript, err)
		}
		tr.res.Moves = append(tr.res.Moves, game.Turn{Stone: tr.mover, Move: mv, Pass: !ok})
		tr.mover = tr.mover.Opponent()
	}
	return nil
}

func (tr *transcriptReader) header(key, value string) error {
	switch key {
	case "id":
		tr.res.ID = value
	case "black":
		tr.res.BlackFace = value
	case "white":
		tr.res.WhiteFace = value
	case "start":
		b, err := engine.BoardFromID(value)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBadTranscript, err)
		}
		tr.res.Start = b
	case "first":
		s, err := engine.ParseStone(value)
		if err != nil || !s.Valid() {
			return fmt.Errorf("%w: first mover %q", ErrBadTranscript, value)
		}
		tr.res.FirstToMove = s
	case "result":
		if !resultRE.MatchString(value) {
			return fmt.Errorf("%w: result %q", ErrBadTranscript, value)
		}
		tr.result = value
	}
	// Unknown headers are ignored
	return nil
}

func (tr *transcriptReader) finish() (*game.Result, error) {
	if err := tr.res.Rebuild(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadTranscript, err)
	}
	if tr.result != "" {
		got := fmt.Sprintf("%d-%d", tr.res.BlackCount, tr.res.WhiteCount)
		if got != tr.result {
			return nil, fmt.Errorf("%w: result header %s, replay gives %s", ErrBadTranscript, tr.result, got)
		}
	}
	return tr.res, nil
}
