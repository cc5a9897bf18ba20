package match

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/yourusername/reversiengine/pkg/engine"
	"github.com/yourusername/reversiengine/pkg/game"
)

func playGreedy(t *testing.T, opts game.Options) *game.Result {
	t.Helper()
	a, _ := engine.NewEngine(engine.Options{Depth: 0})
	b, _ := engine.NewEngine(engine.Options{Depth: 1})
	res, err := game.Play(context.Background(), a, b, opts)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	return res
}

func TestTranscriptRoundTrip(t *testing.T) {
	res := playGreedy(t, game.Options{})

	var buf bytes.Buffer
	if err := WriteTranscript(&buf, res); err != nil {
		t.Fatalf("WriteTranscript: %v", err)
	}
	text := buf.String()
	if !strings.Contains(text, "; start: AAAAYAAJAAAA\n") || !strings.Contains(text, "\n1. c2 ") {
		t.Errorf("unexpected transcript:\n%s", text)
	}

	got, err := ReadTranscript(strings.NewReader(text))
	if err != nil {
		t.Fatalf("ReadTranscript: %v", err)
	}

	if got.ID != res.ID || got.BlackFace != res.BlackFace || got.WhiteFace != res.WhiteFace {
		t.Errorf("headers = %q %q %q", got.ID, got.BlackFace, got.WhiteFace)
	}
	if len(got.Moves) != len(res.Moves) {
		t.Fatalf("read %d moves, want %d", len(got.Moves), len(res.Moves))
	}
	for i := range res.Moves {
		if got.Moves[i] != res.Moves[i] {
			t.Errorf("ply %d = %+v, want %+v", i+1, got.Moves[i], res.Moves[i])
		}
	}
	if got.Final != res.Final || got.Winner != res.Winner {
		t.Error("final position differs")
	}
}

func TestTranscriptMultipleGames(t *testing.T) {
	first := playGreedy(t, game.Options{})
	second := playGreedy(t, game.Options{FirstToMove: engine.White})

	var buf bytes.Buffer
	if err := WriteTranscripts(&buf, []*game.Result{first, second}); err != nil {
		t.Fatal(err)
	}

	games, err := ReadTranscripts(&buf)
	if err != nil {
		t.Fatalf("ReadTranscripts: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("read %d games, want 2", len(games))
	}
	if games[1].FirstToMove != engine.White || games[1].Final != second.Final {
		t.Error("second game did not round trip")
	}

	var again bytes.Buffer
	WriteTranscripts(&again, []*game.Result{first, second})
	if _, err := ReadTranscript(&again); !errors.Is(err, ErrBadTranscript) {
		t.Errorf("two games through ReadTranscript: error = %v", err)
	}
}

func TestTranscriptWithPass(t *testing.T) {
	start, err := engine.ParseBoard(`
		O X . . . .
		. . . . . .
		. . . . . .
		. . . . . .
		. . . . . .
		. . . . . .`)
	if err != nil {
		t.Fatal(err)
	}

	text := fmt.Sprintf("; start: %s\n; first: black\n; result: 0-3\n1. pass c1\n", engine.BoardID(start))
	res, err := ReadTranscript(strings.NewReader(text))
	if err != nil {
		t.Fatalf("ReadTranscript: %v", err)
	}

	if len(res.Moves) != 2 || !res.Moves[0].Pass || res.Moves[1].Stone != engine.White {
		t.Errorf("moves = %+v", res.Moves)
	}
	if res.Moves[1].Flipped != 1 || res.Winner != engine.White {
		t.Errorf("flipped %d, winner %v", res.Moves[1].Flipped, res.Winner)
	}
}

func TestReadTranscriptRejects(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"illegal move", "1. a1 d2\n"},
		{"bad square", "1. z9\n"},
		{"skipped number", "1. c2 d2\n3. e4\n"},
		{"wrong result", "; result: 5-5\n1. c2\n"},
		{"malformed result", "; result: many\n"},
		{"bad start", "; start: ????????????\n"},
		{"bad first", "; first: red\n"},
		{"header after moves", "1. c2\n; black: x\n"},
		{"garbage", "hello\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadTranscript(strings.NewReader(tc.text))
			if !errors.Is(err, ErrBadTranscript) {
				t.Errorf("error = %v, want ErrBadTranscript", err)
			}
		})
	}

	_, err := ReadTranscript(strings.NewReader("1. a1\n"))
	if !errors.Is(err, engine.ErrIllegalMove) {
		t.Errorf("illegal move error = %v, want ErrIllegalMove", err)
	}
}
