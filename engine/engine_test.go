package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/daystram/chessim/board"
)

func newTestEngine(depth uint8, lossy bool, logs *[]string) *Engine {
	return NewEngine(&EngineConfig{
		Depth:     depth,
		Rand:      rand.New(NewPseudoRand(42)),
		LossyUndo: lossy,
		Logger: func(a ...any) {
			if logs != nil {
				*logs = append(*logs, fmt.Sprint(a...))
			}
		},
	})
}

func mustBoard(t *testing.T, fen string) *board.Board {
	t.Helper()
	b, _, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	return b
}

func mustMove(t *testing.T, s string) board.Move {
	t.Helper()
	mv, err := board.NewMoveFromUCI(s)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	return mv
}

func TestNewEngineDefaults(t *testing.T) {
	t.Parallel()
	e := NewEngine(&EngineConfig{})
	if e.Depth() != DefaultDepth {
		t.Errorf("unexpected depth: got=%d want=%d", e.Depth(), DefaultDepth)
	}
	if e.rand == nil || e.logger == nil {
		t.Error("defaults not filled in")
	}
}

func TestSearchDepthZero(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		fen      string
		lastMove string
		side     board.Side
	}{
		{name: "lone white pawn, white", fen: "8/8/8/8/8/8/3P4/8 w - - 0 1", lastMove: "d2d3", side: board.SideWhite},
		{name: "lone white pawn, black", fen: "8/8/8/8/8/8/3P4/8 w - - 0 1", lastMove: "d2d3", side: board.SideBlack},
		{name: "uneven material", fen: "4k3/3pp3/8/8/8/8/8/3QK3 b - - 0 1", lastMove: "e1f2", side: board.SideWhite},
		{name: "starting position", fen: board.DefaultStartingPositionFEN, lastMove: "g1f3", side: board.SideBlack},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := mustBoard(t, tt.fen)
			last := mustMove(t, tt.lastMove)

			got, stats, err := newTestEngine(0, false, nil).Search(context.Background(), b, 0, last, tt.side)
			if err != nil {
				t.Fatal("unexpected error:", err)
			}
			if want := -b.MaterialScore(tt.side); got.Rating != want {
				t.Errorf("unexpected rating: got=%d want=%d", got.Rating, want)
			}
			if !got.Move().Equals(last) {
				t.Errorf("unexpected move: got=%s want=%s", got.Move(), last)
			}
			if stats.Calls != 1 || stats.EvaluatedMoves != 1 {
				t.Errorf("unexpected stats: got=%+v want=1 call and 1 evaluation", stats)
			}
		})
	}
}

func TestSearchStats(t *testing.T) {
	t.Parallel()
	b := mustBoard(t, board.DefaultStartingPositionFEN)
	e := newTestEngine(2, false, nil)

	_, stats, err := e.Search(context.Background(), b, 1, board.Move{}, board.SideWhite)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if stats.EvaluatedMoves != 12 || stats.Calls != 13 {
		t.Errorf("unexpected stats: got=%+v want=12 evaluations and 13 calls", stats)
	}

	// counters start over on every invocation
	_, stats, err = e.Search(context.Background(), b, 2, board.Move{}, board.SideWhite)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if stats.EvaluatedMoves != 144 || stats.Calls != 1+12+144 {
		t.Errorf("unexpected stats: got=%+v want=144 evaluations and 157 calls", stats)
	}
}

func TestSearchPrefersCapture(t *testing.T) {
	t.Parallel()
	b := mustBoard(t, "3q4/8/8/8/3R4/8/8/4K2k w - - 0 1")

	got, _, err := newTestEngine(1, false, nil).Search(context.Background(), b, 1, board.Move{}, board.SideWhite)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	// (400+1000+1000) * (2-1)
	if got.Move().UCI() != "d4d8" || got.Rating != 2400 {
		t.Errorf("unexpected best move: got=%s want=d4d8 (2400)", got)
	}
}

func TestSearchRestoresBoard(t *testing.T) {
	t.Parallel()
	fens := []string{
		board.DefaultStartingPositionFEN,
		"r3k2r/1bppqppp/p1n2n2/2b1p3/B3P3/2NP1N2/1PP2PPP/R1BQ1RK1 b - - 0 1",
		"8/3p4/8/8/3R4/8/8/8 w - - 0 1",
	}
	for _, fen := range fens {
		b := mustBoard(t, fen)
		before := b.Clone()
		for _, s := range []board.Side{board.SideWhite, board.SideBlack} {
			if _, _, err := newTestEngine(3, false, nil).Search(context.Background(), b, 3, board.Move{}, s); err != nil {
				t.Fatal("unexpected error:", err)
			}
			if !b.Equals(before) {
				t.Fatalf("%s: board changed by %s search:\n%s", fen, s, b.Dump())
			}
		}
	}
}

func TestSearchLossyUndoLeaksPawnMoves(t *testing.T) {
	t.Parallel()
	b := mustBoard(t, board.DefaultStartingPositionFEN)
	before := b.Clone()

	if _, _, err := newTestEngine(1, true, nil).Search(context.Background(), b, 1, board.Move{}, board.SideWhite); err != nil {
		t.Fatal("unexpected error:", err)
	}
	if b.Equals(before) {
		t.Error("expected pawn moves to remain on the board")
	}
	if got := b.Count(board.SideWhite, board.PiecePawn); got != 8 {
		t.Errorf("unexpected white pawns: got=%d want=8", got)
	}
}

func TestSearchCancelled(t *testing.T) {
	t.Parallel()
	b := mustBoard(t, board.DefaultStartingPositionFEN)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := newTestEngine(3, false, nil)
	if _, _, err := e.Search(ctx, b, 3, board.Move{}, board.SideWhite); !errors.Is(err, context.Canceled) {
		t.Errorf("unexpected error: got=%v want=%v", err, context.Canceled)
	}
	turn, err := e.OpponentsTurn(ctx, b, board.SideWhite)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("unexpected error: got=%v want=%v", err, context.Canceled)
	}
	if turn != board.SideWhite {
		t.Errorf("unexpected turn: got=%s want=%s", turn, board.SideWhite)
	}
}

func TestOpponentsTurn(t *testing.T) {
	t.Parallel()
	var logs []string
	b := mustBoard(t, board.DefaultStartingPositionFEN)
	start := b.Clone()
	b.Apply(mustMove(t, "e2e3"))

	turn, err := newTestEngine(2, false, &logs).OpponentsTurn(context.Background(), b, board.SideBlack)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if turn != board.SideWhite {
		t.Errorf("unexpected turn: got=%s want=%s", turn, board.SideWhite)
	}

	played := b.LastMove()
	if played.IsNull() {
		t.Fatal("no move recorded")
	}
	if _, s, ok := b.Occupant(played.To); !ok || s != board.SideBlack {
		t.Errorf("unexpected occupant on %s: got=%s", played.To, s)
	}
	if _, _, ok := start.Occupant(played.From); !ok {
		t.Errorf("move played from empty square %s", played.From)
	}
	if len(logs) != 1 || !strings.HasPrefix(logs[0], "info depth 2 ") {
		t.Errorf("unexpected logs: got=%q", logs)
	}
}

func TestOpponentsTurnNoMoves(t *testing.T) {
	t.Parallel()
	b := mustBoard(t, "7K/8/8/8/8/8/pp6/kp6 b - - 0 1")
	before := b.Clone()

	turn, err := newTestEngine(2, false, nil).OpponentsTurn(context.Background(), b, board.SideBlack)
	if !errors.Is(err, ErrNoMove) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrNoMove)
	}
	if turn != board.SideWhite {
		t.Errorf("unexpected turn: got=%s want=%s", turn, board.SideWhite)
	}
	if !b.Equals(before) {
		t.Errorf("board changed:\n%s", b.Dump())
	}
}

func TestSelectBest(t *testing.T) {
	t.Parallel()
	mvs := []RatedMove{
		{From: 48, To: 40, Rating: 3},
		{From: 49, To: 41, Rating: 7},
		{From: 50, To: 42, Rating: 7},
		{From: 51, To: 43, Rating: -2},
		{From: 52, To: 44, Rating: 1},
	}
	tests := []struct {
		name string
		mvs  []RatedMove
		side board.Side
		want int
	}{
		{name: "white maximizes", mvs: mvs, side: board.SideWhite, want: 7},
		{name: "black minimizes", mvs: mvs, side: board.SideBlack, want: -2},
		{name: "single candidate", mvs: mvs[:1], side: board.SideBlack, want: 3},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := rand.New(NewPseudoRand(7))
			for i := 0; i < 20; i++ {
				if got := selectBest(r, tt.mvs, tt.side); got.Rating != tt.want {
					t.Fatalf("unexpected rating: got=%d want=%d", got.Rating, tt.want)
				}
			}
		})
	}
}

func TestSelectBestTieBreakIsRandom(t *testing.T) {
	t.Parallel()
	mvs := []RatedMove{
		{From: 48, To: 40},
		{From: 49, To: 41},
		{From: 50, To: 42},
		{From: 51, To: 43},
	}
	r := rand.New(NewPseudoRand(1))
	seen := map[RatedMove]bool{}
	for i := 0; i < 200; i++ {
		seen[selectBest(r, mvs, board.SideWhite)] = true
	}
	if len(seen) != len(mvs) {
		t.Errorf("unexpected distinct picks: got=%d want=%d", len(seen), len(mvs))
	}
}
