package main

import (
	"context"
	"errors"
	"testing"

	"github.com/daystram/chessim/board"
)

func TestModes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tests := []struct {
		name    string
		run     func() error
		wantErr error
	}{
		{name: "movegen", run: func() error { return movegen(board.DefaultStartingPositionFEN, true) }},
		{name: "movegen invalid fen", run: func() error { return movegen("invalid", false) }, wantErr: board.ErrInvalidFEN},
		{name: "step", run: func() error { return step(board.DefaultStartingPositionFEN, 20, 1) }},
		{name: "search", run: func() error { return search(ctx, "4k3/3p4/8/8/3R4/8/8/4K3 w - - 0 1", 3, 2, 1, false) }},
		{name: "search lossy", run: func() error { return search(ctx, board.DefaultStartingPositionFEN, 2, 2, 1, true) }},
		{name: "perft", run: func() error { return perft(board.DefaultStartingPositionFEN, 2, true) }},
		{name: "perft invalid fen", run: func() error { return perft("invalid", 2, false) }, wantErr: board.ErrInvalidFEN},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.run()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatal("unexpected error:", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("unexpected error: got=%v want=%v", err, tt.wantErr)
			}
		})
	}
}

func TestServeUnknownSide(t *testing.T) {
	t.Parallel()
	if err := serve(context.Background(), "localhost:0", 1, "green", true); err == nil {
		t.Error("error expected: got=nil")
	}
}
