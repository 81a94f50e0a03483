package uci

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func run(t *testing.T, input ...string) []string {
	t.Helper()
	var out bytes.Buffer
	i := NewInterface(strings.NewReader(strings.Join(input, "\n")+"\n"), &out)
	if err := i.Run(context.Background()); err != nil {
		t.Fatal("unexpected error:", err)
	}
	return strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
}

func contains(lines []string, want string) bool {
	for _, l := range lines {
		if l == want {
			return true
		}
	}
	return false
}

func TestInterface(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "handshake",
			input: []string{"uci", "isready"},
			want:  []string{"id name chessim", "uciok", "readyok"},
		},
		{
			name:  "position with moves",
			input: []string{"position startpos moves d2d3 e7e6", "d"},
			want:  []string{"Fen: rnbqkbnr/pppp1ppp/4p3/8/8/3P4/PPP1PPPP/RNBQKBNR w - - 0 1"},
		},
		{
			name:  "position from fen with moves",
			input: []string{"position fen 8/3p4/8/8/3R4/8/8/8 w - - 0 1 moves d4d7", "d"},
			want:  []string{"Fen: 8/3R4/8/8/8/8/8/8 b - - 0 1"},
		},
		{
			name:  "illegal move stops replay",
			input: []string{"position startpos moves d2d4 e7e6", "d"},
			want:  []string{"info string illegal move d2d4", "Fen: rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"},
		},
		{
			name:  "moves from square",
			input: []string{"position startpos", "moves b1"},
			want:  []string{"a3 c3"},
		},
		{
			name:  "moves for side to move",
			input: []string{"position fen 8/8/8/8/8/8/8/kK6 w - - 0 1", "moves"},
			want:  []string{"b1b2 b1c2 b1c1 b1a1 b1a2"},
		},
		{
			name: "search takes the queen",
			input: []string{
				"setoption name Seed value 1",
				"position fen 3q4/8/8/8/3R4/8/8/4K2k w - - 0 1",
				"go depth 1",
			},
			want: []string{"bestmove d4d8"},
		},
		{
			name: "search with configured depth",
			input: []string{
				"setoption name Depth value 1",
				"position fen 3q4/8/8/8/3R4/8/8/4K2k w - - 0 1",
				"go",
			},
			want: []string{"bestmove d4d8"},
		},
		{
			name:  "search without moves",
			input: []string{"position fen 7K/8/8/8/8/8/pp6/kp6 b - - 0 1", "go depth 2"},
			want:  []string{"bestmove 0000"},
		},
		{
			name:  "perft",
			input: []string{"setoption name Depth value 1", "go perft 2"},
			want:  []string{"a2a3: 12"},
		},
		{
			name:  "unknown command",
			input: []string{"castle"},
			want:  []string{"info string unknown command: castle"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := run(t, tt.input...)
			for _, w := range tt.want {
				if !contains(got, w) {
					t.Errorf("missing output line: want=%q got=%q", w, got)
				}
			}
		})
	}
}

func TestInterfaceSearchReportsInfo(t *testing.T) {
	t.Parallel()
	got := run(t, "position fen 3q4/8/8/8/3R4/8/8/4K2k w - - 0 1", "go depth 1")
	var info string
	for _, l := range got {
		if strings.HasPrefix(l, "info depth 1 ") {
			info = l
		}
	}
	if !strings.Contains(info, "score cp 2400") || !strings.HasSuffix(info, "pv d4d8") {
		t.Errorf("unexpected info line: got=%q", info)
	}
}

func TestInterfacePerftSummary(t *testing.T) {
	t.Parallel()
	got := run(t, "go perft 1")
	last := got[len(got)-1]
	if !strings.HasPrefix(last, "d=1 nodes=12 ") {
		t.Errorf("unexpected summary: got=%q", last)
	}
}

func TestInterfaceQuit(t *testing.T) {
	t.Parallel()
	got := run(t, "quit", "uci")
	if contains(got, "uciok") {
		t.Errorf("command handled after quit: got=%q", got)
	}
}
