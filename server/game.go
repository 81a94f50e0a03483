package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/daystram/chessim/board"
	"github.com/daystram/chessim/engine"
	"github.com/daystram/chessim/position"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrIllegalMove  = errors.New("illegal move")
	ErrNotYourTurn  = errors.New("not your turn")
	ErrGameOver     = errors.New("game is over")
)

// Game is one board played between a human and the engine. All access goes
// through the game's mutex, so an engine reply never overlaps a human move.
type Game struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	updatedAt time.Time
	board     *board.Board
	turn      board.Side
	human     board.Side
	engine    *engine.Engine
	hub       *Hub
}

// Snapshot is the read-only view of a game handed to clients.
type Snapshot struct {
	ID        string                            `json:"id"`
	Board     [board.Height][board.Width]string `json:"board"`
	Turn      string                            `json:"turn"`
	Human     string                            `json:"human"`
	LastMove  string                            `json:"last_move,omitempty"`
	Material  int                               `json:"material"`
	State     string                            `json:"state"`
	FEN       string                            `json:"fen"`
	UpdatedAt time.Time                         `json:"updated_at"`
}

func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot()
}

func (g *Game) snapshot() Snapshot {
	s := Snapshot{
		ID:        g.ID,
		Turn:      strings.ToLower(g.turn.String()),
		Human:     strings.ToLower(g.human.String()),
		Material:  g.board.MaterialScore(board.SideWhite),
		State:     g.board.State(g.turn).String(),
		FEN:       g.board.FEN(g.turn),
		UpdatedAt: g.updatedAt,
	}
	for y, row := range g.board.Snapshot() {
		for x, c := range row {
			s.Board[y][x] = c.String()
		}
	}
	if mv := g.board.LastMove(); !mv.IsNull() {
		s.LastMove = mv.UCI()
	}
	return s
}

func (g *Game) Destinations(from position.Pos) []position.Pos {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.DestinationsFrom(from)
}

// Play applies the human move mv and, with autoReply set, lets the engine
// answer. Watchers receive a snapshot after each of the two moves. If the
// engine reply fails the human move is taken back, leaving the game as it
// was before the call.
func (g *Game) Play(ctx context.Context, mv board.Move, autoReply bool) (Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.board.State(g.turn).IsRunning() {
		return Snapshot{}, ErrGameOver
	}
	if g.turn != g.human {
		return Snapshot{}, ErrNotYourTurn
	}
	if _, s, ok := g.board.Occupant(mv.From); !ok || s != g.turn {
		return Snapshot{}, fmt.Errorf("%w: no %s piece on %s", ErrIllegalMove, g.turn, mv.From)
	}
	prev := g.board.LastMove()
	if !g.board.ApplyRecorded(&mv) {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrIllegalMove, mv)
	}
	g.turn = g.turn.Opposite()
	g.touch()

	if autoReply {
		if err := g.reply(ctx); err != nil {
			g.board.Unapply(mv)
			g.board.SetLastMove(prev)
			g.turn = g.turn.Opposite()
			g.touch()
			return Snapshot{}, err
		}
	}
	return g.snapshot(), nil
}

// Reply makes the engine play its move. It fails when the game is over or
// the human is to move.
func (g *Game) Reply(ctx context.Context) (Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.board.State(g.turn).IsRunning() {
		return Snapshot{}, ErrGameOver
	}
	if g.turn == g.human {
		return Snapshot{}, fmt.Errorf("%w: %s to move", ErrNotYourTurn, g.human)
	}
	if err := g.reply(ctx); err != nil {
		return Snapshot{}, err
	}
	return g.snapshot(), nil
}

// open lets the engine move first when it holds the side to move.
func (g *Game) open(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.reply(ctx)
}

func (g *Game) reply(ctx context.Context) error {
	if g.turn == g.human || !g.board.State(g.turn).IsRunning() {
		return nil
	}
	turn, err := g.engine.OpponentsTurn(ctx, g.board, g.turn)
	switch {
	case errors.Is(err, engine.ErrNoMove):
	case err != nil:
		return err
	}
	g.turn = turn
	g.touch()
	return nil
}

// touch stamps the game and pushes the new state to watchers, if any.
func (g *Game) touch() {
	g.updatedAt = time.Now()
	if !g.hub.HasClients() {
		return
	}
	g.hub.Broadcast(wsMessage{Type: "snapshot", Payload: mustMarshal(g.snapshot())})
}
