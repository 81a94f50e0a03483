package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/daystram/chessim/board"
	"github.com/daystram/chessim/position"
)

const (
	DefaultDepth uint8 = 10
)

var (
	ErrNoMove = errors.New("cannot resolve best move")
)

func DefaultLogger(a ...any) {
	fmt.Println(a...)
}

// RatedMove is a move together with the rating of the line it leads to.
type RatedMove struct {
	From, To position.Pos
	Rating   int
}

func (m RatedMove) Move() board.Move {
	return board.Move{From: m.From, To: m.To}
}

func (m RatedMove) String() string {
	return fmt.Sprintf("%s (%d)", m.Move().UCI(), m.Rating)
}

// Stats are the diagnostics of a single search invocation.
type Stats struct {
	EvaluatedMoves uint64
	Calls          uint64
	Elapsed        time.Duration
}

type EngineConfig struct {
	// Depth is the number of plies searched by OpponentsTurn, DefaultDepth when zero.
	Depth uint8

	// Rand breaks ties between equally rated moves. Seeded from the clock when nil.
	Rand *rand.Rand

	// LossyUndo reverts explored moves by playing them backwards through
	// board.Undo instead of restoring the captured piece.
	LossyUndo bool

	Debug  bool
	Logger func(...any)
}

// Engine picks moves with a fixed-depth minimax search. An Engine is not safe
// for concurrent use; keep one per game.
type Engine struct {
	depth     uint8
	rand      *rand.Rand
	lossyUndo bool
	debug     bool
	logger    func(...any)
}

func NewEngine(cfg *EngineConfig) *Engine {
	if cfg.Logger == nil {
		cfg.Logger = DefaultLogger
	}
	if cfg.Depth == 0 {
		cfg.Depth = DefaultDepth
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(NewPseudoRand(time.Now().UnixNano()))
	}

	return &Engine{
		depth:     cfg.Depth,
		rand:      cfg.Rand,
		lossyUndo: cfg.LossyUndo,
		debug:     cfg.Debug,
		logger:    cfg.Logger,
	}
}

func (e *Engine) Depth() uint8 {
	return e.depth
}

// OpponentsTurn searches for s on a clone of b, plays the chosen move on b and
// returns the side to move next. The board's recorded last move is consumed.
// ErrNoMove is returned together with the next side when the chosen move
// could not be applied, which happens when s has no moves.
func (e *Engine) OpponentsTurn(ctx context.Context, b *board.Board, s board.Side) (board.Side, error) {
	sandbox := b.Clone()
	best, stats, err := e.Search(ctx, sandbox, e.depth, b.LastMove(), s)
	if err != nil {
		return s, err
	}
	e.Report(s, e.depth, best, stats)

	_ = b.TakeLastMove()
	if !b.Apply(best.Move()) {
		return s.Opposite(), fmt.Errorf("%w: %s cannot play %s", ErrNoMove, s, best.Move())
	}
	return s.Opposite(), nil
}

// Search explores depth plies from b with s to move and returns the best
// move for s. At depth 0 the rating of lastMove is returned instead. b is
// mutated while searching and restored afterwards unless LossyUndo is set.
func (e *Engine) Search(ctx context.Context, b *board.Board, depth uint8, lastMove board.Move, s board.Side) (RatedMove, Stats, error) {
	sr := &searcher{
		ctx:       ctx,
		b:         b,
		rand:      e.rand,
		lossyUndo: e.lossyUndo,
	}
	start := time.Now()
	best, err := sr.minimax(depth, lastMove, s)
	sr.stats.Elapsed = time.Since(start)
	if err != nil {
		return RatedMove{}, sr.stats, err
	}
	return best, sr.stats, nil
}

type searcher struct {
	ctx       context.Context
	b         *board.Board
	rand      *rand.Rand
	lossyUndo bool
	stats     Stats
}

func (sr *searcher) minimax(depth uint8, lastMove board.Move, s board.Side) (RatedMove, error) {
	sr.stats.Calls++

	if err := sr.ctx.Err(); err != nil {
		return RatedMove{}, err
	}

	// check if leaf reached
	if depth == 0 {
		sr.stats.EvaluatedMoves++
		return RatedMove{
			From:   lastMove.From,
			To:     lastMove.To,
			Rating: evaluate(sr.b, s),
		}, nil
	}

	mvs := sr.b.Moves(s)
	if len(mvs) == 0 {
		return RatedMove{}, nil
	}

	rated := make([]RatedMove, 0, len(mvs))
	for _, mv := range mvs {
		child, err := sr.explore(depth, mv, s)
		if err != nil {
			return RatedMove{}, err
		}
		rated = append(rated, RatedMove{
			From:   mv.From,
			To:     mv.To,
			Rating: child.Rating,
		})
	}
	return selectBest(sr.rand, rated, s), nil
}

// explore plays mv, searches the reply and takes mv back.
func (sr *searcher) explore(depth uint8, mv board.Move, s board.Side) (RatedMove, error) {
	if sr.lossyUndo {
		sr.b.Apply(mv)
		child, err := sr.minimax(depth-1, mv, s.Opposite())
		sr.b.Undo(mv)
		return child, err
	}

	ok := sr.b.ApplyRecorded(&mv)
	child, err := sr.minimax(depth-1, mv, s.Opposite())
	if ok {
		sr.b.Unapply(mv)
	}
	return child, err
}

// Report logs the outcome of a search of the given depth for side s.
func (e *Engine) Report(s board.Side, depth uint8, best RatedMove, stats Stats) {
	if e.debug {
		e.logger(message.NewPrinter(language.English).
			Sprintf("side:%s depth:%d best:%s evaluated:%d calls:%d (%.0fn/s) t:%s",
				s, depth, best, stats.EvaluatedMoves, stats.Calls, float64(stats.Calls)/((stats.Elapsed + 1).Seconds()), stats.Elapsed))
		return
	}
	e.logger(fmt.Sprintf("info depth %d score cp %d time %d nodes %d calls %d pv %s",
		depth, best.Rating, stats.Elapsed.Milliseconds(), stats.EvaluatedMoves, stats.Calls, best.Move().UCI()))
}
