package bench

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/daystram/chessim/board"
)

// Result holds the leaf counts of a perft run. Captures count every leaf move
// landing on an occupied square, PawnCaptures the straight-ahead pawn captures
// among them and KingCaptures those taking a king.
type Result struct {
	Nodes        uint64
	Captures     uint64
	PawnCaptures uint64
	KingCaptures uint64
}

type counters struct {
	nodes, cap, pcap, kcap atomic.Uint64
}

func (c *counters) result() Result {
	return Result{
		Nodes:        c.nodes.Load(),
		Captures:     c.cap.Load(),
		PawnCaptures: c.pcap.Load(),
		KingCaptures: c.kcap.Load(),
	}
}

// tally records mv as a leaf move. mv must not be applied yet.
func (c *counters) tally(b *board.Board, mv board.Move) {
	c.nodes.Add(1)
	target := b.Cell(mv.To)
	if target.IsEmpty() {
		return
	}
	c.cap.Add(1)
	if b.Cell(mv.From).Piece == board.PiecePawn {
		c.pcap.Add(1)
	}
	if target.Piece == board.PieceKing {
		c.kcap.Add(1)
	}
}

// Perft counts the pseudo-legal move tree of the given depth from fen, with
// the side to move taken from the FEN. With verbose set, the subtree size of
// every root move is sent to out before the summary line.
func Perft(depth int, fen string, parallel, verbose bool, out chan string) (Result, error) {
	b, turn, err := board.NewBoard(
		board.WithFEN(fen),
	)
	if err != nil {
		return Result{}, err
	}

	var run perftFunc
	if parallel {
		run = runPerftParallel
	} else {
		run = runPerft
	}

	var c counters
	start := time.Now()
	run(b, depth, turn, verbose, out, &c)
	elapsed := time.Since(start)

	res := c.result()
	if out != nil {
		out <- message.NewPrinter(language.English).
			Sprintf("d=%d nodes=%d rate=%dn/s cap=%d pcap=%d kcap=%d (%.3fs elapsed)",
				depth, res.Nodes, int(float64(res.Nodes)/(elapsed.Seconds()+1e-9)), res.Captures, res.PawnCaptures, res.KingCaptures, elapsed.Seconds())
	}
	return res, nil
}

type perftFunc func(b *board.Board, d int, s board.Side, verbose bool, out chan string, c *counters) uint64

func runPerft(b *board.Board, d int, s board.Side, verbose bool, out chan string, c *counters) uint64 {
	if d == 0 {
		c.nodes.Add(1)
		return 1
	}

	var sum uint64
	for _, mv := range b.Moves(s) {
		child := perftChild(b, d, s, mv, c)
		if verbose && out != nil {
			out <- fmt.Sprintf("%s: %d", mv.UCI(), child)
		}
		sum += child
	}
	return sum
}

func runPerftParallel(b *board.Board, d int, s board.Side, verbose bool, out chan string, c *counters) uint64 {
	if d == 0 {
		c.nodes.Add(1)
		return 1
	}

	var sum atomic.Uint64
	var wg sync.WaitGroup
	for _, mv := range b.Moves(s) {
		mv := mv
		wg.Add(1)
		go func() {
			defer wg.Done()
			child := perftChild(b.Clone(), d, s, mv, c)
			if verbose && out != nil {
				out <- fmt.Sprintf("%s: %d", mv.UCI(), child)
			}
			sum.Add(child)
		}()
	}
	wg.Wait()
	return sum.Load()
}

// perftChild counts the subtree below mv, leaving b as it was.
func perftChild(b *board.Board, d int, s board.Side, mv board.Move, c *counters) uint64 {
	if d == 1 {
		c.tally(b, mv)
		return 1
	}
	if !b.ApplyRecorded(&mv) {
		return 0
	}
	child := runPerft(b, d-1, s.Opposite(), false, nil, c)
	b.Unapply(mv)
	return child
}
