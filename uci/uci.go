package uci

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"sync"

	"github.com/daystram/chessim/bench"
	"github.com/daystram/chessim/board"
	"github.com/daystram/chessim/engine"
	"github.com/daystram/chessim/position"
)

var (
	EngineName   = "chessim"
	EngineAuthor = "Danny August Ramaputra"

	defaultOptions = options{
		debug:         false,
		depth:         engine.DefaultDepth,
		lossyUndo:     false,
		parallelPerft: true,
	}
)

const (
	maxDepth = 32
)

type options struct {
	debug         bool
	depth         uint8
	lossyUndo     bool
	seed          *int64
	parallelPerft bool
}

// Interface speaks a UCI-like line protocol. Searches run in the background
// on a copy of the current position, one at a time.
type Interface struct {
	in  io.Reader
	out io.Writer

	board   *board.Board
	turn    board.Side
	engine  *engine.Engine
	options options

	outMu sync.Mutex

	mu            sync.Mutex
	engineRunning bool
	engineCancel  context.CancelFunc
	wg            sync.WaitGroup
}

func NewInterface(in io.Reader, out io.Writer) *Interface {
	return &Interface{
		in:      in,
		out:     out,
		options: defaultOptions,
	}
}

// Run processes commands until quit or the end of input. A search still
// running when the input ends is waited for, quit cancels it instead.
func (i *Interface) Run(ctx context.Context) error {
	i.reset(ctx)

	scanner := bufio.NewScanner(i.in)
	for scanner.Scan() {
		cmd := strings.TrimSpace(scanner.Text())
		if cmd == "" {
			continue
		}

		switch args := strings.Fields(cmd); args[0] {
		case "uci":
			i.commandUCI(ctx)
		case "ucinewgame":
			i.reset(ctx)
		case "isready":
			i.commandReady(ctx)
		case "setoption":
			i.commandSetOption(ctx, args[1:])
		case "position":
			i.commandPosition(ctx, args[1:])
		case "d":
			i.commandDraw(ctx)
		case "moves":
			i.commandMoves(ctx, args[1:])
		case "go":
			i.commandGo(ctx, args[1:])
		case "stop":
			i.commandStop(ctx)
		case "quit":
			i.commandStop(ctx)
			i.wg.Wait()
			return nil
		default:
			i.println(fmt.Sprintf("info string unknown command: %s", args[0]))
		}
	}
	i.wg.Wait()
	return scanner.Err()
}

func (i *Interface) commandUCI(_ context.Context) {
	i.println(fmt.Sprintf("id name %s", EngineName))
	i.println(fmt.Sprintf("id author %s", EngineAuthor))
	i.println(fmt.Sprintf("option name Debug type check default %v", defaultOptions.debug))
	i.println(fmt.Sprintf("option name Depth type spin default %d min 1 max %d", defaultOptions.depth, maxDepth))
	i.println("option name Seed type string default <empty>")
	i.println(fmt.Sprintf("option name LossyUndo type check default %v", defaultOptions.lossyUndo))
	i.println("uciok")
}

func (i *Interface) commandReady(_ context.Context) {
	if i.board != nil && i.engine != nil {
		i.println("readyok")
	}
}

func (i *Interface) commandSetOption(ctx context.Context, args []string) {
	if len(args) < 4 || args[0] != "name" || args[2] != "value" {
		return
	}
	switch name, valueStr := strings.ToLower(args[1]), args[3]; name {
	case "debug":
		value, err := strconv.ParseBool(valueStr)
		if err != nil {
			return
		}
		i.options.debug = value
	case "depth":
		value, err := strconv.ParseUint(valueStr, 10, 8)
		if err != nil || value < 1 || value > maxDepth {
			return
		}
		i.options.depth = uint8(value)
	case "seed":
		value, err := strconv.ParseInt(valueStr, 10, 64)
		if err != nil {
			return
		}
		i.options.seed = &value
	case "lossyundo":
		value, err := strconv.ParseBool(valueStr)
		if err != nil {
			return
		}
		i.options.lossyUndo = value
	default:
		return
	}
	i.resetEngine(ctx)
}

func (i *Interface) commandPosition(_ context.Context, args []string) {
	if i.isRunning() || len(args) == 0 {
		return
	}

	var fen string
	var mvs []string
	switch args[0] {
	case "fen":
		fields := args[1:]
		for n, f := range fields {
			if f == "moves" {
				fields, mvs = args[1:n+1], args[n+2:]
				break
			}
		}
		fen = strings.Join(fields, " ")
	case "startpos":
		fen = board.DefaultStartingPositionFEN
		if len(args) > 1 && args[1] == "moves" {
			mvs = args[2:]
		}
	default:
		return
	}

	b, turn, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		i.println(fmt.Sprintf("info string %s", err))
		return
	}
	for _, s := range mvs {
		if err := play(b, turn, s); err != nil {
			i.println(fmt.Sprintf("info string %s", err))
			break
		}
		turn = turn.Opposite()
	}
	i.board, i.turn = b, turn
}

// play applies the coordinate move s for side turn.
func play(b *board.Board, turn board.Side, s string) error {
	mv, err := board.NewMoveFromUCI(s)
	if err != nil {
		return err
	}
	if _, side, ok := b.Occupant(mv.From); !ok || side != turn {
		return fmt.Errorf("illegal move %s: no %s piece on %s", s, turn, mv.From)
	}
	if !b.Apply(mv) {
		return fmt.Errorf("illegal move %s", s)
	}
	return nil
}

func (i *Interface) commandDraw(_ context.Context) {
	i.println(i.board.Draw())
	i.println(fmt.Sprintf("Fen: %s", i.board.FEN(i.turn)))
}

func (i *Interface) commandMoves(_ context.Context, args []string) {
	var ns []string
	if len(args) > 0 {
		from, err := position.NewPosFromNotation(args[0])
		if err != nil {
			i.println(fmt.Sprintf("info string %s", err))
			return
		}
		for _, to := range i.board.DestinationsFrom(from) {
			ns = append(ns, to.Notation())
		}
	} else {
		for _, mv := range i.board.Moves(i.turn) {
			ns = append(ns, mv.UCI())
		}
	}
	i.println(strings.Join(ns, " "))
}

func (i *Interface) commandGo(ctx context.Context, args []string) {
	depth := i.options.depth
	if len(args) > 0 {
		switch mode := args[0]; mode {
		case "perft":
			if len(args) != 2 {
				return
			}
			d, err := strconv.Atoi(args[1])
			if err != nil || d < 0 {
				return
			}
			i.commandPerft(ctx, d)
			return

		case "depth":
			if len(args) != 2 {
				return
			}
			d, err := strconv.ParseUint(args[1], 10, 8)
			if err != nil || d < 1 || d > maxDepth {
				return
			}
			depth = uint8(d)
		}
	}

	i.mu.Lock()
	if i.engineRunning {
		i.mu.Unlock()
		return
	}
	engineCtx, engineCancel := context.WithCancel(ctx)
	i.engineRunning, i.engineCancel = true, engineCancel
	i.mu.Unlock()

	sandbox, turn, e := i.board.Clone(), i.turn, i.engine
	i.wg.Add(1)
	go func() {
		defer i.wg.Done()
		defer func() {
			i.mu.Lock()
			i.engineRunning = false
			i.mu.Unlock()
			engineCancel()
		}()

		best, stats, err := e.Search(engineCtx, sandbox, depth, sandbox.LastMove(), turn)
		switch {
		case errors.Is(err, context.Canceled):
			i.println("bestmove 0000")
			return
		case err != nil:
			i.println(fmt.Sprintf("info string %s", err))
			i.println("bestmove 0000")
			return
		}
		e.Report(turn, depth, best, stats)

		mv := best.Move()
		if mv.IsNull() {
			i.println("bestmove 0000")
			return
		}
		i.println(fmt.Sprintf("bestmove %s", mv.UCI()))
	}()
}

func (i *Interface) commandPerft(_ context.Context, depth int) {
	out := make(chan string, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for s := range out {
			i.println(s)
		}
	}()

	_, err := bench.Perft(depth, i.board.FEN(i.turn), i.options.parallelPerft, true, out)
	close(out)
	<-done
	if err != nil {
		i.println(fmt.Sprintf("info string %s", err))
	}
}

func (i *Interface) commandStop(_ context.Context) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.engineRunning {
		i.engineCancel()
	}
}

func (i *Interface) isRunning() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.engineRunning
}

func (i *Interface) reset(ctx context.Context) {
	i.commandStop(ctx)
	i.wg.Wait()
	i.commandPosition(ctx, []string{"startpos"})
	i.resetEngine(ctx)
}

func (i *Interface) resetEngine(_ context.Context) {
	cfg := &engine.EngineConfig{
		Depth:     i.options.depth,
		LossyUndo: i.options.lossyUndo,
		Debug:     i.options.debug,
		Logger:    i.println,
	}
	if i.options.seed != nil {
		cfg.Rand = rand.New(engine.NewPseudoRand(*i.options.seed))
	}
	i.engine = engine.NewEngine(cfg)
}

func (i *Interface) println(a ...any) {
	i.outMu.Lock()
	defer i.outMu.Unlock()
	fmt.Fprintln(i.out, a...)
}
