package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/daystram/chessim/board"
	"github.com/daystram/chessim/server"
)

const (
	exitOK  = 0
	exitErr = 1
)

var (
	profile = flag.Bool("profile", false, "serve pprof endpoint")

	movegenRun  = flag.Bool("movegen", false, "run movegen mode")
	movegenDraw = flag.Bool("movegen.draw", false, "draw applied moves in movegen mode")

	stepRun   = flag.Bool("step", false, "run step mode")
	stepCount = flag.Int("step.count", 5000, "maximum random moves in step mode")
	stepSeed  = flag.Int64("step.seed", 1, "random seed in step mode")

	searchRun   = flag.Bool("search", false, "run self-play search mode")
	searchSteps = flag.Int("search.steps", 50, "maximum moves per side in search mode")
	searchDepth = flag.Uint("search.depth", 3, "search depth in search mode")
	searchSeed  = flag.Int64("search.seed", 0, "tie-break seed in search mode, 0 seeds from the clock")
	searchLossy = flag.Bool("search.lossy", false, "revert explored moves by reverse apply in search mode")

	perftRun      = flag.Bool("perft", false, "run perft mode")
	perftDepth    = flag.Int("perft.depth", 4, "depth in perft mode")
	perftParallel = flag.Bool("perft.parallel", true, "count root moves in parallel in perft mode")

	serveRun     = flag.Bool("serve", false, "run the play server")
	serveAddr    = flag.String("serve.addr", server.DefaultAddr, "play server listen address")
	serveDepth   = flag.Uint("serve.depth", server.DefaultDepth, "engine reply depth of the play server")
	serveHuman   = flag.String("serve.human", "white", "side given to the player in new games")
	serveNoReply = flag.Bool("serve.noreply", false, "let the engine move only on POST /api/games/{id}/reply")
)

func main() {
	flag.Parse()

	if *profile {
		runProfiler()
	}

	err := realMain(flag.Args())
	if err != nil {
		log.Println(err)
		os.Exit(exitErr)
	}
	os.Exit(exitOK)
}

func runProfiler() {
	go func() {
		addr := "localhost:6060"
		log.Printf("starting pprof endpoint: http://%s/debug/pprof\n", addr)
		_ = http.ListenAndServe(addr, nil)
	}()
}

func realMain(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fen := board.DefaultStartingPositionFEN
	if len(args) > 0 {
		fen = strings.Join(args, " ")
	}
	if *movegenRun {
		return movegen(fen, *movegenDraw)
	}
	if *stepRun {
		return step(fen, *stepCount, *stepSeed)
	}
	if *searchRun {
		return search(ctx, fen, *searchSteps, uint8(*searchDepth), *searchSeed, *searchLossy)
	}
	if *perftRun {
		return perft(fen, *perftDepth, *perftParallel)
	}
	if *serveRun {
		return serve(ctx, *serveAddr, uint8(*serveDepth), *serveHuman, !*serveNoReply)
	}

	return runUCI(ctx)
}
