package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/daystram/chessim/board"
	"github.com/daystram/chessim/engine"
)

// step plays random pseudo-legal moves for both sides and reports the
// average cost of each board operation.
func step(fen string, steps int, seed int64) error {
	log.Println("============ step")
	var (
		timesMoves []time.Duration
		timesApply []time.Duration
		timesState []time.Duration
	)
	b, turn, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return err
	}
	r := rand.New(engine.NewPseudoRand(seed))

	for i := 0; i < steps; i++ {
		t1 := time.Now()
		mvs := b.Moves(turn)
		timesMoves = append(timesMoves, time.Since(t1))
		if len(mvs) == 0 {
			break
		}
		mv := mvs[r.Intn(len(mvs))]

		t1 = time.Now()
		if !b.Apply(mv) {
			return fmt.Errorf("generated move rejected: %s", mv)
		}
		timesApply = append(timesApply, time.Since(t1))
		turn = turn.Opposite()

		t1 = time.Now()
		st := b.State(turn)
		timesState = append(timesState, time.Since(t1))

		fmt.Printf("\n===== [#%d] %s: %s\n", i/2+1, turn.Opposite(), mv)
		fmt.Println(b.Draw())
		fmt.Println(b.FEN(turn))
		if !st.IsRunning() {
			break
		}
	}

	avg := func(ds []time.Duration) time.Duration {
		if len(ds) == 0 {
			return 0
		}
		var s time.Duration
		for _, d := range ds {
			s += d
		}
		return s / time.Duration(len(ds))
	}

	fmt.Println()
	fmt.Println(b.State(turn))
	fmt.Println("moves:", avg(timesMoves))
	fmt.Println("apply:", avg(timesApply))
	fmt.Println("state:", avg(timesState))
	return nil
}
