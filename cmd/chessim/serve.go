package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/daystram/chessim/board"
	"github.com/daystram/chessim/server"
)

func serve(ctx context.Context, addr string, depth uint8, human string, autoReply bool) error {
	cfg := server.DefaultConfig()
	cfg.Addr = addr
	cfg.Depth = depth
	cfg.AutoReply = autoReply
	switch strings.ToLower(human) {
	case "white":
		cfg.HumanSide = board.SideWhite
	case "black":
		cfg.HumanSide = board.SideBlack
	default:
		return fmt.Errorf("unknown side: %s", human)
	}
	return server.NewServer(cfg).ListenAndServe(ctx)
}
