package main

import (
	"context"
	"os"

	"github.com/daystram/chessim/uci"
)

func runUCI(ctx context.Context) error {
	return uci.NewInterface(os.Stdin, os.Stdout).Run(ctx)
}
