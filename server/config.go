package server

import (
	"log"

	"github.com/daystram/chessim/board"
)

const (
	DefaultAddr  = ":8080"
	DefaultDepth = 3
)

type Config struct {
	Addr string

	// Depth of the engine reply, DefaultDepth when zero.
	Depth uint8

	// AutoReply lets the engine answer every human move.
	AutoReply bool

	// HumanSide is the side new games give to the player unless the request
	// names one.
	HumanSide board.Side

	// Seed makes engine tie-breaks reproducible. Zero seeds from the clock.
	Seed int64

	LossyUndo bool
	Debug     bool
	Logger    func(...any)
}

func DefaultConfig() Config {
	return Config{
		Addr:      DefaultAddr,
		Depth:     DefaultDepth,
		AutoReply: true,
		HumanSide: board.SideWhite,
	}
}

func (c *Config) fill() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.Depth == 0 {
		c.Depth = DefaultDepth
	}
	if c.HumanSide == board.SideUnknown {
		c.HumanSide = board.SideWhite
	}
	if c.Logger == nil {
		c.Logger = log.Println
	}
}
