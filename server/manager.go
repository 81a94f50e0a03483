package server

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/daystram/chessim/board"
	"github.com/daystram/chessim/engine"
)

type Manager struct {
	cfg Config

	mu    sync.RWMutex
	games map[string]*Game
	seq   int64
}

func NewManager(cfg Config) *Manager {
	cfg.fill()
	return &Manager{
		cfg:   cfg,
		games: make(map[string]*Game),
	}
}

// NewGame starts a game from fen, or the starting position when fen is empty.
// human is the side played through Play, the engine takes the other one.
func (m *Manager) NewGame(fen string, human board.Side) (*Game, error) {
	opts := []board.BoardOption{}
	if fen != "" {
		opts = append(opts, board.WithFEN(fen))
	}
	b, turn, err := board.NewBoard(opts...)
	if err != nil {
		return nil, err
	}
	if human == board.SideUnknown {
		human = m.cfg.HumanSide
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	now := time.Now()
	g := &Game{
		ID:        uuid.NewString(),
		CreatedAt: now,
		updatedAt: now,
		board:     b,
		turn:      turn,
		human:     human,
		engine:    engine.NewEngine(m.engineConfig(m.seq)),
		hub:       NewHub(),
	}
	m.games[g.ID] = g
	return g, nil
}

func (m *Manager) engineConfig(seq int64) *engine.EngineConfig {
	cfg := &engine.EngineConfig{
		Depth:     m.cfg.Depth,
		LossyUndo: m.cfg.LossyUndo,
		Debug:     m.cfg.Debug,
		Logger:    m.cfg.Logger,
	}
	if m.cfg.Seed != 0 {
		cfg.Rand = rand.New(engine.NewPseudoRand(m.cfg.Seed + seq))
	}
	return cfg
}

func (m *Manager) Get(id string) (*Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return g, nil
}

// Delete drops the game and disconnects its watchers.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	g, ok := m.games[id]
	delete(m.games, id)
	m.mu.Unlock()
	if !ok {
		return ErrGameNotFound
	}
	g.hub.Close()
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
