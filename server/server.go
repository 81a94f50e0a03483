package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/daystram/chessim/board"
	"github.com/daystram/chessim/position"
)

type Server struct {
	cfg     Config
	manager *Manager
	router  chi.Router
}

type newGameRequest struct {
	FEN   string `json:"fen"`
	Human string `json:"human"`
}

type moveRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type destinationsResponse struct {
	From         string   `json:"from"`
	Destinations []string `json:"destinations"`
}

func NewServer(cfg Config) *Server {
	cfg.fill()
	s := &Server{
		cfg:     cfg,
		manager: NewManager(cfg),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Route("/api/games", func(r chi.Router) {
		r.Post("/", s.handleNewGame)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetGame)
			r.Delete("/", s.handleDeleteGame)
			r.Get("/destinations", s.handleDestinations)
			r.Post("/moves", s.handleMove)
			r.Post("/reply", s.handleReply)
		})
	})
	r.Get("/ws/games/{id}", s.handleWS)

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Manager() *Manager {
	return s.manager
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.router,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	log.Printf("[server] listening on %s", s.cfg.Addr)
	var runErr error
	select {
	case <-ctx.Done():
		log.Printf("[server] shutdown signal received: %v", ctx.Err())
	case err, ok := <-serverErrCh:
		if ok {
			runErr = err
			log.Printf("[server] server error: %v", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("[server] graceful shutdown failed: %v", err)
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			log.Printf("[server] forced close failed: %v", closeErr)
		}
	}
	return runErr
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var payload newGameRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	human, ok := parseSide(payload.Human)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid side"})
		return
	}

	g, err := s.manager.NewGame(payload.FEN, human)
	if err != nil {
		writeError(w, err)
		return
	}
	if s.cfg.AutoReply {
		if err := g.open(r.Context()); err != nil {
			writeError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusCreated, g.Snapshot())
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.manager.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g.Snapshot())
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := s.manager.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDestinations(w http.ResponseWriter, r *http.Request) {
	g, err := s.manager.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	from, err := position.NewPosFromNotation(r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, err)
		return
	}

	res := destinationsResponse{
		From:         from.Notation(),
		Destinations: []string{},
	}
	for _, to := range g.Destinations(from) {
		res.Destinations = append(res.Destinations, to.Notation())
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	g, err := s.manager.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	var payload moveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	mv, err := board.NewMoveFromUCI(payload.From + payload.To)
	if err != nil {
		writeError(w, err)
		return
	}

	snap, err := g.Play(r.Context(), mv, s.cfg.AutoReply)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleReply(w http.ResponseWriter, r *http.Request) {
	g, err := s.manager.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	snap, err := g.Reply(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	g, err := s.manager.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{hub: g.hub, send: make(chan []byte, 16)}
	g.hub.Register(client)
	g.hub.SendTo(client, wsMessage{Type: "snapshot", Payload: mustMarshal(g.Snapshot())})

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send); err != nil {
			return
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			g.hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "request_snapshot":
			g.hub.SendTo(client, wsMessage{Type: "snapshot", Payload: mustMarshal(g.Snapshot())})
		}
	}
}

func parseSide(s string) (board.Side, bool) {
	switch strings.ToLower(s) {
	case "":
		return board.SideUnknown, true
	case "white", "w":
		return board.SideWhite, true
	case "black", "b":
		return board.SideBlack, true
	default:
		return board.SideUnknown, false
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrGameNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrIllegalMove):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, ErrNotYourTurn), errors.Is(err, ErrGameOver):
		status = http.StatusConflict
	case errors.Is(err, board.ErrInvalidFEN), errors.Is(err, position.ErrInvalidNotation):
		status = http.StatusBadRequest
	case errors.Is(err, context.Canceled):
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
