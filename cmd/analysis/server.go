package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"chess-core/chessmg"
	"chess-core/engine"
)

type positionRequest struct {
	FEN   string   `json:"fen"`
	Moves []string `json:"moves"`
}

type positionResponse struct {
	FEN        string `json:"fen"`
	SideToMove string `json:"side_to_move"`
	InCheck    bool   `json:"in_check"`
	Checkmate  bool   `json:"checkmate"`
	Stalemate  bool   `json:"stalemate"`
	Hash       string `json:"hash"`
}

type searchRequest struct {
	MoveTimeMs int `json:"movetime_ms"`
	Depth      int `json:"depth"`
}

type searchResponse struct {
	BestMove string   `json:"bestmove"`
	Score    string   `json:"score"`
	Depth    int      `json:"depth"`
	Nodes    uint64   `json:"nodes"`
	TimeMs   int64    `json:"time_ms"`
	PV       []string `json:"pv"`
}

type infoPayload struct {
	Depth    int      `json:"depth"`
	Score    int32    `json:"score"`
	Nodes    uint64   `json:"nodes"`
	TimeMs   int64    `json:"time_ms"`
	NPS      uint64   `json:"nps"`
	Hashfull int      `json:"hashfull"`
	PV       []string `json:"pv"`
	Line     string   `json:"line"`
}

type server struct {
	config *ConfigStore
	hub    *Hub

	// mu serializes requests that read and then change the engine state.
	mu  sync.Mutex
	eng *engine.Engine
}

func newServer(cfg Config, hub *Hub) *server {
	s := &server{config: NewConfigStore(cfg), hub: hub}
	s.eng = engine.New(engine.Options{
		HashMB: s.config.Get().HashMB,
		Info: func(i engine.Info) {
			if !hub.HasClients() {
				return
			}
			hub.Publish("info", infoPayload{
				Depth:    i.Depth,
				Score:    i.Score,
				Nodes:    i.Nodes,
				TimeMs:   i.Time.Milliseconds(),
				NPS:      i.NPS,
				Hashfull: i.Hashfull,
				PV:       moveStrings(i.PV),
				Line:     i.String(),
			})
		},
	})
	return s
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Get("/api/config", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.config.Get())
	})
	r.Post("/api/config", s.handleConfig)
	r.Get("/api/position", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, describe(s.eng.Board()))
	})
	r.Post("/api/position", s.handleSetPosition)
	r.Get("/api/moves", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string][]string{"moves": moveStrings(s.eng.Board().LegalMoves())})
	})
	r.Post("/api/search", s.handleSearch)
	r.Post("/api/stop", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"stopped": s.stop()})
	})
	r.Get("/api/perft", s.handlePerft)
	r.Get("/api/board.svg", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml")
		renderBoard(w, s.eng.Board(), s.config.Get().SquareSize)
	})
	r.Get("/ws", s.serveWS)
	return r
}

func (s *server) handleConfig(w http.ResponseWriter, r *http.Request) {
	var cfg Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.config.Get()
	cfg = s.config.Update(cfg)
	if cfg.HashMB != old.HashMB {
		s.eng.SetHashSize(cfg.HashMB)
	}
	s.hub.Publish("config", cfg)
	writeJSON(w, http.StatusOK, cfg)
}

func (s *server) handleSetPosition(w http.ResponseWriter, r *http.Request) {
	var req positionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	if req.FEN == "" {
		req.FEN = chessmg.FENStartPos
	}
	s.mu.Lock()
	err := s.eng.SetPosition(req.FEN, req.Moves)
	s.mu.Unlock()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	pos := describe(s.eng.Board())
	s.hub.Publish("position", pos)
	writeJSON(w, http.StatusOK, pos)
}

func (s *server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
	}
	cfg := s.config.Get()
	limits := engine.Limits{Depth: req.Depth}
	if req.Depth > cfg.MaxSearchDepth {
		limits.Depth = cfg.MaxSearchDepth
	}
	// Every search is time bounded; a depth-only request gets the maximum.
	switch {
	case req.MoveTimeMs > 0:
		limits.MoveTime = time.Duration(engine.Min(req.MoveTimeMs, cfg.MaxMoveTimeMs)) * time.Millisecond
	case req.Depth > 0:
		limits.MoveTime = time.Duration(cfg.MaxMoveTimeMs) * time.Millisecond
	default:
		limits.MoveTime = time.Duration(cfg.DefaultMoveTimeMs) * time.Millisecond
	}

	// The engine searches a copy of the position, so position updates are
	// not held up by a running search.
	res := s.eng.SearchWith(limits)

	resp := searchResponse{
		BestMove: res.Move.String(),
		Score:    engine.FormatScore(res.Score),
		Depth:    res.Depth,
		Nodes:    res.Nodes,
		TimeMs:   res.Elapsed.Milliseconds(),
		PV:       moveStrings(res.PV),
	}
	s.hub.Publish("bestmove", resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handlePerft(w http.ResponseWriter, r *http.Request) {
	depth, err := strconv.Atoi(r.URL.Query().Get("depth"))
	if err != nil || depth < 1 || depth > s.config.Get().MaxPerftDepth {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid depth"})
		return
	}
	start := time.Now()
	nodes := chessmg.Perft(s.eng.Board(), depth)
	writeJSON(w, http.StatusOK, map[string]any{
		"depth":   depth,
		"nodes":   nodes,
		"time_ms": time.Since(start).Milliseconds(),
	})
}

func (s *server) serveWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{hub: s.hub, send: make(chan []byte, 64)}
	s.hub.Register(client)
	client.sendJSON(wsMessage{Type: "position", Payload: mustMarshal(describe(s.eng.Board()))})

	interval := time.Duration(s.config.Get().HeartbeatSeconds) * time.Second
	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send, interval); err != nil {
			log.Printf("[analysis] websocket write: %v", err)
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			s.hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "request_position":
			client.sendJSON(wsMessage{Type: "position", Payload: mustMarshal(describe(s.eng.Board()))})
		case "stop":
			s.stop()
		}
	}
}

// stop ends a running search. Stops while idle are dropped by the engine.
func (s *server) stop() bool { return s.eng.Stop() }

func describe(b *chessmg.Board) positionResponse {
	side := "white"
	if b.SideToMove() == chessmg.Black {
		side = "black"
	}
	return positionResponse{
		FEN:        b.FEN(),
		SideToMove: side,
		InCheck:    b.InCheck(b.SideToMove()),
		Checkmate:  b.InCheckmate(),
		Stalemate:  b.InStalemate(),
		Hash:       "0x" + strconv.FormatUint(b.Hash(), 16),
	}
}

func moveStrings(moves []chessmg.Move) []string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.String())
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[analysis] write response: %v", err)
	}
}
