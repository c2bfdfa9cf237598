package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"chess-core/chessmg"
	"chess-core/internal/testutil"
)

func newTestServer(t *testing.T) (*server, *httptest.Server) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.HashMB = 1
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	go hub.Run(ctx.Done())
	s := newServer(cfg, hub)
	ts := httptest.NewServer(s.routes())
	t.Cleanup(func() {
		ts.Close()
		cancel()
	})
	return s, ts
}

func doJSON(t *testing.T, method, url string, body interface{}, out interface{}) int {
	t.Helper()
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		testutil.AssertNoError(t, err)
		rd = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, rd)
	testutil.AssertNoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	testutil.AssertNoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		testutil.AssertNoError(t, json.NewDecoder(resp.Body).Decode(out), "decode %s %s", method, url)
	}
	return resp.StatusCode
}

func TestPing(t *testing.T) {
	_, ts := newTestServer(t)
	var got map[string]bool
	testutil.AssertEqual(t, doJSON(t, http.MethodGet, ts.URL+"/api/ping", nil, &got), http.StatusOK)
	testutil.AssertEqual(t, got, map[string]bool{"ok": true})
}

func TestPositionRoundTrip(t *testing.T) {
	_, ts := newTestServer(t)

	var pos positionResponse
	code := doJSON(t, http.MethodPost, ts.URL+"/api/position", positionRequest{Moves: []string{"f2f3", "e7e5", "g2g4", "d8h4"}}, &pos)
	testutil.AssertEqual(t, code, http.StatusOK)
	if !pos.Checkmate || !pos.InCheck || pos.SideToMove != "white" {
		t.Fatalf("expected white to be mated: %+v", pos)
	}

	var again positionResponse
	doJSON(t, http.MethodGet, ts.URL+"/api/position", nil, &again)
	testutil.AssertEqual(t, again, pos)

	var moves map[string][]string
	doJSON(t, http.MethodGet, ts.URL+"/api/moves", nil, &moves)
	if len(moves["moves"]) != 0 {
		t.Fatalf("mated side has moves %v", moves["moves"])
	}
}

func TestPositionErrors(t *testing.T) {
	_, ts := newTestServer(t)
	var e map[string]string
	code := doJSON(t, http.MethodPost, ts.URL+"/api/position", positionRequest{Moves: []string{"e2e5"}}, &e)
	testutil.AssertEqual(t, code, http.StatusBadRequest)
	if !strings.Contains(e["error"], "illegal move") {
		t.Fatalf("error %q", e["error"])
	}

	resp, err := http.Post(ts.URL+"/api/position", "application/json", strings.NewReader("{"))
	testutil.AssertNoError(t, err)
	resp.Body.Close()
	testutil.AssertEqual(t, resp.StatusCode, http.StatusBadRequest)

	var pos positionResponse
	doJSON(t, http.MethodGet, ts.URL+"/api/position", nil, &pos)
	testutil.AssertEqual(t, pos.FEN, chessmg.FENStartPos)
}

func TestSearchEndpoint(t *testing.T) {
	_, ts := newTestServer(t)
	doJSON(t, http.MethodPost, ts.URL+"/api/position", positionRequest{FEN: "6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1"}, nil)

	var res searchResponse
	code := doJSON(t, http.MethodPost, ts.URL+"/api/search", searchRequest{Depth: 3}, &res)
	testutil.AssertEqual(t, code, http.StatusOK)
	testutil.AssertEqual(t, res.BestMove, "a1a8")
	testutil.AssertEqual(t, res.Score, "mate 1")
	if len(res.PV) == 0 || res.PV[0] != "a1a8" {
		t.Fatalf("pv %v", res.PV)
	}
}

func TestDepthOnlySearchIsTimeBounded(t *testing.T) {
	s, ts := newTestServer(t)
	cfg := s.config.Get()
	cfg.DefaultMoveTimeMs = 100
	cfg.MaxMoveTimeMs = 500
	s.config.Update(cfg)

	done := make(chan searchResponse, 1)
	go func() {
		var res searchResponse
		resp, err := http.Post(ts.URL+"/api/search", "application/json", strings.NewReader(`{"depth":100}`))
		if err == nil {
			json.NewDecoder(resp.Body).Decode(&res)
			resp.Body.Close()
		}
		done <- res
	}()

	time.Sleep(100 * time.Millisecond)
	// position updates are served while the search runs
	code := doJSON(t, http.MethodPost, ts.URL+"/api/position", positionRequest{FEN: testutil.KiwipeteFEN}, nil)
	testutil.AssertEqual(t, code, http.StatusOK)
	if !s.eng.Searching() {
		t.Fatalf("search ended before the position update returned")
	}

	select {
	case res := <-done:
		if res.BestMove == "" || res.Depth >= 100 {
			t.Fatalf("unexpected search result %+v", res)
		}
	case <-time.After(10 * time.Second):
		t.Fatalf("depth-only search ignored the time cap")
	}
}

func TestStopWhileIdle(t *testing.T) {
	_, ts := newTestServer(t)
	var got map[string]bool
	testutil.AssertEqual(t, doJSON(t, http.MethodPost, ts.URL+"/api/stop", nil, &got), http.StatusOK)
	if got["stopped"] {
		t.Fatalf("idle stop reported a running search")
	}

	// the dropped stop does not shorten the next search
	var res searchResponse
	testutil.AssertEqual(t, doJSON(t, http.MethodPost, ts.URL+"/api/search", searchRequest{Depth: 3}, &res), http.StatusOK)
	testutil.AssertEqual(t, res.Depth, 3)
}

func TestPerftEndpoint(t *testing.T) {
	_, ts := newTestServer(t)
	var got struct {
		Depth int    `json:"depth"`
		Nodes uint64 `json:"nodes"`
	}
	testutil.AssertEqual(t, doJSON(t, http.MethodGet, ts.URL+"/api/perft?depth=3", nil, &got), http.StatusOK)
	testutil.AssertEqual(t, got.Nodes, uint64(8902))

	for _, q := range []string{"", "?depth=0", "?depth=x", "?depth=99"} {
		if code := doJSON(t, http.MethodGet, ts.URL+"/api/perft"+q, nil, nil); code != http.StatusBadRequest {
			t.Errorf("perft%s: status %d", q, code)
		}
	}
}

func TestBoardSVG(t *testing.T) {
	_, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/board.svg")
	testutil.AssertNoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	testutil.AssertEqual(t, resp.Header.Get("Content-Type"), "image/svg+xml")
	out := string(body)
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatalf("not an svg document: %.200s", out)
	}
	if got := strings.Count(out, "<rect"); got != 64 {
		t.Fatalf("%d squares drawn", got)
	}
	if !strings.Contains(out, "♔") || !strings.Contains(out, "♟") {
		t.Fatalf("pieces missing")
	}
}

func TestConfigEndpoints(t *testing.T) {
	s, ts := newTestServer(t)
	var cfg Config
	doJSON(t, http.MethodGet, ts.URL+"/api/config", nil, &cfg)
	testutil.AssertEqual(t, cfg.HashMB, 1)

	cfg.HashMB = 2
	cfg.MaxPerftDepth = 2
	var updated Config
	testutil.AssertEqual(t, doJSON(t, http.MethodPost, ts.URL+"/api/config", cfg, &updated), http.StatusOK)
	testutil.AssertEqual(t, updated.MaxPerftDepth, 2)
	testutil.AssertEqual(t, s.eng.HashSize(), 2)
	if code := doJSON(t, http.MethodGet, ts.URL+"/api/perft?depth=3", nil, nil); code != http.StatusBadRequest {
		t.Fatalf("perft above the configured depth allowed: %d", code)
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, cfg, DefaultConfig())

	path := filepath.Join(t.TempDir(), "analysis.json")
	testutil.AssertNoError(t, os.WriteFile(path, []byte(`{"addr":":9000","hash_mb":8,"max_perft_depth":-1}`), 0o644))
	cfg, err = loadConfig(path)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, cfg.Addr, ":9000")
	testutil.AssertEqual(t, cfg.HashMB, 8)
	testutil.AssertEqual(t, cfg.MaxPerftDepth, DefaultConfig().MaxPerftDepth)

	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("missing file accepted")
	}
}

func TestWebSocketStreamsSearchInfo(t *testing.T) {
	_, ts := newTestServer(t)
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	testutil.AssertNoError(t, err)
	defer conn.Close()

	readMsg := func() wsMessage {
		t.Helper()
		conn.SetReadDeadline(time.Now().Add(10 * time.Second))
		var msg wsMessage
		testutil.AssertNoError(t, conn.ReadJSON(&msg))
		return msg
	}

	// The first message is the current position; once it arrives the client
	// is registered with the hub.
	first := readMsg()
	testutil.AssertEqual(t, first.Type, "position")

	go func() {
		resp, err := http.Post(ts.URL+"/api/search", "application/json", strings.NewReader(`{"depth":2}`))
		if err == nil {
			resp.Body.Close()
		}
	}()

	var depths []int
	for {
		msg := readMsg()
		if msg.Type == "bestmove" {
			break
		}
		if msg.Type != "info" {
			continue
		}
		var info infoPayload
		testutil.AssertNoError(t, json.Unmarshal(msg.Payload, &info))
		depths = append(depths, info.Depth)
	}
	testutil.AssertEqual(t, depths, []int{1, 2})
}

func TestHubClients(t *testing.T) {
	hub := NewHub()
	if hub.HasClients() {
		t.Fatalf("new hub has clients")
	}
	c := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.Register(c)
	if !hub.HasClients() {
		t.Fatalf("registered client not counted")
	}
	hub.Unregister(c)
	hub.Unregister(c)
	if hub.HasClients() {
		t.Fatalf("client still counted after Unregister")
	}
	if _, open := <-c.send; open {
		t.Fatalf("send channel left open")
	}
}
