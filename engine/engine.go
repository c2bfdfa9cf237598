package engine

import (
	"sync"
	"time"

	"chess-core/chessmg"
)

// Options configures an Engine.
type Options struct {
	HashMB int
	Name   string
	Author string
	// Seed for the Zobrist keys; zero selects chessmg.DefaultSeed.
	Seed int64
	Info func(Info)
}

// Engine owns a position, a transposition table and a searcher. Searches are
// serialized; the position may be read or replaced while one runs, and Stop
// may be called from any goroutine.
type Engine struct {
	opts     Options
	keys     *chessmg.Keys
	board    *chessmg.Board
	searcher *Searcher

	mu       sync.Mutex // guards board and opts
	searchMu sync.Mutex // serializes searches and searcher changes

	stopMu  sync.Mutex // guards running and the searcher's stop flag
	running bool
}

// New returns an engine set to the starting position.
func New(opts Options) *Engine {
	if opts.HashMB <= 0 {
		opts.HashMB = DefaultTTSizeMB
	}
	if opts.Name == "" {
		opts.Name = "chess-core"
	}
	seed := opts.Seed
	if seed == 0 {
		seed = chessmg.DefaultSeed
	}
	e := &Engine{opts: opts, keys: chessmg.NewKeys(seed)}
	e.searcher = NewSearcher(NewTransTable(opts.HashMB))
	e.searcher.OnInfo = opts.Info
	e.board = chessmg.StartingBoard(e.keys)
	return e
}

func (e *Engine) Name() string   { return e.opts.Name }
func (e *Engine) Author() string { return e.opts.Author }

// SetPos sets the position from a FEN string.
func (e *Engine) SetPos(fen string) error {
	return e.SetPosition(fen, nil)
}

// SetPosStartpos sets the starting position followed by moves in coordinate
// notation.
func (e *Engine) SetPosStartpos(moves []string) error {
	return e.SetPosition(chessmg.FENStartPos, moves)
}

// SetPosition parses fen, plays moves and installs the result. On error the
// current position is left unchanged.
func (e *Engine) SetPosition(fen string, moves []string) error {
	b, err := chessmg.ParseFEN(e.keys, fen)
	if err != nil {
		return err
	}
	if err := b.ApplyMoves(moves); err != nil {
		return err
	}
	e.mu.Lock()
	e.board = b
	e.mu.Unlock()
	return nil
}

// Board returns a copy of the current position.
func (e *Engine) Board() *chessmg.Board {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.board.Copy()
}

// Keys returns the Zobrist keys every board of this engine is hashed with.
func (e *Engine) Keys() *chessmg.Keys { return e.keys }

// Search searches the current position for at most budget and returns the
// best move, or NullMove when the side to move has no legal move.
func (e *Engine) Search(budget time.Duration) chessmg.Move {
	return e.SearchWith(Limits{MoveTime: budget}).Move
}

// SearchWith searches the current position under arbitrary limits.
func (e *Engine) SearchWith(l Limits) Result {
	e.searchMu.Lock()
	defer e.searchMu.Unlock()
	e.beginSearch()
	return e.runSearch(l)
}

// Go starts a search in the background and calls done with its result. The
// search counts as running once Go returns, so a Stop issued right after it
// ends this search and no later one.
func (e *Engine) Go(l Limits, done func(Result)) {
	e.searchMu.Lock()
	e.beginSearch()
	go func() {
		res := e.runSearch(l)
		e.searchMu.Unlock()
		if done != nil {
			done(res)
		}
	}()
}

func (e *Engine) beginSearch() {
	e.stopMu.Lock()
	defer e.stopMu.Unlock()
	e.searcher.stop.Store(false)
	e.running = true
}

func (e *Engine) runSearch(l Limits) Result {
	res := e.searcher.Search(e.Board(), l)

	e.stopMu.Lock()
	e.running = false
	e.searcher.stop.Store(false)
	e.stopMu.Unlock()
	return res
}

// Stop ends a running search early and reports whether one was running.
// Stops while idle are dropped.
func (e *Engine) Stop() bool {
	e.stopMu.Lock()
	defer e.stopMu.Unlock()
	if e.running {
		e.searcher.StopSearch()
	}
	return e.running
}

// Searching reports whether a search is in progress.
func (e *Engine) Searching() bool {
	e.stopMu.Lock()
	defer e.stopMu.Unlock()
	return e.running
}

// SetInfo replaces the per-iteration callback. Call it between searches.
func (e *Engine) SetInfo(f func(Info)) {
	e.searchMu.Lock()
	defer e.searchMu.Unlock()
	e.searcher.OnInfo = f
}

// SetEval replaces the evaluation function. Call it between searches.
func (e *Engine) SetEval(f EvalFunc) {
	e.searchMu.Lock()
	defer e.searchMu.Unlock()
	e.searcher.Eval = f
}

// NewGame clears the table and returns to the starting position.
func (e *Engine) NewGame() {
	e.searchMu.Lock()
	e.searcher.TT.Clear()
	e.searchMu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.board = chessmg.StartingBoard(e.keys)
}

// SetHashSize reallocates the transposition table.
func (e *Engine) SetHashSize(mb int) {
	e.searchMu.Lock()
	e.searcher.TT = NewTransTable(mb)
	e.searchMu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts.HashMB = mb
}

// HashSize returns the configured table size in megabytes.
func (e *Engine) HashSize() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opts.HashMB
}
