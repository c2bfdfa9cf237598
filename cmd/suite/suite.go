package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/notnil/chess"

	"chess-core/chessmg"
	"chess-core/engine"
)

// testCase is one row of a suite: a position and the moves that solve it.
type testCase struct {
	Line  int
	ID    string
	FEN   string
	Best  []chessmg.Move
	moves []string // best moves as written in the file
}

// loadSuite reads CSV rows ("fen,bestmove[,id]") or EPD lines
// ("<4 fen fields> bm <moves>; id \"...\";"). Best moves may be in
// coordinate notation or SAN. Every row is checked before any search runs.
func loadSuite(r io.Reader, keys *chessmg.Keys) ([]testCase, error) {
	var cases []testCase
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		var (
			tc  testCase
			err error
		)
		if strings.Contains(text, " bm ") {
			tc, err = parseEPD(text)
		} else {
			tc, err = parseCSV(text)
			if err == nil && strings.EqualFold(tc.FEN, "fen") { // header
				continue
			}
		}
		if err == nil {
			err = tc.resolve(keys)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		tc.Line = line
		cases = append(cases, tc)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cases, nil
}

func parseCSV(text string) (testCase, error) {
	cols := strings.Split(text, ",")
	for i := range cols {
		cols[i] = strings.TrimSpace(cols[i])
	}
	if len(cols) < 2 || cols[0] == "" || cols[1] == "" {
		return testCase{}, fmt.Errorf("want fen,bestmove: %q", text)
	}
	tc := testCase{FEN: cols[0], moves: strings.Fields(cols[1])}
	if len(cols) > 2 {
		tc.ID = cols[2]
	}
	return tc, nil
}

func parseEPD(text string) (testCase, error) {
	fields := strings.Fields(text)
	if len(fields) < 6 {
		return testCase{}, fmt.Errorf("short EPD line %q", text)
	}
	tc := testCase{FEN: strings.Join(fields[:4], " ")}
	for _, op := range strings.Split(strings.Join(fields[4:], " "), ";") {
		name, arg, _ := strings.Cut(strings.TrimSpace(op), " ")
		switch name {
		case "bm":
			tc.moves = strings.Fields(arg)
		case "id":
			tc.ID = strings.Trim(strings.TrimSpace(arg), `"`)
		}
	}
	if len(tc.moves) == 0 {
		return testCase{}, fmt.Errorf("no bm operation: %q", text)
	}
	return tc, nil
}

// resolve turns the written best moves into legal moves of the position.
func (tc *testCase) resolve(keys *chessmg.Keys) error {
	b, err := chessmg.ParseFEN(keys, tc.FEN)
	if err != nil {
		return err
	}
	for _, s := range tc.moves {
		m, err := chessmg.ParseMove(b, s)
		if err != nil {
			uci, serr := sanToUCI(tc.FEN, s)
			if serr != nil {
				return fmt.Errorf("best move %q: %w", s, serr)
			}
			if m, err = chessmg.ParseMove(b, uci); err != nil {
				return fmt.Errorf("best move %q: %w", s, err)
			}
		}
		tc.Best = append(tc.Best, m)
	}
	return nil
}

// sanToUCI decodes a SAN move with notnil/chess, which wants all six FEN
// fields.
func sanToUCI(fen, san string) (string, error) {
	if len(strings.Fields(fen)) == 4 {
		fen += " 0 1"
	}
	opt, err := chess.FEN(fen)
	if err != nil {
		return "", err
	}
	pos := chess.NewGame(opt).Position()
	m, err := chess.AlgebraicNotation{}.Decode(pos, san)
	if err != nil {
		return "", err
	}
	return chess.UCINotation{}.Encode(pos, m), nil
}

type suiteResult struct {
	Total, Solved int
	Overran       int // searches that ran past twice the time cap
	Elapsed       time.Duration
}

func (r suiteResult) Percent() float64 {
	if r.Total == 0 {
		return 0
	}
	return 100 * float64(r.Solved) / float64(r.Total)
}

// runSuite searches every case under limits and counts the solved ones. Each
// case starts from a fresh table.
func runSuite(eng *engine.Engine, cases []testCase, limits engine.Limits, out io.Writer, verbose bool) suiteResult {
	var res suiteResult
	start := time.Now()
	for _, tc := range cases {
		eng.NewGame()
		if err := eng.SetPos(tc.FEN); err != nil {
			fmt.Fprintf(out, "line %d: %v\n", tc.Line, err)
			continue
		}
		r := eng.SearchWith(limits)
		res.Total++
		ok := false
		for _, m := range tc.Best {
			ok = ok || m == r.Move
		}
		if ok {
			res.Solved++
		}
		if limits.MoveTime > 0 && r.Elapsed > 2*limits.MoveTime {
			res.Overran++
		}
		if verbose {
			status := "fail"
			if ok {
				status = "ok"
			}
			fmt.Fprintf(out, "%-4s line %d %s: got %v want %v depth=%d time=%v\n",
				status, tc.Line, tc.ID, r.Move, tc.Best, r.Depth, r.Elapsed)
		}
	}
	res.Elapsed = time.Since(start)
	return res
}
