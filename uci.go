package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"chess-core/chessmg"
	"chess-core/engine"
)

func main() {
	uciLoop(os.Stdin, os.Stdout)
}

type uciSession struct {
	eng *engine.Engine
	out io.Writer

	outMu     sync.Mutex
	searching sync.WaitGroup
}

func (u *uciSession) println(a ...interface{}) {
	u.outMu.Lock()
	defer u.outMu.Unlock()
	fmt.Fprintln(u.out, a...)
}

// wait blocks until a running search has printed its bestmove.
func (u *uciSession) wait() { u.searching.Wait() }

// stop ends the running search, if any, and waits for its bestmove.
func (u *uciSession) stop() {
	u.eng.Stop()
	u.wait()
}

func uciLoop(in io.Reader, out io.Writer) {
	u := &uciSession{out: out}
	u.eng = engine.New(engine.Options{
		Name:   "chess-core",
		Author: "chess-core authors",
		Info:   func(i engine.Info) { u.println(i.String()) },
	})

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			u.println("id name", u.eng.Name())
			u.println("id author", u.eng.Author())
			u.println(fmt.Sprintf("option name Hash type spin default %d min 1 max 4096", engine.DefaultTTSizeMB))
			u.println("uciok")
		case "isready":
			u.println("readyok")
		case "ucinewgame":
			u.wait()
			u.eng.NewGame()
		case "quit":
			u.stop()
			return
		case "stop":
			u.stop()
		case "go":
			u.wait()
			limits, err := parseGo(tokens[1:])
			if err != nil {
				u.println("info string", err)
				continue
			}
			u.searching.Add(1)
			u.eng.Go(limits, func(res engine.Result) {
				defer u.searching.Done()
				u.println("bestmove", res.Move)
			})
		case "position":
			u.wait()
			fen, moves, err := parsePosition(tokens[1:])
			if err != nil {
				u.println("info string", err)
				continue
			}
			if err := u.eng.SetPosition(fen, moves); err != nil {
				u.println("info string", err)
			}
		case "setoption":
			u.wait()
			u.setOption(tokens[1:])
		case "d":
			u.println(u.eng.Board().String())
		case "perft":
			u.wait()
			if len(tokens) < 2 {
				u.println("info string Malformed perft command")
				continue
			}
			depth, err := strconv.Atoi(tokens[1])
			if err != nil || depth < 1 {
				u.println("info string Malformed perft depth", tokens[1])
				continue
			}
			start := time.Now()
			nodes := chessmg.Perft(u.eng.Board(), depth)
			u.println(fmt.Sprintf("info string perft %d nodes %d time %d", depth, nodes, time.Since(start).Milliseconds()))
		default:
			u.println("info string Unknown command:", line)
		}
	}
	// end of input: let a bounded search finish and print its move
	u.wait()
}

// parseGo reads the arguments of a go command. Times are in milliseconds.
func parseGo(args []string) (engine.Limits, error) {
	var l engine.Limits
	for i := 0; i < len(args); i++ {
		tok := strings.ToLower(args[i])
		if tok == "infinite" {
			l.Infinite = true
			continue
		}
		if i+1 >= len(args) {
			return l, fmt.Errorf("Malformed go command option %s", tok)
		}
		v, err := strconv.ParseInt(args[i+1], 10, 64)
		if err != nil {
			return l, fmt.Errorf("Malformed go command option; could not convert %s", tok)
		}
		i++
		ms := time.Duration(v) * time.Millisecond
		switch tok {
		case "movetime":
			l.MoveTime = ms
		case "wtime":
			l.WTime = ms
		case "btime":
			l.BTime = ms
		case "winc":
			l.WInc = ms
		case "binc":
			l.BInc = ms
		case "movestogo":
			l.MovesToGo = int(v)
		case "depth":
			l.Depth = int(v)
		case "nodes":
			l.Nodes = uint64(v)
		default:
			return l, fmt.Errorf("Unknown go subcommand %s", tok)
		}
	}
	return l, nil
}

// parsePosition splits "startpos|fen <fields> [moves m1 m2 ...]".
func parsePosition(args []string) (string, []string, error) {
	if len(args) == 0 {
		return "", nil, fmt.Errorf("Malformed position command")
	}
	var fen string
	rest := args[1:]
	switch strings.ToLower(args[0]) {
	case "startpos":
		fen = chessmg.FENStartPos
	case "fen":
		var fields []string
		for len(rest) > 0 && strings.ToLower(rest[0]) != "moves" {
			fields = append(fields, rest[0])
			rest = rest[1:]
		}
		if len(fields) == 0 {
			return "", nil, fmt.Errorf("Invalid fen position")
		}
		fen = strings.Join(fields, " ")
	default:
		return "", nil, fmt.Errorf("Invalid position subcommand %s", args[0])
	}
	if len(rest) == 0 {
		return fen, nil, nil
	}
	if strings.ToLower(rest[0]) != "moves" {
		return "", nil, fmt.Errorf("Malformed position command")
	}
	moves := make([]string, 0, len(rest)-1)
	for _, m := range rest[1:] {
		moves = append(moves, strings.ToLower(m))
	}
	return fen, moves, nil
}

// setOption handles "name <id> value <x>"; only Hash is supported.
func (u *uciSession) setOption(args []string) {
	var name, value string
	for i := 0; i+1 < len(args); i++ {
		switch strings.ToLower(args[i]) {
		case "name":
			name = args[i+1]
		case "value":
			value = args[i+1]
		}
	}
	switch strings.ToLower(name) {
	case "hash":
		mb, err := strconv.Atoi(value)
		if err != nil || mb < 1 {
			u.println("info string Invalid Hash value", value)
			return
		}
		u.eng.SetHashSize(mb)
	default:
		u.println("info string Unknown option", name)
	}
}
