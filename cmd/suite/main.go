package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"chess-core/engine"
)

func main() {
	file := flag.String("file", "", "suite file: CSV (fen,bestmove) or EPD with bm operations (required)")
	moveTime := flag.Duration("movetime", time.Second, "time cap per position")
	depth := flag.Int("depth", 0, "depth limit per position (0 = time only)")
	hash := flag.Int("hash", 16, "transposition table size in MB")
	verbose := flag.Bool("v", false, "print every position's result")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "-file is required")
		os.Exit(2)
	}
	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("open suite: %v", err)
	}
	eng := engine.New(engine.Options{HashMB: *hash})
	cases, err := loadSuite(f, eng.Keys())
	f.Close()
	if err != nil {
		log.Fatalf("load suite: %v", err)
	}

	res := runSuite(eng, cases, engine.Limits{MoveTime: *moveTime, Depth: *depth}, os.Stdout, *verbose)
	fmt.Printf("solved %d/%d (%.1f%%) in %v\n", res.Solved, res.Total, res.Percent(), res.Elapsed)
	if res.Overran > 0 {
		fmt.Printf("warning: %d searches ran past twice the time cap\n", res.Overran)
	}
}
