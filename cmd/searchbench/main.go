package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"chess-core/chessmg"
	"chess-core/engine"
)

func main() {
	// --- Flags ---
	depthFlag := flag.Int("depth", 6, "search depth in plies (0 = limited by -movetime only)")
	moveTimeFlag := flag.Duration("movetime", 0, "time budget per search, e.g. 500ms")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run")
	fenFlag := flag.String("fen", "", "FEN to search (empty = startpos)")
	hashFlag := flag.Int("hash", engine.DefaultTTSizeMB, "transposition table size in MB")
	verbose := flag.Bool("v", false, "print the info line of every iteration")
	evalFlag := flag.String("eval", "default", "evaluation: default or material")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	if *depthFlag <= 0 && *moveTimeFlag <= 0 {
		log.Fatalf("need a positive -depth or -movetime")
	}

	// --- Optional CPU profiling setup ---
	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	fen := chessmg.FENStartPos
	if *fenFlag != "" {
		fen = *fenFlag
	}
	limits := engine.Limits{Depth: *depthFlag, MoveTime: *moveTimeFlag}

	eng := engine.New(engine.Options{HashMB: *hashFlag})
	if *verbose {
		eng.SetInfo(func(i engine.Info) { fmt.Println(i) })
	}
	switch *evalFlag {
	case "default":
	case "material":
		eng.SetEval(engine.MaterialOnly)
	default:
		log.Fatalf("unknown -eval %q", *evalFlag)
	}

	fmt.Printf("searchbench: fen=%q depth=%d movetime=%v repeat=%d eval=%s\n", fen, *depthFlag, *moveTimeFlag, *repeatFlag, *evalFlag)

	var totalNodes uint64
	startAll := time.Now()
	for i := 0; i < *repeatFlag; i++ {
		// Fresh table and position for each run
		eng.NewGame()
		if err := eng.SetPos(fen); err != nil {
			log.Fatalf("bad fen: %v", err)
		}

		res := eng.SearchWith(limits)
		totalNodes += res.Nodes
		fmt.Printf("iteration %d: bestmove %v  depth=%d score=%d nodes=%d time=%v\n",
			i+1, res.Move, res.Depth, res.Score, res.Nodes, res.Elapsed)
	}
	totalElapsed := time.Since(startAll)
	fmt.Printf("total time: %v  nodes: %d  nps: %.0f\n", totalElapsed, totalNodes, float64(totalNodes)/totalElapsed.Seconds())

	// --- Optional heap profile at the end ---
	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatalf("could not create memory profile: %v", err)
		}
		defer f.Close()

		runtime.GC() // get up-to-date heap info
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatalf("could not write memory profile: %v", err)
		}
	}
}
