package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"sort"
	"time"

	"github.com/dylhunn/dragontoothmg"

	"chess-core/chessmg"
)

func main() {
	fen := flag.String("fen", chessmg.FENStartPos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	verify := flag.Bool("verify", false, "Cross-check the node count with dragontoothmg")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	board, err := chessmg.ParseFEN(chessmg.NewKeys(chessmg.DefaultSeed), *fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}

	if *divide {
		div := chessmg.PerftDivide(board, *depth)
		var ref map[string]uint64
		if *verify {
			ref = referenceDivide(board.FEN(), *depth)
		}
		type kv struct {
			m string
			n uint64
		}
		arr := make([]kv, 0, len(div))
		var sum uint64
		for m, n := range div {
			arr = append(arr, kv{m.String(), n})
			sum += n
		}
		sort.Slice(arr, func(i, j int) bool { return arr[i].m < arr[j].m })
		mismatch := false
		for _, x := range arr {
			if ref != nil && ref[x.m] != x.n {
				fmt.Printf("%s: %d (reference %d)\n", x.m, x.n, ref[x.m])
				mismatch = true
				continue
			}
			fmt.Printf("%s: %d\n", x.m, x.n)
		}
		if ref != nil && len(ref) != len(div) {
			fmt.Printf("move count differs: %d here, %d in reference\n", len(div), len(ref))
			mismatch = true
		}
		fmt.Printf("Total: %d\n", sum)
		if mismatch {
			os.Exit(1)
		}
		return
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += chessmg.Perft(board, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Label Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	if *verify {
		ref := dragontoothmg.ParseFen(board.FEN())
		want := referencePerft(&ref, *depth) * uint64(*repeat)
		if want != totalNodes {
			fmt.Fprintf(os.Stderr, "perft mismatch: %d here, %d from dragontoothmg\n", totalNodes, want)
			os.Exit(1)
		}
		fmt.Println("verified against dragontoothmg")
	}

	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating memprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "write heap profile: %v\n", err)
			os.Exit(2)
		}
		_ = f.Close()
	}
}

func referencePerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var n uint64
	for _, m := range moves {
		undo := b.Apply(m)
		n += referencePerft(b, depth-1)
		undo()
	}
	return n
}

func referenceDivide(fen string, depth int) map[string]uint64 {
	b := dragontoothmg.ParseFen(fen)
	out := make(map[string]uint64)
	for _, m := range b.GenerateLegalMoves() {
		undo := b.Apply(m)
		out[m.String()] = referencePerft(&b, depth-1)
		undo()
	}
	return out
}
