package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"chess-core/internal/testutil"
)

// run executes a command and prints its combined output. Returns exit code.
func run(name string, args ...string) int {
	cmd := exec.Command(name, args...)
	cmd.Env = os.Environ()
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	fmt.Print(out.String())
	if err == nil {
		return 0
	}
	if ee, ok := err.(*exec.ExitError); ok {
		return ee.ExitCode()
	}
	fmt.Fprintf(os.Stderr, "error running %s: %v\n", name, err)
	return 1
}

// maxBenchDepth keeps each reference position to a few seconds.
var maxBenchDepth = map[string]int{
	"start":    5,
	"kiwipete": 4,
}

func main() {
	// Run all benchmarks in bench/ with benchmem.
	// Usage: go run ./cmd/benchrun
	// Format: BenchmarkName  Iterations  ns/op  B/op  allocs/op
	fmt.Println("Columns: BENCHMARK  N  ns/op  B/op  allocs/op")
	code := run("go", "test", "./bench", "-run", "^$", "-bench", ".", "-benchmem", "-benchtime=1s")
	if code != 0 {
		os.Exit(code)
	}

	// Perft throughput over the reference positions, checked against the known counts.
	fmt.Println("\nPerft Performance:")
	fmt.Println("TEST \t\tDepth \t\tNodes \t\tTime \tNPS")
	failed := false
	for _, p := range testutil.PerftPositions {
		limit, ok := maxBenchDepth[p.Name]
		if !ok {
			limit = 3
		}
		depth := 0
		for d := range p.Nodes {
			if d <= limit && d > depth {
				depth = d
			}
		}
		if depth == 0 {
			continue
		}
		if run("go", "run", "./cmd/perft", "-fen", p.FEN, "-depth", strconv.Itoa(depth), "-label", p.Name, "-verify") != 0 {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}
