package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"chess-core/chessmg"
)

func main() {
	seed := flag.Int64("seed", 0x6D61676963, "random seed for the search")
	slider := flag.String("slider", "both", "rook, bishop or both")
	flag.Parse()

	var sliders []chessmg.Slider
	switch strings.ToLower(*slider) {
	case "rook":
		sliders = []chessmg.Slider{chessmg.RookSlider}
	case "bishop":
		sliders = []chessmg.Slider{chessmg.BishopSlider}
	case "both":
		sliders = []chessmg.Slider{chessmg.RookSlider, chessmg.BishopSlider}
	default:
		fmt.Fprintf(os.Stderr, "unknown -slider %q\n", *slider)
		os.Exit(2)
	}

	rng := rand.New(rand.NewSource(*seed))
	for _, s := range sliders {
		start := time.Now()
		fmt.Printf("var %sMagicNumbers = [64]uint64{\n", s)
		for sq := chessmg.A1; sq <= chessmg.H8; sq++ {
			magic, err := chessmg.FindMagic(sq, s, rng)
			if err != nil {
				log.Fatalf("%s %s: %v", s, sq, err)
			}
			fmt.Printf("\t0x%016X, // %s\n", magic, sq)
		}
		fmt.Println("}")
		fmt.Fprintf(os.Stderr, "%s magics found in %v\n", s, time.Since(start))
	}
}
