package engine

import (
	"testing"
	"time"
)

func TestAllocateMs(t *testing.T) {
	tests := []struct {
		name                     string
		rem, inc, movesToGo, phs int
		want                     int
	}{
		{"sudden death opening", 60000, 0, 0, TotalPhase, 1500},
		{"moves to go", 60000, 0, 10, TotalPhase, 6000},
		{"increment", 60000, 1000, 0, TotalPhase, 60000/45 + 1000},
		{"endgame increment", 60000, 1000, 0, 0, 60000/20 + 1000},
		{"panic lives on increment", 800, 1000, 0, TotalPhase, 560},
		{"floor", 100, 0, 0, TotalPhase, minMoveMs},
		{"capped by remaining", 1000, 0, 1, TotalPhase, 700},
	}
	for _, tc := range tests {
		if got := allocateMs(tc.rem, tc.inc, tc.movesToGo, tc.phs); got != tc.want {
			t.Errorf("%s: allocateMs = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestTimeHandlerDeadlines(t *testing.T) {
	b := mustFEN(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")

	var th TimeHandler
	th.StartTime(Limits{Depth: 5}, b)
	if th.TimeStatus() || th.SoftTimeExceeded() {
		t.Fatalf("depth-only search has a deadline")
	}

	th.StartTime(Limits{Infinite: true, MoveTime: time.Millisecond}, b)
	time.Sleep(2 * time.Millisecond)
	if th.TimeStatus() {
		t.Fatalf("infinite search timed out")
	}

	th.StartTime(Limits{MoveTime: time.Millisecond}, b)
	time.Sleep(3 * time.Millisecond)
	if !th.TimeStatus() || !th.SoftTimeExceeded() {
		t.Fatalf("movetime deadline not reached")
	}

	th.StartTime(Limits{WTime: time.Hour, BTime: time.Millisecond}, b)
	if th.TimeStatus() {
		t.Fatalf("white's clock should govern when white is to move")
	}
}
