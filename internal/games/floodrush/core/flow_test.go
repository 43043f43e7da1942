package core_test

import (
	"testing"
	"time"

	"github.com/vovakirdan/floodrush/internal/games/floodrush/core"
)

func kinds(events []core.FlowEvent) []core.FlowEventKind {
	out := make([]core.FlowEventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func lastKind(events []core.FlowEvent) core.FlowEventKind {
	if len(events) == 0 {
		return 255
	}
	return events[len(events)-1].Kind
}

// One piece per second at game speed 1 and speed multiplier 1.
var unitFlow = core.FlowOptions{FillRate: 1}

func TestFlowReachesEnd(t *testing.T) {
	f := lineField(t, 0)
	for x := 1; x <= 3; x++ {
		place(t, f, core.P(x, 0), newPiece(t, core.Straight, core.West, core.East, 10*x))
	}
	flow := core.NewFlow(f, unitFlow)

	events := flow.Advance(2500 * time.Millisecond)
	if got := kinds(events); len(got) != 2 || got[0] != core.PieceFilled || got[1] != core.PieceFilled {
		t.Fatalf("after 2.5s expected two fills, got %v", got)
	}
	if flow.Done() {
		t.Fatal("flow should still be running")
	}
	_, pos, progress := flow.Current()
	if pos != core.P(3, 0) || progress < 0.49 || progress > 0.51 {
		t.Errorf("expected half-filled piece at (3,0), got %v %.2f", pos, progress)
	}

	events = flow.Advance(time.Second)
	if lastKind(events) != core.Reached {
		t.Fatalf("expected Reached, got %v", kinds(events))
	}
	if flow.Outcome() != core.Won {
		t.Errorf("expected Won, got %v", flow.Outcome())
	}
	if pts := f.Level().Points(); pts != 60 {
		t.Errorf("expected 60 points, got %d", pts)
	}

	// A finished flow ignores further time.
	if events := flow.Advance(time.Minute); len(events) != 0 {
		t.Errorf("finished flow should emit nothing, got %v", kinds(events))
	}
}

func TestFlowReversesPieces(t *testing.T) {
	lvl, _ := core.NewLevel(1, dims(t, 3, 1), core.P(2, 0), core.P(0, 0), 1, 0)
	f := core.NewField(lvl)
	piece := newPiece(t, core.Straight, core.West, core.East, 10)
	place(t, f, core.P(1, 0), piece)

	flow := core.NewFlow(f, unitFlow)
	events := flow.Advance(time.Second)
	if lastKind(events) != core.Reached {
		t.Fatalf("expected Reached, got %v", kinds(events))
	}
	if piece.Direction() != core.Reverse || piece.ActualEntryPoint() != core.East {
		t.Errorf("piece should be reversed to enter from East, got %v from %v", piece.Direction(), piece.ActualEntryPoint())
	}
	if piece.State() != core.Full {
		t.Errorf("expected Full, got %v", piece.State())
	}
}

func TestFlowLeaks(t *testing.T) {
	f := lineField(t, 0)
	place(t, f, core.P(1, 0), newPiece(t, core.Straight, core.West, core.East, 15))
	flow := core.NewFlow(f, unitFlow)

	events := flow.Advance(5 * time.Second)
	if got := kinds(events); len(got) != 2 || got[0] != core.PieceFilled || got[1] != core.Leaked {
		t.Fatalf("expected fill then leak, got %v", got)
	}
	if events[1].Position != core.P(2, 0) {
		t.Errorf("expected leak at (2,0), got %v", events[1].Position)
	}
	if flow.Outcome() != core.Lost {
		t.Errorf("expected Lost, got %v", flow.Outcome())
	}
	if f.Level().Points() != 15 {
		t.Errorf("filled piece should still score, got %d", f.Level().Points())
	}
}

func TestFlowLeaksAtStart(t *testing.T) {
	f := lineField(t, 0)
	flow := core.NewFlow(f, core.FlowOptions{FillRate: 1, StartDelay: 2 * time.Second})

	if events := flow.Advance(time.Second); len(events) != 0 {
		t.Fatalf("no event expected before the start delay, got %v", kinds(events))
	}
	if flow.StartsIn() != time.Second {
		t.Errorf("expected 1s until start, got %v", flow.StartsIn())
	}
	events := flow.Advance(time.Second)
	if lastKind(events) != core.Leaked || events[0].Position != core.P(0, 0) {
		t.Fatalf("expected leak at the start tile, got %v", events)
	}
}

func TestFlowTimesOut(t *testing.T) {
	f := lineField(t, 3)
	flow := core.NewFlow(f, core.FlowOptions{FillRate: 1, StartDelay: 10 * time.Second})

	events := flow.Advance(5 * time.Second)
	if lastKind(events) != core.TimedOut {
		t.Fatalf("expected TimedOut, got %v", kinds(events))
	}
	if flow.Elapsed() != 3*time.Second {
		t.Errorf("expected flow to stop at 3s, got %v", flow.Elapsed())
	}
	if left, ok := flow.TimeLeft(); !ok || left != 0 {
		t.Errorf("expected no time left, got %v %v", left, ok)
	}
}

func TestFlowCrossSectionScoredTwice(t *testing.T) {
	// Water runs through the cross at (1,1) West to East, loops round
	// through the top row and crosses again North to South.
	lvl, _ := core.NewLevel(1, dims(t, 3, 3), core.P(0, 1), core.P(1, 2), 1, 0)
	f := core.NewField(lvl)

	cross, _ := core.NewPipeSection(core.P(0, 0), core.CrossSection, core.North, core.South, 1.0, 40, intPtr(70))
	place(t, f, core.P(1, 1), cross)
	place(t, f, core.P(2, 1), newPiece(t, core.Corner, core.West, core.North, 10))
	place(t, f, core.P(2, 0), newPiece(t, core.Corner, core.South, core.West, 10))
	place(t, f, core.P(1, 0), newPiece(t, core.Corner, core.East, core.South, 10))

	path, reached := f.Trace()
	if !reached || len(path) != 4 {
		t.Fatalf("trace: expected 4 cells reaching the end, got %v %v", path, reached)
	}

	flow := core.NewFlow(f, unitFlow)
	events := flow.Advance(10 * time.Second)
	if lastKind(events) != core.Reached {
		t.Fatalf("expected Reached, got %v", kinds(events))
	}

	var crossPoints []int
	for _, e := range events {
		if e.Kind == core.PieceFilled && e.Position == core.P(1, 1) {
			crossPoints = append(crossPoints, e.Points)
		}
	}
	if len(crossPoints) != 2 || crossPoints[0] != 40 || crossPoints[1] != 70 {
		t.Errorf("cross section should score 40 then 70, got %v", crossPoints)
	}
	if cross.FlowCount() != 2 {
		t.Errorf("expected flow count 2, got %d", cross.FlowCount())
	}
	if lvl.Points() != 140 {
		t.Errorf("expected 140 points, got %d", lvl.Points())
	}
}

func TestFlowFastForward(t *testing.T) {
	f := lineField(t, 0)
	for x := 1; x <= 3; x++ {
		place(t, f, core.P(x, 0), newPiece(t, core.Straight, core.West, core.East, 10))
	}
	flow := core.NewFlow(f, core.FlowOptions{FillRate: 1, StartDelay: time.Minute, FastForward: 4})

	flow.FastForward()
	if !flow.FastForwarding() {
		t.Fatal("expected fast forward to be on")
	}
	events := flow.Advance(750 * time.Millisecond)
	if lastKind(events) != core.Reached {
		t.Fatalf("three pieces at 4x should finish in 0.75s, got %v", kinds(events))
	}
}
