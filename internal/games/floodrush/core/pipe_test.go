package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/floodrush/internal/games/floodrush/core"
)

func intPtr(n int) *int { return &n }

func mustPipe(t *testing.T, pt core.PipeType, entry, exit core.Connection, points int, secondary *int) *core.PipeSection {
	t.Helper()
	p, err := core.NewPipeSection(core.P(0, 0), pt, entry, exit, 0.5, points, secondary)
	if err != nil {
		t.Fatalf("NewPipeSection(%v,%v,%v): %v", pt, entry, exit, err)
	}
	return p
}

func TestPipeConnectionCombinations(t *testing.T) {
	straight := map[[2]core.Connection]bool{
		{core.North, core.South}: true,
		{core.South, core.North}: true,
		{core.East, core.West}:   true,
		{core.West, core.East}:   true,
	}

	for _, entry := range core.Connections {
		for _, exit := range core.Connections {
			if entry == exit {
				continue
			}
			pair := [2]core.Connection{entry, exit}

			_, err := core.NewPipeSection(core.P(0, 0), core.Straight, entry, exit, 0.5, 10, nil)
			if straight[pair] && err != nil {
				t.Errorf("Straight %v->%v: unexpected error %v", entry, exit, err)
			}
			if !straight[pair] && !errors.Is(err, core.ErrInvalidConnectionCombination) {
				t.Errorf("Straight %v->%v: expected ErrInvalidConnectionCombination, got %v", entry, exit, err)
			}

			// Corners are exactly the non-opposite pairs.
			_, err = core.NewPipeSection(core.P(0, 0), core.Corner, entry, exit, 0.5, 10, nil)
			if !straight[pair] && err != nil {
				t.Errorf("Corner %v->%v: unexpected error %v", entry, exit, err)
			}
			if straight[pair] && !errors.Is(err, core.ErrInvalidConnectionCombination) {
				t.Errorf("Corner %v->%v: expected ErrInvalidConnectionCombination, got %v", entry, exit, err)
			}

			if _, err := core.NewPipeSection(core.P(0, 0), core.CrossSection, entry, exit, 0.5, 10, intPtr(20)); err != nil {
				t.Errorf("CrossSection %v->%v: unexpected error %v", entry, exit, err)
			}
		}
	}
}

func TestNewPipeSectionValidation(t *testing.T) {
	testCases := []struct {
		name      string
		pipeType  core.PipeType
		entry     core.Connection
		exit      core.Connection
		speed     float64
		points    int
		secondary *int
		want      error
	}{
		{"straight needs opposite sides", core.Straight, core.North, core.East, 0.5, 10, nil, core.ErrInvalidConnectionCombination},
		{"cross without secondary", core.CrossSection, core.North, core.South, 0.5, 10, nil, core.ErrMissingSecondaryPoints},
		{"negative secondary", core.CrossSection, core.North, core.South, 0.5, 10, intPtr(-1), core.ErrInvalidSecondaryPoints},
		{"speed above one", core.Straight, core.North, core.South, 1.5, 10, nil, core.ErrInvalidSpeedMultiplier},
		{"speed below zero", core.Straight, core.North, core.South, -0.1, 10, nil, core.ErrInvalidSpeedMultiplier},
		{"negative points", core.Straight, core.North, core.South, 0.5, -1, nil, core.ErrInvalidPoints},
		{"same entry and exit", core.Corner, core.East, core.East, 0.5, 10, nil, core.ErrSameEntryExit},
		{"speed checked before points", core.Straight, core.North, core.North, 2, -1, nil, core.ErrInvalidSpeedMultiplier},
		{"points checked before connections", core.Straight, core.North, core.North, 0.5, -1, nil, core.ErrInvalidPoints},
		{"secondary checked before connections", core.CrossSection, core.North, core.North, 0.5, 1, nil, core.ErrMissingSecondaryPoints},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := core.NewPipeSection(core.P(0, 0), tc.pipeType, tc.entry, tc.exit, tc.speed, tc.points, tc.secondary)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if p != nil {
				t.Error("no piece should be returned on error")
			}
		})
	}
}

func TestNonCrossIgnoresSecondary(t *testing.T) {
	p := mustPipe(t, core.Straight, core.West, core.East, 10, intPtr(50))
	if _, ok := p.SecondaryPoints(); ok {
		t.Error("straight piece should not keep secondary points")
	}
}

func TestPipeLifecycle(t *testing.T) {
	p := mustPipe(t, core.Straight, core.North, core.South, 10, nil)
	if p.State() != core.Idle {
		t.Fatalf("new piece should be Idle, got %v", p.State())
	}

	steps := []struct {
		op   func() error
		want core.PipeState
	}{
		{p.Place, core.Placed},
		{p.Connect, core.Connected},
		{p.StartFlow, core.Flowing},
		{p.CompleteFill, core.Full},
	}
	for _, s := range steps {
		if err := s.op(); err != nil {
			t.Fatalf("transition to %v failed: %v", s.want, err)
		}
		if p.State() != s.want {
			t.Fatalf("expected %v, got %v", s.want, p.State())
		}
	}
	if p.FlowCount() != 1 {
		t.Errorf("expected flow count 1, got %d", p.FlowCount())
	}
}

func TestPipeOutOfOrderTransitions(t *testing.T) {
	ops := map[string]func(*core.PipeSection) error{
		"place":         (*core.PipeSection).Place,
		"connect":       (*core.PipeSection).Connect,
		"start flow":    (*core.PipeSection).StartFlow,
		"complete fill": (*core.PipeSection).CompleteFill,
	}
	// Allowed operation per state.
	allowed := map[core.PipeState]string{
		core.Idle:      "place",
		core.Placed:    "connect",
		core.Connected: "start flow",
		core.Flowing:   "complete fill",
		core.Full:      "",
	}
	order := []string{"place", "connect", "start flow", "complete fill"}

	for state, ok := range allowed {
		for name, op := range ops {
			if name == ok {
				continue
			}
			p := mustPipe(t, core.Corner, core.North, core.East, 10, nil)
			for _, step := range order[:int(state)] {
				if err := ops[step](p); err != nil {
					t.Fatalf("setup %s: %v", step, err)
				}
			}
			err := op(p)
			if !errors.Is(err, core.ErrInvalidTransition) {
				t.Errorf("%s in %v: expected ErrInvalidTransition, got %v", name, state, err)
			}
			if p.State() != state {
				t.Errorf("%s in %v: state changed to %v", name, state, p.State())
			}

			var terr *core.TransitionError
			if errors.As(err, &terr) && terr.State != state {
				t.Errorf("%s in %v: error reports state %v", name, state, terr.State)
			}
		}
	}
}

func TestPipeReset(t *testing.T) {
	straight := func() *core.PipeSection {
		return mustPipe(t, core.Straight, core.West, core.East, 10, nil)
	}
	cross := func() *core.PipeSection {
		return mustPipe(t, core.CrossSection, core.North, core.South, 10, intPtr(20))
	}
	type step func(*core.PipeSection) error
	place := (*core.PipeSection).Place
	connect := (*core.PipeSection).Connect
	flow := (*core.PipeSection).StartFlow
	fill := (*core.PipeSection).CompleteFill
	reverse := (*core.PipeSection).ReverseDirection

	testCases := []struct {
		name      string
		piece     func() *core.PipeSection
		steps     []step
		state     core.PipeState
		flowCount int
	}{
		{"idle", straight, nil, core.Idle, 0},
		{"placed", straight, []step{reverse, place}, core.Placed, 0},
		{"connected", straight, []step{place, reverse, connect}, core.Connected, 0},
		{"flowing", straight, []step{reverse, place, connect, flow}, core.Flowing, 1},
		{"full", straight, []step{reverse, place, connect, flow, fill}, core.Full, 1},
		{"cross full twice", cross, []step{reverse, place, connect, flow, fill, flow, fill}, core.Full, 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.piece()
			for i, s := range tc.steps {
				if err := s(p); err != nil {
					t.Fatalf("step %d: %v", i, err)
				}
			}
			if p.State() != tc.state || p.FlowCount() != tc.flowCount {
				t.Fatalf("setup reached %v with flow count %d, expected %v/%d", p.State(), p.FlowCount(), tc.state, tc.flowCount)
			}

			p.Reset()
			if p.State() != core.Idle {
				t.Errorf("expected Idle after reset, got %v", p.State())
			}
			if p.FlowCount() != 0 {
				t.Errorf("expected flow count 0 after reset, got %d", p.FlowCount())
			}
			if p.Direction() != core.Default {
				t.Errorf("expected Default direction after reset, got %v", p.Direction())
			}
			if err := p.Place(); err != nil {
				t.Errorf("a reset piece should be placeable again: %v", err)
			}
		})
	}
}

func TestPipeReverseDirection(t *testing.T) {
	p := mustPipe(t, core.Corner, core.North, core.East, 10, nil)

	if err := p.ReverseDirection(); err != nil {
		t.Fatalf("reverse while Idle: %v", err)
	}
	if p.ActualEntryPoint() != core.East || p.ActualExitPoint() != core.North {
		t.Errorf("reversed piece should enter East and exit North, got %v->%v", p.ActualEntryPoint(), p.ActualExitPoint())
	}

	_ = p.Place()
	_ = p.Connect()
	if err := p.ReverseDirection(); err != nil {
		t.Fatalf("reverse while Connected: %v", err)
	}
	if p.ActualEntryPoint() != core.North {
		t.Errorf("double reverse should restore entry North, got %v", p.ActualEntryPoint())
	}

	_ = p.StartFlow()
	if err := p.ReverseDirection(); !errors.Is(err, core.ErrCannotReverseWhileFlowing) {
		t.Errorf("reverse while Flowing: expected ErrCannotReverseWhileFlowing, got %v", err)
	}
	_ = p.CompleteFill()
	if err := p.ReverseDirection(); !errors.Is(err, core.ErrCannotReverseWhileFlowing) {
		t.Errorf("reverse while Full: expected ErrCannotReverseWhileFlowing, got %v", err)
	}
	if p.Direction() != core.Default {
		t.Errorf("failed reverse should not change direction")
	}
}

func TestCrossSectionScoring(t *testing.T) {
	p := mustPipe(t, core.CrossSection, core.North, core.South, 40, intPtr(70))
	_ = p.Place()
	_ = p.Connect()

	if err := p.StartFlow(); err != nil {
		t.Fatalf("first flow: %v", err)
	}
	if got := p.PointsForCurrentFlow(); got != 40 {
		t.Errorf("first flow should score primary points 40, got %d", got)
	}
	if err := p.CompleteFill(); err != nil {
		t.Fatalf("first fill: %v", err)
	}

	if !p.CanAcceptFlow() {
		t.Error("cross section should accept a second flow")
	}
	if err := p.StartFlow(); err != nil {
		t.Fatalf("second flow: %v", err)
	}
	if p.FlowCount() != 2 {
		t.Errorf("expected flow count 2, got %d", p.FlowCount())
	}
	if got := p.PointsForCurrentFlow(); got != 70 {
		t.Errorf("second flow should score secondary points 70, got %d", got)
	}

	err := p.StartFlow()
	if !errors.Is(err, core.ErrFlowCapacityExceeded) {
		t.Errorf("third flow: expected ErrFlowCapacityExceeded, got %v", err)
	}
	if p.FlowCount() != 2 {
		t.Errorf("failed flow should not change flow count, got %d", p.FlowCount())
	}
}

func TestSingleFlowPieceRejectsSecondFlow(t *testing.T) {
	p := mustPipe(t, core.Straight, core.North, core.South, 10, nil)
	_ = p.Place()
	_ = p.Connect()
	_ = p.StartFlow()
	_ = p.CompleteFill()

	if p.CanAcceptFlow() {
		t.Error("full straight piece should not accept flow")
	}
	if err := p.StartFlow(); !errors.Is(err, core.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
	if p.MaxFlowCount() != 1 {
		t.Errorf("expected max flow count 1, got %d", p.MaxFlowCount())
	}
}

func TestPipeCanBeRemoved(t *testing.T) {
	p := mustPipe(t, core.Straight, core.North, core.South, 10, nil)
	want := []bool{false, true, true, false, false}
	ops := []func() error{p.Place, p.Connect, p.StartFlow, p.CompleteFill}

	for i, w := range want {
		if got := p.CanBeRemoved(); got != w {
			t.Errorf("CanBeRemoved in %v: expected %v, got %v", p.State(), w, got)
		}
		if i < len(ops) {
			_ = ops[i]()
		}
	}
}

func TestPipeRoute(t *testing.T) {
	corner := mustPipe(t, core.Corner, core.South, core.West, 10, nil)
	if out, ok := corner.Route(core.South); !ok || out != core.West {
		t.Errorf("corner from South: got %v, %v", out, ok)
	}
	if out, ok := corner.Route(core.West); !ok || out != core.South {
		t.Errorf("corner from West: got %v, %v", out, ok)
	}
	if _, ok := corner.Route(core.North); ok {
		t.Error("corner should not route from North")
	}

	cross := mustPipe(t, core.CrossSection, core.North, core.South, 10, intPtr(10))
	if out, ok := cross.Route(core.East); !ok || out != core.West {
		t.Errorf("cross from East: got %v, %v", out, ok)
	}
	if out, ok := cross.Route(core.North); !ok || out != core.South {
		t.Errorf("cross from North: got %v, %v", out, ok)
	}
}

func TestPipeSetCoordinate(t *testing.T) {
	p := mustPipe(t, core.Straight, core.North, core.South, 10, nil)
	if err := p.SetCoordinate(core.P(3, 4)); err != nil {
		t.Fatalf("SetCoordinate while Idle: %v", err)
	}
	if p.Coordinate() != core.P(3, 4) {
		t.Errorf("expected (3,4), got %v", p.Coordinate())
	}
	_ = p.Place()
	if err := p.SetCoordinate(core.P(1, 1)); !errors.Is(err, core.ErrInvalidTransition) {
		t.Errorf("SetCoordinate while Placed: expected ErrInvalidTransition, got %v", err)
	}
}
