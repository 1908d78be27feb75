package flappy

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/skyflap/internal/config"
)

func TestSpawnInvariants(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	s := NewSpawner(cfg, 7, true, quiet())
	trial := rand.New(rand.NewSource(99))
	groundTop := cfg.World.GroundTop()

	for i := 0; i < 1000; i++ {
		var l Ledger
		st := State{
			Tunables: config.Tunables{
				PipeGap:     float64(110 + trial.Intn(61)),
				MaxGapShift: float64(80 + trial.Intn(41)),
			},
			LastGapCenter: float64(trial.Intn(int(groundTop))),
		}
		absMin, absMax := s.GapBounds(st.PipeGap)
		last := math.Max(absMin, math.Min(absMax, st.LastGapCenter))

		top, bottom := s.Spawn(&st, &l)

		if top.Height < 10 || bottom.Height < 10 {
			t.Fatalf("trial %d: heights %v/%v below 10", i, top.Height, bottom.Height)
		}
		gap := (bottom.Y - bottom.Height/2) - (top.Y + top.Height/2)
		if gap != st.PipeGap {
			t.Fatalf("trial %d: gap %v, expected exactly %v", i, gap, st.PipeGap)
		}
		center := top.GapCenter
		if center != math.Trunc(center) {
			t.Fatalf("trial %d: gap center %v is not an integer", i, center)
		}
		if center < absMin || center > absMax {
			t.Fatalf("trial %d: center %v outside [%v, %v]", i, center, absMin, absMax)
		}
		if math.Abs(center-last) > st.MaxGapShift {
			t.Fatalf("trial %d: center %v drifted more than %v from %v", i, center, st.MaxGapShift, last)
		}
		if st.LastGapCenter != center {
			t.Fatalf("trial %d: LastGapCenter not updated", i)
		}
		if top.Height < cfg.Obstacles.MinPipeHeight || bottom.Height < cfg.Obstacles.MinPipeHeight {
			t.Fatalf("trial %d: segment shorter than the minimum pipe height", i)
		}
	}
}

func TestSpawnPlacement(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	s := NewSpawner(cfg, 1, true, quiet())
	var l Ledger
	st := State{Tunables: cfg.Difficulty.Initial, LastGapCenter: 320}

	top, bottom := s.Spawn(&st, &l)

	if top.X != 430 || bottom.X != 430 {
		t.Errorf("spawn x = %v/%v, expected world width + pipe width = 430", top.X, bottom.X)
	}
	if top.Width != 78 || bottom.Width != 78 {
		t.Errorf("collision width = %v, expected 78", top.Width)
	}
	if top.Role != RoleTop || bottom.Role != RoleBottom || top.Pair != bottom.Pair {
		t.Error("spawned halves do not form a pair")
	}
	if top.Scored || bottom.Scored {
		t.Error("new pair must be unscored")
	}
	if top.Y-top.Height/2 != 0 {
		t.Error("top half must hang from the top of the world")
	}
	if bottom.Y+bottom.Height/2 != cfg.World.GroundTop() {
		t.Error("bottom half must stand on the ground")
	}
	if l.Len() != 2 {
		t.Errorf("ledger has %d obstacles, expected 2", l.Len())
	}
}

func TestSpawnNarrowWindow(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	s := NewSpawner(cfg, 3, true, quiet())
	st := State{
		Tunables:      config.Tunables{PipeGap: 170, MaxGapShift: 0},
		LastGapCenter: 200,
	}
	var l Ledger
	for i := 0; i < 10; i++ {
		top, _ := s.Spawn(&st, &l)
		if top.GapCenter != 200 {
			t.Fatalf("zero shift moved the gap to %v", top.GapCenter)
		}
	}
}

func TestSpawnInconsistentTunablesStrict(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	s := NewSpawner(cfg, 1, true, quiet())
	st := State{Tunables: config.Tunables{PipeGap: 450, MaxGapShift: 100}, LastGapCenter: 320}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic in strict mode")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, config.ErrInvalidTunables) {
			t.Errorf("panic value %v, expected ErrInvalidTunables", r)
		}
	}()
	var l Ledger
	s.Spawn(&st, &l)
}

func TestSpawnInconsistentTunablesClamped(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	s := NewSpawner(cfg, 1, false, quiet())
	st := State{Tunables: config.Tunables{PipeGap: 450, MaxGapShift: 100}, LastGapCenter: 320}

	var l Ledger
	top, bottom := s.Spawn(&st, &l)

	// Bounds [305, 255] collapse to their midpoint
	if top.GapCenter != 280 {
		t.Errorf("GapCenter = %v, expected 280", top.GapCenter)
	}
	if top.Height < 10 || bottom.Height < 10 {
		t.Errorf("clamped heights %v/%v below the floor", top.Height, bottom.Height)
	}

	// Negative shift is treated as no drift
	st = State{Tunables: config.Tunables{PipeGap: 170, MaxGapShift: -5}, LastGapCenter: 250}
	if top, _ := s.Spawn(&st, &l); top.GapCenter != 250 {
		t.Errorf("GapCenter = %v with negative shift, expected 250", top.GapCenter)
	}
}

func TestSpawnNonFiniteTunables(t *testing.T) {
	cfg := config.DefaultFlappyConfig()

	t.Run("clamped", func(t *testing.T) {
		s := NewSpawner(cfg, 1, false, quiet())
		var l Ledger

		st := State{Tunables: config.Tunables{PipeGap: math.NaN(), MaxGapShift: 100}, LastGapCenter: 320}
		top, bottom := s.Spawn(&st, &l)
		// The widest legal gap, 560 - 2*80, leaves a single center
		if st.PipeGap != 400 || top.GapCenter != 280 {
			t.Errorf("gap %v center %v, expected 400 and 280", st.PipeGap, top.GapCenter)
		}
		if math.IsNaN(top.Height) || math.IsNaN(bottom.Height) {
			t.Errorf("NaN heights %v/%v", top.Height, bottom.Height)
		}

		st = State{Tunables: config.Tunables{PipeGap: 170, MaxGapShift: math.NaN()}, LastGapCenter: 250}
		if top, _ := s.Spawn(&st, &l); top.GapCenter != 250 {
			t.Errorf("GapCenter = %v with NaN shift, expected 250", top.GapCenter)
		}
	})

	t.Run("strict", func(t *testing.T) {
		s := NewSpawner(cfg, 1, true, quiet())
		st := State{Tunables: config.Tunables{PipeGap: math.Inf(1), MaxGapShift: 100}, LastGapCenter: 320}
		defer func() {
			if err, ok := recover().(error); !ok || !errors.Is(err, config.ErrInvalidTunables) {
				t.Errorf("expected an ErrInvalidTunables panic, got %v", err)
			}
		}()
		var l Ledger
		s.Spawn(&st, &l)
	})
}

func TestSpawnDeterministic(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	a := NewSpawner(cfg, 5, true, quiet())
	b := NewSpawner(cfg, 5, true, quiet())
	sa := State{Tunables: cfg.Difficulty.Initial, LastGapCenter: 320}
	sb := sa
	var la, lb Ledger

	for i := 0; i < 50; i++ {
		ta, _ := a.Spawn(&sa, &la)
		tb, _ := b.Spawn(&sb, &lb)
		if ta != tb {
			t.Fatalf("spawn %d differs: %+v vs %+v", i, ta, tb)
		}
	}
}

func TestLedgerAdvanceAndCull(t *testing.T) {
	var l Ledger
	l.Add(
		Obstacle{Pair: 1, X: -40, Width: 78}, // right edge -1
		Obstacle{Pair: 2, X: 0, Width: 78},   // right edge 39
		Obstacle{Pair: 3, X: 200, Width: 78},
	)

	if removed := l.Advance(40, -80); removed != 0 {
		t.Fatalf("removed %d, expected 0", removed)
	}
	// Pair 1 right edge is now -41; 39 more puts it exactly on the threshold
	l.Advance(39, -80)
	if l.Len() != 3 {
		t.Fatalf("obstacle at the threshold was culled")
	}
	if removed := l.Advance(0.5, -80); removed != 1 {
		t.Fatalf("removed %d, expected 1", removed)
	}

	items := l.Items()
	if len(items) != 2 || items[0].Pair != 2 || items[1].Pair != 3 {
		t.Errorf("survivors out of order: %+v", items)
	}
	if items[1].X != 200-79.5 {
		t.Errorf("X = %v, expected %v", items[1].X, 200-79.5)
	}
}

func TestLedgerClear(t *testing.T) {
	var l Ledger
	l.Add(Obstacle{Pair: 1}, Obstacle{Pair: 1})
	l.Clear()
	if l.Len() != 0 {
		t.Errorf("Len() = %d after Clear", l.Len())
	}
}
