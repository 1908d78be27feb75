package flappy

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/skyflap/internal/config"
	"github.com/vovakirdan/skyflap/internal/core"
)

// Role tells the two halves of a pair apart.
type Role int

const (
	RoleTop Role = iota
	RoleBottom
)

// Obstacle is one half of a building pair. X and Y are the center.
// Scored is only meaningful on the Top half.
type Obstacle struct {
	Pair      int
	Role      Role
	X, Y      float64
	Width     float64
	Height    float64
	GapCenter float64
	Scored    bool
}

// Box returns the collision box.
func (o Obstacle) Box() core.Box {
	return core.NewBox(o.X, o.Y, o.Width, o.Height)
}

// Right returns the trailing edge.
func (o Obstacle) Right() float64 {
	return o.X + o.Width/2
}

// Ledger holds the live obstacles in spawn order.
type Ledger struct {
	items []Obstacle
}

// Add appends obstacles to the ledger.
func (l *Ledger) Add(obs ...Obstacle) {
	l.items = append(l.items, obs...)
}

// Advance moves every obstacle left by delta and removes the ones whose
// trailing edge passed cull. Removal compacts in place and keeps order.
// It returns the number of removed obstacles.
func (l *Ledger) Advance(delta, cull float64) int {
	for i := range l.items {
		l.items[i].X -= delta
	}

	kept := l.items[:0]
	for _, o := range l.items {
		if o.Right() >= cull {
			kept = append(kept, o)
		}
	}
	removed := len(l.items) - len(kept)
	clear(l.items[len(kept):])
	l.items = kept
	return removed
}

// Clear removes every obstacle.
func (l *Ledger) Clear() {
	clear(l.items)
	l.items = l.items[:0]
}

// Len returns the number of live obstacles.
func (l *Ledger) Len() int {
	return len(l.items)
}

// Items returns the live obstacles. The slice aliases the ledger and is
// only valid until the next Add, Advance or Clear.
func (l *Ledger) Items() []Obstacle {
	return l.items
}

// Spawner generates building pairs with a bounded random gap.
type Spawner struct {
	world    config.WorldConfig
	obs      config.ObstacleConfig
	rng      *rand.Rand
	strict   bool
	logger   *log.Logger
	nextPair int
}

// NewSpawner creates a spawner. In strict mode inconsistent tunables panic;
// otherwise they are clamped and logged.
func NewSpawner(cfg config.FlappyConfig, seed int64, strict bool, logger *log.Logger) *Spawner {
	return &Spawner{
		world:  cfg.World,
		obs:    cfg.Obstacles,
		rng:    rand.New(rand.NewSource(seed)),
		strict: strict,
		logger: logger,
	}
}

// GapBounds returns the range the gap center must stay in for gap so that
// both halves keep at least MinPipeHeight of building.
func (s *Spawner) GapBounds(gap float64) (lo, hi float64) {
	lo = s.obs.MinPipeHeight + gap/2
	hi = s.world.GroundTop() - s.obs.MinPipeHeight - gap/2
	return lo, hi
}

// Spawn appends a new pair to l and records its gap center in st.
func (s *Spawner) Spawn(st *State, l *Ledger) (top, bottom Obstacle) {
	if math.IsNaN(st.PipeGap) || math.IsInf(st.PipeGap, 0) {
		s.inconsistent(fmt.Errorf("%w: pipe gap %v", config.ErrInvalidTunables, st.PipeGap))
		st.PipeGap = math.Max(0, s.world.GroundTop()-2*s.obs.MinPipeHeight)
	}
	gap := st.PipeGap
	groundTop := s.world.GroundTop()
	center := s.drawCenter(st)
	st.LastGapCenter = center

	topH := math.Max(s.obs.MinSegmentHeight, center-gap/2)
	bottomH := math.Max(s.obs.MinSegmentHeight, groundTop-(center+gap/2))
	x := s.world.Width + s.obs.PipeWidth

	s.nextPair++
	top = Obstacle{
		Pair:      s.nextPair,
		Role:      RoleTop,
		X:         x,
		Y:         topH / 2,
		Width:     s.obs.CollisionWidth,
		Height:    topH,
		GapCenter: center,
	}
	bottom = Obstacle{
		Pair:      s.nextPair,
		Role:      RoleBottom,
		X:         x,
		Y:         groundTop - bottomH/2,
		Width:     s.obs.CollisionWidth,
		Height:    bottomH,
		GapCenter: center,
	}
	l.Add(top, bottom)
	return top, bottom
}

// drawCenter picks an integer gap center within MaxGapShift of the previous
// one and inside the absolute bounds.
func (s *Spawner) drawCenter(st *State) float64 {
	absMin, absMax := s.GapBounds(st.PipeGap)
	shift := st.MaxGapShift

	// Negated so NaN takes the clamp branch
	if !(absMin <= absMax) || !(shift >= 0) {
		s.inconsistent(fmt.Errorf("%w: gap %v leaves bounds [%v, %v], shift %v",
			config.ErrInvalidTunables, st.PipeGap, absMin, absMax, shift))
		if !(absMin <= absMax) {
			return (absMin + absMax) / 2
		}
		shift = 0
	}

	// A gap change may leave the previous center outside the new bounds
	last := core.ClampF(st.LastGapCenter, absMin, absMax)
	lo := math.Max(absMin, last-shift)
	hi := math.Min(absMax, last+shift)

	loI, hiI := math.Ceil(lo), math.Floor(hi)
	if hiI < loI {
		// No integer in a window narrower than one unit
		return lo
	}
	return loI + float64(s.rng.Intn(int(hiI-loI)+1))
}

// inconsistent panics in strict mode and logs otherwise.
func (s *Spawner) inconsistent(err error) {
	if s.strict {
		panic(err)
	}
	s.logger.Warn("clamping inconsistent tunables", "error", err)
}
