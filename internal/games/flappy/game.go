package flappy

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/skyflap/internal/config"
	"github.com/vovakirdan/skyflap/internal/core"
	"github.com/vovakirdan/skyflap/internal/platform/services"
)

// Options configure a Controller. Zero values pick working defaults.
type Options struct {
	Config   config.FlappyConfig
	Seed     int64
	Store    ScoreStore        // nil keeps the best score in memory
	Services services.Services // nil means offline
	Ads      *services.AdGate  // nil skips ad breaks
	Logger   *log.Logger
	Strict   bool // Panic on inconsistent tunables instead of clamping

	// Runner executes platform calls. The default starts a goroutine;
	// tests pass a synchronous runner.
	Runner  func(func())
	Context context.Context
}

// Controller runs one player's game.
// All methods except those documented otherwise must be called from the
// goroutine that calls Update.
type Controller struct {
	cfg     config.FlappyConfig
	policy  *config.DifficultyPolicy
	spawner *Spawner
	ledger  Ledger
	timers  Scheduler
	player  Player
	state   State

	store  ScoreStore
	svc    services.Services
	ads    *services.AdGate
	logger *log.Logger
	run    func(func())
	ctx    context.Context

	life           int
	paused         bool
	restartPending bool
	spawnTimer     TimerID
	hoverMs        float64

	mu    sync.Mutex
	inbox []func()
}

// NewController creates a game in the Idle phase with the stored best score.
func NewController(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	store := opts.Store
	if store == nil {
		store = &memoryStore{}
	}
	run := opts.Runner
	if run == nil {
		run = func(fn func()) { go fn() }
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	c := &Controller{
		cfg:     opts.Config,
		policy:  config.NewDifficultyPolicy(opts.Config.Difficulty, opts.Config.Player.Height),
		spawner: NewSpawner(opts.Config, opts.Seed, opts.Strict, logger),
		store:   store,
		svc:     services.NewGuard(opts.Services, logger),
		ads:     opts.Ads,
		logger:  logger,
		run:     run,
		ctx:     ctx,
	}
	c.state.BestScore = store.Read()
	c.Reset()
	return c
}

// Update advances the game by dt. Platform results that arrived since the
// last frame are applied first.
func (c *Controller) Update(dt time.Duration) {
	c.drain()
	if c.paused || dt < 0 {
		return
	}

	ms := float64(dt) / float64(time.Millisecond)
	switch c.state.Phase {
	case PhaseIdle:
		c.hoverMs += ms
		c.player.Y = c.cfg.Player.StartY + hoverOffset(c.hoverMs, c.cfg.Player)
	case PhasePlaying:
		c.step(ms)
	}
}

func (c *Controller) step(ms float64) {
	secs := ms / 1000

	c.timers.Advance(ms)
	c.ledger.Advance(c.state.ScrollSpeed*secs, c.cfg.World.CullThreshold)

	c.player.Integrate(secs, c.cfg.Physics)
	c.player.ClampCeiling()

	if c.player.Bottom() >= c.cfg.World.GroundTop() {
		c.die("ground")
		return
	}

	if c.collides() {
		c.die("building")
		return
	}

	c.scorePass()
}

func (c *Controller) collides() bool {
	box := c.player.Box()
	for _, o := range c.ledger.Items() {
		if box.Intersects(o.Box()) {
			return true
		}
	}
	return false
}

// scorePass awards a point for every Top obstacle whose trailing edge has
// passed the player's leading edge.
func (c *Controller) scorePass() {
	lead := c.player.X - c.player.Width/2
	passed := 0
	items := c.ledger.Items()
	for i := range items {
		o := &items[i]
		if o.Role != RoleTop || o.Scored {
			continue
		}
		if o.Right() < lead {
			o.Scored = true
			passed++
		}
	}
	// Points go in after the walk: a milestone can spawn and grow the ledger.
	for range passed {
		c.addPoint()
	}
}

func (c *Controller) addPoint() {
	c.state.Score++
	if !c.policy.IsMilestone(c.state.Score) {
		return
	}
	c.state.Tunables = c.policy.Apply(c.state.Tunables)
	c.logger.Debug("difficulty up",
		"score", c.state.Score,
		"speed", c.state.ScrollSpeed,
		"gap", c.state.PipeGap,
		"interval_ms", c.state.SpawnIntervalMs,
		"shift", c.state.MaxGapShift,
	)
	c.startSpawning()
}

// Flap starts the game from Idle or flaps while Playing.
// It is ignored after game over; restarting needs RequestRestart.
func (c *Controller) Flap() {
	if c.paused {
		return
	}
	switch c.state.Phase {
	case PhaseIdle:
		c.start()
	case PhasePlaying:
		c.player.Flap(c.cfg.Physics.JumpImpulse)
	}
}

func (c *Controller) start() {
	c.ledger.Clear()
	c.state.Phase = PhasePlaying
	c.player.Y = c.cfg.Player.StartY + hoverOffset(c.hoverMs, c.cfg.Player)
	c.player.Gravity = true
	c.player.Flap(c.cfg.Physics.JumpImpulse)
	c.timers.After(float64(c.cfg.Obstacles.StartDelayMs), c.guarded(c.startSpawning))
	c.logger.Debug("game started", "life", c.life)
}

// startSpawning replaces the spawn cadence with one matching the current
// tunables and spawns a pair right away.
func (c *Controller) startSpawning() {
	c.timers.Cancel(c.spawnTimer)
	interval := config.SpawnCadenceMs(c.state.Tunables, c.cfg.Obstacles.MinSpacing)
	c.spawnTimer = c.timers.Every(interval, c.guarded(c.spawn))
	c.spawn()
}

func (c *Controller) spawn() {
	c.spawner.Spawn(&c.state, &c.ledger)
}

// guarded wraps a timer callback so that it only runs while the life that
// scheduled it is still being played.
func (c *Controller) guarded(fn func()) func() {
	life := c.life
	return func() {
		if c.state.Phase != PhasePlaying || c.life != life {
			return
		}
		fn()
	}
}

// Die ends the current life. Calling it when not Playing does nothing.
func (c *Controller) Die() {
	c.die("requested")
}

func (c *Controller) die(cause string) {
	if c.state.Phase != PhasePlaying {
		return
	}
	c.state.Phase = PhaseGameOver
	c.life++
	c.timers.CancelAll()
	c.player.Freeze()

	c.logger.Info("game over", "score", c.state.Score, "best", c.state.BestScore, "cause", cause)

	if c.state.Score > c.state.BestScore {
		best := c.state.Score
		c.state.BestScore = best
		c.state.NewRecord = true
		if !c.store.Write(best) {
			c.logger.Warn("new best score kept for this session only", "score", best)
		}
		c.async("submit score", func(ctx context.Context) error {
			return c.svc.SubmitScore(ctx, best)
		})
	}

	c.async("hide banner", func(ctx context.Context) error {
		return c.svc.HideBanner(ctx)
	})
}

// RequestRestart asks for an ad break and then resets the game, whatever
// the ad break's outcome. It reports whether a restart was started.
func (c *Controller) RequestRestart() bool {
	if c.state.Phase != PhaseGameOver || c.restartPending {
		return false
	}
	c.restartPending = true
	life := c.life

	c.run(func() {
		result := services.AdResult{Outcome: services.AdSkipped}
		if c.ads != nil {
			result = c.requestAd()
		}
		c.post(func() { c.finishRestart(life, result) })
	})
	return true
}

// requestAd converts a panicking gate into a failed outcome so that the
// restart is never lost.
func (c *Controller) requestAd() (result services.AdResult) {
	defer func() {
		if r := recover(); r != nil {
			result = services.AdResult{
				Outcome: services.AdFailed,
				Err:     fmt.Errorf("%w: ad gate panicked: %v", services.ErrUnavailable, r),
			}
		}
	}()
	return c.ads.Request(c.ctx, func() {
		c.logger.Debug("ad opened")
	})
}

func (c *Controller) finishRestart(life int, result services.AdResult) {
	c.restartPending = false
	if result.Err != nil {
		c.logger.Warn("ad break failed", "outcome", result.Outcome, "error", result.Err)
	} else {
		c.logger.Debug("ad break resolved", "outcome", result.Outcome)
	}
	if c.state.Phase != PhaseGameOver || c.life != life {
		return
	}
	c.Reset()
	c.ShowBanner()
}

// Reset starts a fresh life in the Idle phase. The best score is kept.
func (c *Controller) Reset() {
	c.life++
	c.timers.CancelAll()
	c.spawnTimer = 0
	c.ledger.Clear()
	c.player = newPlayer(c.cfg.Player)
	c.hoverMs = 0
	c.paused = false
	c.restartPending = false
	c.state = State{
		Phase:         PhaseIdle,
		BestScore:     c.state.BestScore,
		Tunables:      c.policy.Initial(),
		LastGapCenter: c.cfg.World.Height / 2,
	}
}

// TogglePause pauses or resumes a running game. It reports whether the
// game is now paused.
func (c *Controller) TogglePause() bool {
	if c.state.Phase != PhasePlaying {
		c.paused = false
		return false
	}
	c.paused = !c.paused
	return c.paused
}

// Handle maps an action onto the game.
func (c *Controller) Handle(a core.Action) {
	switch a {
	case core.ActionFlap:
		c.Flap()
	case core.ActionRestart:
		c.RequestRestart()
	case core.ActionPause:
		c.TogglePause()
	}
}

// AddPoint scores one point as if a pair had been passed.
func (c *Controller) AddPoint() {
	if c.state.Phase == PhasePlaying {
		c.addPoint()
	}
}

// SetTunables replaces the running tunables. Values the world cannot hold
// are rejected with config.ErrInvalidTunables. While Playing the spawn
// cadence restarts with the new values.
func (c *Controller) SetTunables(t config.Tunables) error {
	if err := c.cfg.CheckTunables(t); err != nil {
		return err
	}
	if t.ScrollSpeed <= 0 || t.SpawnIntervalMs <= 0 {
		return fmt.Errorf("%w: non-positive speed or spawn interval", config.ErrInvalidTunables)
	}
	c.state.Tunables = t
	if c.state.Phase == PhasePlaying && c.spawnTimer != 0 {
		c.startSpawning()
	}
	return nil
}

// ShowBanner asks the platform for a banner.
func (c *Controller) ShowBanner() {
	c.async("show banner", func(ctx context.Context) error {
		_, err := c.svc.ShowBanner(ctx)
		return err
	})
}

// NotifyReady tells the platform the game can be played. Repeated calls
// reach the platform once.
func (c *Controller) NotifyReady() {
	c.async("ready", func(ctx context.Context) error {
		return c.svc.NotifyReady(ctx)
	})
}

// Language queries the platform language. It blocks on the platform and may
// be called from any goroutine.
func (c *Controller) Language(ctx context.Context) (string, bool) {
	return c.svc.Language(ctx)
}

// Snapshot returns a copy of the state for drawing.
func (c *Controller) Snapshot() Snapshot {
	items := c.ledger.Items()
	obs := make([]Obstacle, len(items))
	copy(obs, items)
	return Snapshot{
		State:          c.state,
		Paused:         c.paused,
		RestartPending: c.restartPending,
		Player:         c.player,
		Obstacles:      obs,
		World:          c.cfg.World,
		Life:           c.life,
	}
}

// Strict reports whether inconsistent tunables panic instead of being clamped.
func (c *Controller) Strict() bool {
	return c.spawner.strict
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	return c.state.Phase
}

// Score returns the score of the current life.
func (c *Controller) Score() int {
	return c.state.Score
}

// Config returns the configuration the game runs with.
func (c *Controller) Config() config.FlappyConfig {
	return c.cfg
}

func (c *Controller) async(op string, fn func(ctx context.Context) error) {
	ctx := c.ctx
	c.run(func() {
		if err := fn(ctx); err != nil {
			c.logger.Debug("platform call finished with error", "op", op, "error", err)
		}
	})
}

// post queues fn to run on the game goroutine. Safe for concurrent use.
func (c *Controller) post(fn func()) {
	c.mu.Lock()
	c.inbox = append(c.inbox, fn)
	c.mu.Unlock()
}

func (c *Controller) drain() {
	c.mu.Lock()
	inbox := c.inbox
	c.inbox = nil
	c.mu.Unlock()

	for _, fn := range inbox {
		fn()
	}
}

type memoryStore struct{ best int }

func (m *memoryStore) Read() int { return m.best }

func (m *memoryStore) Write(score int) bool {
	m.best = score
	return true
}
