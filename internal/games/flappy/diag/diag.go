// Package diag is the developer console of the flappy game. It drives a
// game only through the controller's public operations.
package diag

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/skyflap/internal/config"
	"github.com/vovakirdan/skyflap/internal/games/flappy"
)

// ErrUnknownCommand is returned by Exec for commands it does not know.
var ErrUnknownCommand = errors.New("diag: unknown command")

// Game is the part of the controller the console uses.
type Game interface {
	Flap()
	Die()
	AddPoint()
	SetTunables(t config.Tunables) error
	Snapshot() flappy.Snapshot
}

// Autopilot flaps when the bird falls through the lower half of the screen
// or sinks below the gap of the next building.
type Autopilot struct {
	Lookbehind float64 // How far behind the bird a building still counts
	Lookahead  float64
	Margin     float64 // Allowed sag below the gap center
}

// NewAutopilot returns an autopilot with the default reach.
func NewAutopilot() Autopilot {
	return Autopilot{Lookbehind: 50, Lookahead: 150, Margin: 20}
}

// Decide reports whether the bird should flap now.
func (a Autopilot) Decide(s flappy.Snapshot) bool {
	if s.Phase != flappy.PhasePlaying {
		return false
	}
	p := s.Player
	if p.VelocityY > 0 && p.Y > s.World.Height/2 {
		return true
	}
	for _, o := range s.Obstacles {
		if o.Role != flappy.RoleTop || o.Scored {
			continue
		}
		if o.X > p.X-a.Lookbehind && o.X < p.X+a.Lookahead {
			return p.Y > o.GapCenter+a.Margin
		}
	}
	return false
}

// Console applies developer commands to a game.
type Console struct {
	game   Game
	pilot  Autopilot
	bot    bool
	logger *log.Logger
}

// NewConsole creates a console for game.
func NewConsole(game Game, logger *log.Logger) *Console {
	return &Console{game: game, pilot: NewAutopilot(), logger: logger}
}

// SetBot turns the autopilot on or off.
func (c *Console) SetBot(on bool) {
	c.bot = on
	c.logger.Info("autopilot", "enabled", on)
}

// Bot reports whether the autopilot is flying.
func (c *Console) Bot() bool {
	return c.bot
}

// Tick lets the autopilot act on the current frame. Call it once per
// frame before the game's Update.
func (c *Console) Tick() {
	if c.bot && c.pilot.Decide(c.game.Snapshot()) {
		c.game.Flap()
	}
}

// Die kills the bird.
func (c *Console) Die() {
	c.game.Die()
}

// MaxScoreStep caps the points a single score command may add.
const MaxScoreStep = 1000

// AddPoints scores n points, crossing milestones on the way.
func (c *Console) AddPoints(n int) {
	for i := 0; i < n; i++ {
		c.game.AddPoint()
	}
}

// Override sets one tunable by name: speed, gap, interval or shift.
func (c *Console) Override(name string, value float64) error {
	t := c.game.Snapshot().Tunables
	switch name {
	case "speed":
		t.ScrollSpeed = value
	case "gap":
		t.PipeGap = value
	case "interval":
		t.SpawnIntervalMs = int(value)
	case "shift":
		t.MaxGapShift = value
	default:
		return fmt.Errorf("%w: tunable %q", ErrUnknownCommand, name)
	}
	if err := c.game.SetTunables(t); err != nil {
		return fmt.Errorf("diag: override %s=%v: %w", name, value, err)
	}
	c.logger.Info("tunable overridden", "name", name, "value", value)
	return nil
}

// Exec runs a console line such as "score 5", "speed 220" or "bot on".
func (c *Console) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "die":
		c.Die()
		return nil
	case "bot":
		on := !c.bot
		if len(args) > 0 {
			on = args[0] == "on"
		}
		c.SetBot(on)
		return nil
	case "score":
		n := 1
		if len(args) > 0 {
			v, err := strconv.Atoi(args[0])
			if err != nil || v < 0 || v > MaxScoreStep {
				return fmt.Errorf("diag: bad score %q, expected 0..%d", args[0], MaxScoreStep)
			}
			n = v
		}
		c.AddPoints(n)
		return nil
	case "speed", "gap", "interval", "shift":
		if len(args) != 1 {
			return fmt.Errorf("diag: %s needs one value", cmd)
		}
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("diag: bad value %q: %w", args[0], err)
		}
		return c.Override(cmd, v)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
}
