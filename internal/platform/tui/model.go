package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyflap/internal/core"
	"github.com/vovakirdan/skyflap/internal/games/flappy"
	"github.com/vovakirdan/skyflap/internal/games/flappy/diag"
	"github.com/vovakirdan/skyflap/internal/i18n"
)

// RunRecorder saves finished runs. *storage.Store implements it.
type RunRecorder interface {
	SaveScore(gameID string, score int) (int64, error)
}

// GameModel is the Bubble Tea model of the game screen.
type GameModel struct {
	game     *flappy.Controller
	console  *diag.Console // nil unless developer mode is on
	scene    *Scene
	screen   *core.Screen
	loc      *i18n.Localizer
	runs     RunRecorder // nil skips run history
	keys     KeyMap
	mapper   *KeyMapper
	help     help.Model
	command  textinput.Model
	logger   *log.Logger
	tickRate int

	lastTick     time.Time
	recordedLife int // Life whose run was last saved
	commandOpen  bool
	quitting     bool
}

// NewGameModel creates the game screen. console may be nil.
func NewGameModel(game *flappy.Controller, console *diag.Console, loc *i18n.Localizer, runs RunRecorder, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	keys := DefaultKeyMap(console != nil)
	h := help.New()
	h.Width = cfg.ScreenW

	cmd := textinput.New()
	cmd.Prompt = ": "
	cmd.Placeholder = "score 5 | speed 220 | bot on | die"
	cmd.CharLimit = 64

	return GameModel{
		game:     game,
		console:  console,
		scene:    NewScene(loc),
		screen:   core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)), // Last row is the help footer
		loc:      loc,
		runs:     runs,
		keys:     keys,
		mapper:   NewKeyMapper(keys),
		help:     h,
		command:  cmd,
		logger:   logger,
		tickRate: cfg.TickRate,
	}
}

// Init tells the platform the game is ready and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.NotifyReady()
	return tea.Batch(tickCmd(m.tickRate), bannerCmd())
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case bannerMsg:
		m.game.ShowBanner()
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.commandOpen {
		return m.handleCommandKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Bot):
		m.console.SetBot(!m.console.Bot())
		return m, nil
	case key.Matches(msg, m.keys.Die):
		m.console.Die()
		return m, nil
	case key.Matches(msg, m.keys.AddPoint):
		m.console.AddPoints(1)
		return m, nil
	case key.Matches(msg, m.keys.Command):
		m.commandOpen = true
		m.command.SetValue("")
		return m, m.command.Focus()
	}

	action, quit := m.mapper.MapKey(msg)
	if quit {
		m.quitting = true
		return m, tea.Quit
	}
	switch action {
	case core.ActionLanguage:
		lang := m.loc.Cycle()
		m.logger.Debug("language switched", "lang", lang)
	default:
		m.game.Handle(action)
	}
	return m, nil
}

// handleCommandKey feeds the developer command line.
func (m GameModel) handleCommandKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		line := m.command.Value()
		m.commandOpen = false
		m.command.Blur()
		if err := m.console.Exec(line); err != nil {
			m.logger.Warn("console command failed", "line", line, "error", err)
		}
		return m, nil
	case tea.KeyEsc:
		m.commandOpen = false
		m.command.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.command, cmd = m.command.Update(msg)
	return m, cmd
}

// handleTick advances the game by the time since the previous tick.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	var dt time.Duration
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick)
	}
	m.lastTick = now

	if m.console != nil {
		m.console.Tick()
	}
	m.game.Update(dt)
	m.scene.Drift(dt.Seconds(), m.game.Config().World.Width)
	m.recordRun()

	return m, tickCmd(m.tickRate)
}

// recordRun saves a finished life with a positive score, once per life.
func (m *GameModel) recordRun() {
	snap := m.game.Snapshot()
	if snap.Phase != flappy.PhaseGameOver || snap.Life == m.recordedLife {
		return
	}
	m.recordedLife = snap.Life
	if snap.Score <= 0 || m.runs == nil {
		return
	}
	if _, err := m.runs.SaveScore(RunsGameID, snap.Score); err != nil {
		m.logger.Warn("could not save run", "score", snap.Score, "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.scene.Draw(m.screen, m.game.Snapshot())

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".skyflap", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("flappy_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// Phase returns the phase of the running game.
func (m GameModel) Phase() flappy.Phase {
	return m.game.Phase()
}

// IsQuitting returns true if user requested to quit.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.scene.Draw(m.screen, m.game.Snapshot())
	footer := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys))
	if m.commandOpen {
		footer = m.command.View()
	}
	return RenderScreen(m.screen) + "\n" + footer
}
