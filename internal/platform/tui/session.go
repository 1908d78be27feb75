package tui

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyflap/internal/config"
	"github.com/vovakirdan/skyflap/internal/core"
	"github.com/vovakirdan/skyflap/internal/games/flappy"
	"github.com/vovakirdan/skyflap/internal/games/flappy/diag"
	"github.com/vovakirdan/skyflap/internal/i18n"
	"github.com/vovakirdan/skyflap/internal/platform/services"
	"github.com/vovakirdan/skyflap/internal/storage"
)

// languageTimeout bounds the platform language query at session start.
const languageTimeout = 2 * time.Second

// LocalPlayer is the leaderboard name of a player on the local terminal.
const LocalPlayer = "local"

// SessionOptions configure one player's session.
type SessionOptions struct {
	Config   config.FlappyConfig
	Runtime  core.RuntimeConfig
	Store    *storage.Store    // nil plays without persistence
	Services services.Services // nil means offline
	Logger   *log.Logger
	Context  context.Context

	Player    string // SSH user; empty for the local terminal
	Dev       bool   // Enables the developer console
	Lang      string // Forced language, takes the platform's place
	EnvLocale string // Locale of the player's environment
}

type sessionScreen int

const (
	screenLanguage sessionScreen = iota
	screenGame
	screenScores
)

// SessionModel manages the session flow: language picker -> game <-> scoreboard.
// It is the top-level model of both local and SSH play.
type SessionModel struct {
	game    GameModel
	picker  LanguageModel
	scores  ScoreboardModel
	source  ScoreSource
	loc     *i18n.Localizer
	keys    KeyMap
	scKeys  ScoreboardKeyMap
	current sessionScreen
	width   int
	height  int
	quit    bool
}

// NewSessionModel wires a controller, its platform and persistence for one
// player and returns the model driving it.
func NewSessionModel(opts SessionOptions) SessionModel {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	rt := opts.Runtime
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	svc := opts.Services
	if svc == nil {
		svc = services.Offline{}
	}

	var (
		settings storage.Settings = storage.NewMemorySettings()
		runs     RunRecorder
		source   ScoreSource
	)
	if opts.Store != nil {
		settings, runs, source = opts.Store, opts.Store, opts.Store
		player := opts.Player
		if player == "" {
			player = LocalPlayer
		}
		svc = services.NewLocal(svc, opts.Store, player, logger.WithPrefix("platform"))
	}

	best := storage.NewBestScore(settings, storage.BestScoreKeyFor(opts.Player), logger.WithPrefix("storage"))
	ads := services.NewAdGate(svc, opts.Config.Ads.MinInterval(), opts.Config.Ads.Timeout(), logger.WithPrefix("ads"))

	game := flappy.NewController(flappy.Options{
		Config:   opts.Config,
		Seed:     rt.Seed,
		Store:    best,
		Services: svc,
		Ads:      ads,
		Logger:   logger.WithPrefix("game"),
		Context:  ctx,
		Strict:   opts.Dev,
	})
	logger.Debug("game ready", "player", opts.Player, "strict", game.Strict())

	var console *diag.Console
	if opts.Dev {
		console = diag.NewConsole(game, logger.WithPrefix("diag"))
	}

	loc := i18n.New(settings, logger.WithPrefix("i18n"))
	platformLang := opts.Lang
	if platformLang == "" {
		langCtx, cancel := context.WithTimeout(ctx, languageTimeout)
		platformLang, _ = game.Language(langCtx)
		cancel()
	}
	loc.Resolve(platformLang, opts.EnvLocale)

	gm := NewGameModel(game, console, loc, runs, rt, logger)
	m := SessionModel{
		game:    gm,
		picker:  NewLanguageModel(loc, gm.mapper, rt.ScreenW, rt.ScreenH),
		source:  source,
		loc:     loc,
		keys:    gm.keys,
		scKeys:  DefaultScoreboardKeyMap(),
		current: screenGame,
		width:   rt.ScreenW,
		height:  rt.ScreenH,
	}
	if NeedsLanguagePicker(loc) {
		m.current = screenLanguage
	}
	return m
}

// Init starts the game loop. The game idles behind the picker.
func (m SessionModel) Init() tea.Cmd {
	return m.game.Init()
}

// Update routes messages to the active screen. Ticks always reach the game.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.game = m.updateGame(msg)
		picker, _ := m.picker.Update(msg)
		m.picker = picker.(LanguageModel)
		if m.current == screenScores {
			scores, _ := m.scores.Update(msg)
			m.scores = scores.(ScoreboardModel)
		}
		return m, nil

	case TickMsg, bannerMsg:
		next, cmd := m.game.Update(msg)
		m.game = next.(GameModel)
		return m, cmd

	case tea.KeyMsg:
		switch m.current {
		case screenLanguage:
			return m.updatePicker(msg)
		case screenScores:
			return m.updateScores(msg)
		default:
			return m.updateGameKey(msg)
		}
	}
	return m, nil
}

func (m SessionModel) updateGame(msg tea.Msg) GameModel {
	next, _ := m.game.Update(msg)
	return next.(GameModel)
}

// updatePicker handles keys while the language picker is shown.
func (m SessionModel) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next, cmd := m.picker.Update(msg)
	m.picker = next.(LanguageModel)
	if m.picker.IsQuitting() {
		m.quit = true
		return m, tea.Quit
	}
	if m.picker.Selected() != "" {
		m.current = screenGame
	}
	return m, cmd
}

// updateGameKey handles keys on the game screen. The scoreboard opens only
// outside a running life.
func (m SessionModel) updateGameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Scoreboard) && !m.game.commandOpen && m.game.Phase() != flappy.PhasePlaying {
		m.scores = NewScoreboardModel(m.source, m.loc, m.width, m.height)
		m.current = screenScores
		return m, nil
	}

	next, cmd := m.game.Update(msg)
	m.game = next.(GameModel)
	if m.game.IsQuitting() {
		m.quit = true
	}
	return m, cmd
}

// updateScores handles keys on the scoreboard. Back returns to the game.
func (m SessionModel) updateScores(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.scKeys.Back):
		m.current = screenGame
		return m, nil
	case key.Matches(msg, m.scKeys.Quit):
		m.quit = true
		return m, tea.Quit
	}
	next, cmd := m.scores.Update(msg)
	m.scores = next.(ScoreboardModel)
	return m, cmd
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quit {
		return ""
	}
	switch m.current {
	case screenLanguage:
		return m.picker.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.game.View()
	}
}

// Localizer returns the session's localizer.
func (m SessionModel) Localizer() *i18n.Localizer {
	return m.loc
}

// Run plays one local session until the player quits.
func Run(opts SessionOptions) error {
	ctx, cancel := context.WithCancel(opts.contextOrBackground())
	defer cancel()
	opts.Context = ctx

	p := tea.NewProgram(
		NewSessionModel(opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}

func (o SessionOptions) contextOrBackground() context.Context {
	if o.Context != nil {
		return o.Context
	}
	return context.Background()
}
