package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/skyflap/internal/i18n"
)

// LanguageModel is the first-run language picker.
type LanguageModel struct {
	codes     []string
	cursor    int
	width     int
	height    int
	loc       *i18n.Localizer
	keyMapper *KeyMapper
	quitting  bool
	selected  string // Set when the player picks a language
}

// NewLanguageModel creates a picker with the cursor on the active language.
func NewLanguageModel(loc *i18n.Localizer, keys *KeyMapper, width, height int) LanguageModel {
	codes := i18n.Available()
	cursor := 0
	for i, code := range codes {
		if code == loc.Current() {
			cursor = i
		}
	}
	return LanguageModel{
		codes:     codes,
		cursor:    cursor,
		width:     width,
		height:    height,
		loc:       loc,
		keyMapper: keys,
	}
}

// NeedsLanguagePicker reports whether the player should be asked for a
// language: nobody chose one and the platform did not name one.
func NeedsLanguagePicker(loc *i18n.Localizer) bool {
	switch loc.Source() {
	case i18n.SourceFallback, i18n.SourceEnvironment:
		return true
	}
	return false
}

// Init initializes the picker.
func (m LanguageModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (m LanguageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// handleKey processes keyboard input for picker navigation.
func (m LanguageModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.codes)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.codes) > 0 {
			code := m.codes[m.cursor]
			if err := m.loc.Set(code); err == nil {
				m.selected = code
			}
		}
	}
	return m, nil
}

// View renders the picker.
func (m LanguageModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	top := max((m.height-len(m.codes)-6)/2, 0)
	b.WriteString(strings.Repeat("\n", top))
	b.WriteString(centerText(titleStyle.Render("S K Y F L A P"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.loc.T(i18n.KeyLanguage), m.width))
	b.WriteString("\n\n")

	for i, code := range m.codes {
		line := "  " + i18n.Name(code)
		if i == m.cursor {
			line = activeStyle.Render("> " + i18n.Name(code))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(hintStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Q: Quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the picked language code, or "" while undecided.
func (m LanguageModel) Selected() string {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m LanguageModel) IsQuitting() bool {
	return m.quitting
}
