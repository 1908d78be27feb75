package i18n

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/text/language"
)

// SettingKey is where the player's language choice is persisted.
const SettingKey = "game-language"

// ErrUnsupported is returned when a language has no catalog.
var ErrUnsupported = errors.New("i18n: unsupported language")

// Preferences persists the language choice.
type Preferences interface {
	GetSetting(key string) (string, bool, error)
	SetSetting(key, value string) error
}

// Source tells where the active language came from.
type Source int

const (
	SourceFallback Source = iota
	SourcePlatform
	SourceSaved
	SourceEnvironment
)

func (s Source) String() string {
	switch s {
	case SourcePlatform:
		return "platform"
	case SourceSaved:
		return "saved"
	case SourceEnvironment:
		return "environment"
	default:
		return "fallback"
	}
}

// Localizer translates message keys into the active language.
// It is safe for concurrent use.
type Localizer struct {
	mu     sync.RWMutex
	lang   string
	source Source
	prefs  Preferences
	logger *log.Logger
}

// New creates a localizer using the fallback language. Call Resolve to apply
// the language priority chain. Both arguments may be nil.
func New(prefs Preferences, logger *log.Logger) *Localizer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Localizer{lang: Fallback, prefs: prefs, logger: logger}
}

// Resolve picks the active language. The platform language wins, then the
// saved choice, then the environment locale, then the fallback.
func (l *Localizer) Resolve(platformLang, envLocale string) string {
	lang, source := Fallback, SourceFallback

	if code := Normalize(platformLang); Supported(code) {
		lang, source = code, SourcePlatform
	} else if saved, ok := l.saved(); ok {
		lang, source = saved, SourceSaved
	} else if code := Normalize(envLocale); Supported(code) {
		lang, source = code, SourceEnvironment
	}

	l.mu.Lock()
	l.lang, l.source = lang, source
	l.mu.Unlock()

	l.logger.Debug("language resolved", "lang", lang, "source", source)
	return lang
}

func (l *Localizer) saved() (string, bool) {
	if l.prefs == nil {
		return "", false
	}
	v, ok, err := l.prefs.GetSetting(SettingKey)
	if err != nil {
		l.logger.Warn("cannot read saved language", "error", err)
		return "", false
	}
	if !ok || !Supported(v) {
		return "", false
	}
	return v, true
}

// HasSaved reports whether a supported language choice is persisted.
func (l *Localizer) HasSaved() bool {
	_, ok := l.saved()
	return ok
}

// Current returns the active language code.
func (l *Localizer) Current() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lang
}

// Source returns where the active language came from.
func (l *Localizer) Source() Source {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.source
}

// T returns the translation of key, or key itself when it is unknown.
func (l *Localizer) T(key string) string {
	l.mu.RLock()
	lang := l.lang
	l.mu.RUnlock()

	if msg, ok := catalogs[lang][key]; ok {
		return msg
	}
	if msg, ok := catalogs[Fallback][key]; ok {
		return msg
	}
	return key
}

// Set switches to lang and persists the choice.
// A persistence failure is logged; the switch still happens.
func (l *Localizer) Set(lang string) error {
	code := Normalize(lang)
	if !Supported(code) {
		l.logger.Warn("rejecting unsupported language", "lang", lang)
		return fmt.Errorf("%w: %q", ErrUnsupported, lang)
	}

	l.mu.Lock()
	l.lang, l.source = code, SourceSaved
	l.mu.Unlock()

	if l.prefs != nil {
		if err := l.prefs.SetSetting(SettingKey, code); err != nil {
			l.logger.Warn("cannot persist language", "lang", code, "error", err)
		}
	}
	return nil
}

// Cycle switches to the next language in ru -> en -> tr order.
func (l *Localizer) Cycle() string {
	current := l.Current()
	next := order[0]
	for i, code := range order {
		if code == current {
			next = order[(i+1)%len(order)]
			break
		}
	}
	if err := l.Set(next); err != nil {
		return current
	}
	return next
}

// Normalize maps a locale string such as "en_US.UTF-8" or "tr-TR" to its
// base language code. Unparseable input yields "".
func Normalize(locale string) string {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	locale = strings.ReplaceAll(locale, "_", "-")
	if locale == "" || strings.EqualFold(locale, "C") || strings.EqualFold(locale, "POSIX") {
		return ""
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return ""
	}
	base, conf := tag.Base()
	if conf == language.No {
		return ""
	}
	return base.String()
}

// EnvLocale returns the first non-empty locale from LC_ALL, LC_MESSAGES and
// LANG, as read by getenv.
func EnvLocale(getenv func(string) string) string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := getenv(name); v != "" {
			return v
		}
	}
	return ""
}
