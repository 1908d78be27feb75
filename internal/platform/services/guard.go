package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// Guard shields the game from a misbehaving platform. Panics become
// ErrUnavailable, failed ads count as not shown and NotifyReady reaches the
// platform at most once.
type Guard struct {
	inner  Services
	logger *log.Logger

	readyOnce sync.Once
	readyErr  error
}

// NewGuard wraps inner. A nil inner behaves like Offline.
func NewGuard(inner Services, logger *log.Logger) *Guard {
	if inner == nil {
		inner = Offline{}
	}
	return &Guard{inner: inner, logger: logger}
}

func (g *Guard) protect(op string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s panicked: %v", ErrUnavailable, op, r)
		}
		if err != nil {
			g.logger.Warn("platform call failed", "op", op, "error", err)
		}
	}()
	return fn()
}

func (g *Guard) Language(ctx context.Context) (lang string, ok bool) {
	err := g.protect("language", func() error {
		lang, ok = g.inner.Language(ctx)
		return nil
	})
	if err != nil {
		return "", false
	}
	return lang, ok
}

func (g *Guard) ShowAd(ctx context.Context, onOpen func()) (shown bool, err error) {
	err = g.protect("ad", func() error {
		var innerErr error
		shown, innerErr = g.inner.ShowAd(ctx, onOpen)
		return innerErr
	})
	if err != nil {
		return false, err
	}
	return shown, nil
}

func (g *Guard) SubmitScore(ctx context.Context, score int) error {
	return g.protect("submit score", func() error {
		return g.inner.SubmitScore(ctx, score)
	})
}

func (g *Guard) NotifyReady(ctx context.Context) error {
	g.readyOnce.Do(func() {
		g.readyErr = g.protect("ready", func() error {
			return g.inner.NotifyReady(ctx)
		})
	})
	return g.readyErr
}

func (g *Guard) ShowBanner(ctx context.Context) (shown bool, err error) {
	err = g.protect("show banner", func() error {
		var innerErr error
		shown, innerErr = g.inner.ShowBanner(ctx)
		return innerErr
	})
	if err != nil {
		return false, err
	}
	return shown, nil
}

func (g *Guard) HideBanner(ctx context.Context) error {
	return g.protect("hide banner", func() error {
		return g.inner.HideBanner(ctx)
	})
}
