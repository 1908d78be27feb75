// Package services is the boundary between the game and the hosting platform:
// language, ad breaks, banners, score submission and the ready signal.
package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/skyflap/internal/config"
)

var (
	// ErrUnavailable means the platform could not serve the request.
	ErrUnavailable = errors.New("services: platform unavailable")
	// ErrBusy means another ad request is still in flight.
	ErrBusy = errors.New("services: ad request already in flight")
)

// Services is what the game needs from the platform.
// Every call may block; the game invokes them off the update loop.
type Services interface {
	// Language returns the platform's language, if it has one.
	Language(ctx context.Context) (string, bool)
	// ShowAd requests a fullscreen ad. onOpen runs when the ad opens.
	ShowAd(ctx context.Context, onOpen func()) (shown bool, err error)
	SubmitScore(ctx context.Context, score int) error
	NotifyReady(ctx context.Context) error
	ShowBanner(ctx context.Context) (shown bool, err error)
	HideBanner(ctx context.Context) error
}

// Offline is a platform that offers nothing. Every call succeeds as a no-op.
type Offline struct{}

func (Offline) Language(context.Context) (string, bool) { return "", false }

func (Offline) ShowAd(context.Context, func()) (bool, error) { return false, nil }

func (Offline) SubmitScore(context.Context, int) error { return nil }

func (Offline) NotifyReady(context.Context) error { return nil }

func (Offline) ShowBanner(context.Context) (bool, error) { return false, nil }

func (Offline) HideBanner(context.Context) error { return nil }

// SimulatedOptions tune the simulated platform.
type SimulatedOptions struct {
	Language          string
	AdDelay           time.Duration
	NetworkDelay      time.Duration
	AdShowProbability float64
	FailProbability   float64
	Seed              int64
}

// Simulated mimics a real platform SDK: calls take time, ads are shown with
// some probability and any call can fail.
type Simulated struct {
	opts   SimulatedOptions
	logger *log.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulated creates a simulated platform.
func NewSimulated(opts SimulatedOptions, logger *log.Logger) *Simulated {
	return &Simulated{
		opts:   opts,
		logger: logger,
		rng:    rand.New(rand.NewSource(opts.Seed)),
	}
}

func (s *Simulated) roll(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64() < p
}

func (s *Simulated) network(ctx context.Context, op string) error {
	if err := sleep(ctx, s.opts.NetworkDelay); err != nil {
		return err
	}
	if s.roll(s.opts.FailProbability) {
		return fmt.Errorf("%w: simulated %s failure", ErrUnavailable, op)
	}
	return nil
}

func (s *Simulated) Language(context.Context) (string, bool) {
	return s.opts.Language, s.opts.Language != ""
}

func (s *Simulated) ShowAd(ctx context.Context, onOpen func()) (bool, error) {
	if err := s.network(ctx, "ad"); err != nil {
		return false, err
	}
	if !s.roll(s.opts.AdShowProbability) {
		s.logger.Debug("simulated ad not filled")
		return false, nil
	}
	if onOpen != nil {
		onOpen()
	}
	if err := sleep(ctx, s.opts.AdDelay); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Simulated) SubmitScore(ctx context.Context, score int) error {
	if err := s.network(ctx, "score submission"); err != nil {
		return err
	}
	s.logger.Debug("simulated score submitted", "score", score)
	return nil
}

func (s *Simulated) NotifyReady(ctx context.Context) error {
	return s.network(ctx, "ready signal")
}

func (s *Simulated) ShowBanner(ctx context.Context) (bool, error) {
	if err := s.network(ctx, "banner"); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Simulated) HideBanner(ctx context.Context) error {
	return sleep(ctx, s.opts.NetworkDelay)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// FromConfig builds the platform named by cfg.Mode.
func FromConfig(cfg config.PlatformConfig, seed int64, logger *log.Logger) (Services, error) {
	switch cfg.Mode {
	case "", config.PlatformOffline:
		return Offline{}, nil
	case config.PlatformSimulated:
		sim := cfg.Simulated
		return NewSimulated(SimulatedOptions{
			Language:          cfg.Language,
			AdDelay:           time.Duration(sim.AdDelayMs) * time.Millisecond,
			NetworkDelay:      time.Duration(sim.NetworkDelayMs) * time.Millisecond,
			AdShowProbability: sim.AdShowProbability,
			FailProbability:   sim.FailProbability,
			Seed:              seed,
		}, logger), nil
	default:
		return nil, fmt.Errorf("services: unknown platform mode %q", cfg.Mode)
	}
}
