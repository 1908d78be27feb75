package services

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// AdOutcome is how an ad break ended.
type AdOutcome int

const (
	AdSkipped  AdOutcome = iota // Rate-limited or busy, the platform was not asked
	AdShown                     // The platform showed an ad
	AdNotShown                  // The platform had nothing to show
	AdFailed                    // The platform errored, panicked or timed out
)

func (o AdOutcome) String() string {
	switch o {
	case AdShown:
		return "shown"
	case AdNotShown:
		return "not shown"
	case AdFailed:
		return "failed"
	default:
		return "skipped"
	}
}

// AdResult is the resolution of an ad break request.
type AdResult struct {
	Outcome AdOutcome
	Err     error
}

// AdGate rate-limits ad breaks and allows one request at a time.
// Request always returns; callers proceed on every outcome.
type AdGate struct {
	svc         Services
	minInterval time.Duration
	timeout     time.Duration
	logger      *log.Logger
	now         func() time.Time

	mu       sync.Mutex
	last     time.Time
	inFlight bool
}

// NewAdGate creates a gate in front of svc. A zero timeout waits for the
// platform as long as the caller's context allows.
func NewAdGate(svc Services, minInterval, timeout time.Duration, logger *log.Logger) *AdGate {
	return &AdGate{
		svc:         NewGuard(svc, logger),
		minInterval: minInterval,
		timeout:     timeout,
		logger:      logger,
		now:         time.Now,
	}
}

// Request runs an ad break if the interval since the previous one has
// elapsed. onOpen runs if the ad opens.
func (g *AdGate) Request(ctx context.Context, onOpen func()) AdResult {
	g.mu.Lock()
	if g.inFlight {
		g.mu.Unlock()
		return AdResult{Outcome: AdSkipped, Err: ErrBusy}
	}
	now := g.now()
	if !g.last.IsZero() && now.Sub(g.last) <= g.minInterval {
		wait := g.minInterval - now.Sub(g.last)
		g.mu.Unlock()
		g.logger.Debug("ad break rate-limited", "next_in", wait.Round(time.Second))
		return AdResult{Outcome: AdSkipped}
	}
	g.last = now
	g.inFlight = true
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		g.inFlight = false
		g.mu.Unlock()
	}()

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	shown, err := g.svc.ShowAd(ctx, onOpen)
	switch {
	case err != nil:
		return AdResult{Outcome: AdFailed, Err: err}
	case shown:
		return AdResult{Outcome: AdShown}
	default:
		return AdResult{Outcome: AdNotShown}
	}
}
