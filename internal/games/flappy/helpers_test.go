package flappy

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/skyflap/internal/config"
	"github.com/vovakirdan/skyflap/internal/platform/services"
)

type fakeStore struct {
	best   int
	writes int
	fail   bool
}

func (s *fakeStore) Read() int { return s.best }

func (s *fakeStore) Write(score int) bool {
	s.writes++
	if s.fail {
		return false
	}
	s.best = score
	return true
}

// fakePlatform counts calls and can be told how ad breaks end.
type fakePlatform struct {
	services.Offline

	mu        sync.Mutex
	submitted []int
	hidden    int
	banners   int
	ready     int
	adShown   bool
	adErr     error
	adPanic   bool
}

func (f *fakePlatform) SubmitScore(_ context.Context, score int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, score)
	return nil
}

func (f *fakePlatform) HideBanner(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hidden++
	return nil
}

func (f *fakePlatform) ShowBanner(context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.banners++
	return true, nil
}

func (f *fakePlatform) NotifyReady(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ready++
	return nil
}

func (f *fakePlatform) ShowAd(_ context.Context, onOpen func()) (bool, error) {
	if f.adPanic {
		panic("sdk exploded")
	}
	if f.adShown && onOpen != nil {
		onOpen()
	}
	return f.adShown, f.adErr
}

func (f *fakePlatform) submissions() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.submitted...)
}

var errAdNetwork = errors.New("ad network down")

func quiet() *log.Logger { return log.New(io.Discard) }

func syncRunner(fn func()) { fn() }

type fixture struct {
	c        *Controller
	store    *fakeStore
	platform *fakePlatform
}

func newFixture(mutate ...func(*Options)) fixture {
	store := &fakeStore{}
	platform := &fakePlatform{}
	opts := Options{
		Config:   config.DefaultFlappyConfig(),
		Seed:     42,
		Store:    store,
		Services: platform,
		Ads:      services.NewAdGate(platform, time.Minute, 0, quiet()),
		Logger:   quiet(),
		Strict:   true,
		Runner:   syncRunner,
	}
	for _, m := range mutate {
		m(&opts)
	}
	return fixture{c: NewController(opts), store: store, platform: platform}
}

const frame = time.Second / 60
