package flappy

// TimerID identifies a scheduled callback. The zero TimerID is never issued.
type TimerID int

type timer struct {
	id        TimerID
	remaining float64
	interval  float64
	repeat    bool
	cancelled bool
	fn        func()
}

// Scheduler runs callbacks after an amount of game time has passed.
// Time only moves when Advance is called, so paused or frozen games never
// fire timers.
type Scheduler struct {
	timers []*timer
	lastID TimerID
}

// After schedules fn once, delayMs from now.
func (s *Scheduler) After(delayMs float64, fn func()) TimerID {
	return s.add(delayMs, 0, false, fn)
}

// Every schedules fn every intervalMs, first firing one interval from now.
func (s *Scheduler) Every(intervalMs float64, fn func()) TimerID {
	if intervalMs <= 0 {
		intervalMs = 1
	}
	return s.add(intervalMs, intervalMs, true, fn)
}

func (s *Scheduler) add(delay, interval float64, repeat bool, fn func()) TimerID {
	s.lastID++
	s.timers = append(s.timers, &timer{
		id:        s.lastID,
		remaining: delay,
		interval:  interval,
		repeat:    repeat,
		fn:        fn,
	})
	return s.lastID
}

// Cancel stops a timer. Unknown or finished timers are ignored.
func (s *Scheduler) Cancel(id TimerID) {
	for _, t := range s.timers {
		if t.id == id {
			t.cancelled = true
		}
	}
}

// CancelAll stops every timer.
func (s *Scheduler) CancelAll() {
	for _, t := range s.timers {
		t.cancelled = true
	}
	s.compact()
}

// Advance moves time forward by ms and fires due timers in scheduling order.
// A repeating timer fires at most once per Advance; a long frame does not
// replay missed intervals. Timers scheduled by a callback start counting on
// the next Advance.
func (s *Scheduler) Advance(ms float64) {
	due := append([]*timer(nil), s.timers...)
	for _, t := range due {
		if t.cancelled {
			continue
		}
		t.remaining -= ms
		if t.remaining > 0 {
			continue
		}
		if t.repeat {
			t.remaining += t.interval
			if t.remaining <= 0 {
				t.remaining = t.interval
			}
		} else {
			t.cancelled = true
		}
		t.fn()
	}
	s.compact()
}

func (s *Scheduler) compact() {
	kept := s.timers[:0]
	for _, t := range s.timers {
		if !t.cancelled {
			kept = append(kept, t)
		}
	}
	clear(s.timers[len(kept):])
	s.timers = kept
}
