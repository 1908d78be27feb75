package flappy

import "testing"

func TestSchedulerAfter(t *testing.T) {
	var s Scheduler
	fired := 0
	s.After(100, func() { fired++ })

	s.Advance(99)
	if fired != 0 {
		t.Fatal("fired early")
	}
	s.Advance(1)
	if fired != 1 {
		t.Fatalf("fired %d times, expected 1", fired)
	}
	s.Advance(1000)
	if fired != 1 {
		t.Errorf("one-shot fired again")
	}
	if n := len(s.timers); n != 0 {
		t.Errorf("%d timers left, expected 0", n)
	}
}

func TestSchedulerEvery(t *testing.T) {
	var s Scheduler
	fired := 0
	s.Every(100, func() { fired++ })

	for i := 0; i < 10; i++ {
		s.Advance(50)
	}
	if fired != 5 {
		t.Errorf("fired %d times in 500 ms, expected 5", fired)
	}

	// A long frame fires once and drops the backlog
	s.Advance(1000)
	if fired != 6 {
		t.Errorf("fired %d times, expected 6", fired)
	}
	s.Advance(99)
	if fired != 6 {
		t.Errorf("backlog replayed: fired %d times", fired)
	}
}

func TestSchedulerCancel(t *testing.T) {
	var s Scheduler
	a, b := 0, 0
	idA := s.After(10, func() { a++ })
	s.Every(10, func() { b++ })

	s.Cancel(idA)
	s.Cancel(TimerID(12345))
	s.Advance(10)
	if a != 0 || b != 1 {
		t.Errorf("a=%d b=%d, expected 0 and 1", a, b)
	}

	s.CancelAll()
	s.Advance(100)
	if b != 1 {
		t.Errorf("cancelled repeating timer fired")
	}
}

func TestSchedulerCallbackSchedules(t *testing.T) {
	var s Scheduler
	inner := 0
	s.After(10, func() {
		s.After(0, func() { inner++ })
	})

	s.Advance(10)
	if inner != 0 {
		t.Error("timer scheduled by a callback fired in the same Advance")
	}
	s.Advance(0)
	if inner != 1 {
		t.Errorf("inner fired %d times, expected 1", inner)
	}
}

func TestSchedulerCancelAllFromCallback(t *testing.T) {
	var s Scheduler
	later := 0
	s.After(10, func() { s.CancelAll() })
	s.After(10, func() { later++ })

	s.Advance(10)
	if later != 0 {
		t.Error("timer cancelled by an earlier callback still fired")
	}
}
