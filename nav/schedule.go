package nav

import "time"

// DefaultPollInterval is the controller poll rate, roughly 60 Hz.
const DefaultPollInterval = 16 * time.Millisecond

// Schedule is a fixed-interval timer that is advanced by the UI loop instead
// of a goroutine, so every tick runs on the UI thread. A late frame produces a
// single tick; missed intervals are dropped rather than replayed in a burst.
type Schedule struct {
	interval time.Duration
	running  bool
	next     time.Time
	ticks    uint64
}

// NewSchedule creates a stopped schedule. Non-positive intervals fall back to
// DefaultPollInterval.
func NewSchedule(interval time.Duration) *Schedule {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Schedule{interval: interval}
}

// Interval returns the tick interval
func (s *Schedule) Interval() time.Duration {
	return s.interval
}

// Start arms the schedule. The first tick is due one interval after now.
// Starting a running schedule does nothing.
func (s *Schedule) Start(now time.Time) {
	if s.running {
		return
	}
	s.running = true
	s.next = now.Add(s.interval)
}

// Stop disarms the schedule. No tick is reported until the next Start.
// Stopping a stopped schedule does nothing.
func (s *Schedule) Stop() {
	s.running = false
}

// Running reports whether the schedule is armed.
func (s *Schedule) Running() bool {
	return s.running
}

// Ticks returns how many ticks have been reported since creation.
func (s *Schedule) Ticks() uint64 {
	return s.ticks
}

// Due reports whether a tick should run at now and consumes it.
func (s *Schedule) Due(now time.Time) bool {
	if !s.running || now.Before(s.next) {
		return false
	}

	s.next = s.next.Add(s.interval)
	if !s.next.After(now) {
		// Fell behind; realign instead of catching up
		s.next = now.Add(s.interval)
	}
	s.ticks++
	return true
}
