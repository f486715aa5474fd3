package core

import "time"

// DefaultInterval is the pause between generations used when none is given.
const DefaultInterval = 200 * time.Millisecond

// FixedStep paces generations against frame deltas supplied by the host. It
// owns no clock of its own; callers feed it the time elapsed since the last
// frame.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
}

// NewFixedStep constructs a FixedStep that fires once per interval. The first
// Advance call always fires.
func NewFixedStep(interval time.Duration) *FixedStep {
	fs := &FixedStep{}
	fs.SetInterval(interval)
	fs.Reset()
	return fs
}

// SetInterval changes the pause between generations.
func (f *FixedStep) SetInterval(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	f.step = interval
	if f.accumulator > f.step {
		f.accumulator = f.step
	}
}

// Interval returns the current pause between generations.
func (f *FixedStep) Interval() time.Duration { return f.step }

// Reset drops any accumulated time and primes the next Advance to fire, as
// after construction.
func (f *FixedStep) Reset() { f.accumulator = f.step }

// Advance accumulates delta and reports whether a generation is due. At most
// one generation fires per call; a backlog larger than one interval is
// discarded rather than replayed.
func (f *FixedStep) Advance(delta time.Duration) bool {
	if delta > 0 {
		f.accumulator += delta
	}
	if f.accumulator < f.step {
		return false
	}
	f.accumulator -= f.step
	if f.accumulator >= f.step {
		f.accumulator %= f.step
	}
	return true
}
