// Package clock abstracts wall-clock and uptime access so the scheduler can be
// driven by a synthetic clock in tests.
package clock

import "time"

// Clock supplies the two time sources the firmware needs: wall-clock time (only
// meaningful after NTP sync) and a millisecond uptime counter. The counter wraps
// at uint32; callers must compare intervals with unsigned subtraction.
type Clock interface {
	Now() time.Time
	Millis() uint32
}

type System struct {
	boot time.Time
}

func NewSystem() *System {
	return &System{boot: time.Now()}
}

func (s *System) Now() time.Time {
	return time.Now()
}

// Millis reads the monotonic clock, so an NTP offset adjustment mid-run does not
// jump the uptime counter.
func (s *System) Millis() uint32 {
	return uint32(time.Since(s.boot) / time.Millisecond)
}
