package clock

import "time"

// Fake is a manually advanced Clock for tests.
type Fake struct {
	Wall   time.Time
	Uptime uint32
}

func (f *Fake) Now() time.Time {
	return f.Wall
}

func (f *Fake) Millis() uint32 {
	return f.Uptime
}

// Advance moves both the wall clock and the uptime counter forward. The uptime
// addition wraps at uint32, same as the real counter.
func (f *Fake) Advance(d time.Duration) {
	f.Wall = f.Wall.Add(d)
	f.Uptime += uint32(d / time.Millisecond)
}
