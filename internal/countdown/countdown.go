// Package countdown computes whole hours remaining until a fixed local-time
// target.
package countdown

import (
	"fmt"
	"time"

	"github.com/hmarton/countdown-clock/internal/tzrule"
)

// minValidUnix is the threshold below which the wall clock is assumed to have
// never been set (still reading an epoch-adjacent value after boot).
const minValidUnix = 100_000

// Sentinel is returned by HoursRemaining while the wall clock has never been
// confirmed synchronized.
const Sentinel = -1

// Target is the countdown target as local calendar fields, interpreted under a
// timezone rule with DST determined automatically.
type Target struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
	Second int
}

func (t Target) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d", t.Year, int(t.Month), t.Day, t.Hour, t.Minute)
}

// Instant resolves the target to an absolute instant under the given zone.
func (t Target) Instant(zone tzrule.Zone) time.Time {
	return zone.Date(t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second)
}

// Synced reports whether the wall clock reads a plausible post-sync value.
func Synced(now time.Time) bool {
	return now.Unix() >= minValidUnix
}

// HoursRemaining returns the whole hours between now and the target, floored.
// It returns Sentinel when the clock has never been set and 0 once the target
// is reached or passed (terminal; never goes negative).
func HoursRemaining(now time.Time, target Target, zone tzrule.Zone) int64 {
	if !Synced(now) {
		return Sentinel
	}
	at := target.Instant(zone)
	if !at.After(now) {
		return 0
	}
	return int64(at.Sub(now) / time.Hour)
}
