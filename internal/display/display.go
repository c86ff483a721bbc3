// Package display decides what the numeric display shows: the hours-left or
// days-left view of a countdown value, or an error pattern.
package display

import "github.com/hmarton/countdown-clock/internal/sevenseg"

// Mode selects which quantity the display renders.
type Mode uint8

const (
	ModeHours Mode = iota
	ModeDays
)

func (m Mode) String() string {
	if m == ModeDays {
		return "days"
	}
	return "hours"
}

// Device is the rendering half: it draws a clamped non-negative value, or the
// dash pattern for negative input. Satisfied by tm1637.Device.
type Device interface {
	ShowValue(n int32)
}

type Display struct {
	dev  Device
	mode Mode
}

func New(dev Device) *Display {
	return &Display{dev: dev}
}

func (d *Display) Mode() Mode {
	return d.mode
}

// Toggle flips between the hours and days views.
func (d *Display) Toggle() {
	if d.mode == ModeHours {
		d.mode = ModeDays
	} else {
		d.mode = ModeHours
	}
}

// Update renders the given hours-remaining value in the current mode. Negative
// input (clock not synchronized) renders dashes regardless of mode. The hours
// view shows hoursRemaining-1 without re-checking for negative, so the terminal
// 0-hour state renders dashes there; the days view shows whole days.
func (d *Display) Update(hoursRemaining int64) {
	if hoursRemaining < 0 {
		d.dev.ShowValue(-1)
		return
	}
	v := hoursRemaining - 1
	if d.mode == ModeDays {
		v = hoursRemaining / 24
	}
	if v > sevenseg.Max {
		v = sevenseg.Max
	}
	d.dev.ShowValue(int32(v))
}
