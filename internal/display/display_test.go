package display_test

import (
	"testing"

	"github.com/hmarton/countdown-clock/internal/display"
)

type fakeDevice struct {
	values []int32
}

func (f *fakeDevice) ShowValue(n int32) {
	f.values = append(f.values, n)
}

func (f *fakeDevice) last() int32 {
	return f.values[len(f.values)-1]
}

func TestNegativeShowsDashesInBothModes(t *testing.T) {
	dev := &fakeDevice{}
	d := display.New(dev)

	d.Update(-1)
	if dev.last() != -1 {
		t.Errorf("hours mode: ShowValue(%d), want -1", dev.last())
	}
	d.Toggle()
	d.Update(-1)
	if dev.last() != -1 {
		t.Errorf("days mode: ShowValue(%d), want -1", dev.last())
	}
}

func TestHoursView(t *testing.T) {
	dev := &fakeDevice{}
	d := display.New(dev)

	d.Update(25)
	if dev.last() != 24 {
		t.Errorf("Update(25) showed %d, want 24", dev.last())
	}
	// the hours view decrements without re-checking for negative, so the
	// terminal zero renders as dashes
	d.Update(0)
	if dev.last() != -1 {
		t.Errorf("Update(0) showed %d, want -1", dev.last())
	}
}

func TestDaysView(t *testing.T) {
	dev := &fakeDevice{}
	d := display.New(dev)
	d.Toggle()

	tests := []struct {
		hours int64
		want  int32
	}{
		{25, 1},
		{47, 1},
		{48, 2},
		{0, 0},
	}
	for _, tt := range tests {
		d.Update(tt.hours)
		if dev.last() != tt.want {
			t.Errorf("Update(%d) showed %d, want %d", tt.hours, dev.last(), tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	dev := &fakeDevice{}
	d := display.New(dev)

	d.Update(15000)
	if dev.last() != 9999 {
		t.Errorf("hours mode Update(15000) showed %d, want 9999", dev.last())
	}

	d.Toggle()
	d.Update(480000) // 20000 days
	if dev.last() != 9999 {
		t.Errorf("days mode Update(480000) showed %d, want 9999", dev.last())
	}
}

func TestToggle(t *testing.T) {
	d := display.New(&fakeDevice{})
	if d.Mode() != display.ModeHours {
		t.Fatalf("initial mode = %v, want hours", d.Mode())
	}
	d.Toggle()
	if d.Mode() != display.ModeDays {
		t.Fatalf("mode after toggle = %v, want days", d.Mode())
	}
	d.Toggle()
	if d.Mode() != display.ModeHours {
		t.Fatalf("mode after second toggle = %v, want hours", d.Mode())
	}
}
