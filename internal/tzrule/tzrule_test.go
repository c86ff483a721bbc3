package tzrule_test

import (
	"testing"
	"time"

	"github.com/hmarton/countdown-clock/internal/tzrule"
)

const budapest = "CET-1CEST,M3.5.0/2,M10.5.0/3"

func mustParse(t *testing.T, s string) tzrule.Zone {
	t.Helper()
	z, err := tzrule.Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return z
}

func TestParseErrors(t *testing.T) {
	bad := []string{
		"",
		"CE",
		"CET",
		"CET-1CEST",                     // daylight zone without rules
		"EST5EDT,J60,J300",              // Julian rules unsupported
		"CET-1CEST,M3.5.0/2,M10.5.0/3x", // trailing garbage
		"CET-1CEST,M13.5.0,M10.5.0",     // bad month
		"CET-1CEST,M3.6.0,M10.5.0",      // bad week
		"CET-1CEST,M3.5.7,M10.5.0",      // bad weekday
	}
	for _, s := range bad {
		if _, err := tzrule.Parse(s); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", s)
		}
	}
}

func TestOffsets(t *testing.T) {
	z := mustParse(t, budapest)

	tests := []struct {
		wall time.Time
		want int
	}{
		{time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC), 3600},      // winter
		{time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC), 7200},      // summer
		{time.Date(2026, 3, 29, 1, 59, 59, 0, time.UTC), 3600},     // just before spring transition
		{time.Date(2026, 3, 29, 2, 0, 0, 0, time.UTC), 7200},       // spring transition (last Sunday of March, 02:00)
		{time.Date(2026, 10, 25, 2, 59, 59, 0, time.UTC), 7200},    // just before fall transition
		{time.Date(2026, 10, 25, 3, 0, 0, 0, time.UTC), 3600},      // fall transition (last Sunday of October, 03:00)
		{time.Date(2026, 3, 22, 12, 0, 0, 0, time.UTC), 3600},      // Sunday one week before the last
	}
	for _, tt := range tests {
		if got := z.Offset(tt.wall); got != tt.want {
			t.Errorf("Offset(%v) = %d, want %d", tt.wall, got, tt.want)
		}
	}
}

func TestDefaultDSTOffset(t *testing.T) {
	// no explicit DST offset: standard plus one hour
	z := mustParse(t, "PST8PDT,M3.2.0,M11.1.0")

	if got := z.Offset(time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)); got != -8*3600 {
		t.Errorf("standard offset = %d, want %d", got, -8*3600)
	}
	if got := z.Offset(time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC)); got != -7*3600 {
		t.Errorf("daylight offset = %d, want %d", got, -7*3600)
	}
}

func TestStandardOnlyZone(t *testing.T) {
	z := mustParse(t, "UTC0")
	if got := z.Offset(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)); got != 0 {
		t.Errorf("Offset = %d, want 0", got)
	}
	z = mustParse(t, "JST-9")
	if got := z.Offset(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)); got != 9*3600 {
		t.Errorf("Offset = %d, want %d", got, 9*3600)
	}
}

func TestSouthernHemisphere(t *testing.T) {
	// Sydney: DST spans the year boundary
	z := mustParse(t, "AEST-10AEDT,M10.1.0,M4.1.0/3")

	if got := z.Offset(time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)); got != 11*3600 {
		t.Errorf("January offset = %d, want %d", got, 11*3600)
	}
	if got := z.Offset(time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)); got != 10*3600 {
		t.Errorf("June offset = %d, want %d", got, 10*3600)
	}
}

func TestDate(t *testing.T) {
	z := mustParse(t, budapest)

	tests := []struct {
		y               int
		mo              time.Month
		d, h, min, sec  int
		want            time.Time
	}{
		// summer: CEST, UTC+2
		{2026, time.April, 12, 6, 0, 0, time.Date(2026, 4, 12, 4, 0, 0, 0, time.UTC)},
		// winter: CET, UTC+1
		{2026, time.January, 15, 12, 30, 0, time.Date(2026, 1, 15, 11, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got := z.Date(tt.y, tt.mo, tt.d, tt.h, tt.min, tt.sec)
		if !got.Equal(tt.want) {
			t.Errorf("Date(%04d-%02d-%02d %02d:%02d:%02d) = %v, want %v",
				tt.y, tt.mo, tt.d, tt.h, tt.min, tt.sec, got, tt.want)
		}
	}
}

func TestName(t *testing.T) {
	z := mustParse(t, budapest)
	if got := z.Name(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)); got != "CET" {
		t.Errorf("winter name = %q, want CET", got)
	}
	if got := z.Name(time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)); got != "CEST" {
		t.Errorf("summer name = %q, want CEST", got)
	}
}
