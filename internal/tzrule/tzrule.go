// Package tzrule evaluates POSIX TZ strings such as
// "CET-1CEST,M3.5.0/2,M10.5.0/3" so local calendar fields can be converted to
// absolute instants on targets that ship no tzdata.
//
// Only the M-form transition rules (Mm.w.d) are supported. Transition times are
// compared as raw wall-clock values; inside the one-hour gap/fold around a
// transition the result is one of the two candidate readings, which is all POSIX
// promises there anyway.
package tzrule

import (
	"errors"
	"fmt"
	"time"
)

type rule struct {
	month   time.Month
	week    int // 1..5, 5 means last
	weekday time.Weekday
	seconds int // transition time as seconds after local midnight
}

// Zone is a parsed TZ rule: standard and daylight offsets plus the two yearly
// transitions. The zero Zone is not valid; use Parse.
type Zone struct {
	stdName string
	dstName string
	std     int // seconds east of UTC
	dst     int
	hasDST  bool
	start   rule // DST begins
	end     rule // DST ends
}

const defaultRuleTime = 2 * 3600

// Parse parses a POSIX TZ string. The DST offset defaults to one hour east of
// standard, the rule time to 02:00:00. Julian (Jn / n) day rules are rejected.
func Parse(s string) (Zone, error) {
	var z Zone
	p := &parser{s: s}

	z.stdName = p.name()
	if z.stdName == "" {
		return Zone{}, fmt.Errorf("tzrule: %q: missing zone name", s)
	}
	off, ok := p.offset()
	if !ok {
		return Zone{}, fmt.Errorf("tzrule: %q: missing standard offset", s)
	}
	// POSIX offsets are west-positive: CET-1 is one hour east of UTC.
	z.std = -off

	z.dstName = p.name()
	if z.dstName == "" {
		if !p.done() {
			return Zone{}, fmt.Errorf("tzrule: %q: trailing garbage", s)
		}
		return z, nil
	}
	z.hasDST = true
	if off, ok = p.offset(); ok {
		z.dst = -off
	} else {
		z.dst = z.std + 3600
	}

	if p.done() {
		return Zone{}, fmt.Errorf("tzrule: %q: daylight zone without transition rules", s)
	}
	var err error
	if z.start, err = p.rule(); err != nil {
		return Zone{}, fmt.Errorf("tzrule: %q: %w", s, err)
	}
	if z.end, err = p.rule(); err != nil {
		return Zone{}, fmt.Errorf("tzrule: %q: %w", s, err)
	}
	if !p.done() {
		return Zone{}, fmt.Errorf("tzrule: %q: trailing garbage", s)
	}
	return z, nil
}

// Date interprets the given calendar fields as local wall time under the zone,
// with the DST flag determined automatically, and returns the absolute instant.
func (z Zone) Date(year int, month time.Month, day, hour, min, sec int) time.Time {
	wall := time.Date(year, month, day, hour, min, sec, 0, time.UTC)
	return wall.Add(-time.Duration(z.offsetWall(wall)) * time.Second)
}

// Offset reports the UTC offset, in seconds east, in effect at the given local
// wall-clock reading.
func (z Zone) Offset(wall time.Time) int {
	return z.offsetWall(wall)
}

// Name reports the zone abbreviation in effect at the given local wall-clock
// reading.
func (z Zone) Name(wall time.Time) string {
	if z.hasDST && z.inDST(wall) {
		return z.dstName
	}
	return z.stdName
}

func (z Zone) offsetWall(wall time.Time) int {
	if z.hasDST && z.inDST(wall) {
		return z.dst
	}
	return z.std
}

func (z Zone) inDST(wall time.Time) bool {
	year := wall.Year()
	start := z.start.wall(year)
	end := z.end.wall(year)
	if start.Before(end) {
		return !wall.Before(start) && wall.Before(end)
	}
	// Southern hemisphere: DST spans the year boundary.
	return !wall.Before(start) || wall.Before(end)
}

// wall computes the transition's wall-clock time in the given year.
func (r rule) wall(year int) time.Time {
	first := time.Date(year, r.month, 1, 0, 0, 0, 0, time.UTC)
	days := int(r.weekday-first.Weekday()+7) % 7
	t := first.AddDate(0, 0, days+(r.week-1)*7)
	if t.Month() != r.month {
		// week 5 means "last": step back into the month.
		t = t.AddDate(0, 0, -7)
	}
	return t.Add(time.Duration(r.seconds) * time.Second)
}

type parser struct {
	s string
	i int
}

func (p *parser) done() bool { return p.i >= len(p.s) }

func (p *parser) peek() byte {
	if p.done() {
		return 0
	}
	return p.s[p.i]
}

func (p *parser) name() string {
	start := p.i
	for !p.done() && isAlpha(p.peek()) {
		p.i++
	}
	if p.i-start < 3 {
		p.i = start
		return ""
	}
	return p.s[start:p.i]
}

// offset parses [+-]hh[:mm[:ss]] and returns it in seconds with the POSIX sign
// convention (west of UTC is positive).
func (p *parser) offset() (int, bool) {
	neg := false
	switch p.peek() {
	case '-':
		neg = true
		p.i++
	case '+':
		p.i++
	}
	h, ok := p.number()
	if !ok {
		return 0, false
	}
	sec := h * 3600
	if p.peek() == ':' {
		p.i++
		m, ok := p.number()
		if !ok {
			return 0, false
		}
		sec += m * 60
		if p.peek() == ':' {
			p.i++
			s, ok := p.number()
			if !ok {
				return 0, false
			}
			sec += s
		}
	}
	if neg {
		sec = -sec
	}
	return sec, true
}

func (p *parser) rule() (rule, error) {
	if p.peek() != ',' {
		return rule{}, errors.New("expected transition rule")
	}
	p.i++
	if p.peek() != 'M' {
		return rule{}, errors.New("only Mm.w.d transition rules are supported")
	}
	p.i++
	m, ok := p.number()
	if !ok || m < 1 || m > 12 || p.peek() != '.' {
		return rule{}, errors.New("bad month in transition rule")
	}
	p.i++
	w, ok := p.number()
	if !ok || w < 1 || w > 5 || p.peek() != '.' {
		return rule{}, errors.New("bad week in transition rule")
	}
	p.i++
	d, ok := p.number()
	if !ok || d > 6 {
		return rule{}, errors.New("bad weekday in transition rule")
	}
	r := rule{month: time.Month(m), week: w, weekday: time.Weekday(d), seconds: defaultRuleTime}
	if p.peek() == '/' {
		p.i++
		sec, ok := p.offset()
		if !ok {
			return rule{}, errors.New("bad time in transition rule")
		}
		r.seconds = sec
	}
	return r, nil
}

func (p *parser) number() (int, bool) {
	start := p.i
	n := 0
	for !p.done() && p.peek() >= '0' && p.peek() <= '9' {
		n = n*10 + int(p.peek()-'0')
		p.i++
	}
	return n, p.i > start
}

func isAlpha(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
