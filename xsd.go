// Copyright 2026 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package literal

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

func convertDateTime(core string) (any, error) {
	t, err := parseDateTime(core)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func convertDateTimeOffset(core string) (any, error) {
	t, err := parseDateTime(core)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func convertDuration(core string) (any, error) {
	d, err := parseDuration(core)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// lexer is a cursor over an XML Schema lexical value.
type lexer struct {
	s string
	i int
}

func (l *lexer) done() bool { return l.i >= len(l.s) }

func (l *lexer) peek() byte {
	if l.done() {
		return 0
	}
	return l.s[l.i]
}

func (l *lexer) accept(c byte) bool {
	if l.peek() == c && !l.done() {
		l.i++
		return true
	}
	return false
}

// fixed reads exactly n digits.
func (l *lexer) fixed(n int) (int, bool) {
	if l.i+n > len(l.s) {
		return 0, false
	}
	v := 0
	for _, c := range []byte(l.s[l.i : l.i+n]) {
		if !isDigit(c) {
			return 0, false
		}
		v = v*10 + int(c-'0')
	}
	l.i += n
	return v, true
}

// digits reads one or more digits and returns them unparsed.
func (l *lexer) digits() string {
	start := l.i
	for !l.done() && isDigit(l.s[l.i]) {
		l.i++
	}
	return l.s[start:l.i]
}

// parseDateTime parses an XML Schema dateTime or date:
//
//	yyyy-mm-dd[Thh:mm[:ss[.f+]]][Z|(+|-)hh:mm]
//
// Seconds may be omitted as URI literals commonly do. A value without a
// time zone is read as UTC; an explicit offset is kept as a fixed zone.
func parseDateTime(core string) (time.Time, error) {
	s := strings.Trim(core, xmlWhitespace)
	l := &lexer{s: s}
	bad := func(what string) (time.Time, error) {
		return time.Time{}, fmt.Errorf("%w: invalid date/time %q: %s", ErrPayloadMalformed, core, what)
	}

	year, ok := l.fixed(4)
	if !ok || !l.accept('-') {
		return bad("expected yyyy-")
	}
	month, ok := l.fixed(2)
	if !ok || !l.accept('-') {
		return bad("expected mm-")
	}
	day, ok := l.fixed(2)
	if !ok {
		return bad("expected dd")
	}
	if month < 1 || month > 12 {
		return bad("month out of range")
	}
	if day < 1 || day > daysIn(time.Month(month), year) {
		return bad("day out of range")
	}

	var hour, minute, second, nanos int
	if l.accept('T') {
		if hour, ok = l.fixed(2); !ok || !l.accept(':') {
			return bad("expected hh:")
		}
		if minute, ok = l.fixed(2); !ok {
			return bad("expected mm")
		}
		if l.accept(':') {
			if second, ok = l.fixed(2); !ok {
				return bad("expected ss")
			}
			if l.accept('.') {
				frac := l.digits()
				if frac == "" {
					return bad("empty fraction")
				}
				nanos = fractionNanos(frac)
			}
		}
		if hour > 23 || minute > 59 || second > 59 {
			return bad("time out of range")
		}
	}

	loc := time.UTC
	switch {
	case l.accept('Z'):
	case l.peek() == '+' || l.peek() == '-':
		sign := 1
		if l.s[l.i] == '-' {
			sign = -1
		}
		l.i++
		oh, ok1 := l.fixed(2)
		ok2 := l.accept(':')
		om, ok3 := l.fixed(2)
		if !ok1 || !ok2 || !ok3 || oh > 14 || om > 59 || (oh == 14 && om > 0) {
			return bad("invalid time zone offset")
		}
		loc = time.FixedZone("", sign*(oh*3600+om*60))
	}
	if !l.done() {
		return bad("unexpected trailing text")
	}

	return time.Date(year, time.Month(month), day, hour, minute, second, nanos, loc), nil
}

// fractionNanos converts fractional-second digits to nanoseconds.
// Digits beyond nanosecond precision are truncated.
func fractionNanos(frac string) int {
	if len(frac) > 9 {
		frac = frac[:9]
	}
	n, _ := strconv.Atoi(frac)
	for i := len(frac); i < 9; i++ {
		n *= 10
	}
	return n
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Duration units for the date part. A year counts as 365 days and a month
// as 30 days.
const (
	durationDay   = 24 * time.Hour
	durationMonth = 30 * durationDay
	durationYear  = 365 * durationDay
)

// parseDuration parses an XML Schema duration such as "P1DT2H30M" or
// "-PT0.5S" into a time.Duration.
func parseDuration(core string) (time.Duration, error) {
	s := strings.Trim(core, xmlWhitespace)
	l := &lexer{s: s}
	bad := func(what string) (time.Duration, error) {
		return 0, fmt.Errorf("%w: invalid duration %q: %s", ErrPayloadMalformed, core, what)
	}

	neg := l.accept('-')
	if !l.accept('P') {
		return bad("expected 'P'")
	}

	limit := uint64(math.MaxInt64)
	if neg {
		limit++
	}

	var total uint64
	add := func(n string, unit time.Duration) bool {
		v, err := strconv.ParseUint(n, 10, 64)
		if err != nil {
			return false
		}
		if v != 0 && uint64(unit) > limit/v {
			return false
		}
		v *= uint64(unit)
		if total > limit-v {
			return false
		}
		total += v
		return true
	}

	components := 0
	dateUnits := []struct {
		designator byte
		unit       time.Duration
	}{{'Y', durationYear}, {'M', durationMonth}, {'D', durationDay}}
	next := 0
	for !l.done() && l.peek() != 'T' {
		n := l.digits()
		if n == "" {
			return bad("expected number")
		}
		for next < len(dateUnits) && dateUnits[next].designator != l.peek() {
			next++
		}
		if next == len(dateUnits) {
			return bad("unexpected designator")
		}
		l.i++
		if !add(n, dateUnits[next].unit) {
			return bad("out of range")
		}
		next++
		components++
	}

	if l.accept('T') {
		timeComponents := 0
		timeUnits := []struct {
			designator byte
			unit       time.Duration
		}{{'H', time.Hour}, {'M', time.Minute}, {'S', time.Second}}
		next = 0
		for !l.done() {
			n := l.digits()
			if n == "" {
				return bad("expected number")
			}
			frac := ""
			if l.accept('.') {
				if frac = l.digits(); frac == "" {
					return bad("empty fraction")
				}
				if l.peek() != 'S' {
					return bad("fraction is only allowed on seconds")
				}
			}
			for next < len(timeUnits) && timeUnits[next].designator != l.peek() {
				next++
			}
			if next == len(timeUnits) {
				return bad("unexpected designator")
			}
			l.i++
			if !add(n, timeUnits[next].unit) {
				return bad("out of range")
			}
			if frac != "" && !add(strconv.Itoa(fractionNanos(frac)), time.Nanosecond) {
				return bad("out of range")
			}
			next++
			timeComponents++
		}
		if timeComponents == 0 {
			return bad("'T' must be followed by a time component")
		}
		components += timeComponents
	}

	if components == 0 {
		return bad("no components")
	}
	if !l.done() {
		return bad("unexpected trailing text")
	}

	if neg && total > 0 {
		return time.Duration(-int64(total-1) - 1), nil
	}
	return time.Duration(total), nil
}

// formatDuration renders d as an XML Schema duration using days and time
// components only.
func formatDuration(d time.Duration) string {
	var b strings.Builder
	mag := uint64(d)
	if d < 0 {
		b.WriteByte('-')
		mag = uint64(-(d + 1)) + 1
	}
	b.WriteByte('P')

	days := mag / uint64(durationDay)
	rem := mag % uint64(durationDay)
	if days > 0 {
		b.WriteString(strconv.FormatUint(days, 10))
		b.WriteByte('D')
	}
	if rem == 0 {
		if days == 0 {
			b.WriteString("T0S")
		}
		return b.String()
	}

	b.WriteByte('T')
	if h := rem / uint64(time.Hour); h > 0 {
		b.WriteString(strconv.FormatUint(h, 10))
		b.WriteByte('H')
	}
	if m := rem % uint64(time.Hour) / uint64(time.Minute); m > 0 {
		b.WriteString(strconv.FormatUint(m, 10))
		b.WriteByte('M')
	}
	if ns := rem % uint64(time.Minute); ns > 0 {
		b.WriteString(strconv.FormatUint(ns/uint64(time.Second), 10))
		if frac := ns % uint64(time.Second); frac > 0 {
			f := fmt.Sprintf("%09d", frac)
			b.WriteByte('.')
			b.WriteString(strings.TrimRight(f, "0"))
		}
		b.WriteByte('S')
	}
	return b.String()
}
