// Package chrono provides the high-precision time representation used by the
// downsampling layer.
//
// A chrono.Time stores an instant as two float64 parts: whole seconds since
// the Unix epoch plus a sub-second fraction. Keeping the parts separate means
// that the difference of two instants relative to a common base can be formed
// part-by-part, preserving sub-microsecond ordering even when the instants
// are many decades apart. A single float64 of absolute seconds cannot do
// this: at an offset of 100 years (~3.15e9 s) its resolution degrades to
// roughly half a microsecond, and two instants 500 ns apart collapse into
// the same value.
//
// The two-part layout mirrors the split (day, fraction) representations used
// by astronomical time scales; no time-scale conversions are performed here.
package chrono

import (
	"fmt"
	"math"
	"time"
)

// Time is an instant represented as two float64 parts: sec1 holds whole
// seconds since the Unix epoch and sec2 holds the sub-second remainder in
// [0, 1). The zero value is the Unix epoch.
type Time struct {
	sec1 float64
	sec2 float64
}

// Delta is a duration in seconds. Unlike time.Duration it is not limited to
// nanosecond granularity or to ~292 years of range.
type Delta float64

// Seconds returns the duration in seconds.
func (d Delta) Seconds() float64 { return float64(d) }

// Duration converts the delta to a time.Duration, rounding to the nearest
// nanosecond.
func (d Delta) Duration() time.Duration {
	return time.Duration(math.Round(float64(d) * 1e9))
}

// DeltaFromDuration converts a time.Duration to a Delta.
func DeltaFromDuration(d time.Duration) Delta {
	return Delta(d.Seconds())
}

// New creates a Time from whole seconds since the Unix epoch plus a
// fractional part. The fraction may be any finite value; the result is
// normalized so that the stored fraction lies in [0, 1).
func New(sec, frac float64) Time {
	t := Time{sec1: sec, sec2: frac}
	t.normalize()

	return t
}

// FromUnix creates a Time from Unix seconds and nanoseconds.
func FromUnix(sec int64, nsec int64) Time {
	return New(float64(sec), float64(nsec)*1e-9)
}

// FromGoTime converts a time.Time to a Time.
func FromGoTime(t time.Time) Time {
	return FromUnix(t.Unix(), int64(t.Nanosecond()))
}

// isotLayouts lists the accepted ISO-8601 "isot" layouts, most specific
// first.
var isotLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseISOT parses an ISO-8601 timestamp of the form
// "2016-03-22T12:30:31.000" (fractional seconds and the time part are
// optional). The timestamp is interpreted as UTC.
func ParseISOT(s string) (Time, error) {
	for _, layout := range isotLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return FromGoTime(t), nil
		}
	}

	return Time{}, fmt.Errorf("chrono: cannot parse %q as an isot timestamp", s)
}

// MustParseISOT is like ParseISOT but panics on malformed input. It is
// intended for tests and package-level literals.
func MustParseISOT(s string) Time {
	t, err := ParseISOT(s)
	if err != nil {
		panic(err)
	}

	return t
}

// ISOT formats the time as "2006-01-02T15:04:05.000" with millisecond
// precision, matching the default display of astronomical time values.
func (t Time) ISOT() string {
	sec := int64(t.sec1)
	nsec := int64(math.Round(t.sec2 * 1e9))
	if nsec >= 1e9 {
		sec++
		nsec -= 1e9
	}

	return time.Unix(sec, nsec).UTC().Format("2006-01-02T15:04:05.000")
}

// String implements fmt.Stringer.
func (t Time) String() string { return t.ISOT() }

// normalize moves whole seconds from the fractional part into sec1 so that
// sec2 ends up in [0, 1). The fractional part stays small, which is what
// preserves precision in RelativeSeconds.
func (t *Time) normalize() {
	carry := math.Floor(t.sec2)
	if carry != 0 {
		t.sec1 += carry
		t.sec2 -= carry
	}
}

// Add returns the time shifted by d.
func (t Time) Add(d Delta) Time {
	whole, frac := math.Modf(float64(d))

	return New(t.sec1+whole, t.sec2+frac)
}

// Sub returns the duration t - o.
func (t Time) Sub(o Time) Delta {
	return Delta((t.sec1 - o.sec1) + (t.sec2 - o.sec2))
}

// RelativeSeconds returns t - base in seconds, formed part-by-part.
//
// This is the representation the downsampling layer sorts and
// binary-searches on. Because the whole-second parts are subtracted before
// the fractions are added in, the result keeps full float64 resolution
// around the base: two instants 500 ns apart remain distinct even when they
// lie 100 years away from base. Precision degrades gracefully beyond that
// span; this is a documented limitation, not a detected error.
func (t Time) RelativeSeconds(base Time) float64 {
	return (t.sec1 - base.sec1) + (t.sec2 - base.sec2)
}

// Parts returns the whole-second and fractional components. The fraction is
// always in [0, 1). Feeding the parts back through New reproduces t exactly,
// which is what blob serialization relies on.
func (t Time) Parts() (sec, frac float64) { return t.sec1, t.sec2 }

// Before reports whether t is strictly earlier than o.
func (t Time) Before(o Time) bool {
	if t.sec1 != o.sec1 {
		return t.sec1 < o.sec1
	}

	return t.sec2 < o.sec2
}

// After reports whether t is strictly later than o.
func (t Time) After(o Time) bool { return o.Before(t) }

// Equal reports whether t and o denote the same instant.
func (t Time) Equal(o Time) bool {
	return t.sec1 == o.sec1 && t.sec2 == o.sec2
}

// Compare returns -1, 0 or +1 ordering t against o.
func (t Time) Compare(o Time) int {
	switch {
	case t.Before(o):
		return -1
	case o.Before(t):
		return 1
	default:
		return 0
	}
}

// Min returns the earlier of the given times. It panics if ts is empty.
func Min(ts []Time) Time {
	m := ts[0]
	for _, t := range ts[1:] {
		if t.Before(m) {
			m = t
		}
	}

	return m
}

// Max returns the later of the given times. It panics if ts is empty.
func Max(ts []Time) Time {
	m := ts[0]
	for _, t := range ts[1:] {
		if t.After(m) {
			m = t
		}
	}

	return m
}
