package payoff

import (
	"math"
	"time"
)

const Layout = "2006-01-02"

// PricePoints returns ascending underlying price samples from min through max
// inclusive, step apart, each exact to the cent. The walk is done in integer
// cents so the upper boundary is never lost to accumulated floating point
// error. min == max yields a single point. Callers must enforce step > 0 and
// max >= min before invocation.
func PricePoints(min, max, step float64) []float64 {
	lo, hi, inc := cents(min), cents(max), cents(step)
	out := make([]float64, 0, (hi-lo)/inc+1)
	for c := lo; c <= hi; c += inc {
		out = append(out, float64(c)/100.0)
	}
	return out
}

func cents(v float64) int64 {
	return int64(math.Round(v * 100.0))
}

// DateAxis returns one entry per calendar day from today through expiry
// inclusive. An expiry on or before today collapses to a single entry, today.
func DateAxis(today, expiry time.Time) []time.Time {
	today, expiry = Midnight(today), Midnight(expiry)
	n := DaysBetween(today, expiry)
	if n < 0 {
		n = 0
	}
	out := make([]time.Time, n+1)
	for i := range out {
		out[i] = today.AddDate(0, 0, i)
	}
	return out
}

// DaysBetween counts whole calendar days from one midnight to another.
func DaysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24.0)
}

// Midnight truncates t to its calendar date in UTC.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today is the evaluation date for a fresh computation.
func Today() time.Time {
	return Midnight(time.Now())
}
