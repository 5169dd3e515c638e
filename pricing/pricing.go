package pricing

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// OptionType identifies the side of a vanilla contract.
type OptionType string

const (
	Call OptionType = "call"
	Put  OptionType = "put"
)

// ParseOptionType converts a request string into an OptionType.
func ParseOptionType(s string) (OptionType, error) {
	switch OptionType(s) {
	case Call:
		return Call, nil
	case Put:
		return Put, nil
	}
	return "", fmt.Errorf("unknown option type %q", s)
}

// ErrNonPositive is returned when the underlying or strike is not strictly
// positive. The log term in d1 is undefined there, so the pricer refuses the
// input instead of leaving the behaviour undefined.
var ErrNonPositive = errors.New("underlying price and strike must be positive")

var stdNormal = distuv.Normal{Mu: 0.0, Sigma: 1.0}

// NormCDF is the standard normal cumulative distribution function.
func NormCDF(x float64) float64 {
	return stdNormal.CDF(x)
}

// Intrinsic is the exercise value of the option at underlying price s.
func Intrinsic(s, k float64, typ OptionType) float64 {
	if typ == Call {
		return math.Max(0.0, s-k)
	}
	return math.Max(0.0, k-s)
}

// BlackScholes returns the European option value for underlying price s,
// strike k, time to expiry t in years, continuously compounded rate r and
// volatility sigma expressed as a decimal.
// At t <= 0 or sigma <= 0 the value collapses to intrinsic, which also keeps
// the sigma*sqrt(t) denominator away from zero.
func BlackScholes(s, k, t, r, sigma float64, typ OptionType) (float64, error) {
	if s <= 0 || k <= 0 {
		return 0, ErrNonPositive
	}
	if t <= 0 || sigma <= 0 {
		return Intrinsic(s, k, typ), nil
	}

	x := sigma * math.Sqrt(t)
	d1 := (math.Log(s/k) + (r+0.5*sigma*sigma)*t) / x
	d2 := d1 - x

	if typ == Call {
		return s*NormCDF(d1) - k*math.Exp(-r*t)*NormCDF(d2), nil
	}
	return k*math.Exp(-r*t)*NormCDF(-d2) - s*NormCDF(-d1), nil
}
