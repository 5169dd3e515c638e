package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestNormCDF(t *testing.T) {
	require.InDelta(t, 0.5, NormCDF(0.0), 1e-12)
	require.InDelta(t, 1.0, NormCDF(8.0), 1e-9)
	require.InDelta(t, 0.0, NormCDF(-8.0), 1e-9)
	for _, x := range []float64{-2.3, -0.7, 0.1, 1.9} {
		require.InDelta(t, 1.0-NormCDF(-x), NormCDF(x), 1e-12)
	}
	// closed-form relation to the error function
	require.InDelta(t, 0.5*(1.0+math.Erf(0.21/math.Sqrt2)), NormCDF(0.21), 1e-12)
}

func TestBlackScholesIntrinsicBoundary(t *testing.T) {
	testCases := []struct {
		name     string
		s, k     float64
		ttm      float64
		sigma    float64
		typ      OptionType
		expected float64
	}{
		{name: "EXPIRED_ITM_CALL", s: 110, k: 100, ttm: 0, sigma: 0.3, typ: Call, expected: 10},
		{name: "EXPIRED_OTM_CALL", s: 90, k: 100, ttm: 0, sigma: 0.3, typ: Call, expected: 0},
		{name: "EXPIRED_ITM_PUT", s: 90, k: 100, ttm: 0, sigma: 0.3, typ: Put, expected: 10},
		{name: "EXPIRED_OTM_PUT", s: 110, k: 100, ttm: 0, sigma: 0.3, typ: Put, expected: 0},
		{name: "ZERO_VOL_CALL", s: 103.5, k: 100, ttm: 0.5, sigma: 0, typ: Call, expected: 3.5},
		{name: "ZERO_VOL_PUT", s: 95.25, k: 100, ttm: 0.5, sigma: 0, typ: Put, expected: 4.75},
		{name: "PAST_EXPIRY", s: 110, k: 100, ttm: -0.1, sigma: 0.3, typ: Call, expected: 10},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			got, err := BlackScholes(test.s, test.k, test.ttm, 0.02, test.sigma, test.typ)
			require.NoError(t, err)
			require.Equal(t, test.expected, got)
			require.Equal(t, Intrinsic(test.s, test.k, test.typ), got)
		})
	}
}

func TestBlackScholesKnownValue(t *testing.T) {
	// S=100, K=100, T=1, r=0.02, sigma=0.20:
	// d1 = (ln(1) + (0.02 + 0.5*0.04)) / 0.2 = 0.20, d2 = 0.00,
	// call = 100*Phi(0.20) - 100*exp(-0.02)*Phi(0.00) = 8.9160
	call, err := BlackScholes(100, 100, 1.0, 0.02, 0.20, Call)
	require.NoError(t, err)
	require.InDelta(t, 8.9160, call, 1e-3)
}

func TestPutCallParity(t *testing.T) {
	const (
		k   = 100.0
		r   = 0.02
		ttm = 0.75
	)
	for _, s := range []float64{80.0, 100.0, 125.0} {
		call, err := BlackScholes(s, k, ttm, r, 0.3, Call)
		require.NoError(t, err)
		put, err := BlackScholes(s, k, ttm, r, 0.3, Put)
		require.NoError(t, err)
		require.InDelta(t, k*math.Exp(-r*ttm)-s, put-call, 1e-9)
	}
}

func TestTimeValueErodes(t *testing.T) {
	prev := math.Inf(1)
	for _, ttm := range []float64{2.0, 1.0, 0.5, 0.25, 0.1, 0.01, 0.0} {
		call, err := BlackScholes(100, 100, ttm, 0.02, 0.3, Call)
		require.NoError(t, err)
		require.Less(t, call, prev)
		prev = call
	}
}

func TestBlackScholesRejectsNonPositive(t *testing.T) {
	for _, test := range []struct{ s, k float64 }{{0, 100}, {-5, 100}, {100, 0}, {100, -1}} {
		_, err := BlackScholes(test.s, test.k, 1.0, 0.02, 0.3, Call)
		require.ErrorIs(t, err, ErrNonPositive)
	}
}

// Monte Carlo cross-check: terminal GBM samples under the risk-neutral
// measure should reproduce the closed-form price.
func TestBlackScholesMonteCarlo(t *testing.T) {
	const (
		s0      = 100.0
		k       = 105.0
		r       = 0.02
		sigma   = 0.25
		ttm     = 1.0
		samples = 400000
	)
	d := distuv.Normal{Mu: 0.0, Sigma: 1.0, Src: rand.NewSource(42)}

	drift := (r - 0.5*sigma*sigma) * ttm
	diff := sigma * math.Sqrt(ttm)

	var sumCall, sumPut float64
	for i := 0; i < samples; i++ {
		st := s0 * math.Exp(drift+diff*d.Rand())
		sumCall += math.Max(0.0, st-k)
		sumPut += math.Max(0.0, k-st)
	}
	discount := math.Exp(-r * ttm)
	mcCall := discount * sumCall / samples
	mcPut := discount * sumPut / samples

	call, err := BlackScholes(s0, k, ttm, r, sigma, Call)
	require.NoError(t, err)
	put, err := BlackScholes(s0, k, ttm, r, sigma, Put)
	require.NoError(t, err)

	require.InDelta(t, call, mcCall, 0.1)
	require.InDelta(t, put, mcPut, 0.1)
}

func TestParseOptionType(t *testing.T) {
	typ, err := ParseOptionType("call")
	require.NoError(t, err)
	require.Equal(t, Call, typ)

	typ, err = ParseOptionType("put")
	require.NoError(t, err)
	require.Equal(t, Put, typ)

	_, err = ParseOptionType("straddle")
	require.Error(t, err)
}
