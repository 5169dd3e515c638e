package payoff

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/quantfold/optionwheel/pricing"
)

// Trade holds the validated inputs of a single what-if projection. The zero
// value is not usable; the request layer is responsible for populating every
// field from a validated request.
type Trade struct {
	Spot       float64
	Strike     float64
	Premium    float64 // paid per share
	Contracts  int
	Type       pricing.OptionType
	Expiry     time.Time
	ImpliedVol float64 // percentage, e.g. 35 for 35%
	MinPrice   float64
	MaxPrice   float64
}

// Config carries the pricing conventions. They are deliberate business
// assumptions rather than universal constants, so they are parameters with
// documented defaults instead of literals in the sweep.
type Config struct {
	// RiskFreeRate is the annualised discount rate. Default 0.02.
	RiskFreeRate float64
	// Multiplier is the number of shares one contract controls. Default 100.
	Multiplier float64
	// DaysPerYear is the day-count divisor for time to expiry. Default 365.
	DaysPerYear float64
	// Step is the spacing of the price axis in currency units. Default 1.0.
	Step float64
}

// DefaultConfig returns the standard conventions.
func DefaultConfig() Config {
	return Config{
		RiskFreeRate: 0.02,
		Multiplier:   100,
		DaysPerYear:  365,
		Step:         1.0,
	}
}

// Row is one line of the expiry-only P/L table.
type Row struct {
	Price       float64 `json:"price"`
	PerContract float64 `json:"pl_per_contract"`
	Total       float64 `json:"pl_total"`
}

// Result holds both projection outputs. PL is the date-by-price surface of
// total P/L: row i is Dates[i], column j is Prices[j]. The dense matrix plus
// the two axes is the in-memory representation; Grid converts to the nested
// string-keyed shape only at the serialization boundary.
type Result struct {
	Rows   []Row
	Prices []float64
	Dates  []time.Time
	PL     *mat.Dense
}

// Compute runs the full projection for a trade: the expiry-only payoff table
// and the date-by-price Black-Scholes P/L surface from today through expiry.
// It trusts the preconditions of its inputs (MaxPrice >= MinPrice, positive
// step); only non-positive prices or strikes surface as errors, from the
// pricer itself.
func Compute(t Trade, cfg Config, today time.Time) (*Result, error) {
	today, expiry := Midnight(today), Midnight(t.Expiry)
	prices := PricePoints(t.MinPrice, t.MaxPrice, cfg.Step)
	dates := DateAxis(today, expiry)

	cost := t.Premium * cfg.Multiplier
	sigma := t.ImpliedVol / 100.0
	lots := float64(t.Contracts)

	// At expiry time value is zero, so the table prices straight off
	// intrinsic value without a pricer call.
	rows := make([]Row, len(prices))
	for i, p := range prices {
		value := pricing.Intrinsic(p, t.Strike, t.Type) * cfg.Multiplier
		per := value - cost
		rows[i] = Row{Price: p, PerContract: per, Total: per * lots}
	}

	pl := mat.NewDense(len(dates), len(prices), nil)
	for i, d := range dates {
		days := DaysBetween(d, expiry)
		if days < 0 {
			days = 0
		}
		ttm := float64(days) / cfg.DaysPerYear
		for j, p := range prices {
			value, err := pricing.BlackScholes(p, t.Strike, ttm, cfg.RiskFreeRate, sigma, t.Type)
			if err != nil {
				return nil, fmt.Errorf("price %s at %.2f: %w", d.Format(Layout), p, err)
			}
			per := value*cfg.Multiplier - cost
			pl.Set(i, j, per*lots)
		}
	}

	return &Result{Rows: rows, Prices: prices, Dates: dates, PL: pl}, nil
}

// DateStrings renders the date axis in ISO-8601 form.
func (r *Result) DateStrings() []string {
	out := make([]string, len(r.Dates))
	for i, d := range r.Dates {
		out[i] = d.Format(Layout)
	}
	return out
}

// Grid converts the P/L surface to its wire shape: date string to price
// string (two decimals) to total P/L. Consumers walk it positionally via the
// date and price axes.
func (r *Result) Grid() map[string]map[string]float64 {
	grid := make(map[string]map[string]float64, len(r.Dates))
	for i, d := range r.Dates {
		daily := make(map[string]float64, len(r.Prices))
		for j, p := range r.Prices {
			daily[fmt.Sprintf("%.2f", p)] = r.PL.At(i, j)
		}
		grid[d.Format(Layout)] = daily
	}
	return grid
}
