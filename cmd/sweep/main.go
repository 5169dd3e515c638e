// Batch what-if runner: computes the payoff projection for every scenario in
// a JSON file and writes the combined report, without going through the HTTP
// service.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/quantfold/optionwheel/payoff"
	"github.com/quantfold/optionwheel/pricing"
)

type scenario struct {
	StockPrice        float64 `json:"stock_price"`
	StrikePrice       float64 `json:"strike_price"`
	Premium           float64 `json:"premium"`
	Contracts         int     `json:"contracts"`
	OptionType        string  `json:"option_type"`
	ExpiryDate        string  `json:"expiry_date"`
	ImpliedVolatility float64 `json:"implied_volatility"`
	StockMin          float64 `json:"stock_min"`
	StockMax          float64 `json:"stock_max"`
}

type report struct {
	Scenario   scenario                      `json:"scenario"`
	ExpiryRows []payoff.Row                  `json:"expiry_rows"`
	PriceAxis  []float64                     `json:"price_axis"`
	DateAxis   []string                      `json:"date_axis"`
	Grid       map[string]map[string]float64 `json:"grid"`
}

func main() {
	in := flag.String("in", "scenarios.json", "scenario file")
	out := flag.String("out", "sweep.json", "output file")
	flag.Parse()

	if err := run(*in, *out); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}

func run(in, out string) error {
	raw, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	var scenarios []scenario
	if err := json.Unmarshal(raw, &scenarios); err != nil {
		return err
	}

	bar := progressBar(len(scenarios))
	today := payoff.Today()
	cfg := payoff.DefaultConfig()

	reports := make([]report, 0, len(scenarios))
	for i, sc := range scenarios {
		trade, err := sc.trade()
		if err != nil {
			return fmt.Errorf("scenario %d: %w", i, err)
		}
		result, err := payoff.Compute(trade, cfg, today)
		if err != nil {
			return fmt.Errorf("scenario %d: %w", i, err)
		}
		reports = append(reports, report{
			Scenario:   sc,
			ExpiryRows: result.Rows,
			PriceAxis:  result.Prices,
			DateAxis:   result.DateStrings(),
			Grid:       result.Grid(),
		})
		bar.Add(1)
	}

	data, err := json.MarshalIndent(reports, "", " ")
	if err != nil {
		return err
	}
	return os.WriteFile(out, data, 0644)
}

func (sc scenario) trade() (payoff.Trade, error) {
	typ, err := pricing.ParseOptionType(sc.OptionType)
	if err != nil {
		return payoff.Trade{}, err
	}
	expiry, err := time.Parse(payoff.Layout, sc.ExpiryDate)
	if err != nil {
		return payoff.Trade{}, err
	}
	if sc.StockMax < sc.StockMin {
		return payoff.Trade{}, fmt.Errorf("stock_max %.2f is below stock_min %.2f", sc.StockMax, sc.StockMin)
	}
	if sc.StockMin <= 0 || sc.StrikePrice <= 0 {
		return payoff.Trade{}, pricing.ErrNonPositive
	}
	return payoff.Trade{
		Spot:       sc.StockPrice,
		Strike:     sc.StrikePrice,
		Premium:    sc.Premium,
		Contracts:  sc.Contracts,
		Type:       typ,
		Expiry:     expiry,
		ImpliedVol: sc.ImpliedVolatility,
		MinPrice:   sc.StockMin,
		MaxPrice:   sc.StockMax,
	}, nil
}

// progress bar initialization
func progressBar(length int) *progressbar.ProgressBar {
	bar := progressbar.NewOptions(
		length,
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(20),
		progressbar.OptionSetVisibility(true),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
	return bar
}
