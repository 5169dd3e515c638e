package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quantfold/optionwheel/payoff"
	"github.com/quantfold/optionwheel/pricing"
)

type computeRequest struct {
	StockPrice        float64 `json:"stock_price" binding:"required,gt=0"`
	StrikePrice       float64 `json:"strike_price" binding:"required,gt=0"`
	// premium and implied_volatility deliberately carry no required tag:
	// zero is a legitimate value for both (a free option, a dead-flat vol
	// surface collapsing the grid to intrinsic value), and required rejects
	// the zero value of a plain float.
	Premium           float64 `json:"premium"`
	Contracts         int     `json:"contracts" binding:"required,min=1"`
	OptionType        string  `json:"option_type" binding:"required,oneof=call put"`
	ExpiryDate        string  `json:"expiry_date" binding:"required"`
	ImpliedVolatility float64 `json:"implied_volatility" binding:"gte=0"`
	StockMin          float64 `json:"stock_min" binding:"required,gt=0"`
	StockMax          float64 `json:"stock_max" binding:"required,gt=0"`
}

type computeResponse struct {
	ExpiryRows []payoff.Row                  `json:"expiry_rows"`
	PriceAxis  []float64                     `json:"price_axis"`
	DateAxis   []string                      `json:"date_axis"`
	Grid       map[string]map[string]float64 `json:"grid"`
}

func (server *Server) compute(c *gin.Context) {
	var req computeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"status": http.StatusBadRequest, "msg": "Invalid input. Please make sure all fields contain valid values"})
		return
	}
	if req.StockMax < req.StockMin {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"status": http.StatusBadRequest, "msg": "Max stock price must be greater than or equal to min stock price"})
		return
	}

	typ, err := pricing.ParseOptionType(req.OptionType)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	expiry, err := time.Parse(payoff.Layout, req.ExpiryDate)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"status": http.StatusBadRequest, "msg": "Expiry date must be in YYYY-MM-DD form"})
		return
	}

	trade := payoff.Trade{
		Spot:       req.StockPrice,
		Strike:     req.StrikePrice,
		Premium:    req.Premium,
		Contracts:  req.Contracts,
		Type:       typ,
		Expiry:     expiry,
		ImpliedVol: req.ImpliedVolatility,
		MinPrice:   req.StockMin,
		MaxPrice:   req.StockMax,
	}

	start := time.Now()
	result, err := payoff.Compute(trade, server.config.Pricing.PayoffConfig(), payoff.Today())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	server.logger.Info().
		Str("option_type", req.OptionType).
		Int("dates", len(result.Dates)).
		Int("prices", len(result.Prices)).
		Dur("took", time.Since(start)).
		Msg("computed payoff grid")

	c.JSON(http.StatusOK, computeResponse{
		ExpiryRows: result.Rows,
		PriceAxis:  result.Prices,
		DateAxis:   result.DateStrings(),
		Grid:       result.Grid(),
	})
}
