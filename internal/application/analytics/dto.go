package analytics

import "github.com/shopspring/decimal"

// OrdersSummary is the order slice of the dashboard
type OrdersSummary struct {
	ByStatus           map[string]int64 `json:"by_status"`
	ByPhase            map[string]int64 `json:"by_phase"`
	TotalTradeValueUSD decimal.Decimal  `json:"total_trade_value_usd"`
}

// DashboardResponse is the per-account analytics summary. Requirements is
// populated for importers, Bids for exporters.
type DashboardResponse struct {
	Role         string           `json:"role"`
	Requirements map[string]int64 `json:"requirements,omitempty"`
	Bids         map[string]int64 `json:"bids,omitempty"`
	Orders       OrdersSummary    `json:"orders"`
}
