package models

// UserMetrics is the full set of derived figures for one investor. It is
// computed fresh per request from the loaded registry and never persisted.
type UserMetrics struct {
	UserID          string  `json:"user_id"`
	Name            string  `json:"name"`
	TotalInvestment float64 `json:"total_investment"`
	TotalProfit     float64 `json:"total_profit"`
	// ROI is totalProfit/totalInvestment*100, defined as exactly 0 when
	// totalInvestment <= 0.
	ROI float64 `json:"roi"`
	// ExpectedMonthly is the mean of strictly positive daily profits times 30.
	ExpectedMonthly float64 `json:"expected_monthly"`
	AvgDailyProfit  float64 `json:"avg_daily_profit"`

	InvestmentHistory []InvestmentEntry `json:"investment_history"`
	PendingCharges    []PendingCharge   `json:"pending_charges"`
	TotalPendingAmt   float64           `json:"total_pending_amt"`
}

// InvestmentEntry is one capital contribution surfaced as investment history.
type InvestmentEntry struct {
	Date          string  `json:"date"`
	Amount        float64 `json:"amount"`
	TransactionID string  `json:"transaction_id"`
}

// PendingCharge is a platform fee with a strictly positive pending amount.
type PendingCharge struct {
	Reason        string  `json:"reason"`
	Amount        float64 `json:"amount"`
	ChargePerHead float64 `json:"charge_per_head"`
}
