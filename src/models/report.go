package models

// ReportRow is one daily-report record after user/date/status filtering.
// TotalProfit is synthesized from the Profit column when the sheet carries
// no company-total column of its own.
type ReportRow struct {
	Date               string  `json:"date"`
	InvestAmount       float64 `json:"invest_amount"`
	CompanyTotalInvest float64 `json:"company_total_invest"`
	Profit             float64 `json:"profit"`
	TotalProfit        float64 `json:"total_profit"`
	Payment            string  `json:"payment"`
	Remarks            string  `json:"remarks,omitempty"`
}

// ReportSummary aggregates the Profit column over the filtered rows.
// Unlike the monthly projection, it includes loss days.
type ReportSummary struct {
	TotalProfit        float64 `json:"total_profit"`
	AverageDailyProfit float64 `json:"average_daily_profit"`
	RowCount           int     `json:"row_count"`
}

// UserReport is the filtered daily report plus its summary, rows ordered by
// date descending.
type UserReport struct {
	Rows    []ReportRow   `json:"rows"`
	Summary ReportSummary `json:"summary"`
}

// ReinvestmentEntry is one re-investment request of a user, tracked until it
// is merged into the main investment total.
type ReinvestmentEntry struct {
	RequestID          string  `json:"request_id"`
	RequestedAmount    float64 `json:"requested_amount"`
	TotalAddedAmount   float64 `json:"total_added_amount"`
	PendingAmountToAdd float64 `json:"pending_amount_to_add"`
	AppliedToMain      string  `json:"applied_to_main_investment_status"`
}
