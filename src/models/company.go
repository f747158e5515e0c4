package models

// CompanyTotals are the cross-user aggregates shown to every investor.
// TotalCompanyProfit counts each reporting date once: the daily report holds
// one row per user per date, each repeating the company-wide figure, so a
// naive sum over all rows overcounts by the number of investors.
type CompanyTotals struct {
	TotalInvestment    float64 `json:"total_investment"`
	TotalInvestors     int     `json:"total_investors"`
	TotalCompanyProfit float64 `json:"total_company_profit"`
	UniqueDays         int     `json:"unique_days"`
	TotalRows          int     `json:"total_rows"`
}

// ProfitPoint is one point of the company daily-profit time series.
type ProfitPoint struct {
	Date   string  `json:"date"`
	Profit float64 `json:"profit"`
}

// InvestorComparison is one bar pair of the investment-vs-profit chart.
type InvestorComparison struct {
	Name       string  `json:"name"`
	Investment float64 `json:"investment"`
	Profit     float64 `json:"profit"`
	ROI        float64 `json:"roi"`
}
