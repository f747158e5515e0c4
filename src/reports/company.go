package reports

import (
	"sort"
	"time"

	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/dataset"
	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/models"
	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/utils"
)

// dateKey buckets daily-report rows by reporting date. Unparseable dates
// fall back to the raw cell value so such rows still count exactly once.
func dateKey(raw string) string {
	if t, ok := utils.ParseCellDate(raw); ok {
		return t.Format("2006-01-02")
	}
	return raw
}

// ComputeCompanyTotals derives the cross-user aggregates.
//
// The daily report holds one row per user per date, each repeating the
// company-wide total-profit figure. The total therefore keeps only the first
// row per distinct date before summing; when no company-total column exists
// it instead groups per-user profits by date and sums the per-date totals.
func ComputeCompanyTotals(reg *dataset.Registry) *models.CompanyTotals {
	totals := &models.CompanyTotals{}

	investors := reg.Table(dataset.InvestorDetails)
	totals.TotalInvestors = len(investors.Rows)
	for _, row := range investors.Rows {
		totals.TotalInvestment += utils.ParseMoneyOrZero(row.Get("Total_Invested_Amount"))
	}

	report := reg.Table(dataset.DailyReport)
	totals.TotalRows = len(report.Rows)
	if report.Empty() {
		return totals
	}

	if profitCol, ok := dataset.Resolve(report, dataset.TotalProfitColumns...); ok {
		seen := make(map[string]bool)
		for _, row := range report.Rows {
			key := dateKey(row.Get("Date"))
			if seen[key] {
				continue
			}
			seen[key] = true
			totals.TotalCompanyProfit += utils.ParseMoneyOrZero(row.Get(profitCol))
		}
		totals.UniqueDays = len(seen)
	} else if report.HasColumn("Profit") {
		perDate := make(map[string]float64)
		for _, row := range report.Rows {
			perDate[dateKey(row.Get("Date"))] += utils.ParseMoneyOrZero(row.Get("Profit"))
		}
		totals.UniqueDays = len(perDate)
		for _, dayTotal := range perDate {
			totals.TotalCompanyProfit += dayTotal
		}
	}

	return totals
}

// CompanyProfitSeries builds the company daily-profit trend: strictly
// positive per-user profits summed per date, ascending by date. Loss days
// are excluded, matching the dashboard's trend chart.
func CompanyProfitSeries(reg *dataset.Registry) []models.ProfitPoint {
	report := reg.Table(dataset.DailyReport)

	perDate := make(map[time.Time]float64)
	for _, row := range report.Rows {
		date, ok := utils.ParseCellDate(row.Get("Date"))
		if !ok {
			continue
		}
		if profit := utils.ParseMoneyOrZero(row.Get("Profit")); profit > 0 {
			perDate[date.Truncate(24*time.Hour)] += profit
		}
	}

	dates := make([]time.Time, 0, len(perDate))
	for date := range perDate {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	series := make([]models.ProfitPoint, 0, len(dates))
	for _, date := range dates {
		series = append(series, models.ProfitPoint{
			Date:   date.Format("2006-01-02"),
			Profit: perDate[date],
		})
	}
	return series
}

// maxComparisonBars caps the investment-vs-profit chart when no investor is
// singled out.
const maxComparisonBars = 10

// InvestmentVsProfit builds the per-investor bar-chart series, sorted by
// total investment descending. With a selected user only that investor's
// bars are returned; otherwise the series is capped at the top investors.
func InvestmentVsProfit(reg *dataset.Registry, selectedUser string) []models.InvestorComparison {
	investors := reg.Table(dataset.InvestorDetails)

	nameCol := "Name"
	if !investors.HasColumn("Name") {
		nameCol = "Contact_Name"
	}
	profitCol, hasProfit := dataset.Resolve(investors, "Total Profit Earned", "Total Profit")

	comparisons := []models.InvestorComparison{}
	for _, row := range investors.Rows {
		if selectedUser != "" && row.Get("UserID") != selectedUser {
			continue
		}
		entry := models.InvestorComparison{
			Name:       row.Get(nameCol),
			Investment: utils.ParseMoneyOrZero(row.Get("Total_Invested_Amount")),
		}
		if hasProfit {
			entry.Profit = utils.ParseMoneyOrZero(row.Get(profitCol))
		}
		if entry.Investment > 0 {
			entry.ROI = entry.Profit / entry.Investment * 100
		}
		comparisons = append(comparisons, entry)
	}

	sort.SliceStable(comparisons, func(i, j int) bool {
		return comparisons[i].Investment > comparisons[j].Investment
	})

	if selectedUser == "" && len(comparisons) > maxComparisonBars {
		comparisons = comparisons[:maxComparisonBars]
	}
	return comparisons
}
