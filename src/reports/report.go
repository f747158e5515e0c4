package reports

import (
	"sort"
	"time"

	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/dataset"
	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/models"
	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/utils"
)

// StatusAll is the payment-status sentinel meaning "no status filter".
const StatusAll = "All"

// DateFilter restricts report rows by reporting date. When End is zero the
// filter keeps only rows matching Start exactly; otherwise the [Start, End]
// range is inclusive on both ends.
type DateFilter struct {
	Start time.Time
	End   time.Time
}

func (f *DateFilter) matches(t time.Time) bool {
	day := t.Truncate(24 * time.Hour)
	if f.End.IsZero() {
		return day.Equal(f.Start.Truncate(24 * time.Hour))
	}
	return !day.Before(f.Start.Truncate(24*time.Hour)) && !day.After(f.End.Truncate(24*time.Hour))
}

// BuildUserReport applies date-range and payment-status filters to a user's
// daily report rows and returns them ordered by date descending, along with
// sum and mean of the Profit column. The summary deliberately includes loss
// days, unlike the monthly projection.
func BuildUserReport(userID string, reg *dataset.Registry, filter *DateFilter, paymentStatus string) *models.UserReport {
	report := reg.Table(dataset.DailyReport)

	// The company-total column drifts across spellings; when none exists the
	// per-user Profit column stands in for it.
	totalProfitCol, hasTotalProfit := dataset.Resolve(report, dataset.TotalProfitColumns...)

	type datedRow struct {
		row   models.ReportRow
		date  time.Time
		dated bool
	}

	var rows []datedRow
	for _, row := range report.Rows {
		if row.Get("UserID") != userID {
			continue
		}

		date, dated := utils.ParseCellDate(row.Get("Date"))
		if filter != nil && (!dated || !filter.matches(date)) {
			continue
		}
		if paymentStatus != "" && paymentStatus != StatusAll && row.Get("Payment") != paymentStatus {
			continue
		}

		profit := utils.ParseMoneyOrZero(row.Get("Profit"))
		totalProfit := profit
		if hasTotalProfit {
			totalProfit = utils.ParseMoneyOrZero(row.Get(totalProfitCol))
		}

		rows = append(rows, datedRow{
			row: models.ReportRow{
				Date:               row.Get("Date"),
				InvestAmount:       utils.ParseMoneyOrZero(row.Get("Invest_Amount")),
				CompanyTotalInvest: utils.ParseMoneyOrZero(row.Get("Company_Total_Invest")),
				Profit:             profit,
				TotalProfit:        totalProfit,
				Payment:            row.Get("Payment"),
				Remarks:            row.Get("Remarks"),
			},
			date:  date,
			dated: dated,
		})
	}

	// Most recent first; rows with unparseable dates keep source order at
	// the end.
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].dated != rows[j].dated {
			return rows[i].dated
		}
		return rows[i].date.After(rows[j].date)
	})

	result := &models.UserReport{Rows: []models.ReportRow{}}
	for _, r := range rows {
		result.Rows = append(result.Rows, r.row)
		result.Summary.TotalProfit += r.row.Profit
	}
	result.Summary.RowCount = len(result.Rows)
	if result.Summary.RowCount > 0 {
		result.Summary.AverageDailyProfit = result.Summary.TotalProfit / float64(result.Summary.RowCount)
	}
	return result
}
