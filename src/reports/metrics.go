package reports

import (
	"errors"

	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/dataset"
	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/models"
	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/utils"
)

// ErrUserNotFound is the only failure the computation layer surfaces: the
// requested identifier has no row in the investor master sheet. Everything
// else (missing columns, unparseable numbers, absent sheets) degrades to
// default values.
var ErrUserNotFound = errors.New("user not found in investor records")

// ComputeUserMetrics derives the full set of financial figures for one
// investor from the loaded registry.
func ComputeUserMetrics(userID string, reg *dataset.Registry) (*models.UserMetrics, error) {
	investors := reg.Table(dataset.InvestorDetails)

	var investor dataset.Row
	for _, row := range investors.Rows {
		if row.Get("UserID") == userID {
			investor = row
			break
		}
	}
	if investor == nil {
		return nil, ErrUserNotFound
	}

	// Some workbook revisions label the investor name "Name", older ones
	// "Contact_Name". Column presence decides, as in the source sheets.
	name := investor.Get("Name")
	if !investors.HasColumn("Name") {
		name = investor.Get("Contact_Name")
	}

	totalInvestment := utils.ParseMoneyOrZero(investor.Get("Total_Invested_Amount"))

	// A missing "Total Profit Earned" column means the sheet predates profit
	// tracking; that defaults to 0 without being an error.
	totalProfit := 0.0
	if investors.HasColumn("Total Profit Earned") {
		totalProfit = utils.ParseMoneyOrZero(investor.Get("Total Profit Earned"))
	}

	metrics := &models.UserMetrics{
		UserID:            userID,
		Name:              name,
		TotalInvestment:   totalInvestment,
		TotalProfit:       totalProfit,
		InvestmentHistory: []models.InvestmentEntry{},
		PendingCharges:    []models.PendingCharge{},
	}

	if totalInvestment > 0 {
		metrics.ROI = totalProfit / totalInvestment * 100
	}

	metrics.AvgDailyProfit, metrics.ExpectedMonthly = monthlyProjection(userID, reg)
	metrics.InvestmentHistory = investmentHistory(userID, reg)
	metrics.PendingCharges = pendingCharges(userID, reg)
	for _, c := range metrics.PendingCharges {
		metrics.TotalPendingAmt += c.Amount
	}

	return metrics, nil
}

// monthlyProjection averages the user's strictly positive daily profits and
// extrapolates 30 days ahead. Zero and loss days are excluded on purpose:
// the projection only averages realized gains.
func monthlyProjection(userID string, reg *dataset.Registry) (avgDaily, expectedMonthly float64) {
	report := reg.Table(dataset.DailyReport)

	var sum float64
	var count int
	for _, row := range report.Rows {
		if row.Get("UserID") != userID {
			continue
		}
		profit := utils.ParseMoneyOrZero(row.Get("Profit"))
		if profit > 0 {
			sum += profit
			count++
		}
	}
	if count == 0 {
		return 0, 0
	}
	avgDaily = sum / float64(count)
	return avgDaily, avgDaily * 30
}

// investmentHistory lists the user's capital contributions in source row
// order. Rows without an invested amount are skipped; a missing primary date
// falls back to the transaction date.
func investmentHistory(userID string, reg *dataset.Registry) []models.InvestmentEntry {
	transactions := reg.Table(dataset.DailyProfitsCalculations)

	history := []models.InvestmentEntry{}
	for _, row := range transactions.Rows {
		if row.Get("UserID") != userID || !row.Has("User_Invested_Amount") {
			continue
		}

		date := row.Get("Date")
		if date == "" {
			date = row.Get("Transaction_Date")
		}
		txID := row.Get("Transaction_ID")
		if txID == "" {
			txID = "N/A"
		}

		history = append(history, models.InvestmentEntry{
			Date:          date,
			Amount:        utils.ParseMoneyOrZero(row.Get("User_Invested_Amount")),
			TransactionID: txID,
		})
	}
	return history
}

// pendingCharges surfaces the user's platform charges whose pending amount
// parses to a strictly positive number. An unresolvable user-id column means
// no charges for anyone.
func pendingCharges(userID string, reg *dataset.Registry) []models.PendingCharge {
	charges := reg.Table(dataset.PlatformCharges)

	pending := []models.PendingCharge{}
	userIDCol, ok := dataset.Resolve(charges, dataset.UserIDColumns...)
	if !ok {
		return pending
	}

	for _, row := range charges.Rows {
		if row.Get(userIDCol) != userID {
			continue
		}
		amount := utils.ParseMoneyOrZero(row.Get("Pending_Amt"))
		if amount <= 0 {
			continue
		}
		reason := row.Get("Reason_For_Charge")
		if reason == "" {
			reason = "N/A"
		}
		pending = append(pending, models.PendingCharge{
			Reason:        reason,
			Amount:        amount,
			ChargePerHead: utils.ParseMoneyOrZero(row.Get("Charge_Per_Head")),
		})
	}
	return pending
}
