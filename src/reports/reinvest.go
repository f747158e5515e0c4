package reports

import (
	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/dataset"
	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/models"
	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/utils"
)

// UserReinvestments lists a user's re-investment requests in source row
// order. The sheet uses the same drifting user-id header as the charges
// sheet; when it cannot be resolved the user simply has no requests.
func UserReinvestments(userID string, reg *dataset.Registry) []models.ReinvestmentEntry {
	reinvest := reg.Table(dataset.ReinvestmentDetails)

	entries := []models.ReinvestmentEntry{}
	userIDCol, ok := dataset.Resolve(reinvest, dataset.UserIDColumns...)
	if !ok {
		return entries
	}

	for _, row := range reinvest.Rows {
		if row.Get(userIDCol) != userID {
			continue
		}
		requestID := row.Get("Re-Invest_ID")
		if requestID == "" {
			requestID = "N/A"
		}
		entries = append(entries, models.ReinvestmentEntry{
			RequestID:          requestID,
			RequestedAmount:    utils.ParseMoneyOrZero(row.Get("Requested_Amount")),
			TotalAddedAmount:   utils.ParseMoneyOrZero(row.Get("Total_Added_Amount")),
			PendingAmountToAdd: utils.ParseMoneyOrZero(row.Get("Pending_Amount_To_Be_Add")),
			AppliedToMain:      row.Get("Applied_To_Main_Investment_Status"),
		})
	}
	return entries
}
