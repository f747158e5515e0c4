package reports

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/models"
)

// CSV downloads are direct serializations of the already-filtered rows with
// the dashboard's human-readable column headers; no further transformation.

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReportCSV serializes a filtered daily report.
func ReportCSV(report *models.UserReport) ([]byte, error) {
	header := []string{"Date", "Your Investment", "Company Total Investment", "Your Profit", "Company Profit", "Payment Status"}
	rows := make([][]string, 0, len(report.Rows))
	for _, r := range report.Rows {
		rows = append(rows, []string{
			r.Date,
			formatAmount(r.InvestAmount),
			formatAmount(r.CompanyTotalInvest),
			formatAmount(r.Profit),
			formatAmount(r.TotalProfit),
			r.Payment,
		})
	}
	return writeCSV(header, rows)
}

// ReinvestmentsCSV serializes a user's re-investment requests.
func ReinvestmentsCSV(entries []models.ReinvestmentEntry) ([]byte, error) {
	header := []string{"Request ID", "Requested Amount", "Till Now Added Amount", "Still Pending Amount To Add", "Updated To Main Investment"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.RequestID,
			formatAmount(e.RequestedAmount),
			formatAmount(e.TotalAddedAmount),
			formatAmount(e.PendingAmountToAdd),
			e.AppliedToMain,
		})
	}
	return writeCSV(header, rows)
}

// ChargesCSV serializes a user's pending platform charges.
func ChargesCSV(charges []models.PendingCharge) ([]byte, error) {
	header := []string{"Reason", "Pending Amount", "Charge Per Head"}
	rows := make([][]string, 0, len(charges))
	for _, c := range charges {
		rows = append(rows, []string{
			c.Reason,
			formatAmount(c.Amount),
			formatAmount(c.ChargePerHead),
		})
	}
	return writeCSV(header, rows)
}
