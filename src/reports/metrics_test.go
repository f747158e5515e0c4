package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/dataset"
)

func TestComputeUserMetricsUnknownUser(t *testing.T) {
	reg := newRegistry(map[string]*dataset.Table{
		dataset.InvestorDetails: investorsFixture(),
	})

	metrics, err := ComputeUserMetrics("NONEXISTENT", reg)
	require.ErrorIs(t, err, ErrUserNotFound)
	assert.Nil(t, metrics)
}

func TestComputeUserMetricsBasics(t *testing.T) {
	reg := newRegistry(map[string]*dataset.Table{
		dataset.InvestorDetails: investorsFixture(),
	})

	metrics, err := ComputeUserMetrics("INV001", reg)
	require.NoError(t, err)

	assert.Equal(t, "Arun", metrics.Name)
	assert.Equal(t, 10000.0, metrics.TotalInvestment)
	assert.Equal(t, 2500.0, metrics.TotalProfit)
	assert.InDelta(t, 25.0, metrics.ROI, 1e-9)
	assert.Empty(t, metrics.InvestmentHistory)
	assert.Empty(t, metrics.PendingCharges)
}

func TestROIZeroGuard(t *testing.T) {
	// ROI is defined as exactly 0 whenever total investment is not positive,
	// regardless of the profit's sign or magnitude.
	reg := newRegistry(map[string]*dataset.Table{
		dataset.InvestorDetails: investorsFixture(),
	})

	metrics, err := ComputeUserMetrics("INV003", reg)
	require.NoError(t, err)
	assert.Equal(t, 0.0, metrics.ROI)
	assert.Equal(t, 100.0, metrics.TotalProfit)
}

func TestNegativeProfitROI(t *testing.T) {
	reg := newRegistry(map[string]*dataset.Table{
		dataset.InvestorDetails: investorsFixture(),
	})

	metrics, err := ComputeUserMetrics("INV002", reg)
	require.NoError(t, err)
	assert.InDelta(t, -6.0, metrics.ROI, 1e-9)
}

func TestNameFallsBackToContactName(t *testing.T) {
	investors := newTable(
		[]string{"UserID", "Contact_Name", "Total_Invested_Amount"},
		[]string{"INV001", "Arun (contact)", "10000"},
	)
	reg := newRegistry(map[string]*dataset.Table{
		dataset.InvestorDetails: investors,
	})

	metrics, err := ComputeUserMetrics("INV001", reg)
	require.NoError(t, err)
	assert.Equal(t, "Arun (contact)", metrics.Name)
}

func TestMissingProfitColumnDefaultsToZero(t *testing.T) {
	investors := newTable(
		[]string{"UserID", "Name", "Total_Invested_Amount"},
		[]string{"INV001", "Arun", "10000"},
	)
	reg := newRegistry(map[string]*dataset.Table{
		dataset.InvestorDetails: investors,
	})

	metrics, err := ComputeUserMetrics("INV001", reg)
	require.NoError(t, err)
	assert.Equal(t, 0.0, metrics.TotalProfit)
	assert.Equal(t, 0.0, metrics.ROI)
}

func TestMonthlyProjectionExcludesLosses(t *testing.T) {
	report := newTable(
		[]string{"UserID", "Date", "Profit", "Payment"},
		[]string{"INV001", "2024-01-01", "-50", "Completed"},
		[]string{"INV001", "2024-01-02", "100", "Completed"},
		[]string{"INV001", "2024-01-03", "-20", "Completed"},
		[]string{"INV001", "2024-01-04", "200", "Completed"},
		[]string{"INV002", "2024-01-02", "9999", "Completed"}, // other user's row
	)
	reg := newRegistry(map[string]*dataset.Table{
		dataset.InvestorDetails: investorsFixture(),
		dataset.DailyReport:     report,
	})

	metrics, err := ComputeUserMetrics("INV001", reg)
	require.NoError(t, err)
	assert.InDelta(t, 150.0, metrics.AvgDailyProfit, 1e-9)
	assert.InDelta(t, 4500.0, metrics.ExpectedMonthly, 1e-9)
}

func TestMonthlyProjectionNoPositiveDays(t *testing.T) {
	report := newTable(
		[]string{"UserID", "Date", "Profit"},
		[]string{"INV001", "2024-01-01", "-50"},
		[]string{"INV001", "2024-01-02", "0"},
	)
	reg := newRegistry(map[string]*dataset.Table{
		dataset.InvestorDetails: investorsFixture(),
		dataset.DailyReport:     report,
	})

	metrics, err := ComputeUserMetrics("INV001", reg)
	require.NoError(t, err)
	assert.Equal(t, 0.0, metrics.AvgDailyProfit)
	assert.Equal(t, 0.0, metrics.ExpectedMonthly)
}

func TestInvestmentHistoryDateFallbackAndOrder(t *testing.T) {
	transactions := newTable(
		[]string{"UserID", "Date", "Transaction_Date", "User_Invested_Amount", "Transaction_ID"},
		[]string{"INV001", "2024-02-01", "", "5000", "TXN-1"},
		[]string{"INV001", "", "2024-01-15", "3000", ""},
		[]string{"INV001", "2024-03-01", "", "", "TXN-3"}, // no amount: skipped
		[]string{"INV002", "2024-02-02", "", "700", "TXN-4"},
	)
	reg := newRegistry(map[string]*dataset.Table{
		dataset.InvestorDetails:          investorsFixture(),
		dataset.DailyProfitsCalculations: transactions,
	})

	metrics, err := ComputeUserMetrics("INV001", reg)
	require.NoError(t, err)

	require.Len(t, metrics.InvestmentHistory, 2)
	// Source row order preserved, no re-sort.
	assert.Equal(t, "2024-02-01", metrics.InvestmentHistory[0].Date)
	assert.Equal(t, "TXN-1", metrics.InvestmentHistory[0].TransactionID)
	assert.Equal(t, 5000.0, metrics.InvestmentHistory[0].Amount)
	// Primary date empty: alternate transaction date surfaces instead.
	assert.Equal(t, "2024-01-15", metrics.InvestmentHistory[1].Date)
	assert.Equal(t, "N/A", metrics.InvestmentHistory[1].TransactionID)
}

func TestPendingChargesFiltering(t *testing.T) {
	charges := newTable(
		[]string{"UserID", "Reason_For_Charge", "Charge_Per_Head", "Pending_Amt"},
		[]string{"INV001", "Server cost", "50", "150"},
		[]string{"INV001", "Maintenance", "25", "abc"}, // unparseable: excluded
		[]string{"INV001", "Cleared", "10", "0"},       // exactly zero: excluded
		[]string{"INV001", "", "xyz", "75"},            // defaults kick in
		[]string{"INV002", "Other user", "5", "999"},
	)
	reg := newRegistry(map[string]*dataset.Table{
		dataset.InvestorDetails: investorsFixture(),
		dataset.PlatformCharges: charges,
	})

	metrics, err := ComputeUserMetrics("INV001", reg)
	require.NoError(t, err)

	require.Len(t, metrics.PendingCharges, 2)
	assert.Equal(t, "Server cost", metrics.PendingCharges[0].Reason)
	assert.Equal(t, 150.0, metrics.PendingCharges[0].Amount)
	assert.Equal(t, 50.0, metrics.PendingCharges[0].ChargePerHead)
	assert.Equal(t, "N/A", metrics.PendingCharges[1].Reason)
	assert.Equal(t, 0.0, metrics.PendingCharges[1].ChargePerHead)
	assert.InDelta(t, 225.0, metrics.TotalPendingAmt, 1e-9)
}

func TestPendingChargesUserIDVariant(t *testing.T) {
	// A "User ID" header (with space) must resolve and produce the same
	// output as the canonical "UserID" spelling.
	build := func(header string) *dataset.Registry {
		charges := newTable(
			[]string{header, "Reason_For_Charge", "Charge_Per_Head", "Pending_Amt"},
			[]string{"INV001", "Server cost", "50", "150"},
		)
		return newRegistry(map[string]*dataset.Table{
			dataset.InvestorDetails: investorsFixture(),
			dataset.PlatformCharges: charges,
		})
	}

	canonical, err := ComputeUserMetrics("INV001", build("UserID"))
	require.NoError(t, err)
	variant, err := ComputeUserMetrics("INV001", build("User ID"))
	require.NoError(t, err)

	assert.Equal(t, canonical.PendingCharges, variant.PendingCharges)
}

func TestPendingChargesUnresolvableColumn(t *testing.T) {
	charges := newTable(
		[]string{"Investor", "Pending_Amt"},
		[]string{"INV001", "150"},
	)
	reg := newRegistry(map[string]*dataset.Table{
		dataset.InvestorDetails: investorsFixture(),
		dataset.PlatformCharges: charges,
	})

	metrics, err := ComputeUserMetrics("INV001", reg)
	require.NoError(t, err)
	assert.Empty(t, metrics.PendingCharges)
}
