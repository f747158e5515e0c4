package dataset

// Upstream sheets are edited by hand and header spellings drift between
// revisions. Each logical field carries a ranked list of the spellings seen
// so far; Resolve picks the first one present in a table's header.

// UserIDColumns are the known spellings of the user-identifier header.
var UserIDColumns = []string{"UserID", "Userid", "USERID", "userid", "User ID", "User_Id"}

// TotalProfitColumns are the known spellings of the company-wide daily
// total-profit header in the daily report sheet.
var TotalProfitColumns = []string{"Total_Profit", "Total Profit", "TotalProfit", "total_profit"}

// Resolve returns the first candidate column name present in the table's
// header, preserving the caller-supplied priority order. ok is false when
// none match; callers must treat that as "no data", never as an error.
func Resolve(t *Table, candidates ...string) (string, bool) {
	if t == nil {
		return "", false
	}
	for _, name := range candidates {
		if t.HasColumn(name) {
			return name, true
		}
	}
	return "", false
}
