package reports

import (
	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/dataset"
)

func newTable(columns []string, rows ...[]string) *dataset.Table {
	t := &dataset.Table{Columns: columns}
	for _, cells := range rows {
		row := make(dataset.Row, len(columns))
		for i, col := range columns {
			if i < len(cells) {
				row[col] = cells[i]
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func newRegistry(tables map[string]*dataset.Table) *dataset.Registry {
	return dataset.NewRegistry(tables)
}

// investorsFixture is a minimal investor master sheet with one funded user.
func investorsFixture() *dataset.Table {
	return newTable(
		[]string{"UserID", "Name", "Total_Invested_Amount", "Total Profit Earned"},
		[]string{"INV001", "Arun", "10000", "2500"},
		[]string{"INV002", "Priya", "5000", "-300"},
		[]string{"INV003", "Zero", "0", "100"},
	)
}
