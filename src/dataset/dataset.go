package dataset

import (
	"strings"
	"time"
)

// Canonical dataset names. Sheet-name synonyms are folded into these at load
// time so computation code never has to know about them.
const (
	InvestorDetails          = "Investor_Details"
	DailyReport              = "Daily_Report"
	DailyProfitsCalculations = "Daily_Profits_Calculations"
	PlatformCharges          = "Platform_Maintaince_Charges"
	ReinvestmentDetails      = "Re_Investment_Details"
)

// sheetSynonyms maps alternate sheet names seen in workbook revisions to
// their canonical dataset name. The charges sheet in particular has been
// renamed more than once upstream.
var sheetSynonyms = map[string]string{
	"Platform_Maintenance_Charges": PlatformCharges,
	"Charges":                      PlatformCharges,
}

// CanonicalSheetName returns the canonical dataset name for a sheet name.
func CanonicalSheetName(name string) string {
	trimmed := strings.TrimSpace(name)
	if canonical, ok := sheetSynonyms[trimmed]; ok {
		return canonical
	}
	return trimmed
}

// Row is a single record of a table. Cell values are kept as the raw strings
// read from the source; empty string means the cell is missing or blank.
type Row map[string]string

// Get returns the raw cell value for a column, empty when absent.
func (r Row) Get(column string) string {
	return strings.TrimSpace(r[column])
}

// Has reports whether the row carries a non-blank value for the column.
func (r Row) Has(column string) bool {
	return r.Get(column) != ""
}

// Table is one named tabular dataset: an ordered header plus its rows.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// HasColumn reports whether the table's header contains the exact name.
func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Registry is the in-memory collection of all loaded datasets, keyed by
// canonical name. It is immutable once built; reloads build a fresh one.
type Registry struct {
	tables   map[string]*Table
	LoadedAt time.Time
}

// NewRegistry builds a registry from a sheet-name keyed table map, folding
// sheet-name synonyms into canonical dataset names.
func NewRegistry(tables map[string]*Table) *Registry {
	canonical := make(map[string]*Table, len(tables))
	for name, table := range tables {
		canonical[CanonicalSheetName(name)] = table
	}
	return &Registry{tables: canonical, LoadedAt: time.Now()}
}

var emptyTable = &Table{}

// Table returns the named dataset, or an empty table when it was never
// loaded. Callers treat an absent dataset as "no data", not as an error.
func (r *Registry) Table(name string) *Table {
	if r == nil {
		return emptyTable
	}
	if t, ok := r.tables[name]; ok && t != nil {
		return t
	}
	return emptyTable
}

// Names returns the canonical names of all loaded datasets.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}
	return names
}

// Tables returns the canonical-name keyed table map, for snapshotting.
func (r *Registry) Tables() map[string]*Table {
	if r == nil {
		return nil
	}
	return r.tables
}

// Version identifies a particular load of the registry, used in cache keys.
func (r *Registry) Version() int64 {
	if r == nil {
		return 0
	}
	return r.LoadedAt.UnixNano()
}
