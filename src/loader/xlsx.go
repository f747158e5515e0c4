package loader

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/dataset"
	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/logger"
)

func (l *WorkbookLoader) fetchRemoteWorkbook(ctx context.Context) (*dataset.Registry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.workbookURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building workbook request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching workbook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching workbook: unexpected status %s", resp.Status)
	}

	f, err := excelize.OpenReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	return l.registryFromWorkbook(f)
}

func (l *WorkbookLoader) readLocalWorkbook() (*dataset.Registry, error) {
	f, err := excelize.OpenFile(l.workbookPath)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", l.workbookPath, err)
	}
	defer f.Close()

	return l.registryFromWorkbook(f)
}

func (l *WorkbookLoader) registryFromWorkbook(f *excelize.File) (*dataset.Registry, error) {
	tables := make(map[string]*dataset.Table)
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			logger.L.Warn("Skipping unreadable sheet", "sheet", sheet, "error", err)
			continue
		}
		tables[sheet] = rowsToTable(rows, sheet)
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("workbook contains no readable sheets")
	}
	logger.L.Info("Workbook loaded", "sheets", len(tables))
	return dataset.NewRegistry(tables), nil
}

// rowsToTable converts raw sheet rows (header first) into a Table. The
// charges sheet's headers carry stray whitespace in some workbook revisions
// and are trimmed at load, as the source dashboard does.
func rowsToTable(raw [][]string, sheetName string) *dataset.Table {
	if len(raw) == 0 {
		return &dataset.Table{}
	}

	trimHeader := dataset.CanonicalSheetName(sheetName) == dataset.PlatformCharges

	var columns []string
	for _, name := range raw[0] {
		if trimHeader {
			name = strings.TrimSpace(name)
		}
		columns = append(columns, name)
	}

	table := &dataset.Table{Columns: columns}
	for _, cells := range raw[1:] {
		row := make(dataset.Row, len(columns))
		for i, name := range columns {
			if name == "" {
				continue
			}
			if i < len(cells) {
				row[name] = cells[i]
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}
