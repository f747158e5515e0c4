package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/dataset"
	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/logger"
)

// readCSVDir loads one CSV file per dataset from the data directory, the
// file name (without extension) standing in for the sheet name. Intended for
// local development and tests where no xlsx workbook is at hand.
func (l *WorkbookLoader) readCSVDir() (*dataset.Registry, error) {
	entries, err := os.ReadDir(l.dataDir)
	if err != nil {
		return nil, fmt.Errorf("reading data dir %s: %w", l.dataDir, err)
	}

	tables := make(map[string]*dataset.Table)
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		sheetName := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))

		table, err := readCSVFile(filepath.Join(l.dataDir, entry.Name()), sheetName)
		if err != nil {
			logger.L.Warn("Skipping unreadable CSV file", "file", entry.Name(), "error", err)
			continue
		}
		tables[sheetName] = table
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("data dir %s contains no readable CSV files", l.dataDir)
	}
	logger.L.Info("CSV datasets loaded", "dir", l.dataDir, "sheets", len(tables))
	return dataset.NewRegistry(tables), nil
}

func readCSVFile(path, sheetName string) (*dataset.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // Allow variable number of fields per record

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV records: %w", err)
	}
	return rowsToTable(records, sheetName), nil
}
