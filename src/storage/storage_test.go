package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/dataset"
	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/logger"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

func testStore(t *testing.T) *SnapshotStore {
	t.Helper()
	InitDB(filepath.Join(t.TempDir(), "snapshots.db"))
	t.Cleanup(func() { DB.Close() })
	return NewSnapshotStore(DB)
}

func TestSnapshotRoundTrip(t *testing.T) {
	store := testStore(t)

	reg := dataset.NewRegistry(map[string]*dataset.Table{
		dataset.InvestorDetails: {
			Columns: []string{"UserID", "Name"},
			Rows: []dataset.Row{
				{"UserID": "INV001", "Name": "Arun"},
			},
		},
	})
	require.NoError(t, store.Save(reg))

	restored, err := store.Load()
	require.NoError(t, err)

	investors := restored.Table(dataset.InvestorDetails)
	require.Len(t, investors.Rows, 1)
	assert.Equal(t, "Arun", investors.Rows[0].Get("Name"))
	assert.Equal(t, []string{"UserID", "Name"}, investors.Columns)
}

func TestSnapshotOverwrite(t *testing.T) {
	store := testStore(t)

	first := dataset.NewRegistry(map[string]*dataset.Table{
		dataset.DailyReport: {Columns: []string{"UserID"}, Rows: []dataset.Row{{"UserID": "INV001"}}},
	})
	require.NoError(t, store.Save(first))

	second := dataset.NewRegistry(map[string]*dataset.Table{
		dataset.DailyReport: {Columns: []string{"UserID"}, Rows: []dataset.Row{{"UserID": "INV002"}, {"UserID": "INV003"}}},
	})
	require.NoError(t, store.Save(second))

	restored, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, restored.Table(dataset.DailyReport).Rows, 2)
}

func TestSnapshotLoadEmpty(t *testing.T) {
	store := testStore(t)

	_, err := store.Load()
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
