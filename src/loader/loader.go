package loader

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/dataset"
	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/logger"
	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/storage"
)

const ckRegistry = "registry_current"

// ErrNoDataSource is returned when neither a workbook URL/path nor a CSV
// data directory is configured.
var ErrNoDataSource = errors.New("no data source configured: set WORKBOOK_URL, WORKBOOK_PATH or DATA_DIR")

// WorkbookLoader loads the shared workbook into a dataset registry. Loads
// are cached for a freshness window; every successful load is snapshotted so
// an upstream outage degrades to the last good data instead of an error.
type WorkbookLoader struct {
	workbookURL  string
	workbookPath string
	dataDir      string

	snapshots *storage.SnapshotStore
	regCache  *cache.Cache
	ttl       time.Duration
	client    *http.Client
}

// New builds a WorkbookLoader. snapshots may be nil to disable persistence.
func New(workbookURL, workbookPath, dataDir string, ttl time.Duration, snapshots *storage.SnapshotStore) *WorkbookLoader {
	return &WorkbookLoader{
		workbookURL:  workbookURL,
		workbookPath: workbookPath,
		dataDir:      dataDir,
		snapshots:    snapshots,
		regCache:     cache.New(ttl, 2*ttl),
		ttl:          ttl,
		client:       &http.Client{Timeout: 30 * time.Second},
	}
}

// Load returns the current registry, fetching fresh data when the freshness
// window has expired. Reloading is idempotent; concurrent callers may race a
// reload but each produces an equivalent registry.
func (l *WorkbookLoader) Load(ctx context.Context) (*dataset.Registry, error) {
	if cached, found := l.regCache.Get(ckRegistry); found {
		return cached.(*dataset.Registry), nil
	}

	reg, err := l.fetch(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn("Workbook fetch failed, falling back to snapshot", "error", err)
		snap, snapErr := l.loadSnapshot()
		if snapErr != nil {
			return nil, fmt.Errorf("loading workbook: %w", err)
		}
		// Cache the stale registry too, so a dead upstream is not re-fetched
		// on every request.
		l.regCache.Set(ckRegistry, snap, cache.DefaultExpiration)
		return snap, nil
	}

	l.regCache.Set(ckRegistry, reg, cache.DefaultExpiration)
	if l.snapshots != nil {
		if err := l.snapshots.Save(reg); err != nil {
			logger.FromContext(ctx).Warn("Failed to persist registry snapshot", "error", err)
		}
	}
	return reg, nil
}

func (l *WorkbookLoader) fetch(ctx context.Context) (*dataset.Registry, error) {
	switch {
	case l.workbookURL != "":
		return l.fetchRemoteWorkbook(ctx)
	case l.workbookPath != "":
		return l.readLocalWorkbook()
	case l.dataDir != "":
		return l.readCSVDir()
	default:
		return nil, ErrNoDataSource
	}
}

func (l *WorkbookLoader) loadSnapshot() (*dataset.Registry, error) {
	if l.snapshots == nil {
		return nil, errors.New("snapshot store disabled")
	}
	reg, err := l.snapshots.Load()
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.New("no registry snapshot available")
	}
	return reg, err
}
