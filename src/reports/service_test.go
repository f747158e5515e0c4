package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/dataset"
)

type staticSource struct {
	reg *dataset.Registry
	err error
}

func (s *staticSource) Load(ctx context.Context) (*dataset.Registry, error) {
	return s.reg, s.err
}

func newTestService(reg *dataset.Registry) ReportService {
	return NewReportService(&staticSource{reg: reg}, cache.New(time.Minute, time.Minute))
}

func TestServiceListUserIDs(t *testing.T) {
	investors := newTable(
		[]string{"UserID", "Name", "Total_Invested_Amount"},
		[]string{"INV001", "Arun", "10000"},
		[]string{"INV002", "Priya", "5000"},
		[]string{"INV001", "Arun dup", "1"},
		[]string{"", "Blank", "1"},
	)
	svc := newTestService(newRegistry(map[string]*dataset.Table{
		dataset.InvestorDetails: investors,
	}))

	ids, err := svc.ListUserIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"INV001", "INV002"}, ids)
}

func TestServicePropagatesNotFound(t *testing.T) {
	svc := newTestService(newRegistry(map[string]*dataset.Table{
		dataset.InvestorDetails: investorsFixture(),
	}))

	_, err := svc.GetUserMetrics(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestServicePropagatesLoadError(t *testing.T) {
	loadErr := errors.New("upstream unreachable")
	svc := NewReportService(&staticSource{err: loadErr}, cache.New(time.Minute, time.Minute))

	_, err := svc.GetUserMetrics(context.Background(), "INV001")
	assert.ErrorIs(t, err, loadErr)

	_, err = svc.GetCompanyTotals(context.Background())
	assert.ErrorIs(t, err, loadErr)
}

func TestServiceCachesDerivedResults(t *testing.T) {
	reportCache := cache.New(time.Minute, time.Minute)
	svc := NewReportService(&staticSource{reg: newRegistry(map[string]*dataset.Table{
		dataset.InvestorDetails: investorsFixture(),
	})}, reportCache)

	first, err := svc.GetUserMetrics(context.Background(), "INV001")
	require.NoError(t, err)
	second, err := svc.GetUserMetrics(context.Background(), "INV001")
	require.NoError(t, err)

	assert.Same(t, first, second, "second call served from the report cache")
	assert.Equal(t, 1, reportCache.ItemCount())
}

func TestServiceReportFilterKeysAreDistinct(t *testing.T) {
	svc := newTestService(newRegistry(map[string]*dataset.Table{
		dataset.InvestorDetails: investorsFixture(),
		dataset.DailyReport:     dailyReportFixture(),
	}))
	ctx := context.Background()

	all, err := svc.GetUserReport(ctx, "INV001", nil, "")
	require.NoError(t, err)
	completed, err := svc.GetUserReport(ctx, "INV001", nil, "Completed")
	require.NoError(t, err)

	assert.Len(t, all.Rows, 5)
	assert.Len(t, completed.Rows, 3)
}
