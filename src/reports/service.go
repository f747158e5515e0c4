package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/dataset"
	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/models"
)

const (
	ckUserMetrics          = "res_user_metrics_%d_%s"
	ckUserReport           = "res_user_report_%d_%s_%s_%s"
	ckCompanyTotals        = "agg_company_totals_%d"
	ckCompanyProfitSeries  = "agg_company_profit_series_%d"
	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
)

// RegistrySource supplies the current dataset registry. The loader behind it
// owns freshness; a new registry value invalidates cached reports implicitly
// because cache keys embed the registry version.
type RegistrySource interface {
	Load(ctx context.Context) (*dataset.Registry, error)
}

// ReportService is the computation layer behind the dashboard endpoints.
// All results are derived fresh from the registry; only NotFound for an
// unknown user identifier is ever surfaced as an error.
type ReportService interface {
	ListUserIDs(ctx context.Context) ([]string, error)
	GetUserMetrics(ctx context.Context, userID string) (*models.UserMetrics, error)
	GetUserReport(ctx context.Context, userID string, filter *DateFilter, paymentStatus string) (*models.UserReport, error)
	GetUserReinvestments(ctx context.Context, userID string) ([]models.ReinvestmentEntry, error)
	GetCompanyTotals(ctx context.Context) (*models.CompanyTotals, error)
	GetCompanyProfitSeries(ctx context.Context) ([]models.ProfitPoint, error)
	GetInvestmentVsProfit(ctx context.Context, selectedUser string) ([]models.InvestorComparison, error)
}

type reportServiceImpl struct {
	source      RegistrySource
	reportCache *cache.Cache
}

// NewReportService builds the default ReportService over a registry source.
func NewReportService(source RegistrySource, reportCache *cache.Cache) ReportService {
	return &reportServiceImpl{source: source, reportCache: reportCache}
}

func (s *reportServiceImpl) ListUserIDs(ctx context.Context) ([]string, error) {
	reg, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	investors := reg.Table(dataset.InvestorDetails)
	seen := make(map[string]bool)
	ids := []string{}
	for _, row := range investors.Rows {
		id := row.Get("UserID")
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *reportServiceImpl) GetUserMetrics(ctx context.Context, userID string) (*models.UserMetrics, error) {
	reg, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf(ckUserMetrics, reg.Version(), userID)
	if cached, found := s.reportCache.Get(cacheKey); found {
		return cached.(*models.UserMetrics), nil
	}

	metrics, err := ComputeUserMetrics(userID, reg)
	if err != nil {
		return nil, err
	}
	s.reportCache.Set(cacheKey, metrics, cache.DefaultExpiration)
	return metrics, nil
}

func (s *reportServiceImpl) GetUserReport(ctx context.Context, userID string, filter *DateFilter, paymentStatus string) (*models.UserReport, error) {
	reg, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf(ckUserReport, reg.Version(), userID, filterKey(filter), paymentStatus)
	if cached, found := s.reportCache.Get(cacheKey); found {
		return cached.(*models.UserReport), nil
	}

	report := BuildUserReport(userID, reg, filter, paymentStatus)
	s.reportCache.Set(cacheKey, report, cache.DefaultExpiration)
	return report, nil
}

func (s *reportServiceImpl) GetUserReinvestments(ctx context.Context, userID string) ([]models.ReinvestmentEntry, error) {
	reg, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	return UserReinvestments(userID, reg), nil
}

func (s *reportServiceImpl) GetCompanyTotals(ctx context.Context) (*models.CompanyTotals, error) {
	reg, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf(ckCompanyTotals, reg.Version())
	if cached, found := s.reportCache.Get(cacheKey); found {
		return cached.(*models.CompanyTotals), nil
	}

	totals := ComputeCompanyTotals(reg)
	s.reportCache.Set(cacheKey, totals, cache.DefaultExpiration)
	return totals, nil
}

func (s *reportServiceImpl) GetCompanyProfitSeries(ctx context.Context) ([]models.ProfitPoint, error) {
	reg, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf(ckCompanyProfitSeries, reg.Version())
	if cached, found := s.reportCache.Get(cacheKey); found {
		return cached.([]models.ProfitPoint), nil
	}

	series := CompanyProfitSeries(reg)
	s.reportCache.Set(cacheKey, series, cache.DefaultExpiration)
	return series, nil
}

func (s *reportServiceImpl) GetInvestmentVsProfit(ctx context.Context, selectedUser string) ([]models.InvestorComparison, error) {
	reg, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	return InvestmentVsProfit(reg, selectedUser), nil
}

func filterKey(f *DateFilter) string {
	if f == nil {
		return "none"
	}
	return f.Start.Format("2006-01-02") + "_" + f.End.Format("2006-01-02")
}
