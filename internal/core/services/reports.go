// internal/core/services/reports.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/core/ports"
)

// ReportOptions tunes the reporting aggregator
type ReportOptions struct {
	CacheTTL          time.Duration
	LowStockThreshold int
	TopLimit          int
}

// ReportService serves dashboard aggregations through the cache
type ReportService struct {
	repo   ports.ReportRepository
	cache  ports.CacheRepository
	opts   ReportOptions
	logger *slog.Logger
	now    func() time.Time
}

var _ ports.ReportService = (*ReportService)(nil)

// NewReportService creates a report service. cache may be nil, in which case
// every call hits the database.
func NewReportService(repo ports.ReportRepository, cache ports.CacheRepository, opts ReportOptions, logger *slog.Logger) *ReportService {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	if opts.TopLimit <= 0 {
		opts.TopLimit = 5
	}
	if opts.LowStockThreshold < 0 {
		opts.LowStockThreshold = domain.DefaultLowStockThreshold
	}
	return &ReportService{
		repo:   repo,
		cache:  cache,
		opts:   opts,
		logger: logger.With(slog.String("service", "reports")),
		now:    time.Now,
	}
}

func (s *ReportService) cached(ctx context.Context, key string, dest interface{}, fetch func() (interface{}, error)) error {
	if s.cache == nil {
		v, err := fetch()
		if err != nil {
			return err
		}
		return assign(dest, v)
	}
	return s.cache.GetOrSet(ctx, key, dest, fetch, s.opts.CacheTTL)
}

// assign copies a fetched value into dest when no cache round trip does it
func assign(dest, v interface{}) error {
	switch d := dest.(type) {
	case *domain.DashboardTotals:
		*d = *v.(*domain.DashboardTotals)
	case *[]domain.PeriodTotal:
		*d = v.([]domain.PeriodTotal)
	case *[]domain.ProductRank:
		*d = v.([]domain.ProductRank)
	case *[]domain.CategoryRank:
		*d = v.([]domain.CategoryRank)
	default:
		return fmt.Errorf("unsupported report destination %T", dest)
	}
	return nil
}

// Dashboard returns headline totals and the low stock count
func (s *ReportService) Dashboard(ctx context.Context) (*domain.DashboardTotals, error) {
	var totals domain.DashboardTotals
	err := s.cached(ctx, ports.BuildKey(ports.PrefixReports, "dashboard"), &totals, func() (interface{}, error) {
		return s.repo.DashboardTotals(ctx, s.opts.LowStockThreshold)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard totals: %w", err)
	}
	return &totals, nil
}

// Monthly returns sales and paid purchase totals per month of year.
// A year of zero means the current year.
func (s *ReportService) Monthly(ctx context.Context, year int) ([]domain.PeriodTotal, error) {
	if year <= 0 {
		year = s.now().Year()
	}

	var totals []domain.PeriodTotal
	key := ports.BuildKey(ports.PrefixReports, "monthly", strconv.Itoa(year))
	err := s.cached(ctx, key, &totals, func() (interface{}, error) {
		return s.repo.MonthlyTotals(ctx, year)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load monthly totals: %w", err)
	}
	return totals, nil
}

// Yearly returns sales and paid purchase totals per year
func (s *ReportService) Yearly(ctx context.Context) ([]domain.PeriodTotal, error) {
	var totals []domain.PeriodTotal
	err := s.cached(ctx, ports.BuildKey(ports.PrefixReports, "yearly"), &totals, func() (interface{}, error) {
		return s.repo.YearlyTotals(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load yearly totals: %w", err)
	}
	return totals, nil
}

// TopProducts ranks products by units sold
func (s *ReportService) TopProducts(ctx context.Context, limit int) ([]domain.ProductRank, error) {
	if limit <= 0 {
		limit = s.opts.TopLimit
	}

	var ranks []domain.ProductRank
	key := ports.BuildKey(ports.PrefixReports, "top-products", strconv.Itoa(limit))
	err := s.cached(ctx, key, &ranks, func() (interface{}, error) {
		return s.repo.TopProducts(ctx, limit)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load top products: %w", err)
	}
	return ranks, nil
}

// TopCategories ranks categories by units sold
func (s *ReportService) TopCategories(ctx context.Context, limit int) ([]domain.CategoryRank, error) {
	if limit <= 0 {
		limit = s.opts.TopLimit
	}

	var ranks []domain.CategoryRank
	key := ports.BuildKey(ports.PrefixReports, "top-categories", strconv.Itoa(limit))
	err := s.cached(ctx, key, &ranks, func() (interface{}, error) {
		return s.repo.TopCategories(ctx, limit)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load top categories: %w", err)
	}
	return ranks, nil
}

// Invalidate drops every cached report
func (s *ReportService) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.DeletePattern(ctx, ports.BuildKey(ports.PrefixReports, "*")); err != nil {
		return fmt.Errorf("failed to invalidate reports: %w", err)
	}
	return nil
}

// Warm recomputes the default dashboard views so the next reader hits the cache
func (s *ReportService) Warm(ctx context.Context) error {
	start := s.now()

	if err := s.Invalidate(ctx); err != nil {
		return err
	}
	if _, err := s.Dashboard(ctx); err != nil {
		return err
	}
	if _, err := s.Monthly(ctx, 0); err != nil {
		return err
	}
	if _, err := s.Yearly(ctx); err != nil {
		return err
	}
	if _, err := s.TopProducts(ctx, 0); err != nil {
		return err
	}
	if _, err := s.TopCategories(ctx, 0); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "reports warmed",
		slog.Duration("duration_ms", s.now().Sub(start)))
	return nil
}
