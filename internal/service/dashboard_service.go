package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/easystock/easystock-api/internal/cache"
	"github.com/easystock/easystock-api/internal/models"
	"github.com/easystock/easystock-api/internal/repository"
)

// bangkokTZ anchors "today" for the in/out counters.
var bangkokTZ = time.FixedZone("ICT", 7*3600)

// DashboardService aggregates the overview endpoints. Results are cached in
// Redis for a short TTL because the UI polls them.
type DashboardService struct {
	dashboards *repository.DashboardRepository
	issues     *repository.IssueRepository
	products   *repository.ProductRepository
	festivals  *repository.FestivalRepository
	stats      *cache.StatsCache
	threshold  int
}

// NewDashboardService constructs a DashboardService. stats may be nil to
// disable caching.
func NewDashboardService(dashboards *repository.DashboardRepository, issues *repository.IssueRepository, products *repository.ProductRepository, festivals *repository.FestivalRepository, stats *cache.StatsCache, lowStockThreshold int) *DashboardService {
	return &DashboardService{
		dashboards: dashboards,
		issues:     issues,
		products:   products,
		festivals:  festivals,
		stats:      stats,
		threshold:  lowStockThreshold,
	}
}

// todayBounds returns the start of today and tomorrow in Bangkok time.
func todayBounds(now time.Time) (time.Time, time.Time) {
	local := now.In(bangkokTZ)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, bangkokTZ)
	return start, start.AddDate(0, 0, 1)
}

// Stats builds the main dashboard payload.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	if s.stats != nil {
		var cached models.DashboardStats
		if err := s.stats.Get(ctx, "dashboard", &cached); err == nil {
			return &cached, nil
		}
	}

	totalStock, err := s.dashboards.TotalStock()
	if err != nil {
		return nil, err
	}
	lowItems, err := s.products.GetLowStock(s.threshold)
	if err != nil {
		return nil, err
	}
	value, err := s.dashboards.InventoryValue()
	if err != nil {
		return nil, err
	}

	dayStart, dayEnd := todayBounds(time.Now())
	inToday, err := s.dashboards.InBetween(dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	outToday, err := s.issues.OutBetween(dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	movements, err := s.issues.Movements("", "", time.Time{}, time.Time{}, 20)
	if err != nil {
		return nil, err
	}
	categories, err := s.dashboards.CategoryStats()
	if err != nil {
		return nil, err
	}

	stats := &models.DashboardStats{
		TotalStock:     totalStock,
		LowStockCount:  len(lowItems),
		LowStockItems:  lowItems,
		InToday:        inToday,
		OutToday:       outToday,
		InventoryValue: value,
		Movements:      movements,
		Categories:     categories,
	}

	if s.stats != nil {
		if err := s.stats.Set(ctx, "dashboard", stats); err != nil {
			log.Warn().Err(err).Msg("Failed to cache dashboard stats")
		}
	}
	return stats, nil
}

// EmployeeOverview builds the staff landing view.
func (s *DashboardService) EmployeeOverview(ctx context.Context) (*models.EmployeeOverview, error) {
	if s.stats != nil {
		var cached models.EmployeeOverview
		if err := s.stats.Get(ctx, "employee_overview", &cached); err == nil {
			return &cached, nil
		}
	}

	count, err := s.dashboards.ProductCount()
	if err != nil {
		return nil, err
	}
	lowItems, err := s.products.GetLowStock(s.threshold)
	if err != nil {
		return nil, err
	}

	dayStart, dayEnd := todayBounds(time.Now())
	issuedToday, err := s.issues.OutBetween(dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	topToday, err := s.issues.TopProducts(dayStart, dayEnd, 1, 5)
	if err != nil {
		return nil, err
	}

	festivals, err := s.festivals.GetUpcoming(upcomingWindowDays)
	if err != nil {
		return nil, err
	}
	if len(festivals) > 5 {
		festivals = festivals[:5]
	}

	overview := &models.EmployeeOverview{
		ProductCount:  count,
		LowStockCount: len(lowItems),
		IssuedToday:   issuedToday,
		NextFestivals: festivals,
		TopToday:      topToday,
	}
	if s.stats != nil {
		if err := s.stats.Set(ctx, "employee_overview", overview); err != nil {
			log.Warn().Err(err).Msg("Failed to cache employee overview")
		}
	}
	return overview, nil
}

// FinancialSummary returns the admin-only value overview.
func (s *DashboardService) FinancialSummary() (*models.FinancialSummary, error) {
	return s.dashboards.FinancialSummary()
}

// CategoryBreakdown returns per-category stock and value.
func (s *DashboardService) CategoryBreakdown() ([]models.CategoryStats, error) {
	return s.dashboards.CategoryStats()
}

// TopByValue returns the products holding the most inventory value.
func (s *DashboardService) TopByValue() ([]models.Product, error) {
	return s.dashboards.TopByValue(20)
}

// MovementHistory returns the merged in/out stream with filters.
func (s *DashboardService) MovementHistory(search, movementType string, from, until time.Time, limit int) ([]models.Movement, error) {
	return s.issues.Movements(search, movementType, from, until, limit)
}
