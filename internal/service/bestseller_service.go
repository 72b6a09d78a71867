package service

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/easystock/easystock-api/internal/models"
	"github.com/easystock/easystock-api/internal/repository"
	"github.com/easystock/easystock-api/internal/utils"
)

// Default thresholds of the top-products report.
const (
	defaultTopMinQty = 25
	defaultTopLimit  = 10
	maxTopLimit      = 100
)

// BestSellerService implements the sales analytics operations.
type BestSellerService struct {
	bestSellers *repository.BestSellerRepository
	festivals   *repository.FestivalRepository
	issues      *repository.IssueRepository
	products    *repository.ProductRepository
}

// NewBestSellerService constructs a BestSellerService.
func NewBestSellerService(bestSellers *repository.BestSellerRepository, festivals *repository.FestivalRepository, issues *repository.IssueRepository, products *repository.ProductRepository) *BestSellerService {
	return &BestSellerService{
		bestSellers: bestSellers,
		festivals:   festivals,
		issues:      issues,
		products:    products,
	}
}

// List returns all best-seller rows.
func (s *BestSellerService) List() ([]models.BestSeller, error) {
	return s.bestSellers.GetAll()
}

// Get returns one best-seller row.
func (s *BestSellerService) Get(id int64) (*models.BestSeller, error) {
	b, err := s.bestSellers.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("best seller %d not found: %w", id, utils.ErrNotFound)
		}
		return nil, err
	}
	return b, nil
}

// Upsert recomputes the percentage and stores the row.
func (s *BestSellerService) Upsert(b *models.BestSeller) error {
	if b.ProductID <= 0 || b.FestivalID <= 0 {
		return fmt.Errorf("product and festival are required: %w", utils.ErrValidation)
	}
	b.ComputePercentage()
	return s.bestSellers.Upsert(b)
}

// BulkUpsert stores many rows, recomputing each percentage. Returns how many
// rows were written.
func (s *BestSellerService) BulkUpsert(rows []models.BestSeller) (int, error) {
	if len(rows) == 0 {
		return 0, fmt.Errorf("rows must not be empty: %w", utils.ErrValidation)
	}
	written := 0
	for i := range rows {
		if err := s.Upsert(&rows[i]); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

// Delete removes a best-seller row.
func (s *BestSellerService) Delete(id int64) error {
	err := s.bestSellers.Delete(id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("best seller %d not found: %w", id, utils.ErrNotFound)
	}
	return err
}

// TopPeriod resolves a named reporting period to a time range. Zero times
// mean an open bound.
func TopPeriod(period string, now time.Time) (from, until time.Time, err error) {
	switch period {
	case "", "all":
		return time.Time{}, time.Time{}, nil
	case "year":
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()), time.Time{}, nil
	case "month":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), time.Time{}, nil
	case "7days":
		return now.AddDate(0, 0, -7), time.Time{}, nil
	case "1days":
		return now.AddDate(0, 0, -1), time.Time{}, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown period %q: %w", period, utils.ErrValidation)
	}
}

// TopProducts aggregates issued quantities over a period. period is one of
// all/year/month/7days/1days, or "custom" with explicit bounds.
func (s *BestSellerService) TopProducts(period string, from, until time.Time, minQty, limit int) ([]models.TopProduct, error) {
	if period == "custom" {
		if from.IsZero() {
			return nil, fmt.Errorf("custom period requires a start date: %w", utils.ErrValidation)
		}
	} else {
		var err error
		from, until, err = TopPeriod(period, time.Now())
		if err != nil {
			return nil, err
		}
	}

	if minQty < 0 {
		minQty = defaultTopMinQty
	}
	if limit <= 0 {
		limit = defaultTopLimit
	}
	if limit > maxTopLimit {
		limit = maxTopLimit
	}

	return s.issues.TopProducts(from, until, minQty, limit)
}

// FestivalForecast suggests order quantities for the next festival: last
// year's sales in the same window scaled by 1.1, with a confidence derived
// from the year-over-year trend.
func (s *BestSellerService) FestivalForecast() (*models.FestivalForecast, error) {
	f, err := s.festivals.GetNext()
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no upcoming festival: %w", utils.ErrNotFound)
		}
		return nil, err
	}

	lastFrom := f.StartDate.AddDate(-1, 0, 0)
	lastUntil := f.EndDate.AddDate(-1, 0, 0).AddDate(0, 0, 1)
	lastYear, err := s.issues.IssuedInWindow(lastFrom, lastUntil)
	if err != nil {
		return nil, err
	}

	rows, err := s.bestSellers.GetByFestival(f.ID)
	if err != nil {
		return nil, err
	}
	pct := make(map[int64]float64, len(rows))
	for _, b := range rows {
		pct[b.ProductID] = b.PercentageIncrease
	}

	forecast := &models.FestivalForecast{Festival: f, Items: []models.ForecastItem{}}
	for productID, qty := range lastYear {
		if qty <= 0 {
			continue
		}
		p, err := s.products.GetByID(productID)
		if err != nil {
			continue
		}
		confidence := math.Min(90, 50+math.Abs(pct[productID]))
		forecast.Items = append(forecast.Items, models.ForecastItem{
			ProductID:    productID,
			ProductTitle: p.Title,
			LastYearQty:  qty,
			SuggestedQty: int(math.Ceil(float64(qty) * 1.1)),
			Confidence:   confidence,
		})
	}
	return forecast, nil
}

// CategoryAnalysis breaks a festival's best sellers down per category.
func (s *BestSellerService) CategoryAnalysis(festivalID int64) ([]models.CategoryStats, error) {
	if _, err := s.festivals.GetByID(festivalID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("festival %d not found: %w", festivalID, utils.ErrNotFound)
		}
		return nil, err
	}
	return s.bestSellers.CategoryAnalysis(festivalID)
}

// RecomputeFestival refreshes total_issued, this-year and last-year counts,
// and ranks for one festival from the issue lines. Used by the background
// worker for festivals in their active window.
func (s *BestSellerService) RecomputeFestival(f *models.Festival) error {
	thisFrom := f.StartDate
	thisUntil := f.EndDate.AddDate(0, 0, 1)
	thisYear, err := s.issues.IssuedInWindow(thisFrom, thisUntil)
	if err != nil {
		return err
	}
	lastYear, err := s.issues.IssuedInWindow(thisFrom.AddDate(-1, 0, 0), thisUntil.AddDate(-1, 0, 0))
	if err != nil {
		return err
	}

	// Rank by this year's quantity, descending.
	type entry struct {
		productID int64
		qty       int
	}
	entries := make([]entry, 0, len(thisYear))
	for productID, qty := range thisYear {
		entries = append(entries, entry{productID, qty})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].qty > entries[j].qty })

	for rank, e := range entries {
		b := models.BestSeller{
			ProductID:   e.productID,
			FestivalID:  f.ID,
			TotalIssued: e.qty,
			ThisYearQty: e.qty,
			LastYearQty: lastYear[e.productID],
			Rank:        rank + 1,
		}
		b.ComputePercentage()
		if err := s.bestSellers.Upsert(&b); err != nil {
			return err
		}
	}
	return nil
}

// ActiveFestivals returns festivals currently in their window.
func (s *BestSellerService) ActiveFestivals() ([]models.Festival, error) {
	return s.festivals.GetActive()
}
