package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/easystock/easystock-api/internal/models"
	"github.com/easystock/easystock-api/internal/repository"
	"github.com/easystock/easystock-api/internal/utils"
)

// upcomingWindowDays is how far ahead the upcoming-festivals view looks.
const upcomingWindowDays = 60

// FestivalService implements festival calendar operations.
type FestivalService struct {
	festivals   *repository.FestivalRepository
	bestSellers *repository.BestSellerRepository
}

// NewFestivalService constructs a FestivalService.
func NewFestivalService(festivals *repository.FestivalRepository, bestSellers *repository.BestSellerRepository) *FestivalService {
	return &FestivalService{festivals: festivals, bestSellers: bestSellers}
}

// List returns all festivals.
func (s *FestivalService) List() ([]models.Festival, error) {
	return s.festivals.GetAll()
}

// Get returns one festival.
func (s *FestivalService) Get(id int64) (*models.Festival, error) {
	f, err := s.festivals.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("festival %d not found: %w", id, utils.ErrNotFound)
		}
		return nil, err
	}
	return f, nil
}

func (s *FestivalService) validate(f *models.Festival) error {
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" {
		return fmt.Errorf("name is required: %w", utils.ErrValidation)
	}
	if f.EndDate.Before(f.StartDate) {
		return fmt.Errorf("end date must not precede start date: %w", utils.ErrValidation)
	}
	if f.Category == "" {
		f.Category = models.FestivalGeneric
	}
	if !f.Category.Valid() {
		return fmt.Errorf("invalid category: %w", utils.ErrValidation)
	}
	return nil
}

// Create validates and inserts a festival.
func (s *FestivalService) Create(f *models.Festival) error {
	if err := s.validate(f); err != nil {
		return err
	}
	return s.festivals.Create(f)
}

// Update validates and persists a festival.
func (s *FestivalService) Update(f *models.Festival) error {
	if err := s.validate(f); err != nil {
		return err
	}
	err := s.festivals.Update(f)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("festival %d not found: %w", f.ID, utils.ErrNotFound)
	}
	return err
}

// Delete removes a festival and its best-seller rows.
func (s *FestivalService) Delete(id int64) error {
	err := s.festivals.Delete(id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("festival %d not found: %w", id, utils.ErrNotFound)
	}
	return err
}

// Upcoming returns festivals starting within the next 60 days.
func (s *FestivalService) Upcoming() ([]models.Festival, error) {
	return s.festivals.GetUpcoming(upcomingWindowDays)
}

// Calendar returns festivals overlapping the given month. Month must be 1-12.
func (s *FestivalService) Calendar(year, month int) ([]models.Festival, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be between 1 and 12: %w", utils.ErrValidation)
	}
	if year < 1 {
		return nil, fmt.Errorf("invalid year: %w", utils.ErrValidation)
	}
	return s.festivals.GetOverlappingMonth(year, time.Month(month))
}

// BestSellers returns the festival with its ranked best sellers.
func (s *FestivalService) BestSellers(id int64) (*models.Festival, []models.BestSeller, error) {
	f, err := s.Get(id)
	if err != nil {
		return nil, nil, err
	}
	rows, err := s.bestSellers.GetByFestival(id)
	if err != nil {
		return nil, nil, err
	}
	return f, rows, nil
}

// SeedThaiFestivals inserts the standard Thai holiday set for a year,
// skipping festivals that already exist by name. Returns how many were added.
func (s *FestivalService) SeedThaiFestivals(year int) (int, error) {
	if year < 1 {
		return 0, fmt.Errorf("invalid year: %w", utils.ErrValidation)
	}

	added := 0
	for _, seed := range thaiFestivalSeeds(year) {
		if _, err := s.festivals.GetByName(seed.Name); err == nil {
			continue
		} else if !errors.Is(err, sql.ErrNoRows) {
			return added, err
		}
		f := seed
		if err := s.festivals.Create(&f); err != nil {
			return added, err
		}
		added++
	}

	log.Info().Int("year", year).Int("added", added).Msg("Thai festivals seeded")
	return added, nil
}
