package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/easystock/easystock-api/internal/models"
	"github.com/easystock/easystock-api/internal/repository"
	"github.com/easystock/easystock-api/internal/utils"
)

// ListingService implements storefront projection operations.
type ListingService struct {
	listings *repository.ListingRepository
}

// NewListingService constructs a ListingService.
func NewListingService(listings *repository.ListingRepository) *ListingService {
	return &ListingService{listings: listings}
}

// List returns listings for the filter.
func (s *ListingService) List(filter *models.ListingFilter) ([]models.Listing, error) {
	return s.listings.GetAll(filter)
}

// Get returns one listing.
func (s *ListingService) Get(id int64) (*models.Listing, error) {
	l, err := s.listings.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("listing %d not found: %w", id, utils.ErrNotFound)
		}
		return nil, err
	}
	return l, nil
}

// UpdateDisplay patches the display fields a storefront editor may change.
// Nil pointers leave the corresponding field untouched.
func (s *ListingService) UpdateDisplay(id int64, title *string, salePrice *float64, unit *string) (*models.Listing, error) {
	l, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if title != nil {
		t := strings.TrimSpace(*title)
		if t == "" {
			return nil, fmt.Errorf("title must not be empty: %w", utils.ErrValidation)
		}
		l.Title = t
	}
	if salePrice != nil {
		if *salePrice < 0 {
			return nil, fmt.Errorf("sale price must not be negative: %w", utils.ErrValidation)
		}
		l.SalePrice = *salePrice
	}
	if unit != nil {
		l.Unit = strings.TrimSpace(*unit)
	}

	if err := s.listings.UpdateDisplay(l); err != nil {
		return nil, err
	}
	return l, nil
}

// Unlist hides a listing while keeping its accumulated quantity, so a later
// issuance reactivates it with history intact.
func (s *ListingService) Unlist(id int64) (*models.Listing, error) {
	l, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.listings.Deactivate(id); err != nil {
		return nil, err
	}
	l.IsActive = false
	return l, nil
}

// Delete removes a listing row entirely.
func (s *ListingService) Delete(id int64) error {
	err := s.listings.Delete(id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("listing %d not found: %w", id, utils.ErrNotFound)
	}
	return err
}
