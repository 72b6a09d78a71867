package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/easystock/easystock-api/internal/models"
	"github.com/easystock/easystock-api/internal/repository"
	"github.com/easystock/easystock-api/internal/utils"
)

// IssueStore is the transactional boundary the issuance service runs on.
type IssueStore interface {
	WithTx(ctx context.Context, fn func(tx repository.IssueTx) error) error
}

// StockNotifier delivers stock alerts. Implementations must be best-effort:
// methods log failures internally and never return errors, so a broken
// notification channel cannot affect a committed issuance.
type StockNotifier interface {
	NotifyStockOut(ctx context.Context, p *models.Product, qty int, issuer string)
	NotifyOutOfStock(ctx context.Context, p *models.Product)
	NotifyLowStock(ctx context.Context, p *models.Product)
}

// IssueService implements the atomic stock issuance flow.
type IssueService struct {
	store             IssueStore
	notifier          StockNotifier
	lowStockThreshold int
}

// NewIssueService creates a new IssueService. notifier may be nil when the
// LINE integration is not configured.
func NewIssueService(store IssueStore, notifier StockNotifier, lowStockThreshold int) *IssueService {
	return &IssueService{
		store:             store,
		notifier:          notifier,
		lowStockThreshold: lowStockThreshold,
	}
}

// issuedLine captures one committed line for post-commit notification.
type issuedLine struct {
	product models.Product
	qty     int
}

// IssueProducts runs one issuance batch inside a single DB transaction.
//
// Lines with a non-positive product id or quantity are skipped silently. For
// every remaining line, in request order, the product row is locked; a missing
// or deleted product aborts the whole batch with a not-found error naming the
// id, and insufficient stock aborts it naming the product code. Successful
// lines decrement stock, flag the product on sale, and upsert the product's
// listing. Nothing is committed unless every line succeeds.
//
// Returns the updated products (post-decrement, first-seen order). Alerts are
// dispatched after commit and never affect the result.
func (s *IssueService) IssueProducts(ctx context.Context, items []models.IssueItem, issuedBy *int64, issuerName string) ([]models.Product, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("items must not be empty: %w", utils.ErrValidation)
	}

	valid := make([]models.IssueItem, 0, len(items))
	for _, item := range items {
		if item.Product <= 0 || item.Qty <= 0 {
			continue
		}
		valid = append(valid, item)
	}
	if len(valid) == 0 {
		return []models.Product{}, nil
	}

	var (
		issued   []issuedLine
		updated  []models.Product
		position = make(map[int64]int)
	)

	err := s.store.WithTx(ctx, func(tx repository.IssueTx) error {
		issueID, err := tx.CreateIssue(issuedBy)
		if err != nil {
			return err
		}

		for _, item := range valid {
			p, err := tx.LockProduct(item.Product)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return fmt.Errorf("product %d not found: %w", item.Product, utils.ErrProductNotFound)
				}
				return err
			}

			if p.Stock < item.Qty {
				return fmt.Errorf("stock not enough for product %s: %w", p.Code, utils.ErrInsufficientStock)
			}

			if err := tx.IssueStock(p.ID, item.Qty); err != nil {
				return err
			}
			p.Stock -= item.Qty
			p.OnSale = true

			line := &models.IssueLine{
				IssueID:   issueID,
				ProductID: p.ID,
				Quantity:  item.Qty,
				SalePrice: p.SalePrice,
			}
			if err := tx.AddLine(line); err != nil {
				return err
			}
			if err := tx.UpsertListing(p, item.Qty); err != nil {
				return err
			}

			issued = append(issued, issuedLine{product: *p, qty: item.Qty})
			if idx, ok := position[p.ID]; ok {
				updated[idx] = *p
			} else {
				position[p.ID] = len(updated)
				updated = append(updated, *p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.dispatchAlerts(ctx, issued, issuerName)

	return updated, nil
}

// dispatchAlerts sends the per-line notifications after a successful commit.
func (s *IssueService) dispatchAlerts(ctx context.Context, issued []issuedLine, issuerName string) {
	if s.notifier == nil {
		return
	}
	for i := range issued {
		p := &issued[i].product
		s.notifier.NotifyStockOut(ctx, p, issued[i].qty, issuerName)
		if p.Stock == 0 {
			s.notifier.NotifyOutOfStock(ctx, p)
		} else if p.Stock < s.lowStockThreshold {
			s.notifier.NotifyLowStock(ctx, p)
		}
	}
	log.Info().Int("lines", len(issued)).Msg("Issuance alerts dispatched")
}
