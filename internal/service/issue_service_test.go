package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/easystock/easystock-api/internal/models"
	"github.com/easystock/easystock-api/internal/repository"
	"github.com/easystock/easystock-api/internal/utils"
)

// memState is the mutable inventory state behind the fake store.
type memState struct {
	products map[int64]models.Product
	listings map[int64]models.Listing
	issues   []models.Issue
	lines    []models.IssueLine
	nextID   int64
}

func (s *memState) clone() *memState {
	c := &memState{
		products: make(map[int64]models.Product, len(s.products)),
		listings: make(map[int64]models.Listing, len(s.listings)),
		issues:   append([]models.Issue(nil), s.issues...),
		lines:    append([]models.IssueLine(nil), s.lines...),
		nextID:   s.nextID,
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.listings {
		c.listings[k] = v
	}
	return c
}

// memStore implements IssueStore with commit/rollback semantics: mutations
// run on a clone that only replaces the canonical state when fn succeeds.
type memStore struct {
	mu    sync.Mutex
	state *memState
}

func newMemStore(products ...models.Product) *memStore {
	st := &memState{
		products: make(map[int64]models.Product),
		listings: make(map[int64]models.Listing),
		nextID:   1,
	}
	for _, p := range products {
		st.products[p.ID] = p
	}
	return &memStore{state: st}
}

func (m *memStore) WithTx(ctx context.Context, fn func(tx repository.IssueTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	work := m.state.clone()
	if err := fn(&memTx{state: work}); err != nil {
		return err
	}
	m.state = work
	return nil
}

type memTx struct {
	state *memState
}

func (t *memTx) LockProduct(id int64) (*models.Product, error) {
	p, ok := t.state.products[id]
	if !ok || p.IsDeleted {
		return nil, sql.ErrNoRows
	}
	cp := p
	return &cp, nil
}

func (t *memTx) CreateIssue(createdBy *int64) (int64, error) {
	id := t.state.nextID
	t.state.nextID++
	t.state.issues = append(t.state.issues, models.Issue{ID: id, CreatedBy: createdBy})
	return id, nil
}

func (t *memTx) AddLine(line *models.IssueLine) error {
	line.ID = t.state.nextID
	t.state.nextID++
	t.state.lines = append(t.state.lines, *line)
	return nil
}

func (t *memTx) IssueStock(productID int64, qty int) error {
	p := t.state.products[productID]
	p.Stock -= qty
	p.OnSale = true
	t.state.products[productID] = p
	return nil
}

func (t *memTx) UpsertListing(p *models.Product, qty int) error {
	if l, ok := t.state.listings[p.ID]; ok {
		l.Quantity += qty
		l.IsActive = true
		t.state.listings[p.ID] = l
		return nil
	}
	t.state.listings[p.ID] = models.Listing{
		ProductID: p.ID,
		Title:     p.Title,
		SalePrice: p.SalePrice,
		Unit:      p.Unit,
		Quantity:  qty,
		IsActive:  true,
	}
	return nil
}

// recordingNotifier captures dispatched alerts.
type recordingNotifier struct {
	mu         sync.Mutex
	stockOuts  []int64
	outOfStock []int64
	lowStock   []int64
}

func (n *recordingNotifier) NotifyStockOut(_ context.Context, p *models.Product, qty int, issuer string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stockOuts = append(n.stockOuts, p.ID)
}

func (n *recordingNotifier) NotifyOutOfStock(_ context.Context, p *models.Product) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.outOfStock = append(n.outOfStock, p.ID)
}

func (n *recordingNotifier) NotifyLowStock(_ context.Context, p *models.Product) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.lowStock = append(n.lowStock, p.ID)
}

func product(id int64, code string, stock int) models.Product {
	return models.Product{
		ID:        id,
		Code:      code,
		Title:     "Product " + code,
		SalePrice: 25,
		Unit:      "pcs",
		Stock:     stock,
	}
}

func TestIssueProducts_Success(t *testing.T) {
	store := newMemStore(product(1, "A-01", 10), product(2, "B-02", 5))
	svc := NewIssueService(store, nil, 5)

	updated, err := svc.IssueProducts(context.Background(), []models.IssueItem{
		{Product: 1, Qty: 3},
		{Product: 2, Qty: 5},
	}, nil, "somchai")
	require.NoError(t, err)
	require.Len(t, updated, 2)
	require.Equal(t, 7, updated[0].Stock)
	require.Equal(t, 0, updated[1].Stock)
	require.True(t, updated[0].OnSale)

	require.Equal(t, 7, store.state.products[1].Stock)
	require.Equal(t, 0, store.state.products[2].Stock)
	require.Len(t, store.state.issues, 1)
	require.Len(t, store.state.lines, 2)

	l := store.state.listings[1]
	require.Equal(t, 3, l.Quantity)
	require.True(t, l.IsActive)
	require.Equal(t, "Product A-01", l.Title)
}

func TestIssueProducts_EmptyItems(t *testing.T) {
	store := newMemStore(product(1, "A-01", 10))
	svc := NewIssueService(store, nil, 5)

	_, err := svc.IssueProducts(context.Background(), nil, nil, "")
	require.ErrorIs(t, err, utils.ErrValidation)
	require.Empty(t, store.state.issues)
}

func TestIssueProducts_SkipsInvalidLines(t *testing.T) {
	store := newMemStore(product(1, "A-01", 10))
	svc := NewIssueService(store, nil, 5)

	updated, err := svc.IssueProducts(context.Background(), []models.IssueItem{
		{Product: 0, Qty: 3},
		{Product: 1, Qty: 0},
		{Product: -7, Qty: -1},
		{Product: 1, Qty: 2},
	}, nil, "")
	require.NoError(t, err)
	require.Len(t, updated, 1)
	require.Equal(t, 8, updated[0].Stock)
	require.Len(t, store.state.lines, 1)
}

func TestIssueProducts_AllLinesSkipped(t *testing.T) {
	store := newMemStore(product(1, "A-01", 10))
	svc := NewIssueService(store, nil, 5)

	updated, err := svc.IssueProducts(context.Background(), []models.IssueItem{
		{Product: 0, Qty: 3},
		{Product: 1, Qty: -2},
	}, nil, "")
	require.NoError(t, err)
	require.Empty(t, updated)
	require.Empty(t, store.state.issues)
	require.Equal(t, 10, store.state.products[1].Stock)
}

func TestIssueProducts_MissingProductAbortsBatch(t *testing.T) {
	store := newMemStore(product(1, "A-01", 10))
	svc := NewIssueService(store, nil, 5)

	_, err := svc.IssueProducts(context.Background(), []models.IssueItem{
		{Product: 1, Qty: 3},
		{Product: 99, Qty: 1},
	}, nil, "")
	require.ErrorIs(t, err, utils.ErrProductNotFound)
	require.Contains(t, err.Error(), "product 99 not found")

	// first line rolled back with the batch
	require.Equal(t, 10, store.state.products[1].Stock)
	require.Empty(t, store.state.issues)
	require.Empty(t, store.state.listings)
}

func TestIssueProducts_DeletedProductAbortsBatch(t *testing.T) {
	deleted := product(2, "B-02", 5)
	deleted.IsDeleted = true
	store := newMemStore(product(1, "A-01", 10), deleted)
	svc := NewIssueService(store, nil, 5)

	_, err := svc.IssueProducts(context.Background(), []models.IssueItem{
		{Product: 2, Qty: 1},
	}, nil, "")
	require.ErrorIs(t, err, utils.ErrProductNotFound)
}

func TestIssueProducts_InsufficientStockAbortsBatch(t *testing.T) {
	store := newMemStore(product(1, "A-01", 10), product(2, "B-02", 2))
	svc := NewIssueService(store, nil, 5)

	_, err := svc.IssueProducts(context.Background(), []models.IssueItem{
		{Product: 1, Qty: 5},
		{Product: 2, Qty: 3},
	}, nil, "")
	require.ErrorIs(t, err, utils.ErrInsufficientStock)
	require.Contains(t, err.Error(), "stock not enough for product B-02")

	require.Equal(t, 10, store.state.products[1].Stock)
	require.Equal(t, 2, store.state.products[2].Stock)
}

func TestIssueProducts_RepeatedProductSeesPriorDecrements(t *testing.T) {
	store := newMemStore(product(1, "A-01", 10))
	svc := NewIssueService(store, nil, 5)

	// 6 + 5 exceeds the stock of 10 even though each line alone fits.
	_, err := svc.IssueProducts(context.Background(), []models.IssueItem{
		{Product: 1, Qty: 6},
		{Product: 1, Qty: 5},
	}, nil, "")
	require.ErrorIs(t, err, utils.ErrInsufficientStock)
	require.Equal(t, 10, store.state.products[1].Stock)

	// 6 + 4 fits exactly; the product appears once in the result.
	updated, err := svc.IssueProducts(context.Background(), []models.IssueItem{
		{Product: 1, Qty: 6},
		{Product: 1, Qty: 4},
	}, nil, "")
	require.NoError(t, err)
	require.Len(t, updated, 1)
	require.Equal(t, 0, updated[0].Stock)
	require.Equal(t, 10, store.state.listings[1].Quantity)
}

func TestIssueProducts_ListingAccumulatesAcrossBatches(t *testing.T) {
	store := newMemStore(product(1, "A-01", 10))
	svc := NewIssueService(store, nil, 5)

	_, err := svc.IssueProducts(context.Background(), []models.IssueItem{{Product: 1, Qty: 3}}, nil, "")
	require.NoError(t, err)
	_, err = svc.IssueProducts(context.Background(), []models.IssueItem{{Product: 1, Qty: 2}}, nil, "")
	require.NoError(t, err)

	l := store.state.listings[1]
	require.Equal(t, 5, l.Quantity)
	require.True(t, l.IsActive)
	require.Len(t, store.state.issues, 2)
}

func TestIssueProducts_Notifications(t *testing.T) {
	store := newMemStore(product(1, "A-01", 10), product(2, "B-02", 6), product(3, "C-03", 3))
	notifier := &recordingNotifier{}
	svc := NewIssueService(store, notifier, 5)

	_, err := svc.IssueProducts(context.Background(), []models.IssueItem{
		{Product: 1, Qty: 10}, // to zero -> out of stock
		{Product: 2, Qty: 2},  // to 4 -> low stock
		{Product: 3, Qty: 1},  // to 2 -> low stock
	}, nil, "somchai")
	require.NoError(t, err)

	require.Equal(t, []int64{1, 2, 3}, notifier.stockOuts)
	require.Equal(t, []int64{1}, notifier.outOfStock)
	require.Equal(t, []int64{2, 3}, notifier.lowStock)
}

func TestIssueProducts_NoNotificationsOnFailure(t *testing.T) {
	store := newMemStore(product(1, "A-01", 10), product(2, "B-02", 1))
	notifier := &recordingNotifier{}
	svc := NewIssueService(store, notifier, 5)

	_, err := svc.IssueProducts(context.Background(), []models.IssueItem{
		{Product: 1, Qty: 2},
		{Product: 2, Qty: 5},
	}, nil, "")
	require.Error(t, err)
	require.Empty(t, notifier.stockOuts)
	require.Empty(t, notifier.outOfStock)
	require.Empty(t, notifier.lowStock)
}

func TestIssueProducts_ConcurrentBatchesNeverOversell(t *testing.T) {
	store := newMemStore(product(1, "A-01", 50))
	svc := NewIssueService(store, nil, 5)

	const workers = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.IssueProducts(context.Background(), []models.IssueItem{{Product: 1, Qty: 4}}, nil, "")
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			} else {
				require.ErrorIs(t, err, utils.ErrInsufficientStock)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 12, succeeded) // 50 / 4
	require.Equal(t, 2, store.state.products[1].Stock)
	require.Equal(t, 48, store.state.listings[1].Quantity)
}
