package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NagbhushanPai/Incubyte-Project/internal/models"
	"github.com/NagbhushanPai/Incubyte-Project/internal/repo"
)

func newTestSweetService(t *testing.T) *SweetService {
	return &SweetService{Repo: &repo.GormRepo{DB: initTestDB(t)}}
}

func mustCreateSweet(t *testing.T, svc *SweetService, name, category string, price float64, quantity int64) *models.Sweet {
	t.Helper()

	sweet, err := svc.Create(context.Background(), CreateSweetInput{
		Name:     name,
		Category: category,
		Price:    price,
		Quantity: quantity,
	})
	require.NoError(t, err)
	return sweet
}

func TestSweetService_Create(t *testing.T) {
	t.Parallel()

	svc := newTestSweetService(t)

	sweet := mustCreateSweet(t, svc, "Chocolate Bar", "Chocolate", 1.99, 50)
	assert.NotEqual(t, uuid.Nil, sweet.ID)
	assert.Equal(t, int64(50), sweet.Quantity)

	got, err := svc.Get(context.Background(), sweet.ID)
	require.NoError(t, err)
	assert.Equal(t, sweet.ID, got.ID)
}

func TestSweetService_Create_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestSweetService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   CreateSweetInput
	}{
		{name: "missing name", in: CreateSweetInput{Category: "Gummy", Price: 1, Quantity: 1}},
		{name: "missing category", in: CreateSweetInput{Name: "Test", Price: 1, Quantity: 1}},
		{name: "negative price", in: CreateSweetInput{Name: "Test", Category: "Gummy", Price: -0.5, Quantity: 1}},
		{name: "negative quantity", in: CreateSweetInput{Name: "Test", Category: "Gummy", Price: 1, Quantity: -1}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestSweetService_Purchase(t *testing.T) {
	t.Parallel()

	svc := newTestSweetService(t)
	ctx := context.Background()

	sweet := mustCreateSweet(t, svc, "Test", "Gummy", 1.5, 5)

	updated, err := svc.Purchase(ctx, sweet.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), updated.Quantity)

	_, err = svc.Purchase(ctx, sweet.ID, 10)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	got, err := svc.Get(ctx, sweet.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Quantity)
}

func TestSweetService_Purchase_ExactStock(t *testing.T) {
	t.Parallel()

	svc := newTestSweetService(t)
	ctx := context.Background()

	sweet := mustCreateSweet(t, svc, "Test", "Gummy", 1.5, 5)

	updated, err := svc.Purchase(ctx, sweet.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated.Quantity)

	_, err = svc.Purchase(ctx, sweet.ID, 1)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestSweetService_Purchase_InvalidQuantity(t *testing.T) {
	t.Parallel()

	svc := newTestSweetService(t)
	ctx := context.Background()

	sweet := mustCreateSweet(t, svc, "Test", "Gummy", 1.5, 5)

	for _, qty := range []int64{0, -1, -100} {
		_, err := svc.Purchase(ctx, sweet.ID, qty)
		assert.ErrorIs(t, err, ErrValidation)
	}

	// Validation failures must not touch stored state.
	got, err := svc.Get(ctx, sweet.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Quantity)
}

func TestSweetService_Purchase_NotFound(t *testing.T) {
	t.Parallel()

	svc := newTestSweetService(t)

	_, err := svc.Purchase(context.Background(), uuid.New(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSweetService_Restock(t *testing.T) {
	t.Parallel()

	svc := newTestSweetService(t)
	ctx := context.Background()

	sweet := mustCreateSweet(t, svc, "Test", "Gummy", 1.5, 5)

	updated, err := svc.Restock(ctx, sweet.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(15), updated.Quantity)

	for _, qty := range []int64{0, -3} {
		_, err := svc.Restock(ctx, sweet.ID, qty)
		assert.ErrorIs(t, err, ErrValidation)
	}

	_, err = svc.Restock(ctx, uuid.New(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSweetService_RestockThenPurchaseRoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestSweetService(t)
	ctx := context.Background()

	sweet := mustCreateSweet(t, svc, "Test", "Gummy", 1.5, 7)

	_, err := svc.Restock(ctx, sweet.ID, 4)
	require.NoError(t, err)

	updated, err := svc.Purchase(ctx, sweet.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(7), updated.Quantity)
}

// Concurrent purchases racing on one sweet: only the subset that fits the
// available stock may succeed, and the final quantity is never negative.
func TestSweetService_ConcurrentPurchases_NeverOversell(t *testing.T) {
	t.Parallel()

	svc := newTestSweetService(t)
	ctx := context.Background()

	const (
		stock   = 5
		callers = 20
	)

	sweet := mustCreateSweet(t, svc, "Test", "Gummy", 1.5, stock)

	var wg sync.WaitGroup
	results := make(chan error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Purchase(ctx, sweet.ID, 1)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, rejected int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, ErrInsufficientStock):
			rejected++
		}
	}

	assert.Equal(t, stock, succeeded)
	assert.Equal(t, callers-stock, rejected)

	got, err := svc.Get(ctx, sweet.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Quantity)
}

func TestSweetService_ConcurrentPurchases_IndependentItems(t *testing.T) {
	t.Parallel()

	svc := newTestSweetService(t)
	ctx := context.Background()

	a := mustCreateSweet(t, svc, "A", "Gummy", 1, 10)
	b := mustCreateSweet(t, svc, "B", "Gummy", 1, 10)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := svc.Purchase(ctx, a.ID, 1)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := svc.Purchase(ctx, b.ID, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	for _, id := range []uuid.UUID{a.ID, b.ID} {
		got, err := svc.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(0), got.Quantity)
	}
}

func TestSweetService_Search(t *testing.T) {
	t.Parallel()

	svc := newTestSweetService(t)
	ctx := context.Background()

	mustCreateSweet(t, svc, "Chocolate Bar", "Chocolate", 1.99, 50)
	mustCreateSweet(t, svc, "Gummy Bears", "Gummies", 0.99, 100)
	mustCreateSweet(t, svc, "Sour Worms", "Gummies", 1.49, 30)

	floatPtr := func(v float64) *float64 { return &v }

	tests := []struct {
		name   string
		filter repo.SearchFilter
		want   []string
	}{
		{
			name:   "no filters returns all",
			filter: repo.SearchFilter{},
			want:   []string{"Chocolate Bar", "Gummy Bears", "Sour Worms"},
		},
		{
			name:   "name substring is case-insensitive",
			filter: repo.SearchFilter{Query: "GUMMY"},
			want:   []string{"Gummy Bears"},
		},
		{
			name:   "category is exact",
			filter: repo.SearchFilter{Category: "Gummies"},
			want:   []string{"Gummy Bears", "Sour Worms"},
		},
		{
			name:   "category substring does not match",
			filter: repo.SearchFilter{Category: "Gummi"},
			want:   nil,
		},
		{
			name:   "price bounds are inclusive",
			filter: repo.SearchFilter{MinPrice: floatPtr(0.99), MaxPrice: floatPtr(1.49)},
			want:   []string{"Gummy Bears", "Sour Worms"},
		},
		{
			name:   "filters are ANDed",
			filter: repo.SearchFilter{Query: "s", Category: "Gummies", MinPrice: floatPtr(1.0)},
			want:   []string{"Sour Worms"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			items, err := svc.Search(ctx, tt.filter)
			require.NoError(t, err)

			var names []string
			for _, it := range items {
				names = append(names, it.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestSweetService_Update(t *testing.T) {
	t.Parallel()

	svc := newTestSweetService(t)
	ctx := context.Background()

	sweet := mustCreateSweet(t, svc, "Test", "Gummy", 1.5, 5)

	newPrice := 2.5
	updated, err := svc.Update(ctx, sweet.ID, repo.SweetPatch{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, 2.5, updated.Price)
	assert.Equal(t, "Test", updated.Name)
	assert.Equal(t, int64(5), updated.Quantity)
}

func TestSweetService_Update_QuantityOverwrite(t *testing.T) {
	t.Parallel()

	svc := newTestSweetService(t)
	ctx := context.Background()

	sweet := mustCreateSweet(t, svc, "Test", "Gummy", 1.5, 5)

	// Plain update writes quantity directly, bypassing the purchase guard.
	qty := int64(100)
	updated, err := svc.Update(ctx, sweet.ID, repo.SweetPatch{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, int64(100), updated.Quantity)
}

func TestSweetService_Update_Errors(t *testing.T) {
	t.Parallel()

	svc := newTestSweetService(t)
	ctx := context.Background()

	sweet := mustCreateSweet(t, svc, "Test", "Gummy", 1.5, 5)

	bad := -1.0
	_, err := svc.Update(ctx, sweet.ID, repo.SweetPatch{Price: &bad})
	assert.ErrorIs(t, err, ErrValidation)

	name := "Other"
	_, err = svc.Update(ctx, uuid.New(), repo.SweetPatch{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSweetService_Delete(t *testing.T) {
	t.Parallel()

	svc := newTestSweetService(t)
	ctx := context.Background()

	sweet := mustCreateSweet(t, svc, "Test", "Gummy", 1.5, 5)

	require.NoError(t, svc.Delete(ctx, sweet.ID))

	// Second delete of the same id fails rather than silently succeeding.
	err := svc.Delete(ctx, sweet.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(ctx, sweet.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSweetService_List(t *testing.T) {
	t.Parallel()

	svc := newTestSweetService(t)
	ctx := context.Background()

	mustCreateSweet(t, svc, "A", "Gummy", 1, 1)
	mustCreateSweet(t, svc, "B", "Gummy", 2, 2)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
