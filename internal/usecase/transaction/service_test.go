package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	dombusiness "example.com/softuni-fest/internal/domain/business"
	domproduct "example.com/softuni-fest/internal/domain/product"
	domtx "example.com/softuni-fest/internal/domain/transaction"
	"example.com/softuni-fest/internal/infra/logging"
	"example.com/softuni-fest/internal/infra/persistence/memory"
	"example.com/softuni-fest/internal/pagination"
)

type fixture struct {
	store *memory.Store
	svc   *Service
	clock time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{
		store: store,
		svc:   NewService(store.Transactions(), store.Products(), store.Businesses(), logging.Discard()),
		clock: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	f.svc.now = func() time.Time {
		f.clock = f.clock.Add(time.Minute)
		return f.clock
	}
	return f
}

func (f *fixture) business(t *testing.T, userID, name string) *dombusiness.Business {
	t.Helper()
	b, err := f.store.Businesses().Create(context.Background(), &dombusiness.Business{UserID: userID, Name: name})
	require.NoError(t, err)
	return b
}

func (f *fixture) product(t *testing.T, businessID int64, name, price string) *domproduct.Product {
	t.Helper()
	p, err := f.store.Products().Create(context.Background(), &domproduct.Product{
		Name:       name,
		Price:      decimal.RequireFromString(price),
		BusinessID: businessID,
		ImageURL:   "/images/" + name + ".png",
	})
	require.NoError(t, err)
	return p
}

func TestPurchase_RecordsTransaction(t *testing.T) {
	f := newFixture(t)
	b := f.business(t, "vendor", "Bakery")
	p := f.product(t, b.ID, "Banitsa", "3.20")

	v, err := f.svc.Purchase(context.Background(), "buyer", p.ID)

	require.NoError(t, err)
	require.NotZero(t, v.ID)
	require.Equal(t, p.ID, v.ProductID)
	require.Equal(t, "Banitsa", v.ProductName)
	require.Equal(t, b.ID, v.BusinessID)
	require.Equal(t, "buyer", v.BuyerID)
	require.Equal(t, KindPurchase, v.Kind)
	require.True(t, decimal.RequireFromString("3.20").Equal(v.Amount))
}

func TestPurchase_Errors(t *testing.T) {
	f := newFixture(t)
	b := f.business(t, "vendor", "Bakery")
	p := f.product(t, b.ID, "Banitsa", "3.20")

	_, err := f.svc.Purchase(context.Background(), "buyer", 999)
	require.ErrorIs(t, err, domproduct.ErrProductNotFound)

	_, err = f.svc.Purchase(context.Background(), "vendor", p.ID)
	require.ErrorIs(t, err, domtx.ErrSelfPurchase)

	count, err := f.store.Transactions().Count(context.Background(), domtx.Filter{UserID: "vendor", BusinessID: &b.ID})
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestGetPagedTransactions_BuyerAndSeller(t *testing.T) {
	f := newFixture(t)
	bakery := f.business(t, "vendor", "Bakery")
	brewery := f.business(t, "brewer", "Brewery")
	bread := f.product(t, bakery.ID, "Bread", "1.00")
	beer := f.product(t, brewery.ID, "Beer", "4.00")

	for _, step := range []struct {
		user    string
		product int64
	}{
		{"buyer", bread.ID},
		{"buyer", beer.ID},
		{"vendor", beer.ID},
		{"brewer", bread.ID},
	} {
		_, err := f.svc.Purchase(context.Background(), step.user, step.product)
		require.NoError(t, err)
	}

	buyerPage, err := f.svc.GetPagedTransactions(context.Background(), "buyer", 1, 50)
	require.NoError(t, err)
	require.Equal(t, int64(2), buyerPage.TotalCount())
	items := buyerPage.Items()
	require.Equal(t, "Beer", items[0].ProductName, "newest first")
	require.Equal(t, "Bread", items[1].ProductName)

	vendorPage, err := f.svc.GetPagedTransactions(context.Background(), "vendor", 1, 50)
	require.NoError(t, err)
	require.Equal(t, int64(3), vendorPage.TotalCount())
	kinds := make([]string, 0, vendorPage.Len())
	for _, v := range vendorPage.Items() {
		kinds = append(kinds, v.Kind)
	}
	require.Equal(t, []string{KindSale, KindPurchase, KindSale}, kinds)
}

func TestGetPagedTransactions_Paging(t *testing.T) {
	f := newFixture(t)
	b := f.business(t, "vendor", "Bakery")
	p := f.product(t, b.ID, "Bread", "1.00")
	for i := 0; i < 5; i++ {
		_, err := f.svc.Purchase(context.Background(), "buyer", p.ID)
		require.NoError(t, err)
	}

	page, err := f.svc.GetPagedTransactions(context.Background(), "buyer", 3, 2)
	require.NoError(t, err)
	require.Equal(t, 1, page.Len())
	require.Equal(t, 3, page.CurrentPage())
	require.Equal(t, 3, page.TotalPages())
	require.False(t, page.HasNext())

	empty, err := f.svc.GetPagedTransactions(context.Background(), "nobody", 1, 50)
	require.NoError(t, err)
	require.Zero(t, empty.Len())
	require.Zero(t, empty.TotalPages())
}

func TestGetPagedTransactions_InvalidRequest(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetPagedTransactions(context.Background(), "buyer", 0, 50)
	require.ErrorIs(t, err, pagination.ErrPageIndexOutOfRange)

	_, err = f.svc.GetPagedTransactions(context.Background(), "buyer", 1, 0)
	require.ErrorIs(t, err, pagination.ErrPageSizeOutOfRange)
}

type failingBusinesses struct{ err error }

func (f failingBusinesses) GetByUserID(ctx context.Context, userID string) (*dombusiness.Business, error) {
	return nil, f.err
}

func TestGetPagedTransactions_BusinessLookupFails(t *testing.T) {
	store := memory.NewStore()
	lookupErr := errors.New("db down")
	svc := NewService(store.Transactions(), store.Products(), failingBusinesses{err: lookupErr}, logging.Discard())

	_, err := svc.GetPagedTransactions(context.Background(), "buyer", 1, 10)
	require.ErrorIs(t, err, lookupErr)
}
