package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	dombusiness "example.com/softuni-fest/internal/domain/business"
	domproduct "example.com/softuni-fest/internal/domain/product"
	domtx "example.com/softuni-fest/internal/domain/transaction"
	"example.com/softuni-fest/internal/pagination"
)

type ProductFinder interface {
	GetByID(ctx context.Context, id int64) (*domproduct.Product, error)
}

type BusinessFinder interface {
	GetByUserID(ctx context.Context, userID string) (*dombusiness.Business, error)
}

type Service struct {
	repo       domtx.Repository
	products   ProductFinder
	businesses BusinessFinder
	logger     *slog.Logger
	now        func() time.Time
}

func NewService(repo domtx.Repository, products ProductFinder, businesses BusinessFinder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:       repo,
		products:   products,
		businesses: businesses,
		logger:     logger,
		now:        time.Now,
	}
}

// GetPagedTransactions pages over the user's purchases and, when the user
// owns a business, its sales.
func (s *Service) GetPagedTransactions(ctx context.Context, userID string, pageIndex, pageSize int) (pagination.Page[TransactionView], error) {
	req := pagination.NewRequest(pageIndex, pageSize)
	if err := req.Validate(); err != nil {
		return pagination.Page[TransactionView]{}, err
	}

	filter, err := s.filterFor(ctx, userID)
	if err != nil {
		return pagination.Page[TransactionView]{}, err
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return pagination.Page[TransactionView]{}, fmt.Errorf("count transactions: %w", err)
	}

	txs, err := s.repo.Find(ctx, filter, req.PageSize, req.Offset())
	if err != nil {
		return pagination.Page[TransactionView]{}, fmt.Errorf("find transactions: %w", err)
	}

	items := make([]TransactionView, 0, len(txs))
	for _, t := range txs {
		items = append(items, toView(t, userID))
	}
	return pagination.New(items, req.PageIndex, req.PageSize, total), nil
}

func (s *Service) Purchase(ctx context.Context, userID string, productID int64) (*TransactionView, error) {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	filter, err := s.filterFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if filter.BusinessID != nil && *filter.BusinessID == p.BusinessID {
		return nil, domtx.ErrSelfPurchase
	}

	t, err := s.repo.Create(ctx, &domtx.Transaction{
		ProductID:   p.ID,
		ProductName: p.Name,
		BusinessID:  p.BusinessID,
		BuyerID:     userID,
		Amount:      p.Price,
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "product purchased", "transaction_id", t.ID, "product_id", p.ID, "buyer_id", userID)
	v := toView(t, userID)
	return &v, nil
}

func (s *Service) filterFor(ctx context.Context, userID string) (domtx.Filter, error) {
	filter := domtx.Filter{UserID: userID}
	b, err := s.businesses.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		filter.BusinessID = &b.ID
	case errors.Is(err, dombusiness.ErrBusinessNotFound):
	default:
		return domtx.Filter{}, err
	}
	return filter, nil
}
