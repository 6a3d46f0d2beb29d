package product

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	dombusiness "example.com/softuni-fest/internal/domain/business"
	dommedia "example.com/softuni-fest/internal/domain/media"
	domproduct "example.com/softuni-fest/internal/domain/product"
	"example.com/softuni-fest/internal/pagination"
)

type BusinessFinder interface {
	GetByUserID(ctx context.Context, userID string) (*dombusiness.Business, error)
}

// ViewCache holds product detail views keyed by product id. IsMine is never cached.
type ViewCache interface {
	Get(ctx context.Context, id int64) (*ProductView, bool, error)
	Set(ctx context.Context, view *ProductView) error
	Invalidate(ctx context.Context, id int64) error
}

type Service struct {
	repo       domproduct.Repository
	businesses BusinessFinder
	files      dommedia.Store
	cache      ViewCache
	logger     *slog.Logger
}

type Option func(*Service)

func WithCache(c ViewCache) Option {
	return func(s *Service) { s.cache = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func NewService(repo domproduct.Repository, businesses BusinessFinder, files dommedia.Store, opts ...Option) *Service {
	s := &Service{
		repo:       repo,
		businesses: businesses,
		files:      files,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PageQuery parameterizes GetPagedProducts. Filter is the predicate and
// OrderBy the key selector; their zero values mean "all products by id".
type PageQuery struct {
	pagination.Request
	Filter    domproduct.Filter
	OrderBy   domproduct.SortKey
	Direction pagination.SortDirection
}

type ProductInput struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Image       *dommedia.Image
}

// GetPagedProducts filters, counts, sorts over the whole filtered set, then
// windows and maps. The returned page carries the 1-based index that was asked for.
func (s *Service) GetPagedProducts(ctx context.Context, q PageQuery) (pagination.Page[ShowProductView], error) {
	if err := q.Request.Validate(); err != nil {
		return pagination.Page[ShowProductView]{}, err
	}
	if q.OrderBy == "" {
		q.OrderBy = domproduct.SortByID
	}

	total, err := s.repo.Count(ctx, q.Filter)
	if err != nil {
		return pagination.Page[ShowProductView]{}, fmt.Errorf("count products: %w", err)
	}

	products, err := s.repo.Find(ctx, domproduct.Query{
		Filter:    q.Filter,
		OrderBy:   q.OrderBy,
		Direction: q.Direction,
		Limit:     q.PageSize,
		Offset:    q.Offset(),
	})
	if err != nil {
		return pagination.Page[ShowProductView]{}, fmt.Errorf("find products: %w", err)
	}

	items := make([]ShowProductView, 0, len(products))
	for _, p := range products {
		items = append(items, toShowView(p))
	}

	s.logger.DebugContext(ctx, "got product page", "page", q.PageIndex, "page_size", q.PageSize, "total", total)
	return pagination.New(items, q.PageIndex, q.PageSize, total), nil
}

func (s *Service) AddProduct(ctx context.Context, in ProductInput, userID string) (*ProductView, error) {
	b, err := s.businesses.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := &domproduct.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		BusinessID:  b.ID,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if in.Image == nil {
		return nil, domproduct.ErrMissingImage
	}

	path, err := s.files.SaveFile(ctx, in.Image)
	if err != nil {
		return nil, fmt.Errorf("save product image: %w", err)
	}
	p.ImageURL = path

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		s.removeFile(ctx, path)
		return nil, fmt.Errorf("create product: %w", err)
	}
	created.BusinessName = b.Name

	s.logger.InfoContext(ctx, "added product", "product_id", created.ID, "business_id", b.ID)
	return toView(created), nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*ProductView, error) {
	if s.cache != nil {
		view, ok, err := s.cache.Get(ctx, id)
		if err != nil {
			s.logger.WarnContext(ctx, "product cache read failed", "product_id", id, "error", err)
		} else if ok {
			return view, nil
		}
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := toView(p)

	if s.cache != nil {
		if err := s.cache.Set(ctx, view); err != nil {
			s.logger.WarnContext(ctx, "product cache write failed", "product_id", id, "error", err)
		}
	}

	s.logger.DebugContext(ctx, "retrieved product details", "product_id", id)
	return view, nil
}

// GetByIDForUser is GetByID with IsMine resolved for the caller.
func (s *Service) GetByIDForUser(ctx context.Context, id int64, userID string) (*ProductView, error) {
	view, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	mine, err := s.IsOwner(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	out := *view
	out.IsMine = mine
	return &out, nil
}

func (s *Service) Update(ctx context.Context, in ProductInput) (*ProductView, error) {
	p, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var newImage string
	if in.Image != nil {
		if p.ImageURL != "" {
			if err := s.files.DeleteFile(ctx, p.ImageURL); err != nil && !errors.Is(err, dommedia.ErrFileNotFound) {
				return nil, fmt.Errorf("delete previous product image: %w", err)
			}
		}
		path, err := s.files.SaveFile(ctx, in.Image)
		if err != nil {
			s.detachImage(ctx, p)
			return nil, fmt.Errorf("save product image: %w", err)
		}
		p.ImageURL = path
		newImage = path
	}

	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		if newImage != "" {
			s.removeFile(ctx, newImage)
		}
		return nil, err
	}
	s.invalidate(ctx, in.ID)

	s.logger.InfoContext(ctx, "updated product", "product_id", in.ID)
	return toView(updated), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if p.ImageURL != "" {
		if err := s.files.DeleteFile(ctx, p.ImageURL); err != nil && !errors.Is(err, dommedia.ErrFileNotFound) {
			return fmt.Errorf("delete product image: %w", err)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)

	s.logger.InfoContext(ctx, "deleted product", "product_id", id)
	return nil
}

// IsOwner reports whether productID belongs to the business of userID. A user
// without a business owns nothing.
func (s *Service) IsOwner(ctx context.Context, userID string, productID int64) (bool, error) {
	if userID == "" {
		return false, nil
	}
	b, err := s.businesses.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, dombusiness.ErrBusinessNotFound) {
			return false, nil
		}
		return false, err
	}
	return s.repo.ExistsForBusiness(ctx, b.ID, productID)
}

func (s *Service) removeFile(ctx context.Context, path string) {
	if err := s.files.DeleteFile(ctx, path); err != nil {
		s.logger.WarnContext(ctx, "could not delete product image", "path", path, "error", err)
	}
}

// detachImage stores the product without an image once its previous file is
// gone and no replacement could be saved, so the row never names a missing file.
// The rest of the row is reloaded so the rejected edit is not applied.
func (s *Service) detachImage(ctx context.Context, p *domproduct.Product) {
	current, err := s.repo.GetByID(ctx, p.ID)
	if err != nil {
		s.logger.WarnContext(ctx, "could not reload product after image failure", "product_id", p.ID, "error", err)
		return
	}
	if current.ImageURL == "" {
		return
	}
	current.ImageURL = ""
	if _, err := s.repo.Update(ctx, current); err != nil {
		s.logger.WarnContext(ctx, "could not detach product image", "product_id", p.ID, "error", err)
	}
	s.invalidate(ctx, p.ID)
}

func (s *Service) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.WarnContext(ctx, "product cache invalidation failed", "product_id", id, "error", err)
	}
}
