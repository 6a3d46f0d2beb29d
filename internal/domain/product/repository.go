package product

import "context"

type Repository interface {
	Create(ctx context.Context, p *Product) (*Product, error)
	Update(ctx context.Context, p *Product) (*Product, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*Product, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	Find(ctx context.Context, q Query) ([]*Product, error)
	ExistsForBusiness(ctx context.Context, businessID, productID int64) (bool, error)
}
