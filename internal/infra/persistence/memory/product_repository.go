package memory

import (
	"context"
	"slices"

	domproduct "example.com/softuni-fest/internal/domain/product"
	"example.com/softuni-fest/internal/pagination"
)

type ProductRepository struct {
	s *Store
}

func (r *ProductRepository) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p.ID = r.s.nextProductID
	r.s.nextProductID++
	now := r.s.now()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.s.products[p.ID] = r.clone(p)
	return r.clone(p), nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.products[p.ID]
	if !ok {
		return nil, domproduct.ErrProductNotFound
	}
	existing.Name = p.Name
	existing.Description = p.Description
	existing.Price = p.Price
	existing.ImageURL = p.ImageURL
	existing.UpdatedAt = r.s.now()
	return r.clone(existing), nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.products[id]; !ok {
		return domproduct.ErrProductNotFound
	}
	delete(r.s.products, id)
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domproduct.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.products[id]
	if !ok {
		return nil, domproduct.ErrProductNotFound
	}
	return r.clone(p), nil
}

func (r *ProductRepository) Count(ctx context.Context, filter domproduct.Filter) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, p := range r.s.products {
		if filter.Matches(p) {
			n++
		}
	}
	return n, nil
}

func (r *ProductRepository) Find(ctx context.Context, q domproduct.Query) ([]*domproduct.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := make([]*domproduct.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if q.Filter.Matches(p) {
			matched = append(matched, p)
		}
	}

	key := q.OrderBy
	if key == "" {
		key = domproduct.SortByID
	}
	slices.SortFunc(matched, func(a, b *domproduct.Product) int {
		if q.Direction == pagination.Descending {
			return key.Compare(b, a)
		}
		return key.Compare(a, b)
	})

	page := window(matched, q.Limit, q.Offset)
	out := make([]*domproduct.Product, 0, len(page))
	for _, p := range page {
		out = append(out, r.clone(p))
	}
	return out, nil
}

func (r *ProductRepository) ExistsForBusiness(ctx context.Context, businessID, productID int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.products[productID]
	return ok && p.BusinessID == businessID, nil
}

// clone copies p and fills in the owning business name. Callers hold the lock.
func (r *ProductRepository) clone(p *domproduct.Product) *domproduct.Product {
	cloned := *p
	if b, ok := r.s.businesses[p.BusinessID]; ok {
		cloned.BusinessName = b.Name
	}
	return &cloned
}
