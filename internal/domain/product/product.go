package product

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"example.com/softuni-fest/internal/pagination"
)

// PriceScale is the number of decimal places prices are stored with.
const PriceScale = 2

type Product struct {
	ID           int64
	Name         string
	Description  string
	Price        decimal.Decimal
	ImageURL     string
	BusinessID   int64
	BusinessName string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks the fields a vendor controls.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidName
	}
	if p.Price.IsNegative() || !p.Price.Equal(p.Price.Round(PriceScale)) {
		return ErrInvalidPrice
	}
	return nil
}

// Filter is the predicate half of a product query. The zero value matches every product.
type Filter struct {
	BusinessID *int64
	IDs        []int64
	Search     string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
}

func (f Filter) Matches(p *Product) bool {
	if f.BusinessID != nil && p.BusinessID != *f.BusinessID {
		return false
	}
	if len(f.IDs) > 0 {
		found := false
		for _, id := range f.IDs {
			if id == p.ID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		if !strings.Contains(strings.ToLower(p.Name), s) &&
			!strings.Contains(strings.ToLower(p.Description), s) {
			return false
		}
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	return true
}

// Query is a filtered, ordered window over the product set.
type Query struct {
	Filter    Filter
	OrderBy   SortKey
	Direction pagination.SortDirection
	Limit     int
	Offset    int
}
