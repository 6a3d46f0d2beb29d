package product

import (
	"github.com/shopspring/decimal"

	domproduct "example.com/softuni-fest/internal/domain/product"
)

// ShowProductView is the listing shape of a product.
type ShowProductView struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	ImageURL     string          `json:"imageUrl"`
	BusinessID   int64           `json:"businessId"`
	BusinessName string          `json:"businessName"`
}

// ProductView is the detail shape of a product.
type ProductView struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	ImageURL     string          `json:"imageUrl"`
	BusinessID   int64           `json:"businessId"`
	BusinessName string          `json:"businessName"`
	IsMine       bool            `json:"isMine"`
}

func toShowView(p *domproduct.Product) ShowProductView {
	return ShowProductView{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		ImageURL:     p.ImageURL,
		BusinessID:   p.BusinessID,
		BusinessName: p.BusinessName,
	}
}

func toView(p *domproduct.Product) *ProductView {
	return &ProductView{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		ImageURL:     p.ImageURL,
		BusinessID:   p.BusinessID,
		BusinessName: p.BusinessName,
	}
}
