package transaction

import (
	"time"

	"github.com/shopspring/decimal"

	domtx "example.com/softuni-fest/internal/domain/transaction"
)

// TransactionView is a purchase as seen by one of its parties. Kind is
// "purchase" when the viewer bought the product and "sale" otherwise.
type TransactionView struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	BusinessID  int64           `json:"businessId"`
	BuyerID     string          `json:"buyerId"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        string          `json:"kind"`
	CreatedAt   time.Time       `json:"createdAt"`
}

const (
	KindPurchase = "purchase"
	KindSale     = "sale"
)

func toView(t *domtx.Transaction, viewerID string) TransactionView {
	kind := KindSale
	if t.BuyerID == viewerID {
		kind = KindPurchase
	}
	return TransactionView{
		ID:          t.ID,
		ProductID:   t.ProductID,
		ProductName: t.ProductName,
		BusinessID:  t.BusinessID,
		BuyerID:     t.BuyerID,
		Amount:      t.Amount,
		Kind:        kind,
		CreatedAt:   t.CreatedAt,
	}
}
