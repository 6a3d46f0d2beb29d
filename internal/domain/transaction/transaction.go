package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID          int64
	ProductID   int64
	ProductName string
	BusinessID  int64
	BuyerID     string
	Amount      decimal.Decimal
	CreatedAt   time.Time
}

// Filter selects the transactions a user takes part in: purchases made by
// UserID, plus sales of BusinessID when it is set.
type Filter struct {
	UserID     string
	BusinessID *int64
}

func (f Filter) Matches(t *Transaction) bool {
	if f.UserID != "" && t.BuyerID == f.UserID {
		return true
	}
	return f.BusinessID != nil && t.BusinessID == *f.BusinessID
}
