package transaction

import "errors"

var ErrSelfPurchase = errors.New("cannot purchase a product of your own business")
