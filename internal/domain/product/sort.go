package product

import (
	"cmp"
	"strings"
)

// SortKey selects the field products are ordered by.
type SortKey string

const (
	SortByID        SortKey = "id"
	SortByName      SortKey = "name"
	SortByPrice     SortKey = "price"
	SortByCreatedAt SortKey = "createdAt"
)

func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "id":
		return SortByID, nil
	case "name":
		return SortByName, nil
	case "price":
		return SortByPrice, nil
	case "createdat", "created_at", "created":
		return SortByCreatedAt, nil
	default:
		return "", ErrInvalidSortKey
	}
}

// Compare orders a and b ascending by the key. Ties fall back to ID so that
// windows over equal keys are stable.
func (k SortKey) Compare(a, b *Product) int {
	var c int
	switch k {
	case SortByName:
		c = strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case SortByPrice:
		c = a.Price.Cmp(b.Price)
	case SortByCreatedAt:
		c = a.CreatedAt.Compare(b.CreatedAt)
	}
	if c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
