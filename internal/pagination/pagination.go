package pagination

import (
	"encoding/json"
	"errors"
	"strings"
)

const (
	DefaultPageIndex = 1
	DefaultPageSize  = 50
)

var (
	ErrPageIndexOutOfRange  = errors.New("page index must be greater than 0")
	ErrPageSizeOutOfRange   = errors.New("page size must be greater than 0")
	ErrInvalidSortDirection = errors.New("invalid sort direction")
)

type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

func (d SortDirection) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// ParseSortDirection accepts "asc", "desc" or an empty string (ascending).
func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return Ascending, ErrInvalidSortDirection
	}
}

// Request is a 1-based page window.
type Request struct {
	PageIndex int
	PageSize  int
}

func NewRequest(pageIndex, pageSize int) Request {
	return Request{PageIndex: pageIndex, PageSize: pageSize}
}

func (r Request) Validate() error {
	if r.PageIndex < 1 {
		return ErrPageIndexOutOfRange
	}
	if r.PageSize < 1 {
		return ErrPageSizeOutOfRange
	}
	return nil
}

// Offset is the zero-based row offset of the first item on the page.
func (r Request) Offset() int {
	return (r.PageIndex - 1) * r.PageSize
}

// Page is one window of an ordered result set. It is immutable once built.
type Page[T any] struct {
	items       []T
	currentPage int
	pageSize    int
	totalCount  int64
}

func New[T any](items []T, currentPage, pageSize int, totalCount int64) Page[T] {
	cp := make([]T, len(items))
	copy(cp, items)
	return Page[T]{
		items:       cp,
		currentPage: currentPage,
		pageSize:    pageSize,
		totalCount:  totalCount,
	}
}

func (p Page[T]) Items() []T {
	cp := make([]T, len(p.items))
	copy(cp, p.items)
	return cp
}

func (p Page[T]) Len() int { return len(p.items) }

func (p Page[T]) CurrentPage() int { return p.currentPage }

func (p Page[T]) PageSize() int { return p.pageSize }

func (p Page[T]) TotalCount() int64 { return p.totalCount }

// TotalPages is ceil(totalCount / pageSize); zero for an empty result set.
func (p Page[T]) TotalPages() int {
	if p.pageSize <= 0 || p.totalCount <= 0 {
		return 0
	}
	size := int64(p.pageSize)
	return int((p.totalCount + size - 1) / size)
}

func (p Page[T]) HasNext() bool {
	return p.currentPage < p.TotalPages()
}

type pageJSON[T any] struct {
	Items       []T   `json:"items"`
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	TotalCount  int64 `json:"totalCount"`
	TotalPages  int   `json:"totalPages"`
}

func (p Page[T]) MarshalJSON() ([]byte, error) {
	items := p.items
	if items == nil {
		items = []T{}
	}
	return json.Marshal(pageJSON[T]{
		Items:       items,
		CurrentPage: p.currentPage,
		PageSize:    p.pageSize,
		TotalCount:  p.totalCount,
		TotalPages:  p.TotalPages(),
	})
}

func (p *Page[T]) UnmarshalJSON(data []byte) error {
	var raw pageJSON[T]
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = New(raw.Items, raw.CurrentPage, raw.PageSize, raw.TotalCount)
	return nil
}

// Map converts the items of a page and keeps its metadata.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, 0, len(p.items))
	for _, item := range p.items {
		out = append(out, fn(item))
	}
	return Page[U]{
		items:       out,
		currentPage: p.currentPage,
		pageSize:    p.pageSize,
		totalCount:  p.totalCount,
	}
}
