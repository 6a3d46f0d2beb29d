package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	domproduct "example.com/softuni-fest/internal/domain/product"
	"example.com/softuni-fest/internal/pagination"
	productuc "example.com/softuni-fest/internal/usecase/product"
)

// paramError reports a query or path parameter that could not be parsed.
type paramError struct {
	Field string
	Rule  string
}

func (e *paramError) Error() string {
	return fmt.Sprintf("invalid parameter %q: expected %s", e.Field, e.Rule)
}

type pageParams struct {
	PageIndex int `validate:"min=1"`
	PageSize  int `validate:"min=1"`
}

func (a *API) parsePageParams(r *http.Request) (pagination.Request, error) {
	q := r.URL.Query()
	params := pageParams{PageIndex: pagination.DefaultPageIndex, PageSize: pagination.DefaultPageSize}

	if v := strings.TrimSpace(q.Get("pageIndex")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return pagination.Request{}, &paramError{Field: "pageIndex", Rule: "int"}
		}
		params.PageIndex = n
	}
	if v := strings.TrimSpace(q.Get("pageSize")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return pagination.Request{}, &paramError{Field: "pageSize", Rule: "int"}
		}
		params.PageSize = n
	}

	if err := a.validator.Struct(params); err != nil {
		return pagination.Request{}, err
	}
	return pagination.NewRequest(params.PageIndex, params.PageSize), nil
}

// parseProductQuery reads the listing parameters shared by the public and the
// business product listings.
func (a *API) parseProductQuery(r *http.Request) (productuc.PageQuery, error) {
	req, err := a.parsePageParams(r)
	if err != nil {
		return productuc.PageQuery{}, err
	}
	q := r.URL.Query()
	out := productuc.PageQuery{Request: req}
	out.Filter.Search = strings.TrimSpace(q.Get("q"))

	if v := q.Get("businessId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return productuc.PageQuery{}, &paramError{Field: "businessId", Rule: "int"}
		}
		out.Filter.BusinessID = &id
	}
	if out.Filter.MinPrice, err = parseDecimalParam(q.Get("minPrice"), "minPrice"); err != nil {
		return productuc.PageQuery{}, err
	}
	if out.Filter.MaxPrice, err = parseDecimalParam(q.Get("maxPrice"), "maxPrice"); err != nil {
		return productuc.PageQuery{}, err
	}

	if out.OrderBy, err = domproduct.ParseSortKey(q.Get("orderBy")); err != nil {
		return productuc.PageQuery{}, err
	}
	if out.Direction, err = pagination.ParseSortDirection(q.Get("sort")); err != nil {
		return productuc.PageQuery{}, err
	}
	return out, nil
}

func parseDecimalParam(v, field string) (*decimal.Decimal, error) {
	if v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, &paramError{Field: field, Rule: "decimal"}
	}
	return &d, nil
}
