package pagination

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{name: "first page", req: NewRequest(1, 50)},
		{name: "later page", req: NewRequest(7, 3)},
		{name: "zero index", req: NewRequest(0, 10), wantErr: ErrPageIndexOutOfRange},
		{name: "negative index", req: NewRequest(-3, 10), wantErr: ErrPageIndexOutOfRange},
		{name: "negative index with bad size", req: NewRequest(-1, 0), wantErr: ErrPageIndexOutOfRange},
		{name: "zero size", req: NewRequest(1, 0), wantErr: ErrPageSizeOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRequest_Offset(t *testing.T) {
	require.Equal(t, 0, NewRequest(1, 20).Offset())
	require.Equal(t, 20, NewRequest(2, 20).Offset())
	require.Equal(t, 90, NewRequest(10, 10).Offset())
}

func TestPage_TotalPages(t *testing.T) {
	tests := []struct {
		pageSize   int
		totalCount int64
		want       int
	}{
		{pageSize: 2, totalCount: 3, want: 2},
		{pageSize: 50, totalCount: 0, want: 0},
		{pageSize: 10, totalCount: 10, want: 1},
		{pageSize: 10, totalCount: 11, want: 2},
		{pageSize: 1, totalCount: 5, want: 5},
	}

	for _, tt := range tests {
		p := New([]int{}, 1, tt.pageSize, tt.totalCount)
		require.Equal(t, tt.want, p.TotalPages(), "pageSize=%d total=%d", tt.pageSize, tt.totalCount)
	}
}

func TestPage_IsImmutable(t *testing.T) {
	items := []string{"a", "b"}
	p := New(items, 1, 2, 2)

	items[0] = "changed"
	require.Equal(t, []string{"a", "b"}, p.Items())

	got := p.Items()
	got[1] = "changed"
	require.Equal(t, []string{"a", "b"}, p.Items())
}

func TestPage_MarshalJSON(t *testing.T) {
	p := New([]int{4, 5}, 2, 2, 5)

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	require.JSONEq(t, `{"items":[4,5],"currentPage":2,"pageSize":2,"totalCount":5,"totalPages":3}`, string(raw))

	var decoded Page[int]
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, []int{4, 5}, decoded.Items())
	require.Equal(t, 2, decoded.CurrentPage())
	require.True(t, decoded.HasNext())
}

func TestPage_MarshalJSON_EmptyItems(t *testing.T) {
	var items []int
	raw, err := json.Marshal(New(items, 3, 10, 4))
	require.NoError(t, err)
	require.JSONEq(t, `{"items":[],"currentPage":3,"pageSize":10,"totalCount":4,"totalPages":1}`, string(raw))
}

func TestMap(t *testing.T) {
	p := New([]int{1, 2, 3}, 1, 3, 9)
	mapped := Map(p, func(i int) string { return string(rune('a' + i - 1)) })

	require.Equal(t, []string{"a", "b", "c"}, mapped.Items())
	require.Equal(t, 1, mapped.CurrentPage())
	require.Equal(t, 3, mapped.PageSize())
	require.Equal(t, int64(9), mapped.TotalCount())
	require.Equal(t, 3, mapped.TotalPages())
}

func TestParseSortDirection(t *testing.T) {
	d, err := ParseSortDirection("")
	require.NoError(t, err)
	require.Equal(t, Ascending, d)

	d, err = ParseSortDirection("DESC")
	require.NoError(t, err)
	require.Equal(t, Descending, d)

	_, err = ParseSortDirection("sideways")
	require.ErrorIs(t, err, ErrInvalidSortDirection)
}
