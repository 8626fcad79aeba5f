package listing

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

var petDefaults = Defaults{
	Limit:    12,
	SortBy:   "createdAt",
	SortDesc: true,
	Sortable: []string{"createdAt", "name"},
}

func TestParseParams_Defaults(t *testing.T) {
	p := ParseParams(url.Values{}, petDefaults)

	assert.Equal(t, Params{Page: 1, Limit: 12, SortBy: "createdAt", SortDesc: true}, p)
	assert.Equal(t, 0, p.Offset())
}

func TestParseParams_InvalidValuesFallBack(t *testing.T) {
	q := url.Values{
		"page":      {"-2"},
		"limit":     {"abc"},
		"sortBy":    {"password"},
		"sortOrder": {"sideways"},
	}
	p := ParseParams(q, petDefaults)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 12, p.Limit)
	assert.Equal(t, "createdAt", p.SortBy)
	assert.True(t, p.SortDesc)
}

func TestParseParams_ClampsLimitAndHonoursSort(t *testing.T) {
	q := url.Values{"page": {"3"}, "limit": {"1000"}, "sortBy": {"name"}, "sortOrder": {"asc"}}
	p := ParseParams(q, petDefaults)

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, MaxLimit, p.Limit)
	assert.Equal(t, "name", p.SortBy)
	assert.False(t, p.SortDesc)
	assert.Equal(t, 200, p.Offset())
}

func TestNewPagination(t *testing.T) {
	cases := []struct {
		name  string
		page  int
		limit int
		total int
		want  Pagination
	}{
		{"empty", 1, 12, 0, Pagination{Current: 1, Pages: 0, Total: 0}},
		{"exact", 1, 10, 20, Pagination{Current: 1, Pages: 2, Total: 20, HasNext: true}},
		{"partial last", 3, 10, 25, Pagination{Current: 3, Pages: 3, Total: 25, HasPrev: true}},
		{"beyond last", 9, 10, 25, Pagination{Current: 9, Pages: 3, Total: 25, HasPrev: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NewPagination(Params{Page: tc.page, Limit: tc.limit}, tc.total)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestWindow(t *testing.T) {
	start, end := Window(Params{Page: 2, Limit: 10}, 25)
	assert.Equal(t, 10, start)
	assert.Equal(t, 20, end)

	start, end = Window(Params{Page: 4, Limit: 10}, 25)
	assert.Equal(t, 25, start)
	assert.Equal(t, 25, end)
}

func TestIsReserved(t *testing.T) {
	assert.True(t, IsReserved("sortOrder"))
	assert.False(t, IsReserved("breed"))
}
