package utils

import (
	"net/url"
	"testing"
	"time"

	"maintenance-system/pkg/types"

	"github.com/stretchr/testify/assert"
)

func queryURL(rawQuery string) *url.URL {
	return &url.URL{Path: "/api/requests", RawQuery: rawQuery}
}

func TestParseFilterFromQuery(t *testing.T) {
	u := queryURL("search=pump&team=Metrology&limit=50&page=3&withPagination=true" +
		"&sort[priority]=desc&sort[subject]=вверх") // мусорное направление игнорируется

	filter := ParseFilterFromQuery(u)

	assert.Equal(t, "pump", filter.Search)
	assert.Equal(t, "Metrology", filter.Team)
	assert.Equal(t, 50, filter.Limit)
	assert.Equal(t, 3, filter.Page)
	assert.Equal(t, 100, filter.Offset)
	assert.True(t, filter.WithPagination)
	assert.Equal(t, []types.SortKey{{Field: "priority", Direction: "desc"}}, filter.Sort)
}

func TestParseFilterSortOrder(t *testing.T) {
	// Порядок ключей сортировки сохраняется как в строке запроса.
	u := queryURL("sort[stage]=asc&sort[priority]=desc&sort[subject]=asc")

	filter := ParseFilterFromQuery(u)

	assert.Equal(t, []types.SortKey{
		{Field: "stage", Direction: "asc"},
		{Field: "priority", Direction: "desc"},
		{Field: "subject", Direction: "asc"},
	}, filter.Sort)

	// Повторный ключ не затирает первое вхождение.
	filter = ParseFilterFromQuery(queryURL("sort[stage]=asc&sort[stage]=desc"))
	assert.Equal(t, []types.SortKey{{Field: "stage", Direction: "asc"}}, filter.Sort)

	// Экранированные скобки тоже разбираются.
	filter = ParseFilterFromQuery(queryURL("sort%5Bteam%5D=desc"))
	assert.Equal(t, []types.SortKey{{Field: "team", Direction: "desc"}}, filter.Sort)
}

func TestParseFilterDefaults(t *testing.T) {
	filter := ParseFilterFromQuery(queryURL(""))

	assert.Equal(t, "All", filter.Team)
	assert.Equal(t, DefaultLimit, filter.Limit)
	assert.Equal(t, 1, filter.Page)
	assert.False(t, filter.WithPagination)
	assert.Empty(t, filter.Sort)
}

func TestParseFilterLimitCap(t *testing.T) {
	assert.Equal(t, MaxLimit, ParseFilterFromQuery(queryURL("limit=9000")).Limit)
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2024-05-15")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), d)

	_, ok = ParseDate("")
	assert.False(t, ok)

	_, ok = ParseDate("15.05.2024")
	assert.False(t, ok)
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 5, 10, 23, 0, 0, 0, time.UTC)
	b := time.Date(2024, 5, 14, 1, 0, 0, 0, time.UTC)
	assert.InDelta(t, 4.0, DaysBetween(a, b), 0.001)
}
