package utils

import (
	"net/url"
	"strconv"
	"strings"

	"maintenance-system/pkg/types"
)

const (
	DefaultLimit = 200
	MaxLimit     = 500
)

// ParseFilterFromQuery разбирает query-параметры списковых запросов.
// Ключи sort[...] собираются в порядке появления в строке запроса:
// url.Values — map и порядок не сохраняет, поэтому сортировка читается
// из сырой строки. Повторный ключ игнорируется.
func ParseFilterFromQuery(u *url.URL) types.Filter {
	filterReq := types.Filter{
		Team:  "All",
		Limit: DefaultLimit,
		Page:  1,
	}
	if u == nil {
		return filterReq
	}
	values := u.Query()

	if limitStr := values.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			if l > MaxLimit {
				filterReq.Limit = MaxLimit
			} else {
				filterReq.Limit = l
			}
		}
	}

	if pageStr := values.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			filterReq.Page = p
		}
	}

	if offsetStr := values.Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			filterReq.Offset = o
		}
	} else {
		filterReq.Offset = (filterReq.Page - 1) * filterReq.Limit
	}

	if values.Get("withPagination") == "true" {
		filterReq.WithPagination = true
	}

	if search := values.Get("search"); search != "" {
		filterReq.Search = search
	}
	if team := values.Get("team"); team != "" {
		filterReq.Team = team
	}

	filterReq.Sort = parseSortKeys(u.RawQuery)
	return filterReq
}

func parseSortKeys(rawQuery string) []types.SortKey {
	var sortKeys []types.SortKey
	seen := map[string]bool{}

	for _, pair := range strings.Split(rawQuery, "&") {
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			continue
		}
		if !strings.HasPrefix(key, "sort[") || !strings.HasSuffix(key, "]") {
			continue
		}
		field := key[5 : len(key)-1]
		if field == "" || seen[field] {
			continue
		}

		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			continue
		}
		direction := strings.ToLower(value)
		if direction != "asc" && direction != "desc" {
			continue
		}

		seen[field] = true
		sortKeys = append(sortKeys, types.SortKey{Field: field, Direction: direction})
	}
	return sortKeys
}
