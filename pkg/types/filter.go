package types

// SortKey — одна пара ключ/направление из query-параметра sort[...].
type SortKey struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// Filter represents query parameters for filtering and pagination.
// Sort хранит ключи в порядке появления в запросе: порядок значим,
// первый ключ — основной.
type Filter struct {
	Search         string    `json:"search,omitempty"`
	Team           string    `json:"team,omitempty"`
	Sort           []SortKey `json:"sort,omitempty"`
	Limit          int       `json:"limit"`
	Offset         int       `json:"offset"`
	Page           int       `json:"page"`
	WithPagination bool      `json:"with_pagination"`
}

// Pagination represents pagination metadata.
type Pagination struct {
	TotalCount uint64 `json:"total_count"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
}

// http://localhost:8080/api/requests?search=CNC&team=Mechanics&sort[request_date]=desc&limit=10&offset=0&withPagination=true
