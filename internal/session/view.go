package session

import "github.com/ramonehamilton/ygo-catalog/internal/catalog"

// View is the presentation model emitted after every state change.
type View struct {
	Items         []catalog.Card   `json:"items"`
	Page          int              `json:"page"`
	TotalPages    int              `json:"total_pages"`
	PageSize      int              `json:"page_size"`
	TotalCount    int              `json:"total_count"`
	FilteredCount int              `json:"filtered_count"`
	Criteria      catalog.Criteria `json:"criteria"`

	HasPrev bool `json:"has_prev"`
	HasNext bool `json:"has_next"`
	// NoResults is derived from the filtered count. TotalPages never drops
	// below one, so it cannot signal an empty result on its own.
	NoResults bool `json:"no_results"`
	// ShowPagination is false when everything fits on one page.
	ShowPagination bool `json:"show_pagination"`
}
