package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ramonehamilton/ygo-catalog/internal/api/response"
	"github.com/ramonehamilton/ygo-catalog/internal/catalog"
)

// CardHandler serves stateless catalog queries.
type CardHandler struct {
	store    *catalog.Store
	pageSize int
}

// NewCardHandler creates a new CardHandler. pageSize is the default page size.
func NewCardHandler(store *catalog.Store, pageSize int) *CardHandler {
	if pageSize <= 0 {
		pageSize = catalog.DefaultPageSize
	}
	return &CardHandler{store: store, pageSize: pageSize}
}

// CardPage is the response of a card search.
type CardPage struct {
	response.PaginatedResponse
	FilteredCount int              `json:"filtered_count"`
	CatalogCount  int              `json:"catalog_count"`
	Criteria      catalog.Criteria `json:"criteria"`
}

// FacetsResponse lists the selectable filter values.
type FacetsResponse struct {
	Types      []string `json:"types"`
	Races      []string `json:"races"`
	Archetypes []string `json:"archetypes"`
}

// SearchCards filters the catalog and returns one page of the result.
// A request carries no current page to fall back to, so a page outside
// [1, total_pages] is rejected.
func (h *CardHandler) SearchCards(w http.ResponseWriter, r *http.Request) {
	page, err := intParam(r, "page", 1)
	if err != nil {
		response.BadRequest(w, err)
		return
	}
	pageSize, err := intParam(r, "page_size", h.pageSize)
	if err != nil {
		response.BadRequest(w, err)
		return
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		response.BadRequest(w, fmt.Errorf("page_size must be between 1 and %d", MaxPageSize))
		return
	}

	snap := h.store.Snapshot()
	criteria := criteriaFromQuery(r)
	filtered := snap.Dataset.Filter(criteria)

	totalPages := catalog.TotalPages(len(filtered), pageSize)
	if !catalog.ValidPage(page, totalPages) {
		response.BadRequest(w, fmt.Errorf("page %d out of range [1, %d]", page, totalPages))
		return
	}

	items, _ := catalog.Paginate(filtered, page, pageSize)
	response.JSON(w, http.StatusOK, CardPage{
		PaginatedResponse: response.NewPaginated(items, page, pageSize, len(filtered)),
		FilteredCount:     len(filtered),
		CatalogCount:      snap.Dataset.Len(),
		Criteria:          criteria,
	})
}

// GetCard returns a card by its numeric ID.
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "cardID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		response.BadRequest(w, fmt.Errorf("invalid card ID %q", raw))
		return
	}

	card, ok := h.store.Dataset().ByID(id)
	if !ok {
		response.NotFound(w, fmt.Errorf("%w: %d", catalog.ErrCardNotFound, id))
		return
	}
	response.Success(w, card)
}

// GetFacets returns the filter values: the fixed type list and the races
// and archetypes found in the catalog.
func (h *CardHandler) GetFacets(w http.ResponseWriter, _ *http.Request) {
	f := h.store.Snapshot().Facets
	response.Success(w, FacetsResponse{
		Types:      catalog.CardTypes,
		Races:      f.Races,
		Archetypes: f.Archetypes,
	})
}

// GetStats returns the type, race and archetype distribution of the catalog.
// An empty catalog is a valid one and reports zero counts.
func (h *CardHandler) GetStats(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, h.store.Snapshot().Stats)
}
