// Package mcptools exposes the card catalog as MCP tools.
package mcptools

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ramonehamilton/ygo-catalog/internal/catalog"
)

// maxPageSize caps the page_size argument of search_cards.
const maxPageSize = 100

// Tools serves catalog queries to MCP clients.
type Tools struct {
	store    *catalog.Store
	pageSize int
}

// New creates the catalog tools over store. pageSize is the default page size.
func New(store *catalog.Store, pageSize int) *Tools {
	if pageSize <= 0 {
		pageSize = catalog.DefaultPageSize
	}
	return &Tools{store: store, pageSize: pageSize}
}

// Register adds all catalog tools to the MCP server.
func (t *Tools) Register(s *server.MCPServer) {
	s.AddTool(searchCardsTool(), t.handleSearchCards)
	s.AddTool(getCardTool(), t.handleGetCard)
	s.AddTool(listFacetsTool(), t.handleListFacets)
	s.AddTool(catalogStatsTool(), t.handleCatalogStats)
}

// --- Tool definitions ---

func searchCardsTool() mcp.Tool {
	return mcp.NewTool("search_cards",
		mcp.WithDescription("Search the Yu-Gi-Oh! card catalog. Every given filter must match. "+
			"The query is a case-insensitive substring of the card name or description; "+
			"type, race and archetype must match exactly (see list_facets). Returns one page of results."),
		mcp.WithString("query", mcp.Description("Text to look for in card names and descriptions")),
		mcp.WithString("type", mcp.Description("Exact card type, e.g. 'Normal Monster' or 'Spell Card'")),
		mcp.WithString("race", mcp.Description("Exact race, e.g. 'Dragon'")),
		mcp.WithString("archetype", mcp.Description("Exact archetype, e.g. 'Blue-Eyes'")),
		mcp.WithNumber("page", mcp.Description("1-based page number (default 1)")),
		mcp.WithNumber("page_size", mcp.Description("Cards per page (default 20, max 100)")),
	)
}

func getCardTool() mcp.Tool {
	return mcp.NewTool("get_card",
		mcp.WithDescription("Get the full record of one card: stats, description, printings and prices."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Card ID (passcode)")),
	)
}

func listFacetsTool() mcp.Tool {
	return mcp.NewTool("list_facets",
		mcp.WithDescription("List the values accepted by the type, race and archetype filters of search_cards."),
	)
}

func catalogStatsTool() mcp.Tool {
	return mcp.NewTool("catalog_stats",
		mcp.WithDescription("Count the cards of the catalog per type, race and archetype."),
	)
}

// --- Tool handlers ---

// SearchResult is the response of search_cards.
type SearchResult struct {
	Cards         []catalog.Card   `json:"cards"`
	Page          int              `json:"page"`
	TotalPages    int              `json:"total_pages"`
	FilteredCount int              `json:"filtered_count"`
	CatalogCount  int              `json:"catalog_count"`
	Criteria      catalog.Criteria `json:"criteria"`
}

func (t *Tools) handleSearchCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	criteria := catalog.Criteria{
		Query:     request.GetString("query", ""),
		Type:      request.GetString("type", ""),
		Race:      request.GetString("race", ""),
		Archetype: request.GetString("archetype", ""),
	}.Normalize()
	page := request.GetInt("page", 1)
	pageSize := request.GetInt("page_size", t.pageSize)

	if pageSize < 1 || pageSize > maxPageSize {
		return mcp.NewToolResultErrorf("page_size must be between 1 and %d.", maxPageSize), nil
	}

	ds := t.store.Dataset()
	filtered := ds.Filter(criteria)
	totalPages := catalog.TotalPages(len(filtered), pageSize)
	if !catalog.ValidPage(page, totalPages) {
		return mcp.NewToolResultErrorf("Invalid page %d. Must be 1-%d.", page, totalPages), nil
	}

	items, _ := catalog.Paginate(filtered, page, pageSize)
	return respondJSON(SearchResult{
		Cards:         items,
		Page:          page,
		TotalPages:    totalPages,
		FilteredCount: len(filtered),
		CatalogCount:  ds.Len(),
		Criteria:      criteria,
	})
}

func (t *Tools) handleGetCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetInt("id", -1)
	if id < 0 {
		return mcp.NewToolResultError("id is required."), nil
	}

	card, ok := t.store.Dataset().ByID(int64(id))
	if !ok {
		return mcp.NewToolResultErrorf("%v: %d", catalog.ErrCardNotFound, id), nil
	}
	return respondJSON(card)
}

func (t *Tools) handleListFacets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f := t.store.Snapshot().Facets
	return respondJSON(map[string][]string{
		"types":      catalog.CardTypes,
		"races":      f.Races,
		"archetypes": f.Archetypes,
	})
}

func (t *Tools) handleCatalogStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return respondJSON(t.store.Snapshot().Stats)
}

func respondJSON(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to encode result: %v", err), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
