package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramonehamilton/ygo-catalog/internal/catalog"
)

func testTools() *Tools {
	cards := make([]catalog.Card, 45)
	for i := range cards {
		race := "Warrior"
		if i%3 == 0 {
			race = "Dragon"
		}
		cards[i] = catalog.Card{ID: int64(i + 1), Name: fmt.Sprintf("Card %03d", i+1), Type: "Effect Monster", Race: race}
	}
	return New(catalog.NewStore(catalog.NewDataset(cards)), 20)
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok, "expected text content")
	return text.Text
}

func TestSearchCards(t *testing.T) {
	tools := testTools()

	result, err := tools.handleSearchCards(context.Background(), callRequest(map[string]any{
		"race": "Dragon",
		"page": float64(1),
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var out SearchResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &out))
	assert.Equal(t, 15, out.FilteredCount)
	assert.Equal(t, 45, out.CatalogCount)
	assert.Equal(t, 1, out.TotalPages)
	assert.Len(t, out.Cards, 15)
	assert.Equal(t, "Dragon", out.Criteria.Race)
}

func TestSearchCards_Pages(t *testing.T) {
	tools := testTools()

	result, err := tools.handleSearchCards(context.Background(), callRequest(map[string]any{"page": float64(3)}))
	require.NoError(t, err)

	var out SearchResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &out))
	assert.Equal(t, 3, out.Page)
	assert.Len(t, out.Cards, 5)

	result, err = tools.handleSearchCards(context.Background(), callRequest(map[string]any{"page": float64(4)}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Must be 1-3")
}

func TestSearchCards_QueryAndPageSize(t *testing.T) {
	tools := testTools()

	result, err := tools.handleSearchCards(context.Background(), callRequest(map[string]any{
		"query":     "  CARD 04 ",
		"page_size": float64(2),
	}))
	require.NoError(t, err)

	var out SearchResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &out))
	assert.Equal(t, 6, out.FilteredCount)
	assert.Equal(t, 3, out.TotalPages)
	assert.Equal(t, "CARD 04", out.Criteria.Query)

	result, err = tools.handleSearchCards(context.Background(), callRequest(map[string]any{"page_size": float64(500)}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestSearchCards_NoResults(t *testing.T) {
	tools := testTools()

	result, err := tools.handleSearchCards(context.Background(), callRequest(map[string]any{"race": "Fiend"}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, `"cards":[]`)
	assert.Contains(t, text, `"total_pages":1`)
}

func TestGetCard(t *testing.T) {
	tools := testTools()

	result, err := tools.handleGetCard(context.Background(), callRequest(map[string]any{"id": float64(7)}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var card catalog.Card
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &card))
	assert.Equal(t, "Card 007", card.Name)

	result, err = tools.handleGetCard(context.Background(), callRequest(map[string]any{"id": float64(999)}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.True(t, strings.Contains(resultText(t, result), "card not found"))

	result, err = tools.handleGetCard(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestListFacetsAndStats(t *testing.T) {
	tools := testTools()

	result, err := tools.handleListFacets(context.Background(), callRequest(nil))
	require.NoError(t, err)

	var facets map[string][]string
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &facets))
	assert.Equal(t, []string{"Dragon", "Warrior"}, facets["races"])
	assert.Equal(t, catalog.CardTypes, facets["types"])
	assert.Empty(t, facets["archetypes"])

	result, err = tools.handleCatalogStats(context.Background(), callRequest(nil))
	require.NoError(t, err)

	var stats catalog.Stats
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &stats))
	assert.Equal(t, 45, stats.Total)
	require.Len(t, stats.ByRace, 2)
	assert.Equal(t, catalog.Count{Value: "Warrior", Count: 30}, stats.ByRace[0])
}

func TestRegister(t *testing.T) {
	s := server.NewMCPServer("ygo-catalog", "test")
	testTools().Register(s)

	tools := s.ListTools()
	for _, name := range []string{"search_cards", "get_card", "list_facets", "catalog_stats"} {
		assert.Contains(t, tools, name)
	}
}
