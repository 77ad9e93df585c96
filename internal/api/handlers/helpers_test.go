package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ramonehamilton/ygo-catalog/internal/catalog"
)

// testStore returns a catalog of n cards. Every third card is a Dragon.
func testStore(n int) *catalog.Store {
	cards := make([]catalog.Card, n)
	for i := range cards {
		race := "Warrior"
		if i%3 == 0 {
			race = "Dragon"
		}
		cards[i] = catalog.Card{
			ID:   int64(i + 1),
			Name: fmt.Sprintf("Card %03d", i+1),
			Type: "Effect Monster",
			Race: race,
		}
	}
	return catalog.NewStore(catalog.NewDataset(cards))
}

func withURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func newJSONRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// decodeData unwraps the {"data": ...} envelope into v.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if err := json.Unmarshal(envelope.Data, v); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
}
