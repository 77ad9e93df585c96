package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/ramonehamilton/ygo-catalog/internal/catalog"
)

// MaxPageSize caps the page_size query parameter.
const MaxPageSize = 100

// criteriaFromQuery reads q, type, race and archetype.
func criteriaFromQuery(r *http.Request) catalog.Criteria {
	q := r.URL.Query()
	return catalog.Criteria{
		Query:     q.Get("q"),
		Type:      q.Get("type"),
		Race:      q.Get("race"),
		Archetype: q.Get("archetype"),
	}.Normalize()
}

// intParam reads an integer query parameter, returning def when it is absent.
func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be an integer", name, raw)
	}
	return v, nil
}
