package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/yourorg/homesearch-api/internal/filter"
)

type SearchDeps struct {
	Log *zap.Logger
}

// SearchRequest is the JSON body accepted by POST /api/search, the same
// action/filters object the chat collaborator emits.
type SearchRequest struct {
	Action  string                   `json:"action,omitempty"`
	Filters *filter.AssistantFilters `json:"filters"`
}

// RegisterSearch wires the search endpoint: both verbs normalize their input
// into the canonical filter and answer with the results-page redirect URL.
func RegisterSearch(r chi.Router, d SearchDeps) {
	// GET: flat query-string dialect (location, price_min, beds_min, ...)
	r.Get("/api/search", func(w http.ResponseWriter, req *http.Request) {
		f := filter.FromQuery(req.URL.Query())
		http.Redirect(w, req, filter.SearchURL(f), http.StatusFound)
	})

	// POST: JSON body
	r.Post("/api/search", func(w http.ResponseWriter, req *http.Request) {
		var body SearchRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"error": "invalid_json", "detail": err.Error()})
			return
		}
		filters := filter.AssistantFilters{}
		if body.Filters != nil {
			filters = *body.Filters
		}
		f := filter.FromAssistant(filters)
		render.JSON(w, req, map[string]any{
			"ok":       true,
			"redirect": filter.SearchURL(f),
			"filter":   f,
		})
	})
}
