package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/yourorg/homesearch-api/internal/assist"
	"github.com/yourorg/homesearch-api/internal/filter"
	"github.com/yourorg/homesearch-api/internal/listings"
)

type ChatDeps struct {
	Assist   assist.Extractor
	Listings listings.Source
	Log      *zap.Logger
}

type ChatRequest struct {
	Messages []assist.Message `json:"messages"`
}

// RegisterChat wires the chat endpoint. The collaborator's reply branch
// passes through untouched; the search branch is normalized into the
// canonical filter and answered with the redirect URL plus a preview count
// computed against the injected sample-listing source.
func RegisterChat(r chi.Router, d ChatDeps) {
	r.Post("/api/chat", func(w http.ResponseWriter, req *http.Request) {
		if d.Assist == nil {
			render.Status(req, http.StatusServiceUnavailable)
			render.JSON(w, req, map[string]any{"error": "assistant_unavailable"})
			return
		}

		var body ChatRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"error": "invalid_json", "detail": err.Error()})
			return
		}
		if len(body.Messages) == 0 {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"error": "messages_required"})
			return
		}

		ex, err := d.Assist.Extract(req.Context(), body.Messages)
		if err != nil {
			d.Log.Error("chat extraction failed", zap.Error(err))
			render.Status(req, http.StatusBadGateway)
			render.JSON(w, req, map[string]any{"error": "assistant_error"})
			return
		}

		if ex.Action == assist.ActionReply {
			render.JSON(w, req, map[string]any{"action": assist.ActionReply, "content": ex.Content})
			return
		}

		filters := filter.AssistantFilters{}
		if ex.Filters != nil {
			filters = *ex.Filters
		}
		f := filter.FromAssistant(filters)

		resp := map[string]any{
			"action":   assist.ActionSearch,
			"redirect": filter.SearchURL(f),
			"filter":   f,
		}
		if d.Listings != nil {
			if records, err := d.Listings.Listings(req.Context()); err == nil {
				resp["preview_count"] = len(filter.Apply(f, records))
			}
		}
		render.JSON(w, req, resp)
	})
}
