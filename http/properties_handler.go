package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/yourorg/homesearch-api/internal/filter"
	"github.com/yourorg/homesearch-api/provider"
)

type PropertiesDeps struct {
	Provider *provider.Client
	Log      *zap.Logger
}

// PropertiesRequest is the POST body: a manual filter-panel object, plus an
// optional raw provider query that overlays the derived one field-by-field.
type PropertiesRequest struct {
	Filters *filter.Filter `json:"filters,omitempty"`
	Query   map[string]any `json:"query,omitempty"`
	Limit   *int           `json:"limit,omitempty"`
	Offset  *int           `json:"offset,omitempty"`
	Sort    map[string]any `json:"sort,omitempty"`
}

// RegisterProperties wires the results endpoint: normalize, project, dispatch
// through the fallback ladder, then re-apply the filter locally over whatever
// the surviving tier returned.
func RegisterProperties(r chi.Router, d PropertiesDeps) {
	r.Get("/api/properties", func(w http.ResponseWriter, req *http.Request) {
		f := filter.FromResultsQuery(req.URL.Query())
		handleProperties(w, req, d, f, nil)
	})

	r.Post("/api/properties", func(w http.ResponseWriter, req *http.Request) {
		var body PropertiesRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"error": "invalid_json", "detail": err.Error()})
			return
		}
		var f filter.Filter
		if body.Filters != nil {
			f = filter.FromManual(*body.Filters)
		} else {
			f = filter.Filter{}.WithDefaults()
		}
		handleProperties(w, req, d, f, rawOverlay(body))
	})
}

// rawOverlay builds the verbatim passthrough payload pieces from a POST body.
// Sort only passes through when a field or direction was actually supplied.
func rawOverlay(body PropertiesRequest) map[string]any {
	raw := map[string]any{}
	if body.Query != nil {
		raw["query"] = body.Query
	}
	if body.Limit != nil {
		raw["limit"] = *body.Limit
	}
	if body.Offset != nil {
		raw["offset"] = *body.Offset
	}
	if body.Sort != nil {
		if hasSortKey(body.Sort, "field") || hasSortKey(body.Sort, "direction") {
			raw["sort"] = body.Sort
		}
	}
	if len(raw) == 0 {
		return nil
	}
	return raw
}

func hasSortKey(sort map[string]any, key string) bool {
	s, ok := sort[key].(string)
	return ok && s != ""
}

func handleProperties(w http.ResponseWriter, req *http.Request, d PropertiesDeps, f filter.Filter, raw map[string]any) {
	payload := provider.BuildPayload(f, raw)

	result, err := d.Provider.Search(req.Context(), payload)
	if err != nil {
		var ue *provider.UpstreamError
		switch {
		case errors.As(err, &ue):
			// ladder exhausted: echo the final tier's status and body
			render.Status(req, http.StatusBadGateway)
			render.JSON(w, req, map[string]any{
				"error":  "upstream_error",
				"status": ue.StatusCode,
				"tier":   ue.Tier,
				"detail": string(ue.Body),
			})
		case errors.Is(err, provider.ErrUnknownEnvelope):
			d.Log.Error("provider response unmappable", zap.Error(err))
			render.Status(req, http.StatusInternalServerError)
			render.JSON(w, req, map[string]any{"error": "map_error"})
		default:
			d.Log.Error("provider unreachable", zap.Error(err))
			render.Status(req, http.StatusBadGateway)
			render.JSON(w, req, map[string]any{"error": "upstream_unreachable"})
		}
		return
	}

	// re-apply dimensions the surviving tier shed or the provider never
	// supported; an empty set here is a valid result, not a failure
	matched := filter.Apply(f, result.Records)

	render.JSON(w, req, map[string]any{
		"ok":      true,
		"count":   len(matched),
		"tier":    result.Tier,
		"results": matched,
	})
}
