package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/yourorg/homesearch-api/internal/addr"
	"github.com/yourorg/homesearch-api/internal/redisx"
	"github.com/yourorg/homesearch-api/internal/refresh"
	"github.com/yourorg/homesearch-api/listing"
	"github.com/yourorg/homesearch-api/provider"
)

type ResolveDeps struct {
	Redis     *redisx.Client
	Provider  *provider.Client
	Refresher *refresh.Refresher
	Log       *zap.Logger

	// TTL and staleness tuning
	CacheTTL    time.Duration
	StaleAfter  time.Duration
	NegativeTTL time.Duration
}

type ResolveRequest struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}

type cachedEnvelope struct {
	Data *listing.Record `json:"data"`
	Meta struct {
		LastFetch  time.Time `json:"last_fetch_at"`
		StaleAfter time.Time `json:"stale_after"`
		TTLSeconds int       `json:"ttl_seconds"`
		Source     string    `json:"source"`
	} `json:"meta"`
	Norm struct {
		Line1 string `json:"line1"`
		City  string `json:"city"`
		State string `json:"state"`
		Zip   string `json:"zip"`
	} `json:"normalized"`
}

// RegisterResolve wires the detail-page resolve endpoint: canonical address ->
// Redis stale-while-revalidate cache -> ZIP-scoped provider lookup on miss.
func RegisterResolve(r chi.Router, d ResolveDeps) {
	r.Route("/v1/properties", func(r chi.Router) {
		r.Post("/resolve", func(w http.ResponseWriter, req *http.Request) {
			var body ResolveRequest
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				render.Status(req, http.StatusBadRequest)
				render.JSON(w, req, map[string]any{"error": "invalid_json", "detail": err.Error()})
				return
			}
			resolve(w, req, d, body)
		})
		r.Get("/resolve", func(w http.ResponseWriter, req *http.Request) {
			q := req.URL.Query()
			body := ResolveRequest{
				Address: q.Get("address"),
				City:    q.Get("city"),
				State:   q.Get("state"),
				Zip:     q.Get("zip"),
			}
			resolve(w, req, d, body)
		})
	})
}

func resolve(w http.ResponseWriter, req *http.Request, d ResolveDeps, body ResolveRequest) {
	if body.Address == "" || body.City == "" || body.State == "" || body.Zip == "" {
		render.Status(req, http.StatusBadRequest)
		render.JSON(w, req, map[string]any{"error": "address_required", "detail": "address, city, state, zip are required"})
		return
	}
	can := addr.Canonicalize(body.Address, body.City, body.State, body.Zip)
	ctx := req.Context()
	missKey := "prop:miss:" + can.Key
	cacheKey := "prop:pk:" + can.Key

	if ok, _ := d.Redis.Exists(ctx, missKey); ok {
		render.Status(req, http.StatusNotFound)
		render.JSON(w, req, map[string]any{"error": "not_found", "property_key": can.Key, "cache_miss_cooldown": true})
		return
	}

	if val, err := d.Redis.Get(ctx, cacheKey); err == nil && val != "" {
		var env cachedEnvelope
		if err := json.Unmarshal([]byte(val), &env); err == nil {
			stale := time.Now().After(env.Meta.StaleAfter)
			// fire-and-forget background refresh if stale
			if stale && d.Refresher != nil {
				d.Refresher.Enqueue(refresh.Job{
					PropertyKey: can.Key,
					Line1:       can.Line1, City: can.City, State: can.State, Zip: can.Zip,
				})
			}
			// Serve cached immediately
			render.JSON(w, req, map[string]any{
				"ok":           true,
				"source":       "cache",
				"stale":        stale,
				"property_key": can.Key,
				"normalized":   normMap(can),
				"data":         env.Data,
			})
			return
		}
	}

	// Cache miss: short lock to avoid stampedes
	if ok, _ := d.Redis.SetNX(ctx, "prop:lock:"+can.Key, "1", 8*time.Second); !ok {
		render.Status(req, http.StatusAccepted)
		render.JSON(w, req, map[string]any{"ok": false, "in_progress": true, "property_key": can.Key})
		return
	}

	rec, found := fetchByAddress(ctx, d.Provider, can)
	if !found {
		_ = d.Redis.Set(ctx, missKey, "1", maxDur(d.NegativeTTL, 10*time.Minute))
		render.Status(req, http.StatusNotFound)
		render.JSON(w, req, map[string]any{"error": "not_found", "property_key": can.Key})
		return
	}

	if err := storeEnvelope(ctx, d, can, rec, "provider"); err != nil && d.Log != nil {
		d.Log.Warn("resolve cache write failed", zap.Error(err))
	}

	render.JSON(w, req, map[string]any{
		"ok":           true,
		"source":       "fresh",
		"stale":        false,
		"property_key": can.Key,
		"normalized":   normMap(can),
		"data":         rec,
	})
}

// Refetcher returns the background job body used to revalidate stale entries.
func Refetcher(d ResolveDeps) func(ctx context.Context, j refresh.Job) {
	return func(ctx context.Context, j refresh.Job) {
		can := addr.Canonicalize(j.Line1, j.City, j.State, j.Zip)
		rec, found := fetchByAddress(ctx, d.Provider, can)
		if !found {
			return
		}
		if err := storeEnvelope(ctx, d, can, rec, "refresh"); err != nil && d.Log != nil {
			d.Log.Warn("background refresh cache write failed", zap.Error(err))
		}
	}
}

// fetchByAddress runs a ZIP-scoped search and picks the record whose
// canonicalized address matches.
func fetchByAddress(ctx context.Context, client *provider.Client, can addr.Canonical) (*listing.Record, bool) {
	payload := provider.Payload{
		"query": map[string]any{
			"status":      []string{"for_sale"},
			"postal_code": can.Zip,
		},
		"limit": 20,
	}
	result, err := client.Search(ctx, payload)
	if err != nil {
		return nil, false
	}
	for i := range result.Records {
		rec := &result.Records[i]
		if rec.Location == nil || rec.Location.Address == nil {
			continue
		}
		a := rec.Location.Address
		line := a.Street
		if line == "" {
			line = a.Line
		}
		other := addr.Canonicalize(line, a.City, a.State, a.PostalCode)
		if other.Line1 == can.Line1 && other.City == can.City && other.State == can.State {
			return rec, true
		}
	}
	// not in the first page; give up rather than burn quota paging
	return nil, false
}

func storeEnvelope(ctx context.Context, d ResolveDeps, can addr.Canonical, rec *listing.Record, source string) error {
	var env cachedEnvelope
	env.Data = rec
	env.Meta.LastFetch = time.Now()
	env.Meta.StaleAfter = env.Meta.LastFetch.Add(maxDur(d.StaleAfter, 5*time.Minute))
	env.Meta.TTLSeconds = int(maxDur(d.CacheTTL, time.Hour).Seconds())
	env.Meta.Source = source
	env.Norm.Line1, env.Norm.City, env.Norm.State, env.Norm.Zip = can.Line1, can.City, can.State, can.Zip
	b, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return d.Redis.Set(ctx, "prop:pk:"+can.Key, string(b), time.Duration(env.Meta.TTLSeconds)*time.Second)
}

func normMap(can addr.Canonical) map[string]string {
	return map[string]string{"line1": can.Line1, "city": can.City, "state": can.State, "zip": can.Zip}
}

func maxDur(a, b time.Duration) time.Duration {
	if a > 0 {
		return a
	}
	return b
}
