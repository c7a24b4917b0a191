package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	httpapi "github.com/yourorg/homesearch-api/http"
	httpv1 "github.com/yourorg/homesearch-api/http/v1"
	"github.com/yourorg/homesearch-api/internal/assist"
	"github.com/yourorg/homesearch-api/internal/listings"
	"github.com/yourorg/homesearch-api/provider"
)

type AppDeps struct {
	Provider *provider.Client
	Assist   assist.Extractor
	Listings listings.Source
	Resolve  *httpv1.ResolveDeps // nil when Redis is not configured
	Log      *zap.Logger
}

func BuildRouter(d AppDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(httprate.LimitByIP(100, 1*time.Minute)) // protect upstream quota
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"ok":true}`)) })

	httpapi.RegisterSearch(r, httpapi.SearchDeps{Log: d.Log})
	httpapi.RegisterProperties(r, httpapi.PropertiesDeps{Provider: d.Provider, Log: d.Log})
	httpapi.RegisterChat(r, httpapi.ChatDeps{Assist: d.Assist, Listings: d.Listings, Log: d.Log})

	// v1 resolve endpoint with Redis + SWR
	if d.Resolve != nil {
		httpv1.RegisterResolve(r, *d.Resolve)
	}

	return r
}
