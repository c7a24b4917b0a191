package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	httpv1 "github.com/yourorg/homesearch-api/http/v1"
	"github.com/yourorg/homesearch-api/internal/assist"
	"github.com/yourorg/homesearch-api/internal/env"
	"github.com/yourorg/homesearch-api/internal/listings"
	"github.com/yourorg/homesearch-api/internal/logger"
	"github.com/yourorg/homesearch-api/internal/redisx"
	"github.com/yourorg/homesearch-api/internal/refresh"
	"github.com/yourorg/homesearch-api/provider"
)

func main() {
	port := env.GetInt("PORT", 4002)
	apiKey := env.Must("PROVIDER_API_KEY")

	log := logger.New(env.Get("LOG_LEVEL", "info"), env.Get("LOG_FORMAT", "json"))
	defer log.Sync()

	client := provider.NewClient(apiKey, provider.WithLogger(log))

	deps := AppDeps{
		Provider: client,
		Listings: listings.NewStatic(listings.Sample()),
		Log:      log,
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		deps.Assist = assist.NewOpenAI(key, env.Get("OPENAI_MODEL", ""))
	} else {
		log.Warn("OPENAI_API_KEY not set; /api/chat disabled")
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rc := redisx.New(addr, os.Getenv("REDIS_PASSWORD"), env.GetInt("REDIS_DB", 0))
		rd := &httpv1.ResolveDeps{
			Redis:       rc,
			Provider:    client,
			Log:         log,
			CacheTTL:    env.GetDuration("RESOLVE_TTL", time.Hour),
			StaleAfter:  env.GetDuration("RESOLVE_STALE_AFTER", 5*time.Minute),
			NegativeTTL: env.GetDuration("RESOLVE_NEGATIVE_TTL", 10*time.Minute),
		}
		rd.Refresher = refresh.New(256, 2, httpv1.Refetcher(*rd))
		deps.Resolve = rd
	} else {
		log.Warn("REDIS_ADDR not set; /v1/properties/resolve disabled")
	}

	router := BuildRouter(deps)

	log.Info("homesearch-api listening", zap.Int("port", port))
	if err := http.ListenAndServe(fmt.Sprintf(":%d", port), logger.Middleware(log)(router)); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
