package main

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	server "stayseed/internal/adapters/http_server"
	"stayseed/internal/adapters/observability"
	redisad "stayseed/internal/adapters/redis"
	"stayseed/internal/shared"
	"stayseed/internal/storage/memory"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	key := cfg.StoreKey
	if key == "" {
		key = "dev-key"
		log.Warn().Str("key", key).Msg("no store key configured, fake store accepts the dev key")
	}

	h := &server.Handlers{Tables: memory.New(), Key: key}
	if cfg.RedisAddr != "" {
		j := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.JournalTTL)
		defer j.Close()
		h.Runs = j
	}

	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(h)

	log.Info().Str("addr", cfg.HTTPAddr).Msg("fake store listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
