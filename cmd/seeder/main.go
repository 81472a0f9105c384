package main

import (
	"context"
	"database/sql"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"stayseed/internal/adapters/observability"
	"stayseed/internal/adapters/postgrest"
	redisad "stayseed/internal/adapters/redis"
	"stayseed/internal/app"
	"stayseed/internal/domain"
	"stayseed/internal/shared"
	mysqlrepo "stayseed/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("sink", cfg.Sink).
		Str("store", cfg.StoreURL).
		Str("table", cfg.Table).
		Int("cities", len(cfg.Cities)).
		Msg("seeder starting")

	observability.Serve(cfg.MetricsAddr)

	var (
		writer domain.BatchWriter
		repo   *mysqlrepo.Repo
	)
	switch cfg.Sink {
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("db ping ok")
		repo = mysqlrepo.New(db)
		writer = repo
	case "rest":
		client, err := postgrest.New(cfg.StoreURL, cfg.StoreKey, cfg.Table, cfg.UploadTimeout, cfg.UploadRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize store client")
		}
		writer = client
	default:
		log.Fatal().Str("sink", cfg.Sink).Msg("unknown SEED_SINK (want rest or mysql)")
	}

	var journal domain.RunJournal
	if cfg.RedisAddr != "" {
		j := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.JournalTTL)
		defer j.Close()
		journal = j
	}

	gen := app.NewGenerator(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
	svc := app.NewSeedService(gen, app.NewUploader(writer, journal))

	runID, rep, err := svc.Run(ctx, cfg.Cities)
	if err != nil {
		// store unreachable or bad city config: nothing sensible to continue with
		log.Fatal().Err(err).Str("run_id", runID).Int("uploaded", rep.Uploaded).Msg("seeding aborted")
	}

	ev := log.Info()
	if len(rep.FailedChunks()) > 0 {
		ev = log.Warn().Ints("failed_chunks", rep.FailedChunks())
	}
	ev.Str("run_id", runID).
		Int("uploaded", rep.Uploaded).
		Int("failed", rep.Failed).
		Msg("seeding completed")

	if repo != nil {
		if counts, err := repo.CountByCity(ctx); err == nil {
			for city, n := range counts {
				log.Info().Str("city", city).Int("rows", n).Msg("stored places")
			}
		}
	}
}
