package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"stayseed/internal/domain"
)

type Config struct {
	AppEnv        string
	HTTPAddr      string
	MetricsAddr   string
	StoreURL      string
	StoreKey      string
	Table         string
	Sink          string // rest|mysql
	UploadTimeout time.Duration
	UploadRPS     int
	MySQLDSN      string
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	JournalTTL    time.Duration
	Cities        []domain.City
}

// Load reads .env.local (if present) and then the process environment.
func Load() Config {
	if err := godotenv.Load(".env.local"); err != nil {
		log.Debug().Err(err).Msg(".env.local not loaded, using process env")
	}
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:        env("APP_ENV", "dev"),
		HTTPAddr:      env("HTTP_ADDR", ":54321"),
		MetricsAddr:   env("METRICS_ADDR", ""),
		StoreURL:      env("SUPABASE_URL", env("NEXT_PUBLIC_SUPABASE_URL", "http://localhost:54321")),
		StoreKey:      env("SUPABASE_SERVICE_ROLE_KEY", ""),
		Table:         env("SEED_TABLE", "places"),
		Sink:          env("SEED_SINK", "rest"),
		UploadTimeout: time.Duration(atoi("UPLOAD_TIMEOUT_SECONDS", 30)) * time.Second,
		UploadRPS:     atoi("UPLOAD_RPS", 4),
		MySQLDSN:      env("MYSQL_DSN", "root:root@tcp(localhost:3306)/stayseed?parseTime=true&charset=utf8mb4&loc=UTC"),
		RedisAddr:     env("REDIS_ADDR", ""),
		RedisPass:     env("REDIS_PASSWORD", ""),
		RedisDB:       atoi("REDIS_DB", 0),
		JournalTTL:    time.Duration(atoi("JOURNAL_TTL_SECONDS", 7*24*3600)) * time.Second,
		Cities:        DefaultCities(),
	}
	if c.StoreKey == "" {
		log.Warn().Msg("SUPABASE_SERVICE_ROLE_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
