package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/drashti611/gowear-frontend/internal/kvstore"
	"github.com/drashti611/gowear-frontend/pkg/logger"
)

// createtable creates the kv_entries table used by KV_DRIVER=mysql|postgres.
func main() {
	_ = godotenv.Load()
	logger.Init("createtable", true, "info")
	log := logger.Logger

	driver := flag.String("driver", envOr("KV_DRIVER", "mysql"), "sql driver: mysql or postgres")
	dsn := flag.String("dsn", os.Getenv("DB_DSN"), "database dsn")
	flag.Parse()

	db, err := kvstore.OpenDB(*driver, *dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := db.AutoMigrate(&kvstore.Entry{}); err != nil {
		log.Fatal().Err(err).Msg("failed to create kv_entries")
	}
	log.Info().Str("driver", *driver).Msg("kv_entries ready")
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
