package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/drashti611/gowear-frontend/internal/backend"
	"github.com/drashti611/gowear-frontend/internal/bus"
	"github.com/drashti611/gowear-frontend/internal/config"
	apphttp "github.com/drashti611/gowear-frontend/internal/http"
	"github.com/drashti611/gowear-frontend/internal/http/sessioncookie"
	"github.com/drashti611/gowear-frontend/internal/kvstore"
	"github.com/drashti611/gowear-frontend/internal/metrics"
	"github.com/drashti611/gowear-frontend/internal/modules/auth"
	"github.com/drashti611/gowear-frontend/internal/modules/cart"
	"github.com/drashti611/gowear-frontend/internal/modules/catalog"
	"github.com/drashti611/gowear-frontend/internal/modules/checkout"
	"github.com/drashti611/gowear-frontend/internal/modules/likes"
	"github.com/drashti611/gowear-frontend/internal/storage"
	"github.com/drashti611/gowear-frontend/pkg/logger"
)

func main() {
	cfg := config.Load()
	logger.Init("gowear-frontend", cfg.IsDevelopment(), cfg.LogLevel)
	log := logger.Logger

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	sessionSecret := cfg.SessionSecret
	if sessionSecret == "" {
		sessionSecret = "gowear-dev-session-secret"
		log.Warn().Msg("SESSION_SECRET not set; using the development secret")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var rdb *redis.Client
	if cfg.KVDriver == "redis" || cfg.BusRelay {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable")
		}
		defer rdb.Close()
	}

	kv, err := kvstore.FromConfig(cfg, rdb)
	if err != nil {
		log.Fatal().Err(err).Msg("kv store init failed")
	}
	log.Info().Str("driver", kv.Driver).Msg("kv store ready")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	hub := bus.NewHub()
	hub.OnPublish = m.ObservePublish
	var pub bus.Publisher = hub
	if cfg.BusRelay {
		relay := bus.NewRedisRelay(hub, rdb)
		pub = relay
		go func() {
			if err := relay.Run(ctx, nil); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("bus relay stopped")
			}
		}()
	}

	images, err := storage.FromConfig(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("storage init failed")
	}
	log.Info().Str("driver", images.Driver).Msg("image storage ready")

	be := backend.New(cfg.BackendURL, cfg.BackendTimeout, backend.WithObserver(m.ObserveBackend))
	cat := catalog.New(be)

	locks := kvstore.NewLocks()
	carts := cart.NewService(kv.Store, pub, locks)
	carts.OnMutation = func(op, result string) { m.CartMutations.WithLabelValues(op, result).Inc() }
	liked := likes.NewService(kv.Store, pub, carts, locks)
	liked.OnToggle = func(result string) { m.LikesToggles.WithLabelValues(result).Inc() }

	authSvc := auth.NewService(auth.NewClient(be), auth.NewSessions(kv.Store, pub, locks), cfg.JWTSecret)
	checkoutSvc := checkout.NewService(carts, cat, be)

	r := apphttp.NewRouter(apphttp.Deps{
		Config:   cfg,
		Logger:   log,
		Sessions: sessioncookie.New([]byte(sessionSecret), cfg.SessionCookie, cfg.CookieSecure),
		Hub:      hub,
		Catalog:  cat,
		Carts:    carts,
		Likes:    liked,
		Auth:     authSvc,
		Checkout: checkoutSvc,
		Images:   images.Storage,
		Metrics:  m,
		Registry: reg,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
