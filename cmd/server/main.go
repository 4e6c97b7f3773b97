package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/safsequence/Avance-Fragrance/internal/config"
	"github.com/safsequence/Avance-Fragrance/internal/db"
	"github.com/safsequence/Avance-Fragrance/internal/events"
	"github.com/safsequence/Avance-Fragrance/internal/httpserver"
	"github.com/safsequence/Avance-Fragrance/internal/logging"
	"github.com/safsequence/Avance-Fragrance/internal/middleware/auth"
	"github.com/safsequence/Avance-Fragrance/internal/mykafka"
	"github.com/safsequence/Avance-Fragrance/internal/repo"
	"github.com/safsequence/Avance-Fragrance/internal/search"
	"github.com/safsequence/Avance-Fragrance/internal/service"
	"github.com/safsequence/Avance-Fragrance/internal/statscache"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()
	cfg.Validate()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		cancel()
		log.Fatalf("db open: %v", err)
	}
	if cfg.AutoMigrate {
		if err := db.Migrate(ctx, gdb); err != nil {
			cancel()
			log.Fatalf("db migrate: %v", err)
		}
	}
	cancel()

	emitter := &events.Emitter{Producer: cfg.ServiceName}
	var prod *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		prod, err = mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("kafka producer: %v", err)
		}
		emitter.Pub = prod
	} else {
		logger.Info("kafka_disabled", "reason", "KAFKA_BROKERS not set")
	}

	r := &repo.GormRepo{DB: gdb}
	var cache statscache.Cache = statscache.Nop{}
	var rdb *statscache.Redis
	if cfg.RedisAddr != "" {
		rdb = statscache.NewRedis(cfg.RedisAddr, cfg.StatsCacheTTL)
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx); err != nil {
			logger.Warn("stats_cache_degraded", "reason", "redis ping failed", "error", err)
		}
		pingCancel()
		cache = rdb
	}

	catalog := &service.CatalogService{Repo: r, Events: emitter, Stats: cache}
	if cfg.ESURL != "" {
		esCtx, esCancel := context.WithTimeout(context.Background(), 5*time.Second)
		es, err := search.NewClient(esCtx, search.Options{
			URL:      cfg.ESURL,
			Username: cfg.ESUser,
			Password: cfg.ESPassword,
			Index:    cfg.ESIndex,
		})
		esCancel()
		if err != nil {
			logger.Warn("search_disabled", "reason", "elasticsearch unreachable", "error", err)
		} else {
			catalog.Index = es
			go func() {
				n, err := catalog.ReindexAll(context.Background())
				if err != nil {
					logger.Warn("search_backfill_error", "indexed", n, "error", err)
					return
				}
				logger.Info("search_backfill_done", "indexed", n)
			}()
		}
	}

	customers := &service.CustomerService{
		Repo:        r,
		Events:      emitter,
		Stats:       cache,
		JWTSecret:   cfg.JWTSecret,
		AccessTTL:   cfg.AccessTokenTTL,
		AdminEmails: cfg.AdminEmails,
	}
	orders := &service.OrderService{
		Repo:              r,
		Events:            emitter,
		Stats:             cache,
		EnforceStock:      cfg.EnforceStock,
		StrictTransitions: cfg.StrictStatusTransitions,
	}

	e := httpserver.New(logger, cfg.CORSOrigins)
	httpserver.Register(e, &httpserver.Deps{
		DB:        gdb,
		Products:  &httpserver.ProductHTTP{Svc: catalog},
		Customers: &httpserver.CustomerHTTP{Svc: customers, Orders: orders},
		Orders:    &httpserver.OrderHTTP{Svc: orders},
		Contact:   &httpserver.ContactHTTP{Svc: &service.ContactService{Repo: r, Events: emitter}},
		Admin:     &httpserver.AdminHTTP{Stats: &service.StatsService{Repo: r, Cache: cache}},
		Auth:      &httpserver.AuthHTTP{Svc: customers},
		AuthMW:    auth.New(cfg.JWTSecret, cfg.RequireAdminAuth),
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close", "error", err)
		}
	}
	if prod != nil {
		if err := prod.Close(); err != nil {
			logger.Error("kafka close", "error", err)
		}
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Error("redis close", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
