// @title           Invoice Dashboard API
// @version         1.0
// @description     Session-gated invoicing dashboard: revenue, cards, customers and invoice CRUD.
// @BasePath        /
// @securityDefinitions.apikey SessionCookie
// @in              cookie
// @name            session
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/99minutos/invoice-dashboard/internal/api"
	"github.com/99minutos/invoice-dashboard/internal/api/handler"
	"github.com/99minutos/invoice-dashboard/internal/api/middleware"
	"github.com/99minutos/invoice-dashboard/internal/core/service"
	"github.com/99minutos/invoice-dashboard/internal/infrastructure/config"
	"github.com/99minutos/invoice-dashboard/internal/infrastructure/db/postgres"
	"github.com/99minutos/invoice-dashboard/internal/infrastructure/db/redis"
	"github.com/99minutos/invoice-dashboard/internal/infrastructure/telemetry"
	"github.com/99minutos/invoice-dashboard/pkg/logger"
)

const serviceName = "invoice-dashboard"

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.New(logger.Options{})
		bootLog.Fatal().Err(err).Msg("load config")
	}

	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
	})
	log := logger.Get()

	shutdownTracing := telemetry.Setup(ctx, telemetry.Config{
		ServiceName: cfg.Telemetry.ServiceName,
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		Insecure:    cfg.Telemetry.Insecure,
	}, log)

	db, err := postgres.Connect(ctx, postgres.Config{
		DSN:          cfg.Postgres.DSN,
		MaxOpenConns: cfg.Postgres.MaxOpenConns,
		MaxIdleConns: cfg.Postgres.MaxIdleConns,
		Timeout:      cfg.Postgres.ConnectTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect postgres")
	}
	defer db.Close()

	if cfg.Postgres.Migrate {
		if err := postgres.Migrate(ctx, db.DB); err != nil {
			log.Fatal().Err(err).Msg("migrate postgres")
		}
	}

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}
	defer rdb.Close()

	auth := service.NewAuthService(
		postgres.NewUserRepository(db),
		redis.NewRevocationStore(rdb),
		cfg.Session.Secret,
		cfg.Session.TTL,
		log,
	)
	invoices := service.NewInvoiceService(
		postgres.NewDashboardRepository(db),
		redis.NewListingCache(rdb),
		service.InvoiceServiceConfig{
			PageSize:    cfg.Dashboard.PageSize,
			LatestLimit: cfg.Dashboard.LatestLimit,
			CacheTTL:    cfg.Dashboard.ListingCacheTTL,
		},
		log,
	)

	stopLimiter := make(chan struct{})
	limiter := middleware.NewRateLimiter(cfg.RateLimit.LoginRPS, cfg.RateLimit.LoginBurst)
	go limiter.Run(stopLimiter)

	e := api.NewRouter(api.Dependencies{
		Log:          log,
		Auth:         auth,
		Invoices:     invoices,
		Gate:         service.NewGate(service.GateConfig{}),
		LoginLimiter: limiter,
		Cookie:       handler.CookieConfig{Name: cfg.Session.CookieName, Secure: cfg.Session.CookieSecure},
		Readiness:    handler.StoreChecks(db, rdb),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(e, serviceName),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Str("env", cfg.Env).Msg("dashboard listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info().Msg("shutting down")

	close(stopLimiter)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("tracing shutdown")
	}
}
