package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	validator "github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"

	"github.com/noah-isme/backend-pos/internal/catalog"
	"github.com/noah-isme/backend-pos/internal/checkout"
	"github.com/noah-isme/backend-pos/internal/config"
	"github.com/noah-isme/backend-pos/internal/health"
	"github.com/noah-isme/backend-pos/internal/obs"
	"github.com/noah-isme/backend-pos/internal/order"
	"github.com/noah-isme/backend-pos/internal/ratelimit"
	"github.com/noah-isme/backend-pos/internal/resilience"
	"github.com/noah-isme/backend-pos/internal/uom"
	"github.com/noah-isme/backend-pos/internal/voucher"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logFormat := envOrDefault("OBS_LOG_FORMAT", "json")
	logLevel := envOrDefault("OBS_LOG_LEVEL", "info")
	logger := obs.NewLogger(logFormat, logLevel).With().Str("env", cfg.AppEnv).Logger()

	metricsNamespace := envOrDefault("OBS_METRICS_NAMESPACE", "pos")
	metricsEnabled := envBool("OBS_ENABLE_PROMETHEUS", true)
	obs.MustRegisterDomainMetrics(metricsNamespace, nil)

	tracingEnabled := envBool("OBS_ENABLE_TRACING", true)
	if tracingEnabled {
		sampling := envFloat("OBS_TRACING_SAMPLING_RATIO", 1.0)
		shutdown, err := obs.InitTracer(context.Background(), obs.TracingConfig{
			ServiceName:   "pos-api",
			Endpoint:      envOrDefault("OBS_OTLP_ENDPOINT", ""),
			Exporter:      envOrDefault("OBS_TRACING_EXPORTER", "otlp"),
			SamplingRatio: sampling,
			Environment:   cfg.AppEnv,
		})
		if err != nil {
			logger.Error().Err(err).Msg("initialise tracing")
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error().Err(err).Msg("shutdown tracer")
				}
			}()
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse redis url")
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		logger.Error().Err(err).Msg("instrument redis tracing")
	}
	if metricsEnabled {
		if err := redisotel.InstrumentMetrics(redisClient); err != nil {
			logger.Error().Err(err).Msg("instrument redis metrics")
		}
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("close redis")
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Msg("ping redis")
	}

	httpClient := &http.Client{Timeout: cfg.UpstreamTimeout}
	catalogHTTP := resilience.HTTPClient{
		Client:  httpClient,
		Breaker: resilience.NewBreaker(5, 0.5, 30*time.Second).WithLogging(logger, "catalog"),
		Timeout: cfg.UpstreamTimeout,
	}
	voucherHTTP := resilience.HTTPClient{
		Client:  httpClient,
		Breaker: resilience.NewBreaker(5, 0.5, 30*time.Second).WithLogging(logger, "voucher"),
		Timeout: cfg.UpstreamTimeout,
	}
	// Order submission must never auto-retry; one attempt, user-driven recovery.
	ordersHTTP := resilience.HTTPClient{
		Client:      httpClient,
		Breaker:     resilience.NewBreaker(5, 0.5, 30*time.Second).WithLogging(logger, "orders"),
		MaxAttempts: 1,
		Timeout:     cfg.UpstreamTimeout,
	}

	catalogClient := catalog.HTTPClient{BaseURL: cfg.CatalogBaseURL, HTTP: catalogHTTP}
	catalogService, err := catalog.NewService(catalog.ServiceConfig{
		Client: catalogClient,
		Cache:  catalog.NewCache(redisClient, cfg.CatalogCacheTTL),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise catalog service")
	}
	catalogHandler := &catalog.Handler{Svc: catalogService}
	uomHandler := &uom.Handler{Items: catalogService}

	validate := validator.New()

	sessionStore := &order.Store{Client: redisClient, TTL: cfg.SessionTTL}
	orderSvc := &order.Service{
		Store:      sessionStore,
		Catalog:    catalogService,
		Vouchers:   voucher.HTTPClient{BaseURL: cfg.VoucherBaseURL, HTTP: voucherHTTP},
		VATRateBPS: cfg.VATRateBPS,
	}
	orderHandler := &order.Handler{Svc: orderSvc, Validate: validate}

	checkoutSvc := &checkout.Service{
		Sessions:       orderSvc,
		Client:         checkout.HTTPClient{BaseURL: cfg.OrdersBaseURL, HTTP: ordersHTTP},
		CurrencySymbol: cfg.CurrencySymbol,
		Logger:         logger,
	}
	checkoutHandler := &checkout.Handler{Svc: checkoutSvc, Validate: validate}

	healthHandler := health.Handler{Checker: probes{redis: redisClient, catalog: catalogService}}

	limiter := ratelimit.Handler{
		Limiter: ratelimit.Limiter{Client: redisClient, Prefix: "pos:ratelimit:"},
		Config: ratelimit.Config{
			Key:    clientKey,
			Window: cfg.RateLimitWindow,
			Max:    cfg.RateLimitMax,
		},
		OnError: func(err error) {
			logger.Warn().Err(err).Msg("rate limiter degraded")
		},
	}

	httpMetrics := obs.NewHTTPMetrics(metricsNamespace, nil, nil)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(obs.RoutePatternMiddleware)
	if tracingEnabled {
		r.Use(obs.TracingMiddleware)
	}
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	if metricsEnabled {
		r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	}
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/healthz", healthHandler.Live)
	r.Get("/readyz", healthHandler.Ready)
	if metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Get("/items", catalogHandler.List)
		r.Get("/items/{id}", catalogHandler.Detail)
		r.Get("/items/{id}/uom-tree", uomHandler.Tree)

		r.Post("/sessions", orderHandler.Create)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", orderHandler.Get)
			r.Post("/items", orderHandler.AddItem)
			r.Patch("/items/{itemID}", orderHandler.UpdateItem)
			r.Delete("/items/{itemID}", orderHandler.RemoveItem)
			r.Post("/voucher", orderHandler.ApplyVoucher)
			r.Delete("/voucher", orderHandler.RemoveVoucher)
			r.Post("/checkout", checkoutHandler.Submit)
			r.Post("/draft", checkoutHandler.Draft)
		})
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("api listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown")
	}
	logger.Info().Msg("api stopped")
}

type probes struct {
	redis   *redis.Client
	catalog *catalog.Service
}

func (p probes) PingRedis(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return p.redis.Ping(ctx).Err()
}

func (p probes) PingCatalog(ctx context.Context, timeout time.Duration) error {
	return p.catalog.Ping(ctx, timeout)
}

func clientKey(r *http.Request) string {
	return strings.TrimSpace(r.RemoteAddr)
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envFloat(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
