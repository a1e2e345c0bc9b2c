package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/config"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/auth"
	inventoryrepo "github.com/shakthiprasad243/NaveenTextiles-sub001/internal/inventory/repository"
	inventoryuc "github.com/shakthiprasad243/NaveenTextiles-sub001/internal/inventory/usecase"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/notifier"
	offerhandler "github.com/shakthiprasad243/NaveenTextiles-sub001/internal/offer/handler"
	offerrepo "github.com/shakthiprasad243/NaveenTextiles-sub001/internal/offer/repository"
	offeruc "github.com/shakthiprasad243/NaveenTextiles-sub001/internal/offer/usecase"
	orderhandler "github.com/shakthiprasad243/NaveenTextiles-sub001/internal/order/handler"
	orderrepo "github.com/shakthiprasad243/NaveenTextiles-sub001/internal/order/repository"
	orderuc "github.com/shakthiprasad243/NaveenTextiles-sub001/internal/order/usecase"
	producthandler "github.com/shakthiprasad243/NaveenTextiles-sub001/internal/product/handler"
	productrepo "github.com/shakthiprasad243/NaveenTextiles-sub001/internal/product/repository"
	productuc "github.com/shakthiprasad243/NaveenTextiles-sub001/internal/product/usecase"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/ratelimit"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/server"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/sweeper"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/pkg/cache"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/pkg/logger"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/pkg/postgres"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	appLogger := logger.New(&logger.Config{
		IsDevelopment:     cfg.Server.AppEnv == "dev",
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	})
	defer appLogger.Sync() //nolint:errcheck

	appLogger.Info("starting api server",
		zap.String("app_env", cfg.Server.AppEnv),
		zap.String("http_port", cfg.Server.HTTPPort),
	)

	db, err := postgres.New(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		return err
	}
	defer db.Close()
	appLogger.Info("connected to postgres", zap.String("host", cfg.Postgres.Host))

	if err := postgres.RunMigrations(db, cfg.Postgres.MigrationsPath); err != nil {
		return err
	}

	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		// The service degrades without redis: no product cache, no sweep
		// lock. Both paths tolerate a nil client.
		appLogger.Warn("redis unavailable, continuing without cache", zap.Error(err))
		redisClient = nil
	}

	kafkaNotifier := notifier.NewKafkaNotifier(cfg.Kafka.Brokers, cfg.Kafka.Topic, appLogger)
	defer kafkaNotifier.Close() //nolint:errcheck

	invUC := inventoryuc.NewInventoryUseCase(inventoryrepo.NewPGRepository(db), appLogger)
	productRepo := productrepo.NewPGRepository(db)
	productUC := productuc.NewProductUseCase(productRepo, redisClient, appLogger)
	offerUC := offeruc.NewOfferUseCase(offerrepo.NewPGRepository(db), appLogger)
	orderUC := orderuc.NewOrderUseCase(
		orderrepo.NewPGRepository(db),
		invUC,
		productRepo,
		kafkaNotifier,
		orderuc.Config{
			ReservationTTL:  cfg.Checkout.ReservationTTL,
			OrderPrefix:     cfg.Shop.OrderPrefix,
			FreeShippingMin: cfg.Shop.FreeShippingMin,
			ShippingFee:     cfg.Shop.ShippingFee,
		},
		appLogger,
	)

	checkoutLimiter := ratelimit.NewKeyedLimiter(
		rate.Limit(float64(cfg.RateLimit.CheckoutPerMinute)/60.0),
		cfg.RateLimit.CheckoutBurst,
	)

	orderHandler := orderhandler.NewOrderHandler(orderUC, checkoutLimiter, cfg.Shop.WhatsAppNumber, appLogger)
	sweepHandler := orderhandler.NewSweepHandler(orderUC, cfg.Checkout.CronSecret, appLogger)
	productHandler := producthandler.NewProductHandler(productUC, appLogger)
	offerHandler := offerhandler.NewOfferHandler(offerUC, appLogger)
	adminOnly := auth.AdminOnly(auth.NewPGResolver(db), appLogger)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(30 * time.Second))

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			server.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Get("/products", productHandler.ListProducts)
		r.Get("/products/{product_id}", productHandler.GetProduct)
		r.Post("/offers/validate", offerHandler.Validate)

		r.Post("/orders", orderHandler.Checkout)
		r.Get("/orders", orderHandler.GetOrders)
		r.Get("/orders/{order_id}", orderHandler.GetOrder)

		r.Route("/admin", func(r chi.Router) {
			r.Use(adminOnly)
			r.Get("/orders", orderHandler.ListOrders)
			r.Patch("/orders/{order_id}/status", orderHandler.SetStatus)
		})

		r.Post("/cron/cleanup-reservations", sweepHandler.Sweep)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var locks sweeper.LockClient
	if redisClient != nil {
		locks = redisClient
	}
	go sweeper.New(orderUC, locks, cfg.Checkout.SweepInterval, appLogger).Run(ctx)

	srv := &http.Server{
		Addr:         cfg.Server.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		appLogger.Info("shutting down", zap.String("signal", sig.String()))
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}
