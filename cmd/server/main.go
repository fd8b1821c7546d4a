package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/adapter/geocoding"
	grpcAdapter "github.com/xguyNayan/Shelterly-real-code-sub000/internal/adapter/grpc"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/adapter/http/handler"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/adapter/http/middleware"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/adapter/http/router"
	natsAdapter "github.com/xguyNayan/Shelterly-real-code-sub000/internal/adapter/messaging/nats"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/adapter/repository/cache"
	mongoRepo "github.com/xguyNayan/Shelterly-real-code-sub000/internal/adapter/repository/mongodb"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/adapter/storage/s3"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/config"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/domain"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/draft"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/usecase"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/mailer"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/platform/logger"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/platform/metrics"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/platform/tracer"
)

const serviceName = "shelterly-listing-service"

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("INFO: .env file not found or error loading: %v. Relying on OS environment variables.\n", err)
	}

	appLogger := logger.NewLogger()
	defer func() { _ = appLogger.Sync() }()

	if err := run(appLogger); err != nil {
		appLogger.Fatal("Service terminated", zap.Error(err))
	}
	appLogger.Info("Service stopped")
}

func run(appLogger *logger.Logger) error {
	cfg, err := config.LoadConfig(os.Getenv("SHELTERLY_CONFIG_PATH"))
	if err != nil {
		return err
	}
	if cfg.InsecureJWTSecret() {
		appLogger.Warn("Using the built-in development JWT secret; set SHELTERLY_AUTH_JWT_SECRET")
	}
	appLogger.Info("Configuration loaded",
		zap.String("http_port", cfg.HTTP.Port),
		zap.String("grpc_port", cfg.GRPC.Port),
		zap.String("mongo_database", cfg.Mongo.Database),
		zap.String("metrics_port", cfg.Metrics.Port),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp := tracer.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.OTLPEndpoint, appLogger)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}()

	metricsManager := metrics.NewMetricsManager("shelterly")

	// MongoDB
	connectCtx, cancelConnect := context.WithTimeout(ctx, cfg.Mongo.ConnectTimeout)
	defer cancelConnect()
	mongoClient, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetMaxPoolSize(cfg.Mongo.MaxPoolSize))
	if err != nil {
		return fmt.Errorf("connect to MongoDB: %w", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			appLogger.Error("Error disconnecting from MongoDB", zap.Error(err))
		}
	}()
	if err := mongoClient.Ping(connectCtx, nil); err != nil {
		return fmt.Errorf("ping MongoDB: %w", err)
	}
	appLogger.Info("Connected to MongoDB", zap.String("database", cfg.Mongo.Database))
	db := mongoClient.Database(cfg.Mongo.Database)

	listingRepo := mongoRepo.NewListingRepository(db, cfg.Mongo.ListingsCollection, appLogger)
	callbackRepo := mongoRepo.NewCallbackRepository(db, appLogger)

	// Redis backs the listing cache and the draft slot. Without it the
	// service runs uncached with a process-local draft.
	var (
		listingCache domain.ListingCache
		draftStore   draft.Store = draft.NewMemoryStore()
	)
	redisClient, err := cache.NewClient(ctx, cfg.Redis, appLogger)
	if err != nil {
		appLogger.Warn("Redis unavailable, using in-memory draft store without listing cache", zap.Error(err))
	} else {
		defer redisClient.Close()
		listingCache = cache.NewListingCache(redisClient, cfg.Redis.CacheTTL)
		draftStore = cache.NewDraftStore(redisClient)
	}

	storage, err := s3.NewS3Storage(ctx, cfg.MinIO, appLogger)
	if err != nil {
		return fmt.Errorf("initialize media storage: %w", err)
	}

	var publisher domain.EventPublisher
	natsPublisher, err := natsAdapter.NewPublisher(cfg.NATS.URL, cfg.NATS.ConnectTimeout, appLogger, serviceName)
	if err != nil {
		appLogger.Warn("NATS unavailable, domain events are disabled", zap.Error(err))
	} else {
		defer natsPublisher.Close()
		publisher = natsPublisher
	}

	geocoder := geocoding.NewClient(cfg.Geocoder, appLogger)
	notifier := mailer.New(cfg.SMTP, appLogger)

	// Usecases
	drafts := draft.NewService(draftStore, appLogger, metricsManager.DraftSaveErrorsTotal)
	listings := usecase.NewListingUsecase(listingRepo, listingCache, storage, publisher, metricsManager, appLogger)
	h := handler.New(handler.Deps{
		Listings:       listings,
		Media:          usecase.NewMediaUsecase(storage, listings, appLogger),
		Bulk:           usecase.NewBulkUsecase(listings, cfg.Bulk.PreviewSize, cfg.Bulk.MaxConcurrency, appLogger),
		Form:           usecase.NewFormService(drafts, geocoder, metricsManager, appLogger),
		Drafts:         drafts,
		Callbacks:      usecase.NewCallbackUsecase(callbackRepo, listingRepo, publisher, notifier, metricsManager, appLogger),
		MaxUploadBytes: cfg.HTTP.MaxUploadBytes,
	}, appLogger)

	authorize, err := middleware.NewRBAC(cfg.Auth.ModelPath, cfg.Auth.PolicyPath, appLogger)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr: ":" + cfg.HTTP.Port,
		Handler: router.New(h, router.Options{
			JWTSecret: cfg.Auth.JWTSecret,
			Authorize: authorize,
			Metrics:   metricsManager,
		}, appLogger),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}
	grpcServer := grpcAdapter.NewServer(serviceName, cfg.GRPC.Port, appLogger)
	metricsServer := metrics.NewMetricsServer(cfg.Metrics.Port, appLogger, metricsManager)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLogger.Info("Starting HTTP server", zap.String("address", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server: %w", err)
		}
		return nil
	})
	g.Go(grpcServer.Start)
	if metricsServer != nil {
		g.Go(func() error {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down servers")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()

		var errs []error
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("HTTP shutdown: %w", err))
		}
		if err := grpcServer.Stop(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("gRPC shutdown: %w", err))
		}
		if metricsServer != nil {
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("metrics shutdown: %w", err))
			}
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}
