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

	"golang.org/x/sync/errgroup"

	"tubelens/domain/repository"
	"tubelens/infrastructure/cache"
	geminiclient "tubelens/infrastructure/clients/gemini"
	paymentclient "tubelens/infrastructure/clients/payment"
	youtubeclient "tubelens/infrastructure/clients/youtube"
	"tubelens/infrastructure/configuration"
	"tubelens/infrastructure/logger"
	"tubelens/infrastructure/persistence"
	"tubelens/infrastructure/pubsub"
	"tubelens/infrastructure/realtime"
	httpHandler "tubelens/interfaces/http"
	"tubelens/server"
	"tubelens/usecase"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// Load env from files (non-destructive; OS env still has precedence)
	configuration.LoadEnvFromFile("config.env", ".env")
	app := configuration.C.App

	// Primary relational database (users + subscriptions)
	mysqlDb, err := persistence.NewMySQLDB()
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Cannot connect to the user database")
		os.Exit(1)
	}
	if err := persistence.EnsureUserSchema(mysqlDb); err != nil {
		logger.GetLogger().WithField("error", err).Error("failed migrating user schema")
	}
	userRepository := persistence.NewUserRepository(mysqlDb)
	userUsecase := usecase.NewUserUsecase(userRepository)

	// PostgreSQL video cache (optional; features degrade to direct API calls)
	psqlDb, err := persistence.NewPostgreSQLDB()
	if err != nil || psqlDb.Ping() != nil {
		logger.GetLogger().WithField("error", err).Warn("PostgreSQL not available - continuing without video cache")
		psqlDb = nil
	} else if err := persistence.EnsureVideoCacheSchema(psqlDb); err != nil {
		logger.GetLogger().WithField("error", err).Error("failed ensuring video cache schema")
	}

	// MongoDB analysis history (optional)
	mongoDb, err := persistence.NewMongoDb(
		configuration.C.Database.Mongo.Host,
		configuration.C.Database.Mongo.Port,
		configuration.C.Database.Mongo.User,
		configuration.C.Database.Mongo.Password,
		configuration.C.Database.Mongo.Name,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("MongoDB not available - continuing without history")
		mongoDb = nil
	} else if err := mongoDb.Ping(ctx, nil); err != nil {
		logger.GetLogger().WithField("error", err).Warn("MongoDB ping failed - continuing without history")
		mongoDb = nil
	}
	historyRepository := persistence.NewHistoryRepository(mongoDb)

	// Pub/Sub analysis events (optional)
	pubSubClient, err := pubsub.NewPubSub(ctx, configuration.C.Pubsub.ProjectID)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Pub/Sub not available - continuing without events")
		pubSubClient = nil
	}
	events := pubsub.NewAnalysisPubSub(pubSubClient, configuration.C.Pubsub.Topic)

	// Key-value store for coupons and plans: Redis when reachable, otherwise
	// in-process.
	var kvStore repository.IKVStore
	redisClient, redisErr := cache.NewCache(
		ctx,
		fmt.Sprintf("%s:%s", configuration.C.RedisClient.Host, configuration.C.RedisClient.Port),
		configuration.C.RedisClient.Username,
		configuration.C.RedisClient.Password,
	)
	if redisErr != nil {
		logger.GetLogger().WithField("error", redisErr).Warn("Redis not available - using in-memory key-value store")
		kvStore = cache.NewMemoryKV()
	} else {
		kvStore = cache.NewRedisKV(redisClient)
	}

	// Commerce wiring
	couponRepository := persistence.NewCouponRepository(kvStore)
	paymentHost := paymentclient.NewPaymentHost(configuration.C.Payment)
	commerceUsecase := usecase.NewCommerceUseCase(couponRepository, userRepository, paymentHost)
	if err := commerceUsecase.SeedPlans(ctx); err != nil {
		logger.GetLogger().WithField("error", err).Warn("failed seeding subscription plans")
	}
	commerceHandler := httpHandler.NewCommerceHandler(commerceUsecase)

	// YouTube client: required for every analysis feature.
	youtubeConfig, err := configuration.GetYouTubeConfig()
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("YouTube configuration missing")
		os.Exit(1)
	}
	youtubeClient, err := youtubeclient.NewYouTubeClient(ctx, youtubeConfig)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to initialize YouTube client")
		os.Exit(1)
	}

	videoCache := persistence.NewVideoCacheRepository(psqlDb)
	videoUsecase := usecase.NewVideoUseCaseWithCache(youtubeClient, videoCache)
	progressHub := realtime.NewProgressHub()
	videoHandler := httpHandler.NewVideoHandler(videoUsecase, progressHub)

	// Gemini client: analysis handlers are registered only when configured.
	var analyzeHandler httpHandler.IAnalyzeHandler
	var battleHandler httpHandler.IBattleHandler
	geminiConfig, err := configuration.GetGeminiConfig()
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Gemini not configured - AI analysis features disabled")
	} else {
		genAI, err := geminiclient.NewGeminiClient(ctx, geminiConfig)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("Failed to initialize Gemini client - AI analysis features disabled")
		} else {
			analyzeUsecase := usecase.NewAnalyzeUseCase(youtubeClient, genAI, videoUsecase, historyRepository, events)
			analyzeHandler = httpHandler.NewAnalyzeHandler(analyzeUsecase)
			battleUsecase := usecase.NewBattleUseCase(youtubeClient, genAI, historyRepository, events)
			battleHandler = httpHandler.NewBattleHandler(battleUsecase)
		}
	}

	userHandler := httpHandler.NewUserHandler(userUsecase)
	router := server.InitiateRouter(userHandler, videoHandler, analyzeHandler, battleHandler, commerceHandler, userRepository)

	port := app.Port
	logger.GetLogger().WithField("port", port).Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}
