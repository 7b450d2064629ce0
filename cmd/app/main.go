package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	dbadapter "github.com/wiky-avis/Yatube/internal/adapters/database"
	"github.com/wiky-avis/Yatube/internal/adapters/httpapi"
	kafkaadapter "github.com/wiky-avis/Yatube/internal/adapters/kafka"
	redisadapter "github.com/wiky-avis/Yatube/internal/adapters/redis"
	"github.com/wiky-avis/Yatube/internal/config"
	feedapp "github.com/wiky-avis/Yatube/internal/core/feed/service"
	followerapp "github.com/wiky-avis/Yatube/internal/core/follower/service"
	groupapp "github.com/wiky-avis/Yatube/internal/core/group/service"
	messageapp "github.com/wiky-avis/Yatube/internal/core/message/service"
	postapp "github.com/wiky-avis/Yatube/internal/core/post/service"
	profileapp "github.com/wiky-avis/Yatube/internal/core/profile/service"
	userapp "github.com/wiky-avis/Yatube/internal/core/user/service"
	outboxPort "github.com/wiky-avis/Yatube/internal/ports/outbox"
	"github.com/wiky-avis/Yatube/internal/workers"
)

func main() {
	settings := config.Init()
	defer config.Logger.Sync()

	if settings.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	config.InitDB(settings)
	if err := dbadapter.Migrate(config.DB); err != nil {
		config.Logger.Fatal("Error during migrations", zap.Error(err))
	}
	config.Logger.Info("Database migrations completed")

	config.InitRedis(settings)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// outbound adapters
	userRepo := dbadapter.NewUserRepositoryDatabase(config.DB)
	profileRepo := dbadapter.NewProfileRepositoryDatabase(config.DB)
	groupRepo := dbadapter.NewGroupRepositoryDatabase(config.DB)
	postRepo := dbadapter.NewPostRepositoryDatabase(config.DB)
	followerRepo := dbadapter.NewFollowerRepositoryDatabase(config.DB)
	topicRepo := dbadapter.NewTopicRepositoryDatabase(config.DB)
	outboxRepo := dbadapter.NewOutboxRepositoryDatabase(config.DB)
	feedCache := redisadapter.NewFeedCacheRedis(config.RedisClient)

	// use cases
	userSvc := userapp.NewUserService(userRepo, []byte(settings.JWTSecret))
	profileSvc := profileapp.NewProfileService(profileRepo)
	profileSvc.Register(userSvc)
	groupSvc := groupapp.NewGroupService(groupRepo)
	postSvc := postapp.NewPostService(postRepo, groupRepo, followerRepo)
	followerSvc := followerapp.NewFollowerService(followerRepo)
	followerSvc.Strict = settings.UnfollowStrict
	feedSvc := feedapp.NewFeedService(postRepo, groupRepo, userRepo, followerRepo, profileRepo, feedCache,
		feedapp.CachePolicy{TTL: settings.FeedCacheTTL})
	feedSvc.PageSize = settings.FeedPageSize
	messageSvc := messageapp.NewMessageService(topicRepo, userRepo)

	r := httpapi.SetupRoutes(httpapi.UseCases{
		Users:    userSvc,
		Profiles: profileSvc,
		Posts:    postSvc,
		Groups:   groupSvc,
		Follows:  followerSvc,
		Feeds:    feedSvc,
		Messages: messageSvc,
	}, []byte(settings.JWTSecret))

	var publisher outboxPort.Publisher = workers.LogPublisher(config.Logger)
	if len(settings.KafkaBrokers) > 0 {
		kp := kafkaadapter.NewPublisher(settings.KafkaBrokers, settings.KafkaTopic)
		defer kp.Close()
		publisher = kp
		config.Logger.Info("Publishing outbox events to Kafka",
			zap.Strings("brokers", settings.KafkaBrokers), zap.String("topic", settings.KafkaTopic))
	}
	outboxWorker := workers.NewOutboxWorker(outboxRepo, publisher, settings.BatchSize, settings.OutboxInterval, config.Logger)
	go outboxWorker.Run(ctx)

	srv := &http.Server{
		Addr:              ":" + settings.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		config.Logger.Info("App is running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	config.Logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		config.Logger.Error("Server shutdown failed", zap.Error(err))
	}
	closeResources(config.Logger)
}

// closeResources closes the Redis and database connections.
func closeResources(logger *zap.Logger) {
	if err := config.RedisClient.Close(); err != nil {
		logger.Error("Error closing Redis connection", zap.Error(err))
	}

	sqlDB, err := config.DB.DB()
	if err != nil {
		logger.Error("Error getting raw DB", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing database connection", zap.Error(err))
	}
}
