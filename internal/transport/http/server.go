package http

import (
	"context"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yjym33/travelLog-Backend/internal/config"
	"github.com/yjym33/travelLog-Backend/internal/database"
	"github.com/yjym33/travelLog-Backend/internal/handler"
	"github.com/yjym33/travelLog-Backend/internal/model"
	"github.com/yjym33/travelLog-Backend/internal/queue"
	appredis "github.com/yjym33/travelLog-Backend/internal/redis"
	"github.com/yjym33/travelLog-Backend/internal/repository"
	"github.com/yjym33/travelLog-Backend/internal/service"
	"github.com/yjym33/travelLog-Backend/internal/worker"
)

// notifCreatorAdapter lets the worker write notifications through the
// repository without depending on it directly.
type notifCreatorAdapter struct {
	repo repository.NotificationRepository
}

func (a *notifCreatorAdapter) CreateNotification(ctx context.Context, userID, actorID int64, notifType string, travelLogID, commentID *int64) error {
	return a.repo.Create(ctx, &model.Notification{
		UserID:      userID,
		ActorID:     actorID,
		Type:        notifType,
		TravelLogID: travelLogID,
		CommentID:   commentID,
	})
}

// Run wires the whole application together and serves until SIGINT/SIGTERM.
func Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	redisClient, err := appredis.NewClient(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer redisClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := redisClient.Ping(ctx); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	friendshipRepo := repository.NewFriendshipRepository(db)
	travelLogRepo := repository.NewTravelLogRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	shareRepo := repository.NewShareRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	txManager := database.NewTxManager(db)
	publisher := queue.NewPublisher(redisClient.Client)

	// Services
	authService := service.NewAuthService(userRepo, cfg)
	friendshipService := service.NewFriendshipService(friendshipRepo, userRepo, publisher, txManager)
	travelLogService := service.NewTravelLogService(travelLogRepo, friendshipRepo, likeRepo, userRepo)
	socialService := service.NewSocialTravelService(travelLogRepo, friendshipRepo, likeRepo, shareRepo, txManager)
	likeService := service.NewLikeService(likeRepo, travelLogRepo, commentRepo, friendshipRepo, publisher, txManager)
	commentService := service.NewCommentService(commentRepo, travelLogRepo, friendshipRepo, userRepo, publisher, txManager)
	notificationService := service.NewNotificationService(notificationRepo)

	// Notification worker pool
	consumer := queue.NewConsumer(redisClient.Client)
	workerHandler := worker.NewHandler(&notifCreatorAdapter{repo: notificationRepo})
	manager := worker.NewManager(consumer, workerHandler, worker.ManagerConfig{
		WorkerCount: cfg.WorkerCount,
	})
	if err := manager.Start(ctx); err != nil {
		return fmt.Errorf("failed to start workers: %w", err)
	}
	defer manager.Stop()

	router := NewRouter(RouterConfig{
		AuthHandler:         handler.NewAuthHandler(authService),
		FriendshipHandler:   handler.NewFriendshipHandler(friendshipService),
		TravelLogHandler:    handler.NewTravelLogHandler(travelLogService, socialService),
		LikeHandler:         handler.NewLikeHandler(likeService),
		CommentHandler:      handler.NewCommentHandler(commentService),
		NotificationHandler: handler.NewNotificationHandler(notificationService),
		JWTSecret:           cfg.JWTSecret,
	})

	server := &stdhttp.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on :%s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigCh:
		log.Printf("Received signal %v, shutting down", sig)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
