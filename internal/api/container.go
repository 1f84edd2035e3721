package api

import (
	"fmt"

	"module/postforge/internal/auth"
	"module/postforge/internal/clients/cohere"
	"module/postforge/internal/config"
	"module/postforge/internal/db"
	"module/postforge/internal/metrics"
	"module/postforge/internal/middleware"
	"module/postforge/internal/repo"
	"module/postforge/internal/services/posts"
	"module/postforge/internal/services/users"
)

// Container holds the explicitly constructed service graph. Every client
// handle is injected here once at startup; nothing lives at package scope.
type Container struct {
	MiddlewareService *middleware.MiddlewareService
	UserService       *users.UserService
	PostService       *posts.PostService
	Metrics           *metrics.Metrics
}

func NewContainer(cfg *config.Config) (*Container, error) {
	database, err := db.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting database: %w", err)
	}
	if err := db.MigrateDB(database); err != nil {
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	cohereClient, err := cohere.NewCohereClient(cfg.CohereAPIKey, cfg.CohereBaseURL, cfg.CohereModel)
	if err != nil {
		return nil, fmt.Errorf("creating cohere client: %w", err)
	}

	userRepo := repo.NewUserRepo(database)
	sessionRepo := repo.NewSessionRepo(database)
	postRepo := repo.NewPostRepo(database)

	notifier := auth.NewNotifier()
	m := metrics.InitMetrics()

	middlewareService := middleware.NewMiddlewareService(sessionRepo, cfg.JWTSecret)
	userService := users.NewUserService(userRepo, sessionRepo, notifier, cfg.JWTSecret)
	postService := posts.NewPostService(postRepo, cohereClient, m)

	return &Container{
		MiddlewareService: middlewareService,
		UserService:       userService,
		PostService:       postService,
		Metrics:           m,
	}, nil
}
