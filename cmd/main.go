package main

import (
	"os"

	"module/postforge/internal/api"
	"module/postforge/internal/config"
	"module/postforge/internal/utilities"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Errorf("invalid configuration: %v", err)
		os.Exit(1)
	}

	container, err := api.NewContainer(cfg)
	if err != nil {
		log.Errorf("failed to create container: %v", err)
		os.Exit(1)
	}

	server := gin.New()
	server.Use(gin.Recovery())
	server.Use(container.Metrics.Middleware)

	server.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"*"},
		AllowHeaders: []string{"*"},
	}))

	server.GET("/", func(ctx *gin.Context) {
		utilities.Response(ctx, 200, true, nil, "server is running fine")
	})

	api.RegisterRoutes(&server.RouterGroup, container)

	log.Infof("listening on %s", cfg.Addr)
	if err := server.Run(cfg.Addr); err != nil {
		log.Errorf("server stopped: %v", err)
		os.Exit(1)
	}
}
