package api

import (
	"module/postforge/internal/metrics"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, container *Container) {
	middlewareService := container.MiddlewareService

	userRoutes := router.Group("/users")
	userRoutes.POST("/register", container.UserService.RegisterUser)
	userRoutes.POST("/login", container.UserService.LoginUser)
	userRoutes.POST("/magic-link", container.UserService.SendMagicLink)
	userRoutes.POST("/magic-link/verify", container.UserService.VerifyMagicLink)
	userRoutes.GET("/me", middlewareService.AuthMiddleware, container.UserService.GetCurrentUser)
	userRoutes.POST("/logout", middlewareService.AuthMiddleware, container.UserService.Logout)
	userRoutes.GET("/events", middlewareService.AuthMiddleware, container.UserService.AuthEvents)

	apiRoutes := router.Group("/api")
	apiRoutes.POST("/check-email", container.UserService.CheckEmail)
	apiRoutes.POST("/generate-post", middlewareService.AuthMiddleware, container.PostService.GeneratePost)
	apiRoutes.GET("/posts", middlewareService.AuthMiddleware, container.PostService.GetPosts)
	apiRoutes.POST("/posts", middlewareService.AuthMiddleware, container.PostService.CreatePost)
	apiRoutes.PUT("/posts", middlewareService.AuthMiddleware, container.PostService.UpdatePost)
	apiRoutes.DELETE("/posts", middlewareService.AuthMiddleware, container.PostService.DeletePost)

	router.GET("/metrics", metrics.Handler())
}
