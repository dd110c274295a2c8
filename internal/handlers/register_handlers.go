package handlers

import (
	"net/http"

	"github.com/SscSPs/user_account_service/cmd/docs"
	portssvc "github.com/SscSPs/user_account_service/internal/core/ports/services"
	"github.com/SscSPs/user_account_service/internal/dto"
	"github.com/SscSPs/user_account_service/internal/middleware"
	"github.com/SscSPs/user_account_service/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	tracker middleware.EventTracker,
) error {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, gin.H{"status": "ok"}, "OK"))
	})

	v1 := r.Group("/api/v1")
	if err := registerUserRoutes(v1, cfg, services, tracker); err != nil {
		return err
	}

	setupSwaggerRoutes(r, cfg)
	return nil
}

// registerUserRoutes wires the account and session endpoints under /users.
func registerUserRoutes(rg *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer, tracker middleware.EventTracker) error {
	h := &authHandler{
		userService: services.User,
		authService: services.Auth,
		cookies:     tokenCookies{opts: cfg.Cookie},
		tracker:     tracker,
		uploadDir:   cfg.UploadTempDir,
	}

	authLimiter, err := middleware.NewAuthRateLimiter(cfg.AuthRateLimit)
	if err != nil {
		return err
	}
	limit := middleware.RateLimit(authLimiter)

	users := rg.Group("/users")
	{
		users.POST("/register", h.register)
		users.POST("/login", limit, h.login)
		users.POST("/refresh-token", limit, h.refreshToken)
	}

	secured := users.Group("", middleware.AuthMiddleware(cfg.AccessTokenSecret, cfg.JWTIssuer), middleware.PosthogMiddleware(tracker))
	{
		secured.POST("/logout", h.logout)
		secured.GET("/current", h.currentUser)
	}
	return nil
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
