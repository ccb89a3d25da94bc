package api

import (
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/barbaria/salon-booking/internal/api/handler"
	"github.com/barbaria/salon-booking/internal/api/metrics"
	"github.com/barbaria/salon-booking/internal/api/middleware"
	"github.com/barbaria/salon-booking/internal/core/domain"
	"github.com/barbaria/salon-booking/internal/core/ports"
	"github.com/barbaria/salon-booking/internal/core/security"
	"github.com/barbaria/salon-booking/internal/core/service"
	"github.com/barbaria/salon-booking/internal/infrastructure/config"
	mongorepo "github.com/barbaria/salon-booking/internal/infrastructure/db/mongo"
	redisstore "github.com/barbaria/salon-booking/internal/infrastructure/db/redis"
	"github.com/barbaria/salon-booking/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb is nil unless the token deny-list is enabled. logger.Init must have
// been called.
func NewRouter(cfg config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.ContextTimeout(cfg.RequestTimeout))
	e.Use(echoprometheus.NewMiddleware("salon"))

	// --- Dependencies ---
	tokens, err := security.NewTokenManager(security.TokenConfig{
		Secret: cfg.Auth.JWTSecret,
		TTL:    cfg.Auth.TokenTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("token manager: %w", err)
	}

	// A typed nil would defeat the nil checks in Auth and Logout.
	var revoker ports.TokenRevoker
	if cfg.Auth.DenyList && rdb != nil {
		revoker = redisstore.NewTokenDenyList(rdb)
	}

	userRepo := mongorepo.NewUserRepository(db)
	appointmentRepo := mongorepo.NewAppointmentRepository(db)
	paymentRepo := mongorepo.NewPaymentRepository(db)
	catalog := mongorepo.NewServiceCatalog(db)

	authService := service.NewAuthService(userRepo, security.NewPasswordHasher(cfg.Auth.BcryptCost), tokens, revoker, logger.Component("auth"))
	userService := service.NewUserService(userRepo, logger.Component("users"))
	appointmentService := service.NewAppointmentService(appointmentRepo, userRepo, catalog, cfg.StrictTransitions, logger.Component("appointments"))
	paymentService := service.NewPaymentService(paymentRepo, appointmentRepo, func(string, string, error) {
		metrics.PaymentsBackfillFailuresTotal.Inc()
	}, logger.Component("payments"))

	authHandler := handler.NewAuthHandler(authService, cfg.SecureCookies())
	userHandler := handler.NewUserHandler(userService)
	adminHandler := handler.NewAdminHandler(userService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	authenticated := middleware.Auth(tokens, revoker, log)
	staffOnly := middleware.RequireRole(domain.RoleStaff)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	api := e.Group("/api")

	// --- Auth routes ---
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)

	// --- User routes ---
	user := api.Group("/user")
	user.GET("/staff", userHandler.ListStaff)
	user.GET("/profile", userHandler.Profile, authenticated)
	user.PUT("/profile", userHandler.UpdateProfile, authenticated)

	// --- Admin routes ---
	admin := api.Group("/admin", authenticated, adminOnly)
	admin.GET("", adminHandler.ListUsers)
	admin.GET("/user", adminHandler.GetUser)
	admin.PUT("/update-role", adminHandler.UpdateRole)
	admin.DELETE("/delete", adminHandler.DeleteUser)

	// --- Appointment routes ---
	appointments := api.Group("/appointments")
	appointments.POST("", appointmentHandler.Create)
	appointments.GET("/appointment", appointmentHandler.Get, authenticated)
	appointments.GET("", appointmentHandler.List, authenticated, staffOnly)
	appointments.PUT("/update", appointmentHandler.Update, authenticated, staffOnly)
	appointments.PUT("/status", appointmentHandler.UpdateStatus, authenticated, staffOnly)
	appointments.DELETE("/delete", appointmentHandler.Delete, authenticated, staffOnly)

	// --- Payment routes ---
	payments := api.Group("/payments", authenticated, adminOnly)
	payments.GET("", paymentHandler.List)
	payments.GET("/payment", paymentHandler.Get)
	payments.POST("", paymentHandler.Create)
	payments.PUT("/update", paymentHandler.Update)
	payments.DELETE("/delete", paymentHandler.Delete)
	payments.GET("/monthly", paymentHandler.Monthly)

	// --- Health probes and metrics (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}
