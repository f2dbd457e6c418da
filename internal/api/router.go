package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/KiwiKetil/room-scheduler-api/internal/api/handler"
	"github.com/KiwiKetil/room-scheduler-api/internal/api/middleware"
	"github.com/KiwiKetil/room-scheduler-api/internal/core/authz"
	"github.com/KiwiKetil/room-scheduler-api/internal/core/service"
	mongorepo "github.com/KiwiKetil/room-scheduler-api/internal/infrastructure/db/mongo"
	redisguard "github.com/KiwiKetil/room-scheduler-api/internal/infrastructure/db/redis"
)

// NewRouter builds the Echo instance with every route registered behind its
// access policy.
func NewRouter(db *mongo.Database, rdb *redis.Client, tokenCfg service.TokenConfig, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("roomscheduler"))

	// --- Dependencies ---
	userRepo := mongorepo.NewUserRepository(db)
	roomRepo := mongorepo.NewRoomRepository(db)
	reservationRepo := mongorepo.NewReservationRepository(db)
	loginGuard := redisguard.NewLoginGuard(rdb)

	tokenService := service.NewTokenService(tokenCfg)
	authService := service.NewAuthService(userRepo, tokenService, loginGuard, log)
	userService := service.NewUserService(userRepo, log)
	roomService := service.NewRoomService(roomRepo, log)
	reservationService := service.NewReservationService(reservationRepo, roomRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roomHandler := handler.NewRoomHandler(roomService)
	reservationHandler := handler.NewReservationHandler(reservationService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	auth := middleware.Auth(tokenService)

	// --- Probes and metrics (outside the versioned prefix) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	v1 := e.Group("/api/v1")

	// --- Public routes ---
	v1.POST("/login", authHandler.Login)
	v1.POST("/clients/register", userHandler.RegisterClient)

	// --- User routes ---
	v1.POST("/employees/register", userHandler.RegisterEmployee, auth, middleware.Require(authz.AdminFreshPassword))
	v1.POST("/users/update-password", authHandler.UpdatePassword, auth) // ownership checked in the handler
	v1.GET("/users", userHandler.List, auth, middleware.Require(authz.AdminFreshPassword))
	v1.GET("/users/:id", userHandler.Get, auth, middleware.Require(authz.SelfOrAdminByID))
	v1.PUT("/users/:id", userHandler.Update, auth, middleware.Require(authz.SelfOrAdminByID))
	v1.DELETE("/users/:id", userHandler.Delete, auth, middleware.Require(authz.AdminFreshPassword))
	v1.GET("/users/:id/reservations", reservationHandler.ListByUser, auth, middleware.Require(authz.SelfOrAdminByID))

	// --- Room routes ---
	v1.GET("/rooms", roomHandler.List, auth)
	v1.GET("/rooms/:id", roomHandler.Get, auth)
	v1.POST("/rooms", roomHandler.Create, auth, middleware.Require(authz.AdminOnly))
	v1.PUT("/rooms/:id", roomHandler.Update, auth, middleware.Require(authz.AdminOnly))
	v1.DELETE("/rooms/:id", roomHandler.Delete, auth, middleware.Require(authz.AdminOnly))

	// --- Reservation routes (per-booking ownership checked in the handlers) ---
	v1.GET("/reservations", reservationHandler.List, auth, middleware.Require(authz.AdminOnly))
	v1.POST("/reservations", reservationHandler.Create, auth)
	v1.GET("/reservations/:id", reservationHandler.Get, auth)
	v1.DELETE("/reservations/:id", reservationHandler.Delete, auth)

	// --- Static admin console ---
	e.Static("/admin", "web/admin")

	return e
}
