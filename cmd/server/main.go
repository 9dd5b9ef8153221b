package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "github.com/blessing250/Membership/docs" // swagger docs
	"github.com/blessing250/Membership/internal/auth"
	"github.com/blessing250/Membership/internal/cache"
	"github.com/blessing250/Membership/internal/config"
	"github.com/blessing250/Membership/internal/db"
	"github.com/blessing250/Membership/internal/handler"
	"github.com/blessing250/Membership/internal/model"
	"github.com/blessing250/Membership/internal/repository"
	"github.com/blessing250/Membership/internal/router"
	"github.com/blessing250/Membership/internal/service"
)

// @title Membership Management API
// @version 1.0
// @description Membership self-service and admin console backend: registration, membership payments, QR claim issuance and scan validation with JWT authentication.
// @host localhost:8000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.Member{},
		&model.Payment{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	memberRepo := repository.NewMemberRepository(gormDB)
	paymentRepo := repository.NewPaymentRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(memberRepo, jwtService, tokenStore)
	memberService := service.NewMemberService(memberRepo, paymentRepo, cacheClient)
	scanService := service.NewScanService(memberService)
	paymentService := service.NewPaymentService(memberService, paymentRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	memberHandler := handler.NewMemberHandler(memberService)
	scanHandler := handler.NewScanHandler(scanService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	qrHandler := handler.NewQRHandler(authService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		memberHandler,
		scanHandler,
		paymentHandler,
		qrHandler,
	)

	swaggerHost := cfg.SwaggerHost
	if swaggerHost == "" {
		swaggerHost = "http://localhost:" + cfg.ServerPort
	}
	log.Printf("swagger ui: %s/swagger/index.html", swaggerHost)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
