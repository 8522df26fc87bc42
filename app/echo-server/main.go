package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sedulurTani/app/echo-server/router"
	"sedulurTani/business/address"
	"sedulurTani/business/cart"
	"sedulurTani/business/checkout"
	"sedulurTani/business/product"
	userService "sedulurTani/business/user"
	"sedulurTani/internal/middleware"
	"sedulurTani/internal/repository/cloudinary"
	"sedulurTani/internal/repository/notification"
	psqlRepo "sedulurTani/internal/repository/postgres"
	redisRepo "sedulurTani/internal/repository/redis"
	"sedulurTani/internal/rest"
	"sedulurTani/pkg/config"
	"sedulurTani/pkg/database"
	redisdb "sedulurTani/pkg/database/redis"
	"sedulurTani/pkg/logger"
	"sedulurTani/pkg/metrics"
	"sedulurTani/pkg/utils"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting SedulurTani", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err)
	}
	defer redisdb.CloseRedisClient(redisClient)

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	// Init image store from cloudinary
	imageStore := cloudinary.NewImageRepository(
		cloudinary.CloudinaryConfig{
			CloudinaryBaseURL:   cfg.Cloudinary.CloudinaryBaseUrl,
			CloudinaryCloudName: cfg.Cloudinary.CloudinaryCloudName,
			CloudinaryAPIKey:    cfg.Cloudinary.CloudinaryAPIKey,
			CloudinaryAPISecret: cfg.Cloudinary.CloudinaryAPISecret,
			CloudinaryFolder:    cfg.Cloudinary.CloudinaryFolder,
		},
	)

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	addressRepo := psqlRepo.NewAddressRepository(db)
	productRepo := psqlRepo.NewProductRepository(db)
	cartRepo := psqlRepo.NewCartRepository(db)
	checkoutRepo := psqlRepo.NewCheckoutRepository(db)
	tokenRepo := redisRepo.NewTokenRepository(redisClient)

	// Init service
	usrService := userService.NewUserService(userRepo, validate, mailjetEmail, tokenRepo, cfg.App.AppEmailVerificationKey, cfg.App.AppDeploymentUrl)
	addressService := address.NewAddressService(addressRepo, validate)
	productService := product.NewProductService(productRepo, imageStore)
	cartService := cart.NewCartService(cartRepo, productRepo)
	checkoutService := checkout.NewCheckoutService(checkoutRepo, validate)

	// Init handler
	userHandler := rest.NewUserHandler(usrService)
	addressHandler := rest.NewAddressHandler(addressService)
	productHandler := rest.NewProductHandler(productService)
	cartHandler := rest.NewCartHandler(cartService)
	checkoutHandler := rest.NewCheckoutHandler(checkoutService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Auth middleware
	authRequired := middleware.AuthMiddlewareWithRedis(usrService)
	sellerOnly := middleware.SellerOnly()
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired, adminOnly)
	router.SetupAddressRoutes(api, addressHandler, authRequired)
	router.SetupProductRoutes(api, productHandler, authRequired, sellerOnly)
	router.SetupCartRoutes(api, cartHandler, authRequired)
	router.SetupCheckoutRoutes(api, checkoutHandler, authRequired)
	router.SetupMetricsRoute(e)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
