package main

import (
	"context"
	"encoding/hex"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/innocentteam/restaurant/config"
	"github.com/innocentteam/restaurant/internal/auth"
	"github.com/innocentteam/restaurant/internal/clock"
	handler "github.com/innocentteam/restaurant/internal/handler/http"
	"github.com/innocentteam/restaurant/internal/mailer"
	"github.com/innocentteam/restaurant/internal/middleware"
	"github.com/innocentteam/restaurant/internal/repository"
	"github.com/innocentteam/restaurant/internal/repository/postgres"
	"github.com/innocentteam/restaurant/internal/service"
	"github.com/innocentteam/restaurant/internal/worker"
	"go.uber.org/zap"
)

// newLogger creates logger with log level
func newLogger(level string) (*zap.Logger, error) {

	loggerLvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	loggerCfg := zap.NewProductionConfig()
	loggerCfg.Level = loggerLvl

	return loggerCfg.Build()
}

func main() {

	// create new config
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// initialize logger
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync()

	// create context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// initialize database
	db, err := postgres.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("Error initializing database", zap.Error(err))
	}
	defer db.Close()

	// migrate database
	err = db.Migrate()
	if err != nil {
		logger.Fatal("Error migrating database", zap.Error(err))
	}

	tokenKey, err := hex.DecodeString(cfg.TokenKey)
	if err != nil {
		logger.Fatal("Error extracting token key", zap.Error(err))
	}
	token := auth.NewAuthToken(tokenKey)

	smtp, err := mailer.New(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})
	if err != nil {
		logger.Fatal("Error initializing mailer", zap.Error(err))
	}

	clk := clock.NewSystem()

	// dependency injection
	// registration
	adminRepo := repository.NewAdminRepository(db)
	pendingRepo := repository.NewPendingRepository(db)
	registrationService := service.NewRegistrationService(adminRepo, pendingRepo, smtp, clk, logger)
	adminHandler := handler.NewAdminHandler(registrationService, token)

	// product
	productRepo := repository.NewProductRepository(db)
	productService := service.NewProductService(productRepo)
	productHandler := handler.NewProductHandler(productService)

	// order
	orderRepo := repository.NewOrderRepository(db)
	pendingOrderRepo := repository.NewPendingOrderRepository(db)
	orderService := service.NewOrderService(orderRepo, pendingOrderRepo, productRepo, smtp, clk, logger)
	orderHandler := handler.NewOrderHandler(orderService)
	adminOrderHandler := handler.NewAdminOrderHandler(orderService)

	// purge expired pending rows in the background
	reaper := worker.NewReaper(clk, logger, pendingRepo, pendingOrderRepo)
	go reaper.Run(ctx)

	router := chi.NewRouter()

	router.Use(middleware.Logging(logger))

	router.Post("/adminSignUp", adminHandler.SignUp())
	router.Post("/adminVerification", adminHandler.Verification())
	router.Post("/adminSignIn", adminHandler.SignIn())

	router.Post("/placeOrder/{productId}", orderHandler.PlaceOrder())
	router.Post("/otpverify", orderHandler.OTPVerify())
	router.Delete("/cancelOrder/{orderId}", orderHandler.CancelOrder())
	router.Patch("/orderConfirmation/{orderId}", orderHandler.OrderConfirmation())

	router.Get("/products", productHandler.ListProducts())

	// routes that require authentication
	router.Group(func(group chi.Router) {
		group.Use(middleware.Auth(token))
		group.Post("/addProduct", productHandler.AddProduct())
		group.Patch("/updateProduct/{id}", productHandler.UpdateProduct())
		group.Delete("/deleteProduct/{id}", productHandler.DeleteProduct())
		group.Patch("/acceptOrder", adminOrderHandler.AcceptOrder())
		group.Delete("/rejectOrder/{id}", adminOrderHandler.RejectOrder())
	})

	logger.Info("Running server", zap.String("addr", cfg.ServerAddr))

	if err := http.ListenAndServe(cfg.ServerAddr, router); err != nil {
		logger.Fatal("Error starting server", zap.Error(err))
	}
}
