package config

import (
	"Treasury-System-Backend/internal/api/handlers"
	"Treasury-System-Backend/internal/api/routes"
	"Treasury-System-Backend/internal/middleware"
	"Treasury-System-Backend/internal/utils"
	"Treasury-System-Backend/internal/utils/storage"
	"Treasury-System-Backend/pkg/admin"
	"Treasury-System-Backend/pkg/jwt"
	"Treasury-System-Backend/pkg/ocr"
	"Treasury-System-Backend/pkg/receipt"
	"context"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	ocrEngine := ocr.NewRemoteEngine()

	// Repository
	receiptRepository := receipt.NewReceiptRepository(db)
	adminRepository := admin.NewAdminRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	receiptService := receipt.NewReceiptService(receiptRepository, s3, ocrEngine)
	adminService := admin.NewAdminService(adminRepository, jwtService)

	if err := adminService.EnsureDefaultAdmin(context.Background()); err != nil {
		log.Errorf("error seeding default admin: %v", err)
	}

	// Handler
	receiptHandler := handlers.NewReceiptHandler(receiptService, validator)
	adminHandler := handlers.NewAdminHandler(adminService, validator)

	// routes
	routesConfig := routes.Config{
		App:            app,
		ReceiptHandler: receiptHandler,
		AdminHandler:   adminHandler,
		Middleware:     middlewares,
		JWTService:     jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
