package routes

import (
	"Treasury-System-Backend/internal/api/handlers"
	"Treasury-System-Backend/internal/middleware"
	"Treasury-System-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App            *fiber.App
	ReceiptHandler handlers.ReceiptHandler
	AdminHandler   handlers.AdminHandler
	Middleware     middleware.Middleware
	JWTService     jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Receipts()
	c.Admins()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Treasury System API", "status": "running"})
	})
	c.App.Post("/api/login", c.AdminHandler.Login)
}

func (c *Config) Receipts() {
	// Public: end users submit receipts and browsers load images without
	// an Authorization header.
	c.App.Post("/api/receipts/upload", c.ReceiptHandler.UploadReceipt)
	c.App.Get("/api/receipts/:id/image", c.ReceiptHandler.GetReceiptImage)

	receipts := c.App.Group("/api/receipts", c.Middleware.AuthMiddleware(c.JWTService))
	receipts.Get("", c.ReceiptHandler.GetReceipts)
	receipts.Get("/stats", c.ReceiptHandler.GetReceiptStats)
	receipts.Get("/export", c.ReceiptHandler.ExportReceipts)
	receipts.Post("/bulk-delete", c.ReceiptHandler.BulkDeleteReceipts)
	receipts.Put("/:id", c.ReceiptHandler.UpdateReceipt)
	receipts.Delete("/:id", c.ReceiptHandler.DeleteReceipt)
}

func (c *Config) Admins() {
	admins := c.App.Group(
		"/api/admins",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.SuperuserMiddleware(),
	)
	admins.Get("", c.AdminHandler.GetAdmins)
	admins.Post("", c.AdminHandler.CreateAdmin)
	admins.Delete("/:id", c.AdminHandler.DeleteAdmin)
}
