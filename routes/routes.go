package routes

import (
	"auto-repair-site/controllers/auth"
	banadirmainController "auto-repair-site/controllers/banadirmain"
	"auto-repair-site/controllers/contact"
	httpServices "auto-repair-site/httpServices/banadirmain"
	"auto-repair-site/logger"
	"auto-repair-site/middleware"
	banadirMain "auto-repair-site/services/banadirmain"
	"auto-repair-site/storage"
	"auto-repair-site/types"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, store storage.Storage) {
	mainClient := httpServices.NewClient()
	asyncLogger := logger.NewAsyncLogger(db)
	syncService := banadirMain.NewService(store, mainClient)

	contactController := contact.NewContactController(store, asyncLogger)
	integrationController := banadirmainController.NewIntegrationController(syncService, store, asyncLogger)
	authController := auth.NewAuthController(store, asyncLogger)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	app.Use(middleware.RequestLogger(asyncLogger))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
			Success: true,
			Message: "ok",
		})
	})

	/*=============================================================================
	| Contact Form Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/contact", contactController.Store)
	api.Get("/contact", contactController.Index)
	api.Get("/contact/:id", contactController.Show)

	/*=============================================================================
	| Local Admin Auth Routes
	===============================================================================*/
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authController.Register)
	authGroup.Post("/login", authController.Login)

	/*=============================================================================
	| Banadir Main Integration Routes
	===============================================================================*/
	mainGroup := api.Group("/banadir-main")
	mainGroup.Post("/init", integrationController.Init)
	mainGroup.Post("/sync/contacts", integrationController.SyncContacts)
	mainGroup.Post("/sync/appointments", integrationController.SyncAppointments)
	mainGroup.Post("/sync/all", integrationController.SyncAll)

	mainGroup.Get("/appointments", integrationController.ListAppointments)
	mainGroup.Get("/config", integrationController.GetConfig)

	// Writes to integration settings and account linking require an admin
	// token.
	mainGroup.Post("/config", middleware.RequireAuth(), integrationController.UpdateConfig)
	mainGroup.Post("/link", middleware.RequireAuth(), integrationController.LinkAccount)
}
