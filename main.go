package main

import (
	"os"
	"time"

	"auto-repair-site/database"
	"auto-repair-site/database/seeders"
	"auto-repair-site/logger"
	"auto-repair-site/routes"
	"auto-repair-site/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	app := fiber.New(fiber.Config{
		ReadBufferSize:  32768,
		WriteBufferSize: 32768,
		ReadTimeout:     time.Second * 30,
		WriteTimeout:    time.Second * 30,
		BodyLimit:       10 * 1024 * 1024,
	})
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	// Without database configuration the site runs on the in-memory store;
	// submissions then only live as long as the process.
	var db *gorm.DB
	var store storage.Storage
	if os.Getenv("DB_HOST") == "" {
		logger.Warning("DB_HOST not set, using in-memory storage")
		store = storage.NewMemStorage()
	} else {
		var err error
		db, err = database.InitDB()
		if err != nil {
			logger.Error("Failed to connect to the database", err)
			return
		}
		seeders.SeedSystemConfig(db)
		store = storage.NewDatabaseStorage(db)
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     os.Getenv("FRONTEND_URL"),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	routes.SetupRoutes(app, db, store)

	appHost := os.Getenv("APP_HOST")
	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		appPort = "5000"
	}
	logger.Success("Server is running on ip: " + appHost + " port: " + appPort)
	if err := app.Listen(appHost + ":" + appPort); err != nil {
		logger.Error("Server stopped", err)
	}
}
