package main

import (
	"time"

	"github.com/caceasy/caceasy-core/injector"
	"github.com/caceasy/caceasy-core/internal/app/pkg"
	"github.com/caceasy/caceasy-core/internal/infrastructures"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := infrastructures.LoadConfig()
	infrastructures.ConfigureLogger(cfg)

	app, err := injector.InitializeApplication()
	if err != nil {
		logrus.Fatalf("Failed to initialize application: %v", err)
	}

	// Fiber configuration
	config := fiber.Config{
		ReadTimeout:  time.Second * 60,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: pkg.ErrorResponse,
	}

	router := fiber.New(config)

	router.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, X-Admin-Key",
		AllowMethods:  "GET, POST, PUT, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, X-RateLimit-Limit, X-RateLimit-Remaining, X-RateLimit-Reset",
		MaxAge:        300,
	}))

	app.RegisterRoutes(router)

	logrus.WithField("port", cfg.Port).Info("caceasy-core listening")
	logrus.Fatal(router.Listen(":" + cfg.Port))
}
