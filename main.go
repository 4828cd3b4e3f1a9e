package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"sbook/config"
	"sbook/controllers/admin"
	"sbook/controllers/agent"
	"sbook/controllers/bet"
	"sbook/database"
	"sbook/jobs"
	"sbook/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file loaded, using environment as-is")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	database.Connect(cfg)

	bet.Configure(cfg.MinParlayLegs, cfg.MaxParlayLegs, cfg.TxRetryAttempts)
	agent.SetRetryAttempts(cfg.TxRetryAttempts)
	admin.SetRetryAttempts(cfg.TxRetryAttempts)

	app := fiber.New()
	routes.Setup(app)
	scheduler := jobs.StartSettlementScheduler(cfg)

	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	log.Info("Server running at ", addr)

	go func() {
		if err := app.Listen(addr); err != nil {
			log.Panicf("Failed to start server: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Info("Gracefully shutting down...")
	scheduler.Stop()
	if err := app.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Info("Server exited cleanly")
}
