package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/benbeisheim/chess-rules-backend/internal/config"
	"github.com/benbeisheim/chess-rules-backend/internal/controller"
	"github.com/benbeisheim/chess-rules-backend/internal/middleware"
	"github.com/benbeisheim/chess-rules-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

func main() {
	cfg, err := config.FromEnvironment()
	if err != nil {
		log.Fatalw("failed to load config", "error", err)
	}
	log.SetLevel(cfg.LogLevel)

	app := fiber.New(fiber.Config{
		AppName: "chess-rules-backend",
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowOrigins, ", "),
		AllowHeaders:     "Origin, Content-Type, Accept, " + middleware.PlayerIDHeader,
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize services
	gameManager := service.NewGameManager(cfg.SessionIdleTTL)
	gameService := service.NewGameService(gameManager)

	// Initialize controllers
	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)
	controller.Register(app, gameController, wsController, cfg.AllowOrigins)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.SessionIdleTTL > 0 {
		go gameManager.Run(ctx, cfg.ReapInterval)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Errorw("shutdown failed", "error", err)
		}
	}()

	log.Infow("listening", "addr", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalw("server stopped", "error", err)
	}
	log.Info("server stopped")
}
