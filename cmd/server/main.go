package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/haivu/notehub/internal/config"
	"github.com/haivu/notehub/internal/database"
	"github.com/haivu/notehub/internal/handler"
	"github.com/haivu/notehub/internal/queue"
	"github.com/haivu/notehub/internal/repository"
	"github.com/haivu/notehub/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	notes := repository.NewNoteRepo(db)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users))
	router.RegisterNotes(e, handler.NewNoteHandler(cfg, notes), cfg.JWTSecret)

	// The activity consumer only runs when a broker is configured; the
	// API works fine without one.
	if cfg.AMQPURL != "" {
		go queue.StartActivityConsumer(cfg.AMQPURL)
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
