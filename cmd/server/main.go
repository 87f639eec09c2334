package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/admitplan/kcetgo/internal/config"
	"github.com/admitplan/kcetgo/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.toml"
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}
	r := srv.SetupRouter()

	log.Printf("Starting server on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal(err)
	}
}
