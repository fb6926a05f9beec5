package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/gophbudget/internal/server"
	"github.com/dmitrijs2005/gophbudget/internal/server/config"
	"github.com/joho/godotenv"
)

func main() {

	// A missing .env file is not an error.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
