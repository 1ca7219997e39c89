package main

import (
	"context"
	"log"

	"github.com/latted-app/latted/internal/app"
	"github.com/latted-app/latted/internal/config"
)

func main() {

	cfg := config.LoadConfig()

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer a.Close()

	a.Log.Info(context.Background(), "latted data layer ready", "db", cfg.DatabasePath)
}
