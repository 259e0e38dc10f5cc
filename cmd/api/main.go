package main

import (
	"context"
	"log"

	"pdfhelper-backend/internal/bootstrap"
	"pdfhelper-backend/internal/shared/config"
	"pdfhelper-backend/internal/shared/server"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer app.Close(context.Background())

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s", addr)

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
