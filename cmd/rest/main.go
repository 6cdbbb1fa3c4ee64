package main

import (
	"context"
	"log"

	"ai-foodchat-be/internal/bootstrap"
	"ai-foodchat-be/internal/config"
	"ai-foodchat-be/internal/server"
	"ai-foodchat-be/internal/tracer"
	"ai-foodchat-be/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Logger.Sync()

	go func() {
		log.Println("Background: Starting recipe indexer...")
		if err := container.IndexerService.Consume(context.Background()); err != nil {
			log.Printf("Background indexer error: %v", err)
		}
	}()

	srv := server.New(cfg, container)

	log.Fatal(srv.Run())
}
