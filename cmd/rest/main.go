package main

import (
	"context"
	"log"

	"ai-videostudio-be/internal/bootstrap"
	"ai-videostudio-be/internal/config"
	"ai-videostudio-be/internal/server"
	"ai-videostudio-be/internal/tracer"
	"ai-videostudio-be/pkg/database"
)

func main() {
	// No-op unless OTEL_ENABLED=true.
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	// Bridges generation events from the in-process bus to inbox rows and
	// connected websocket clients.
	go func() {
		log.Println("Background: starting consumer service")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background consumer error: %v", err)
		}
	}()

	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
