package main

import (
	"context"
	"log"

	"documentor-ai-be/internal/bootstrap"
	"documentor-ai-be/internal/config"
	"documentor-ai-be/internal/server"
	"documentor-ai-be/internal/tracer"
	"documentor-ai-be/pkg/database"
	"documentor-ai-be/pkg/scheduler"

	"gorm.io/gorm"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Tracer
	shutdownTracer := tracer.InitTracer(cfg)
	defer shutdownTracer(context.Background())

	// 3. Initialize Database (optional: the in-memory store is used when no DSN is set)
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		var err error
		gormDB, err = database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
		if err := database.Migrate(gormDB); err != nil {
			log.Panicf("Unable to run migrations: %v", err)
		}
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 5. Start Background Services
	go func() {
		log.Println("Background: Starting Audit Service...")
		if err := container.AuditService.Consume(context.Background()); err != nil {
			log.Printf("Background Audit Error: %v", err)
		}
	}()

	sweeper := scheduler.New(container.Registry, cfg.Session.CleanupInterval, container.Logger)
	sweeper.Start()
	defer sweeper.Stop()

	// 6. Initialize Server
	srv := server.New(cfg, container)

	// 7. Run Server
	log.Fatal(srv.Run())
}
