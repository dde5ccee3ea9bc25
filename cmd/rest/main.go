package main

import (
	"context"
	"log"

	"rams-generator-be/internal/bootstrap"
	"rams-generator-be/internal/config"
	"rams-generator-be/internal/entity"
	"rams-generator-be/internal/server"
	"rams-generator-be/internal/tracer"
	"rams-generator-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database (optional: archive of generated documents)
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
		if err := db.AutoMigrate(&entity.DocumentRecord{}); err != nil {
			log.Panicf("Unable to migrate document archive: %v", err)
		}
		gormDB = db
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	if container.ConsumerService != nil {
		go func() {
			log.Println("Background: Starting Archive Consumer...")
			if err := container.ConsumerService.Consume(context.Background()); err != nil {
				log.Printf("Background Consumer Error: %v", err)
			}
		}()
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
