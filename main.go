package main

import (
	"fmt"

	"github.com/juanbracho/girasoulresale/internal/config"
	"github.com/juanbracho/girasoulresale/internal/database"
	"github.com/juanbracho/girasoulresale/internal/logging"
	"github.com/juanbracho/girasoulresale/internal/router"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		logging.L().Fatalf("load config: %v", err)
	}

	log := logging.Setup(cfg.Log)

	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}
	if err := database.SeedDefaults(db); err != nil {
		log.Fatalf("seed defaults: %v", err)
	}

	r := router.SetupRouter(cfg, db)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Infof("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
