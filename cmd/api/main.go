package main

import (
	"fmt"
	"log"

	"github.com/shubhkakadia/cabipro-sub001/internal/config"
	"github.com/shubhkakadia/cabipro-sub001/internal/db"
	httpserver "github.com/shubhkakadia/cabipro-sub001/internal/http"
	"github.com/shubhkakadia/cabipro-sub001/internal/seed"
)

func main() {
	cfg := config.Load()

	gdb := db.Connect(cfg.DSN)
	db.AutoMigrate(gdb)

	if cfg.SeedOnStart {
		if err := seed.FirstSetup(gdb, cfg.BcryptCost); err != nil {
			log.Fatalf("❌ Seed failed: %v", err)
		}
	}

	r := httpserver.NewRouter(gdb, cfg)
	log.Printf("🚀 Server listening on :%s\n", cfg.AppPort)
	if err := r.Run(fmt.Sprintf(":%s", cfg.AppPort)); err != nil {
		log.Fatalf("❌ Server exited: %v", err)
	}
}
