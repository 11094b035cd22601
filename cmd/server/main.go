package main

import (
	"fmt"
	"log"

	"github.com/skyseen/ITAM/internal/config"
	"github.com/skyseen/ITAM/internal/database"
	"github.com/skyseen/ITAM/internal/server"
)

func main() {
	cfg := config.Load()
	database.Init(cfg.DBDSN)

	r := server.NewRouter(cfg)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
