package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/optimizerlabs/site/internal/config"
	"github.com/optimizerlabs/site/internal/db"
	"github.com/optimizerlabs/site/internal/handler"
	"github.com/optimizerlabs/site/internal/router"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	gdb, err := db.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	api := handler.NewAPI(gdb, cfg.SiteBaseURL)
	r := router.Setup(api)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
