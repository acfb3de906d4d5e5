package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/barberbook/booking-api/internal/audit"
	"github.com/barberbook/booking-api/internal/config"
	dbpkg "github.com/barberbook/booking-api/internal/db"
	"github.com/barberbook/booking-api/internal/identity"
	"github.com/barberbook/booking-api/internal/middleware"
	"github.com/barberbook/booking-api/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)
	defer dbpkg.Close(db)

	provider := identity.NewKeycloakProvider(cfg)

	var verifier identity.Verifier = provider
	if rdb := identity.NewRedisClient(cfg); rdb != nil {
		verifier = identity.NewCachedVerifier(provider, rdb)
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db))
	defer auditDispatcher.Close()

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"healthy": true})
	})

	routes.RegisterRoutes(r, db, provider, verifier, auditDispatcher)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
