package main

import (
	"log"
	"os"
	"time"

	"PredicaAI/middleware"
	"PredicaAI/models"
	"PredicaAI/pkg/cache"
	"PredicaAI/pkg/config"
	"PredicaAI/pkg/preguntas"
	"PredicaAI/pkg/prompts"
	"PredicaAI/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	// config init via package init()

	// calibration prompts are a startup precondition
	ps, err := prompts.Load(config.PromptsFile)
	if err != nil {
		log.Fatalf("failed to load calibration prompts: %v", err)
	}

	db, err := gorm.Open(sqlite.Open(config.DatabaseFile), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Mensaje{}); err != nil {
		log.Fatalf("failed migrate: %v", err)
	}

	if err := os.MkdirAll(config.UploadsDir, 0755); err != nil {
		log.Fatalf("failed to create uploads dir: %v", err)
	}

	preg := preguntas.New(config.PreguntasFile)

	middleware.SetRateLimitConfig(
		time.Duration(config.RateLimitWindowSeconds)*time.Second,
		config.RateLimitCapacity,
	)
	cache.SetMaxItems(config.EvalCacheMaxItems)

	r := gin.Default()

	// the front end may be served from anywhere; the original allows all origins
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db, ps, preg)

	log.Printf("[main] servidor corriendo en http://localhost:%s", config.Port)
	if err := r.Run(":" + config.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
