package app

import (
	"fmt"
	"log"
	"os"

	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/studyshare/api/api"
	"github.com/studyshare/api/config"
	"github.com/studyshare/api/database"
	"github.com/studyshare/api/router"
	"github.com/studyshare/api/services"
	"github.com/studyshare/api/services/cron"
	"github.com/studyshare/api/utils/cache"
	"gorm.io/gorm"
)

func SetupAndRunServer() error {
	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Create the database if this is a fresh environment
	if err := database.EnsureDatabase(); err != nil {
		log.Println("Warning: could not verify database existence:", err)
	}

	// Initialize GORM database connection
	store, err := database.StartGORM()
	if err != nil {
		log.Println("Check whether Postgres is running")
		return err
	}

	if err := store.Init(); err != nil {
		log.Println("Error running migrations:", err)
		return err
	}

	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		return fmt.Errorf("failed to get GORM DB instance")
	}

	// Seed reference data on first boot
	if err := database.SeedCourses(db); err != nil {
		log.Println("Warning: course seeding failed:", err)
	}

	// Scheduled jobs (enabled unless CRON_ENABLED=false)
	var cronManager *cron.CronManager
	if os.Getenv("CRON_ENABLED") != "false" {
		// The warmup job only makes sense with a live cache.
		var recommendations *services.RecommendationService
		redisURL := getEnv.REDIS_URL
		if redisURL == "" {
			redisURL = "redis://localhost:6379/0"
		}
		if redisCache, err := cache.NewRedisCache(redisURL); err == nil {
			recommendations = services.NewRecommendationService(db, redisCache)
		}

		cronManager = cron.NewCronManager(db, services.NewViewService(db), recommendations)
		if err := cronManager.Start(); err != nil {
			log.Println("Warning: failed to start cron jobs:", err)
		}
	}

	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		store.Close()
	}()

	// Init API
	server := api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Attach Middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Setup Routes
	router.SetupRoutes(app, store)

	return server.Run()
}
