package router

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/studyshare/api/config"
	"github.com/studyshare/api/database"
	"github.com/studyshare/api/handlers"
	auth_handlers "github.com/studyshare/api/handlers/auth"
	course_handlers "github.com/studyshare/api/handlers/course"
	document_handlers "github.com/studyshare/api/handlers/document"
	recommendation_handlers "github.com/studyshare/api/handlers/recommendation"
	search_handlers "github.com/studyshare/api/handlers/search"
	"github.com/studyshare/api/services"
	"github.com/studyshare/api/services/storage"
	"github.com/studyshare/api/utils"
	"github.com/studyshare/api/utils/auth"
	"github.com/studyshare/api/utils/cache"
	"github.com/studyshare/api/utils/middleware"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, store database.Storage) {
	getEnv, err := config.Get()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	if getEnv.JWT_SECRET == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := getEnv.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "studyshare-api"
	}

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret:        getEnv.JWT_SECRET,
		Expiry:        24 * time.Hour,
		RefreshExpiry: 7 * 24 * time.Hour,
		Issuer:        jwtIssuer,
	})

	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("Failed to get GORM DB instance")
	}

	// Redis is optional; handlers fall back to the database when it is down.
	redisURL := getEnv.REDIS_URL
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}
	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Caching disabled.", err)
		redisCache = nil
	}

	spacesClient, err := storage.NewSpacesClient(storage.SpacesConfig{
		AccessKey: getEnv.SPACES_ACCESS_KEY,
		SecretKey: getEnv.SPACES_SECRET_KEY,
		Bucket:    getEnv.SPACES_BUCKET,
		Region:    getEnv.SPACES_REGION,
		Endpoint:  getEnv.SPACES_ENDPOINT,
		CDNURL:    getEnv.SPACES_CDN_URL,
	})
	if err != nil {
		log.Fatal("Failed to initialize object storage:", err)
	}

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	// Services
	ratingService := services.NewRatingService(db)
	commentService := services.NewCommentService(db)
	viewService := services.NewViewService(db)
	documentService := services.NewDocumentService(db, spacesClient, viewService)
	searchService := services.NewSearchService(db)
	recommendationService := services.NewRecommendationService(db, redisCache)

	// Handlers
	authHandler := auth_handlers.NewAuthHandler(db, jwtManager)
	courseHandler := course_handlers.NewCourseHandler(db, redisCache)
	documentHandler := document_handlers.NewDocumentHandler(documentService, commentService, ratingService, viewService)
	searchHandler := search_handlers.NewSearchHandler(searchService)
	recommendationHandler := recommendation_handlers.NewRecommendationHandler(recommendationService, viewService)

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    "http://localhost:3000",
		RateLimitRequests: 100,
		RateLimitWindow:   1 * time.Minute,
	})

	// Health check endpoint (public)
	app.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, store))

	// API v1 group
	api := app.Group("/api/v1")

	// Auth routes
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/oauth", authHandler.OAuthLogin)
	authGroup.Post("/refresh", authHandler.RefreshToken)
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)
	authGroup.Get("/me", authMiddleware.Required(), authHandler.Me)

	// Courses (public reference data)
	api.Get("/courses", courseHandler.List)

	// Document search
	api.Get("/documents/search", authMiddleware.Required(), searchHandler.Search)

	// Documents (protected)
	documents := api.Group("/documents", authMiddleware.Required())
	documents.Post("/", documentHandler.Upload)
	documents.Get("/:id", documentHandler.Detail)
	documents.Patch("/:id/download", documentHandler.Download)
	documents.Post("/:id/comments", documentHandler.CreateComment)
	documents.Delete("/:id/comments/:commentId", documentHandler.DeleteComment)
	documents.Post("/:id/rating", documentHandler.SubmitRating)

	// Personalized feeds (protected)
	api.Get("/recommended-courses", authMiddleware.Required(), recommendationHandler.RecommendedCourses)
	api.Get("/recently-viewed", authMiddleware.Required(), recommendationHandler.RecentlyViewed)
}
