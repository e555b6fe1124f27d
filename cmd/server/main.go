package main

import (
	"log"
	"os"

	"rentvoice/internal/db"
	"rentvoice/internal/handlers"
	"rentvoice/internal/middleware"
	"rentvoice/internal/router"
	"rentvoice/internal/services"
	"rentvoice/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	conn, err := db.Open()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	cache, err := utils.NewCache(500)
	if err != nil {
		log.Fatalf("Failed to create cache: %v", err)
	}

	// Services; the database handle is injected, never global.
	aggregates := services.NewAggregatesService(conn)
	propertySvc := services.NewPropertyService(conn, cache)
	reviewSvc := services.NewReviewService(conn, propertySvc, aggregates)
	moderationSvc := services.NewModerationService(conn, aggregates)
	voteSvc := services.NewVoteService(conn)
	reportSvc := services.NewReportService(conn)

	r := gin.Default()

	// Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("rentvoice_session", store))

	r.Use(middleware.LoadUser(conn))

	router.RegisterRoutes(r, router.Handlers{
		Auth:         handlers.NewAuthHandler(conn),
		Property:     handlers.NewPropertyHandler(propertySvc, reviewSvc),
		Review:       handlers.NewReviewHandler(reviewSvc),
		Vote:         handlers.NewVoteHandler(voteSvc, reportSvc),
		Saved:        handlers.NewSavedHandler(conn),
		Notification: handlers.NewNotificationHandler(conn),
		Admin:        handlers.NewAdminHandler(moderationSvc),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("rentvoice server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
