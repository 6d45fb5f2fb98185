package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/maxiwise/MF_Api.git/internal/database"
	"github.com/maxiwise/MF_Api.git/internal/middleware"
	"github.com/maxiwise/MF_Api.git/internal/repository"
	routes "github.com/maxiwise/MF_Api.git/internal/server"
	"github.com/maxiwise/MF_Api.git/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if err := database.InitDB(); err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}
	defer database.DB.Close()

	middleware.InitAuth()
	middleware.InitClerk()
	middleware.InitFunds()
	middleware.InitWatchlist()

	middleware.SetAnalytics(services.NewAnalyticsFromEnv())
	middleware.SetCRMClient(services.NewCRMClientFromEnv())

	// Background NAV refresh keeps the quote endpoint warm and fires
	// watchlist alerts as prices cross their thresholds.
	fundRepo := repository.NewFundRepository(database.DB)
	watchlistRepo := repository.NewWatchlistRepository(database.DB)
	updater := services.NewNavUpdater(navRefreshInterval(), fundRepo, watchlistRepo)
	updater.Start()
	defer updater.Stop()
	middleware.SetNavUpdater(updater)

	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Admin-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server started on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}

func allowedOrigins() []string {
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		return []string{origins}
	}
	return []string{"http://localhost:3000", "https://maxiwise.com", "https://www.maxiwise.com"}
}

func navRefreshInterval() time.Duration {
	minutes := 15
	if v := os.Getenv("NAV_REFRESH_MINUTES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			minutes = parsed
		}
	}
	return time.Duration(minutes) * time.Minute
}
