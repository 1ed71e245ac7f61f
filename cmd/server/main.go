package main

import (
	"context"
	"log"
	"os"
	"strings"

	"maktaba_back_end/internal/config"
	"maktaba_back_end/internal/database"
	"maktaba_back_end/internal/handlers/payment"
	"maktaba_back_end/internal/handlers/user"
	"maktaba_back_end/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.Load()

	if os.Getenv("RAZORPAY_KEY_ID") == "" || os.Getenv("RAZORPAY_KEY_SECRET") == "" {
		log.Fatal("❌ Payment gateway keys missing in environment")
	}
	payment.InitGateway()

	database.ConnectDatabases()

	// prepared statements for the hot auth paths
	database.InitPreparedStatements()

	warmupRedisCache()

	user.InitOAuth()

	r := gin.Default()
	r.Use(corsConfig())
	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Maktaba server listening on port", port)
	r.Run(":" + port)
}

func corsConfig() gin.HandlerFunc {
	origins := []string{"http://localhost:5173"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = origins
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	cfg.AllowCredentials = true
	return cors.New(cfg)
}

// warmupRedisCache pings Redis so the first request never pays for the
// connection handshake.
func warmupRedisCache() {
	ctx := context.Background()
	if err := database.Redis.Ping(ctx).Err(); err == nil {
		log.Println("✅ Redis cache warmed up")
	}
}
