package main

import (
	"log"

	"github.com/AgusMolinaCode/Trading_Bot_Api.git/internal/config"
	"github.com/AgusMolinaCode/Trading_Bot_Api.git/internal/database"
	"github.com/AgusMolinaCode/Trading_Bot_Api.git/internal/middleware"
	"github.com/AgusMolinaCode/Trading_Bot_Api.git/internal/repository"
	routes "github.com/AgusMolinaCode/Trading_Bot_Api.git/internal/server"
	"github.com/AgusMolinaCode/Trading_Bot_Api.git/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Cargar variables de entorno
	if err := godotenv.Load(); err != nil {
		log.Printf("No se pudo cargar el archivo .env: %v", err)
	}

	cfg := config.Load()

	// Crear el router de Gin
	router := gin.Default()

	// Configurar CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "Admin-Key"}
	corsConfig.AllowCredentials = true
	corsConfig.ExposeHeaders = []string{"Content-Length"}
	router.Use(cors.New(corsConfig))

	// Inicializar base de datos
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Error al inicializar la base de datos: %v", err)
	}
	defer db.Close()

	// Construir repositorios, notificador y handlers de forma explícita:
	// sin estado global, todo se pasa hacia abajo
	userRepo := repository.NewUserRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)
	strategyRepo := repository.NewStrategyRepository(db)
	tradeRepo := repository.NewTradeRepository(db)
	notifier := services.NewEmailService(cfg.SMTP)

	handlers := &routes.Handlers{
		Auth:       middleware.NewAuthHandler(userRepo, notifier, cfg),
		Users:      middleware.NewUserHandler(userRepo),
		Admin:      middleware.NewAdminHandler(userRepo),
		Portfolio:  middleware.NewPortfolioHandler(portfolioRepo),
		Strategies: middleware.NewStrategyHandler(strategyRepo),
		Trades:     middleware.NewTradeHandler(tradeRepo),
	}

	routes.RegisterRoutes(router, handlers, cfg)

	// Iniciar el servidor
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Error al iniciar el servidor: %v", err)
	}
}
