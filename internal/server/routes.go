package routes

import (
	"github.com/AgusMolinaCode/Trading_Bot_Api.git/internal/config"
	"github.com/AgusMolinaCode/Trading_Bot_Api.git/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers agrupa todos los handlers ya construidos con sus dependencias
type Handlers struct {
	Auth       *middleware.AuthHandler
	Users      *middleware.UserHandler
	Admin      *middleware.AdminHandler
	Portfolio  *middleware.PortfolioHandler
	Strategies *middleware.StrategyHandler
	Trades     *middleware.TradeHandler
}

func RegisterRoutes(router *gin.Engine, h *Handlers, cfg *config.Config) {
	// Rutas públicas de autenticación
	user := router.Group("/user")
	{
		user.POST("/signup", h.Auth.Signup)
		user.GET("/verify/:token", h.Auth.VerifyEmail)
		user.POST("/login", h.Auth.Login)
		user.POST("/verify-mfa", h.Auth.VerifyMfa)
	}

	// Perfil del usuario autenticado
	profile := router.Group("/user")
	profile.Use(h.Auth.AuthMiddleware())
	{
		profile.GET("/profile", h.Users.GetProfile)
		profile.PUT("/profile", h.Users.UpdateProfile)
	}

	// Recursos propios: todo filtrado por el dueño autenticado
	protected := router.Group("/")
	protected.Use(h.Auth.AuthMiddleware())
	{
		protected.GET("/portfolio", h.Portfolio.GetPortfolio)
		protected.POST("/portfolio/assets", h.Portfolio.CreateAsset)
		protected.DELETE("/portfolio/:symbol", h.Portfolio.DeleteAsset)

		protected.GET("/strategies", h.Strategies.GetStrategies)
		protected.POST("/strategies", h.Strategies.CreateStrategy)
		protected.PUT("/strategies/:id", h.Strategies.UpdateStrategy)
		protected.DELETE("/strategies/:id", h.Strategies.DeleteStrategy)

		protected.POST("/trades", h.Trades.PlaceTrade)
		protected.GET("/trades/history", h.Trades.GetTradeHistory)
	}

	// Rutas de admin
	admin := router.Group("/admin")
	admin.Use(middleware.AdminAuth(cfg.AdminKey))
	{
		admin.GET("/users", h.Admin.GetUsers)
		admin.GET("/users/:id", h.Admin.GetUser)
		admin.GET("/users/email/:email", h.Admin.GetUserByEmail)
		admin.DELETE("/users/:id", h.Admin.DeleteUserByAdmin)
	}
}
