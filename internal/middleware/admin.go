package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminAuth protege las rutas administrativas con una clave estática
func AdminAuth(adminKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminKey == "" || c.GetHeader("Admin-Key") != adminKey {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Acceso no autorizado"})
			c.Abort()
			return
		}
		c.Next()
	}
}
