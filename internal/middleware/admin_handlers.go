package middleware

import (
	"errors"
	"net/http"

	"github.com/AgusMolinaCode/Trading_Bot_Api.git/internal/models"
	"github.com/AgusMolinaCode/Trading_Bot_Api.git/internal/repository"
	"github.com/gin-gonic/gin"
)

// AdminStore es la vista de persistencia de la administración de usuarios.
// Borrar un usuario es la única forma de destruir su portafolio.
type AdminStore interface {
	GetAllUsers() ([]models.User, error)
	GetUserById(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	DeleteUser(id string) error
}

type AdminHandler struct {
	users AdminStore
}

func NewAdminHandler(users AdminStore) *AdminHandler {
	return &AdminHandler{users: users}
}

func (h *AdminHandler) GetUsers(c *gin.Context) {
	users, err := h.users.GetAllUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener usuarios"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	user, err := h.users.GetUserById(c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener usuario"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AdminHandler) GetUserByEmail(c *gin.Context) {
	user, err := h.users.GetUserByEmail(c.Param("email"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener usuario"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AdminHandler) DeleteUserByAdmin(c *gin.Context) {
	if err := h.users.DeleteUser(c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al eliminar usuario"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Usuario eliminado"})
}
