package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/AgusMolinaCode/Trading_Bot_Api.git/internal/models"
	"github.com/AgusMolinaCode/Trading_Bot_Api.git/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StrategyStore interface {
	CreateStrategy(strategy *models.Strategy) error
	GetUserStrategies(userID string) ([]models.Strategy, error)
	GetStrategy(userID, id string) (*models.Strategy, error)
	UpdateStrategy(strategy *models.Strategy) error
	DeleteStrategy(userID, id string) error
}

type StrategyHandler struct {
	strategies StrategyStore
}

func NewStrategyHandler(strategies StrategyStore) *StrategyHandler {
	return &StrategyHandler{strategies: strategies}
}

func (h *StrategyHandler) GetStrategies(c *gin.Context) {
	userID := c.GetString("userId")

	strategies, err := h.strategies.GetUserStrategies(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener las estrategias"})
		return
	}

	if len(strategies) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Todavía no hay estrategias creadas"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Estrategias obtenidas correctamente",
		"strategies": strategies,
	})
}

func (h *StrategyHandler) CreateStrategy(c *gin.Context) {
	userID := c.GetString("userId")

	var input models.StrategyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	strategy := &models.Strategy{
		ID:         uuid.NewString(),
		UserID:     userID,
		Name:       input.Name,
		Indicators: input.Indicators,
		Conditions: input.Conditions,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := h.strategies.CreateStrategy(strategy); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al crear la estrategia"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Estrategia creada correctamente",
		"strategy": strategy,
	})
}

// UpdateStrategy reemplaza los campos presentes en el cuerpo; los ausentes
// quedan como están. Una estrategia ajena responde igual que una inexistente.
func (h *StrategyHandler) UpdateStrategy(c *gin.Context) {
	userID := c.GetString("userId")
	strategyID := c.Param("id")

	var input models.StrategyUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	strategy, err := h.strategies.GetStrategy(userID, strategyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Estrategia no encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener la estrategia"})
		return
	}

	if input.Name != nil {
		strategy.Name = *input.Name
	}
	if input.Indicators != nil {
		strategy.Indicators = *input.Indicators
	}
	if input.Conditions != nil {
		strategy.Conditions = *input.Conditions
	}
	strategy.UpdatedAt = time.Now()

	if err := h.strategies.UpdateStrategy(strategy); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Estrategia no encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al actualizar la estrategia"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Estrategia actualizada correctamente",
		"strategy": strategy,
	})
}

func (h *StrategyHandler) DeleteStrategy(c *gin.Context) {
	userID := c.GetString("userId")
	strategyID := c.Param("id")

	if err := h.strategies.DeleteStrategy(userID, strategyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Estrategia no encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al eliminar la estrategia"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Estrategia eliminada correctamente"})
}
