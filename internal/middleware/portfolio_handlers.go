package middleware

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/AgusMolinaCode/Trading_Bot_Api.git/internal/models"
	"github.com/AgusMolinaCode/Trading_Bot_Api.git/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PortfolioStore es la vista de persistencia del portafolio: una fila
// (documento) por usuario que se lee y se reescribe completa
type PortfolioStore interface {
	GetByUser(userID string) (*models.Portfolio, error)
	Save(portfolio *models.Portfolio) error
}

type PortfolioHandler struct {
	portfolios PortfolioStore

	// Serializa las mutaciones de cada usuario para que dos altas
	// concurrentes del mismo activo no se pisen (leer-modificar-guardar).
	// El alcance del lock es por usuario: nunca hay contención cruzada.
	mu        sync.Mutex
	userLocks map[string]*sync.Mutex
}

func NewPortfolioHandler(portfolios PortfolioStore) *PortfolioHandler {
	return &PortfolioHandler{
		portfolios: portfolios,
		userLocks:  make(map[string]*sync.Mutex),
	}
}

func (h *PortfolioHandler) lockUser(userID string) *sync.Mutex {
	h.mu.Lock()
	defer h.mu.Unlock()

	lock, exists := h.userLocks[userID]
	if !exists {
		lock = &sync.Mutex{}
		h.userLocks[userID] = lock
	}
	return lock
}

func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	userID := c.GetString("userId")

	portfolio, err := h.portfolios.GetByUser(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"message": "El portafolio todavía no tiene activos"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener el portafolio"})
		return
	}

	if len(portfolio.Assets) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "El portafolio todavía no tiene activos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Portafolio obtenido correctamente",
		"portfolio": portfolio,
	})
}

// CreateAsset agrega una compra al portafolio. Si la tripla
// (type, symbol, exchange) ya existe, mezcla el precio promedio ponderado;
// si no, crea la entrada. El portafolio se crea perezosamente con el
// primer activo.
func (h *PortfolioHandler) CreateAsset(c *gin.Context) {
	userID := c.GetString("userId")

	var input models.AssetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lock := h.lockUser(userID)
	lock.Lock()
	defer lock.Unlock()

	now := time.Now()

	portfolio, err := h.portfolios.GetByUser(userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener el portafolio"})
			return
		}
		portfolio = &models.Portfolio{
			ID:           uuid.NewString(),
			UserID:       userID,
			Assets:       []models.Asset{},
			Transactions: []models.PortfolioTransaction{},
			CreatedAt:    now,
		}
	}

	portfolio.UpsertAsset(input, now)
	portfolio.RecalculateTotals()
	portfolio.UpdatedAt = now

	if err := h.portfolios.Save(portfolio); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al guardar el portafolio"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Activo creado/actualizado correctamente",
		"portfolio": portfolio,
	})
}

// DeleteAsset elimina exactamente el activo que coincide con la tripla.
// La identidad del activo es la tripla, no un id: el symbol va en la ruta
// y type/exchange como query params.
func (h *PortfolioHandler) DeleteAsset(c *gin.Context) {
	userID := c.GetString("userId")
	symbol := c.Param("symbol")
	assetType := c.Query("type")
	exchange := c.Query("exchange")

	lock := h.lockUser(userID)
	lock.Lock()
	defer lock.Unlock()

	portfolio, err := h.portfolios.GetByUser(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Portafolio no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener el portafolio"})
		return
	}

	if !portfolio.RemoveAsset(assetType, symbol, exchange) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Activo no encontrado en el portafolio"})
		return
	}

	portfolio.RecalculateTotals()
	portfolio.UpdatedAt = time.Now()

	if err := h.portfolios.Save(portfolio); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al guardar el portafolio"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Activo eliminado correctamente",
		"portfolio": portfolio,
	})
}
