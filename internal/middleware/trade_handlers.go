package middleware

import (
	"net/http"
	"time"

	"github.com/AgusMolinaCode/Trading_Bot_Api.git/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TradeStore interface {
	CreateTrade(trade *models.Trade) error
	GetUserTrades(userID string) ([]models.Trade, error)
}

type TradeHandler struct {
	trades TradeStore
}

func NewTradeHandler(trades TradeStore) *TradeHandler {
	return &TradeHandler{trades: trades}
}

// PlaceTrade registra una intención de compra/venta. "automated" es solo
// una marca; el registro nace abierto y con resultado cero, y ninguna
// operación lo cierra después.
func (h *TradeHandler) PlaceTrade(c *gin.Context) {
	userID := c.GetString("userId")

	var input models.TradeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	trade := &models.Trade{
		ID:           uuid.NewString(),
		UserID:       userID,
		StrategyID:   input.StrategyID,
		Type:         input.Type,
		EntryPoint:   input.EntryPoint,
		Amount:       input.Amount,
		ProfitOrLoss: 0,
		TradeDate:    now,
		Status:       models.TradeStatusOpen,
		Automated:    input.Automated,
		CreatedAt:    now,
	}

	if err := h.trades.CreateTrade(trade); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al registrar el trade"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Trade ejecutado correctamente",
		"trade":   trade,
	})
}

func (h *TradeHandler) GetTradeHistory(c *gin.Context) {
	userID := c.GetString("userId")

	trades, err := h.trades.GetUserTrades(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener el historial"})
		return
	}

	if len(trades) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Todavía no se ejecutaron trades"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Historial de trades obtenido correctamente",
		"trades":  trades,
	})
}
