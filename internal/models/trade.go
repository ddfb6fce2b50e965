package models

import "time"

const (
	TradeTypeBuy  = "buy"
	TradeTypeSell = "sell"

	TradeStatusOpen   = "open"
	TradeStatusClosed = "closed"
)

// Trade es un registro de intención de compra/venta. Una vez creado nunca
// se modifica: el status queda en "open" y profit_or_loss en cero porque
// todavía no existe una operación de cierre.
type Trade struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	StrategyID   string    `json:"strategy_id,omitempty"`
	Type         string    `json:"type"`
	EntryPoint   float64   `json:"entry_point"`
	ExitPoint    *float64  `json:"exit_point,omitempty"`
	Amount       float64   `json:"amount"`
	ProfitOrLoss float64   `json:"profit_or_loss"`
	TradeDate    time.Time `json:"trade_date"`
	Status       string    `json:"status"`
	Automated    bool      `json:"automated"`
	CreatedAt    time.Time `json:"created_at"`
}

type TradeInput struct {
	Type       string  `json:"type" binding:"required,oneof=buy sell"`
	EntryPoint float64 `json:"entry_point" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	Automated  bool    `json:"automated"`
	StrategyID string  `json:"strategy_id"`
}
