package repository

import (
	"database/sql"

	"github.com/AgusMolinaCode/Trading_Bot_Api.git/internal/models"
)

type TradeRepository struct {
	db *sql.DB
}

func NewTradeRepository(db *sql.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

func (r *TradeRepository) CreateTrade(trade *models.Trade) error {
	query := `
		INSERT INTO trades (id, user_id, strategy_id, type, entry_point, exit_point,
			amount, profit_or_loss, trade_date, status, automated, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	var strategyID sql.NullString
	if trade.StrategyID != "" {
		strategyID = sql.NullString{String: trade.StrategyID, Valid: true}
	}

	var exitPoint sql.NullFloat64
	if trade.ExitPoint != nil {
		exitPoint = sql.NullFloat64{Float64: *trade.ExitPoint, Valid: true}
	}

	_, err := r.db.Exec(query,
		trade.ID,
		trade.UserID,
		strategyID,
		trade.Type,
		trade.EntryPoint,
		exitPoint,
		trade.Amount,
		trade.ProfitOrLoss,
		trade.TradeDate,
		trade.Status,
		trade.Automated,
		trade.CreatedAt,
	)
	return err
}

// GetUserTrades devuelve el historial del usuario ordenado por fecha
// de trade descendente
func (r *TradeRepository) GetUserTrades(userID string) ([]models.Trade, error) {
	query := `
		SELECT id, user_id, strategy_id, type, entry_point, exit_point,
			amount, profit_or_loss, trade_date, status, automated, created_at
		FROM trades
		WHERE user_id = $1
		ORDER BY trade_date DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trades := []models.Trade{}
	for rows.Next() {
		var trade models.Trade
		var strategyID sql.NullString
		var exitPoint sql.NullFloat64

		err := rows.Scan(
			&trade.ID,
			&trade.UserID,
			&strategyID,
			&trade.Type,
			&trade.EntryPoint,
			&exitPoint,
			&trade.Amount,
			&trade.ProfitOrLoss,
			&trade.TradeDate,
			&trade.Status,
			&trade.Automated,
			&trade.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		trade.StrategyID = strategyID.String
		if exitPoint.Valid {
			trade.ExitPoint = &exitPoint.Float64
		}
		trades = append(trades, trade)
	}
	return trades, rows.Err()
}
