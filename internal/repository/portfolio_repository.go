package repository

import (
	"database/sql"
	"encoding/json"

	"github.com/AgusMolinaCode/Trading_Bot_Api.git/internal/models"
)

type PortfolioRepository struct {
	db *sql.DB
}

func NewPortfolioRepository(db *sql.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// GetByUser recupera el portafolio del usuario. Los activos y el log de
// transacciones viven como documentos JSONB dentro de la fila.
func (r *PortfolioRepository) GetByUser(userID string) (*models.Portfolio, error) {
	query := `
		SELECT id, user_id, assets, transactions, total_value, total_unrealized_gain_loss,
			total_realized_gain_loss, total_return, annualized_return, volatility,
			sharpe_ratio, maximum_drawdown, created_at, updated_at
		FROM portfolios WHERE user_id = $1`

	p := &models.Portfolio{}
	var assetsJSON, transactionsJSON []byte

	err := r.db.QueryRow(query, userID).Scan(
		&p.ID,
		&p.UserID,
		&assetsJSON,
		&transactionsJSON,
		&p.TotalValue,
		&p.TotalUnrealizedGainLoss,
		&p.TotalRealizedGainLoss,
		&p.TotalReturn,
		&p.AnnualizedReturn,
		&p.Volatility,
		&p.SharpeRatio,
		&p.MaximumDrawdown,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(assetsJSON, &p.Assets); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(transactionsJSON, &p.Transactions); err != nil {
		return nil, err
	}
	return p, nil
}

// Save inserta o reemplaza el portafolio completo. La restricción UNIQUE
// sobre user_id garantiza un solo portafolio por usuario.
func (r *PortfolioRepository) Save(p *models.Portfolio) error {
	assetsJSON, err := json.Marshal(p.Assets)
	if err != nil {
		return err
	}
	transactionsJSON, err := json.Marshal(p.Transactions)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO portfolios (id, user_id, assets, transactions, total_value,
			total_unrealized_gain_loss, total_realized_gain_loss, total_return,
			annualized_return, volatility, sharpe_ratio, maximum_drawdown, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (user_id) DO UPDATE SET
			assets = EXCLUDED.assets,
			transactions = EXCLUDED.transactions,
			total_value = EXCLUDED.total_value,
			total_unrealized_gain_loss = EXCLUDED.total_unrealized_gain_loss,
			total_realized_gain_loss = EXCLUDED.total_realized_gain_loss,
			updated_at = EXCLUDED.updated_at`

	_, err = r.db.Exec(query,
		p.ID,
		p.UserID,
		assetsJSON,
		transactionsJSON,
		p.TotalValue,
		p.TotalUnrealizedGainLoss,
		p.TotalRealizedGainLoss,
		p.TotalReturn,
		p.AnnualizedReturn,
		p.Volatility,
		p.SharpeRatio,
		p.MaximumDrawdown,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}
