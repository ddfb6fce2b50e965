package repository

import (
	"database/sql"

	"github.com/AgusMolinaCode/Trading_Bot_Api.git/internal/models"
	"github.com/lib/pq"
)

type StrategyRepository struct {
	db *sql.DB
}

func NewStrategyRepository(db *sql.DB) *StrategyRepository {
	return &StrategyRepository{db: db}
}

func (r *StrategyRepository) CreateStrategy(strategy *models.Strategy) error {
	query := `
		INSERT INTO strategies (id, user_id, name, indicators, conditions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query,
		strategy.ID,
		strategy.UserID,
		strategy.Name,
		pq.StringArray(strategy.Indicators),
		pq.StringArray(strategy.Conditions),
		strategy.CreatedAt,
		strategy.UpdatedAt,
	)
	return err
}

func (r *StrategyRepository) GetUserStrategies(userID string) ([]models.Strategy, error) {
	query := `
		SELECT id, user_id, name, indicators, conditions, created_at, updated_at
		FROM strategies
		WHERE user_id = $1
		ORDER BY created_at`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	strategies := []models.Strategy{}
	for rows.Next() {
		var s models.Strategy
		var indicators, conditions pq.StringArray

		err := rows.Scan(&s.ID, &s.UserID, &s.Name, &indicators, &conditions, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, err
		}

		s.Indicators = indicators
		s.Conditions = conditions
		strategies = append(strategies, s)
	}
	return strategies, rows.Err()
}

// GetStrategy busca siempre filtrando por dueño: una estrategia ajena
// es indistinguible de una inexistente
func (r *StrategyRepository) GetStrategy(userID, id string) (*models.Strategy, error) {
	query := `
		SELECT id, user_id, name, indicators, conditions, created_at, updated_at
		FROM strategies
		WHERE id = $1 AND user_id = $2`

	var s models.Strategy
	var indicators, conditions pq.StringArray

	err := r.db.QueryRow(query, id, userID).Scan(
		&s.ID, &s.UserID, &s.Name, &indicators, &conditions, &s.CreatedAt, &s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	s.Indicators = indicators
	s.Conditions = conditions
	return &s, nil
}

func (r *StrategyRepository) UpdateStrategy(strategy *models.Strategy) error {
	query := `
		UPDATE strategies
		SET name = $1, indicators = $2, conditions = $3, updated_at = $4
		WHERE id = $5 AND user_id = $6`

	result, err := r.db.Exec(query,
		strategy.Name,
		pq.StringArray(strategy.Indicators),
		pq.StringArray(strategy.Conditions),
		strategy.UpdatedAt,
		strategy.ID,
		strategy.UserID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *StrategyRepository) DeleteStrategy(userID, id string) error {
	result, err := r.db.Exec(`DELETE FROM strategies WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
