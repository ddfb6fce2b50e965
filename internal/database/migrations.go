package database

import (
	"database/sql"
	"log"
)

// RunMigrations crea las tablas necesarias si no existen
func RunMigrations(db *sql.DB) error {
	log.Println("Ejecutando migraciones de la base de datos...")

	// Tabla de usuarios con estado de verificación y MFA
	createUsersTableSQL := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		is_verified BOOLEAN NOT NULL DEFAULT FALSE,
		verification_token TEXT,
		is_mfa_enabled BOOLEAN NOT NULL DEFAULT FALSE,
		mfa_secret TEXT,
		mfa_code_expiry TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`

	if _, err := db.Exec(createUsersTableSQL); err != nil {
		return err
	}

	// Un portafolio por usuario; los activos y el log de transacciones
	// se guardan como documentos JSONB dentro de la misma fila
	createPortfoliosTableSQL := `
	CREATE TABLE IF NOT EXISTS portfolios (
		id TEXT PRIMARY KEY,
		user_id TEXT UNIQUE NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		assets JSONB NOT NULL DEFAULT '[]',
		transactions JSONB NOT NULL DEFAULT '[]',
		total_value DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_unrealized_gain_loss DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_realized_gain_loss DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_return DOUBLE PRECISION NOT NULL DEFAULT 0,
		annualized_return DOUBLE PRECISION NOT NULL DEFAULT 0,
		volatility DOUBLE PRECISION NOT NULL DEFAULT 0,
		sharpe_ratio DOUBLE PRECISION NOT NULL DEFAULT 0,
		maximum_drawdown DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`

	if _, err := db.Exec(createPortfoliosTableSQL); err != nil {
		return err
	}

	// Tabla de estrategias con listas de indicadores y condiciones
	createStrategiesTableSQL := `
	CREATE TABLE IF NOT EXISTS strategies (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		indicators TEXT[] NOT NULL,
		conditions TEXT[] NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`

	if _, err := db.Exec(createStrategiesTableSQL); err != nil {
		return err
	}

	// Registro de trades; solo se insertan, nunca se modifican
	createTradesTableSQL := `
	CREATE TABLE IF NOT EXISTS trades (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		strategy_id TEXT REFERENCES strategies(id) ON DELETE SET NULL,
		type TEXT NOT NULL,
		entry_point DOUBLE PRECISION NOT NULL,
		exit_point DOUBLE PRECISION,
		amount DOUBLE PRECISION NOT NULL,
		profit_or_loss DOUBLE PRECISION NOT NULL DEFAULT 0,
		trade_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		status TEXT NOT NULL DEFAULT 'open',
		automated BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`

	if _, err := db.Exec(createTradesTableSQL); err != nil {
		return err
	}

	// Índices para las consultas por usuario
	createIndexesSQL := `
	CREATE INDEX IF NOT EXISTS idx_strategies_user ON strategies(user_id);
	CREATE INDEX IF NOT EXISTS idx_trades_user_date ON trades(user_id, trade_date DESC);`

	if _, err := db.Exec(createIndexesSQL); err != nil {
		return err
	}

	return nil
}
