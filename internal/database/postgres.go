package database

import (
	"database/sql"

	_ "github.com/lib/pq"
)

// Connect abre la conexión a Postgres y prepara el esquema.
// La conexión se devuelve al llamador; no hay estado global.
func Connect(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}
