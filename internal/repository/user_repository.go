package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/AgusMolinaCode/Trading_Bot_Api.git/internal/models"
	"github.com/lib/pq"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO users (id, email, password, is_verified, verification_token, is_mfa_enabled, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query,
		user.ID,
		user.Email,
		user.Password,
		user.IsVerified,
		nullString(user.VerificationToken),
		user.IsMfaEnabled,
		user.CreatedAt,
	)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	query := `
		SELECT id, email, password, is_verified, verification_token, is_mfa_enabled, mfa_secret, mfa_code_expiry, created_at
		FROM users WHERE email = $1`

	return r.scanUser(r.db.QueryRow(query, email))
}

func (r *UserRepository) GetUserById(id string) (*models.User, error) {
	query := `
		SELECT id, email, password, is_verified, verification_token, is_mfa_enabled, mfa_secret, mfa_code_expiry, created_at
		FROM users WHERE id = $1`

	return r.scanUser(r.db.QueryRow(query, id))
}

func (r *UserRepository) GetAllUsers() ([]models.User, error) {
	query := `
		SELECT id, email, password, is_verified, verification_token, is_mfa_enabled, mfa_secret, mfa_code_expiry, created_at
		FROM users ORDER BY created_at`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// UpdateProfile actualiza email y contraseña. El hash de la contraseña
// es responsabilidad del handler, nunca de la capa de persistencia.
func (r *UserRepository) UpdateProfile(user *models.User) error {
	query := `UPDATE users SET email = $1, password = $2 WHERE id = $3`

	_, err := r.db.Exec(query, user.Email, user.Password, user.ID)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

func (r *UserRepository) DeleteUser(id string) error {
	result, err := r.db.Exec(`DELETE FROM users WHERE id = $1`, id)
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

// VerifyEmail marca la cuenta como verificada y limpia el token pendiente
// en un solo UPDATE condicional: el token es de un solo uso incluso ante
// verificaciones concurrentes.
func (r *UserRepository) VerifyEmail(email, token string) error {
	query := `
		UPDATE users
		SET is_verified = TRUE, verification_token = NULL
		WHERE email = $1 AND verification_token = $2`

	result, err := r.db.Exec(query, email, token)
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

// SetMfaCode guarda el código de un solo uso con su expiración absoluta
func (r *UserRepository) SetMfaCode(email, code string, expiry time.Time) error {
	query := `UPDATE users SET mfa_secret = $1, mfa_code_expiry = $2 WHERE email = $3`

	_, err := r.db.Exec(query, code, expiry, email)
	return err
}

// ConsumeMfaCode verifica y limpia el código en una sola operación atómica.
// Si el código no coincide o ya expiró, devuelve ErrNotFound y no toca nada.
func (r *UserRepository) ConsumeMfaCode(email, code string, now time.Time) error {
	query := `
		UPDATE users
		SET mfa_secret = NULL, mfa_code_expiry = NULL
		WHERE email = $1 AND mfa_secret = $2 AND mfa_code_expiry > $3`

	result, err := r.db.Exec(query, email, code, now)
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

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *UserRepository) scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	var verificationToken, mfaSecret sql.NullString
	var mfaCodeExpiry sql.NullTime

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.IsVerified,
		&verificationToken,
		&user.IsMfaEnabled,
		&mfaSecret,
		&mfaCodeExpiry,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	user.VerificationToken = verificationToken.String
	user.MfaSecret = mfaSecret.String
	if mfaCodeExpiry.Valid {
		user.MfaCodeExpiry = &mfaCodeExpiry.Time
	}
	return user, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
