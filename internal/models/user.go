package models

import (
	"time"
)

type User struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Password   string `json:"-"` // El "-" evita que se serialice en JSON
	IsVerified bool   `json:"is_verified"`
	// Token de verificación pendiente; se limpia al usarse
	VerificationToken string `json:"-"`
	IsMfaEnabled      bool   `json:"is_mfa_enabled"`
	// Código MFA de un solo uso con su expiración absoluta.
	// No es un secreto TOTP, es el código numérico enviado por email.
	MfaSecret     string     `json:"-"`
	MfaCodeExpiry *time.Time `json:"-"`
	CreatedAt     time.Time  `json:"created_at"`
}

// SignupInput valida el registro: email bien formado y
// contraseña de entre 5 y 255 caracteres
type SignupInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=5,max=255"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type MfaInput struct {
	Email   string `json:"email" binding:"required,email"`
	MfaCode string `json:"mfa_code" binding:"required"`
}

type UpdateProfileInput struct {
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,min=5,max=255"`
}
