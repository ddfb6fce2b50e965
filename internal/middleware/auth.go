package middleware

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/AgusMolinaCode/Trading_Bot_Api.git/internal/config"
	"github.com/AgusMolinaCode/Trading_Bot_Api.git/internal/models"
	"github.com/AgusMolinaCode/Trading_Bot_Api.git/internal/repository"
	"github.com/AgusMolinaCode/Trading_Bot_Api.git/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Coste de bcrypt equivalente a 12 rondas de salt
const bcryptCost = 12

const (
	sessionTokenTTL      = time.Hour
	verificationTokenTTL = time.Hour
	mfaCodeTTL           = 10 * time.Minute
)

// UserStore es la vista de persistencia que necesita la autenticación.
// Las operaciones de un solo uso (VerifyEmail, ConsumeMfaCode) deben ser
// atómicas: verificar y limpiar en un solo paso.
type UserStore interface {
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserById(id string) (*models.User, error)
	UpdateProfile(user *models.User) error
	VerifyEmail(email, token string) error
	SetMfaCode(email, code string, expiry time.Time) error
	ConsumeMfaCode(email, code string, now time.Time) error
}

type AuthHandler struct {
	users    UserStore
	notifier services.Notifier
	cfg      *config.Config
}

func NewAuthHandler(users UserStore, notifier services.Notifier, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		users:    users,
		notifier: notifier,
		cfg:      cfg,
	}
}

// GenerateToken emite el token de sesión firmado con expiración de una hora
func (h *AuthHandler) GenerateToken(userID, email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"email":  email,
		"exp":    time.Now().Add(sessionTokenTTL).Unix(),
	})

	return token.SignedString([]byte(h.cfg.JWTSecret))
}

// generateVerificationToken emite el token de verificación ligado al email
func (h *AuthHandler) generateVerificationToken(email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(verificationTokenTTL).Unix(),
	})

	return token.SignedString([]byte(h.cfg.JWTSecret))
}

func (h *AuthHandler) parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("token inválido")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("token inválido")
	}
	return claims, nil
}

// AuthMiddleware protege las rutas de recursos propios. Deja el id y el
// email del usuario en el contexto para los handlers.
func (h *AuthHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token no proporcionado"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := h.parseToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido"})
			c.Abort()
			return
		}

		userID, _ := claims["userId"].(string)
		email, _ := claims["email"].(string)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido"})
			c.Abort()
			return
		}

		c.Set("userId", userID)
		c.Set("userEmail", email)
		c.Next()
	}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var signup models.SignupInput
	if err := c.ShouldBindJSON(&signup); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Verificar si el email ya está registrado
	if _, err := h.users.GetUserByEmail(signup.Email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El email ya está registrado"})
		return
	}

	// Hash de la contraseña, siempre explícito en el handler
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(signup.Password), bcryptCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al procesar la contraseña"})
		return
	}

	verificationToken, err := h.generateVerificationToken(signup.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al generar el token de verificación"})
		return
	}

	user := &models.User{
		ID:                uuid.NewString(),
		Email:             signup.Email,
		Password:          string(hashedPassword),
		IsVerified:        false,
		VerificationToken: verificationToken,
		CreatedAt:         time.Now(),
	}

	if err := h.users.CreateUser(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "El email ya está registrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al crear usuario"})
		return
	}

	// El fallo de envío no revierte el registro, pero queda registrado
	// para el operador: el usuario no tiene otra forma de recibir el token
	verificationLink := fmt.Sprintf("%s/user/verify/%s", h.cfg.BaseURL, verificationToken)
	body := fmt.Sprintf(`
	<div>
	<p>Hacé clic en este enlace para verificar tu email:</p>
	<a href="%s">%s</a>
	</div>
	`, verificationLink, verificationLink)

	if err := h.notifier.Send(user.Email, "Verificá tu cuenta", body); err != nil {
		log.Printf("ADVERTENCIA: no se pudo enviar el email de verificación a %s: %v", user.Email, err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registro exitoso. Revisá tu email para verificar la cuenta",
	})
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	tokenString := c.Param("token")

	claims, err := h.parseToken(tokenString)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Enlace de verificación inválido o expirado"})
		return
	}

	email, _ := claims["email"].(string)
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Enlace de verificación inválido o expirado"})
		return
	}

	// El token debe coincidir con el pendiente: es de un solo uso
	if err := h.users.VerifyEmail(email, tokenString); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Enlace de verificación inválido o expirado"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cuenta verificada correctamente"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var login models.LoginInput
	if err := c.ShouldBindJSON(&login); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Misma respuesta para usuario inexistente y contraseña incorrecta
	user, err := h.users.GetUserByEmail(login.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email o contraseña incorrectos"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(login.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email o contraseña incorrectos"})
		return
	}

	if h.cfg.RequireVerifiedLogin && !user.IsVerified {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "La cuenta no está verificada"})
		return
	}

	if user.IsMfaEnabled {
		mfaCode := fmt.Sprintf("%06d", 100000+rand.Intn(900000))
		expiry := time.Now().Add(mfaCodeTTL)

		if err := h.users.SetMfaCode(user.Email, mfaCode, expiry); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al generar el código MFA"})
			return
		}

		if err := h.notifier.Send(user.Email, "Tu código MFA", "Tu código MFA es: "+mfaCode); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al enviar el código MFA"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"mfa_required": true,
			"message":      "Código MFA enviado. Verificá para continuar",
		})
		return
	}

	token, err := h.GenerateToken(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al generar el token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Inicio de sesión exitoso",
		"token":   token,
	})
}

func (h *AuthHandler) VerifyMfa(c *gin.Context) {
	var input models.MfaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.GetUserByEmail(input.Email)
	if err != nil || !user.IsMfaEnabled || user.MfaSecret == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "MFA no está habilitado o no hay un código pendiente"})
		return
	}

	// Verificación y limpieza en un solo paso: dos canjes concurrentes del
	// mismo código producen a lo sumo un éxito
	if err := h.users.ConsumeMfaCode(input.Email, input.MfaCode, time.Now()); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Código MFA inválido o expirado"})
		return
	}

	token, err := h.GenerateToken(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al generar el token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Inicio de sesión exitoso",
		"token":   token,
	})
}
