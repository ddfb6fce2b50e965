package config

import (
	"os"
)

// SMTPConfig contiene los datos de conexión al servidor de correo
type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

// Config agrupa toda la configuración del servidor. Se construye una sola vez
// en main y se pasa explícitamente a los handlers que la necesitan.
type Config struct {
	Port        string
	BaseURL     string
	DatabaseURL string
	JWTSecret   string
	AdminKey    string
	// Si está activo, el login rechaza cuentas sin verificar.
	// Por defecto desactivado para mantener la verificación de email "blanda".
	RequireVerifiedLogin bool
	SMTP                 SMTPConfig
}

func Load() *Config {
	port := getEnv("PORT", "8080")

	return &Config{
		Port:                 port,
		BaseURL:              getEnv("BASE_URL", "http://localhost:"+port),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		AdminKey:             os.Getenv("ADMIN_SECRET_KEY"),
		RequireVerifiedLogin: os.Getenv("REQUIRE_VERIFIED_LOGIN") == "true",
		SMTP: SMTPConfig{
			Host: os.Getenv("SMTP_HOST"),
			Port: os.Getenv("SMTP_PORT"),
			User: os.Getenv("SMTP_USER"),
			Pass: os.Getenv("SMTP_PASS"),
			From: os.Getenv("FROM_EMAIL"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
