package models

import "time"

// Strategy es una colección nombrada de indicadores y condiciones.
// Los elementos son etiquetas libres; el servidor no las evalúa.
type Strategy struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	Indicators []string  `json:"indicators"`
	Conditions []string  `json:"conditions"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type StrategyInput struct {
	Name       string   `json:"name" binding:"required"`
	Indicators []string `json:"indicators" binding:"required,min=1,dive,required"`
	Conditions []string `json:"conditions" binding:"required,min=1,dive,required"`
}

// StrategyUpdateInput permite reemplazar cualquier subconjunto de campos.
// Los campos ausentes quedan como están.
type StrategyUpdateInput struct {
	Name       *string   `json:"name" binding:"omitempty,min=1"`
	Indicators *[]string `json:"indicators" binding:"omitempty,min=1,dive,required"`
	Conditions *[]string `json:"conditions" binding:"omitempty,min=1,dive,required"`
}
