package repository

import "errors"

var (
	// ErrNotFound cubre tanto el registro inexistente como el registro
	// de otro usuario: la respuesta debe ser indistinguible
	ErrNotFound = errors.New("registro no encontrado")

	// ErrDuplicate indica violación de unicidad (por ejemplo, email ya registrado)
	ErrDuplicate = errors.New("el registro ya existe")
)
