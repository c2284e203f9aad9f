package models

// Medico represents a doctor.
type Medico struct {
	ID           int    `json:"id" db:"id"`
	Nombre       string `json:"nombre" db:"nombre" validate:"required"`
	Especialidad string `json:"especialidad" db:"especialidad" validate:"required"`
}
