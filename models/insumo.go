package models

import "time"

// Insumo represents a supply acquired for a department.
type Insumo struct {
	ID               int        `json:"id" db:"id"`
	Nombre           string     `json:"nombre" db:"nombre"`
	Cantidad         int        `json:"cantidad" db:"cantidad"`
	Proveedor        string     `json:"proveedor" db:"proveedor"`
	FechaAdquisicion *time.Time `json:"fecha_adquisicion" db:"fecha_adquisicion"`
	DepartamentoID   int        `json:"departamento_id" db:"departamento_id"`
}

// InsumoForm holds the raw /add-insumo fields before conversion. Numbers and
// the optional date are checked when they are parsed.
type InsumoForm struct {
	Nombre         string `validate:"required"`
	Cantidad       string `validate:"required"`
	Proveedor      string `validate:"required"`
	Fecha          string
	DepartamentoID string `validate:"required"`
}
