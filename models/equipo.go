package models

// Equipo represents a piece of equipment in the inventory.
type Equipo struct {
	ID          int    `json:"id" db:"id"`
	Nombre      string `json:"nombre" db:"nombre" validate:"required"`
	Descripcion string `json:"descripcion" db:"descripcion" validate:"required"`
}
