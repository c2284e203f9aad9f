package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kelydev/apiClinica/models"
)

// CreateInsumo inserts a supply record. A nil FechaAdquisicion is stored as NULL.
func CreateInsumo(ctx context.Context, db *sql.DB, in *models.Insumo) error {
	query := `INSERT INTO insumos (nombre, cantidad, proveedor, fecha_adquisicion, departamento_id) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var fecha sql.NullTime
	if in.FechaAdquisicion != nil {
		fecha = sql.NullTime{Time: *in.FechaAdquisicion, Valid: true}
	}
	err := db.QueryRowContext(ctx, query, in.Nombre, in.Cantidad, in.Proveedor, fecha, in.DepartamentoID).Scan(&in.ID)
	if err != nil {
		return fmt.Errorf("error inserting supply: %w", err)
	}
	return nil
}
