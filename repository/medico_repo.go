package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kelydev/apiClinica/models"
)

// CreateMedico inserts a doctor.
func CreateMedico(ctx context.Context, db *sql.DB, m *models.Medico) error {
	query := `INSERT INTO medicos (nombre, especialidad) VALUES ($1, $2) RETURNING id`
	if err := db.QueryRowContext(ctx, query, m.Nombre, m.Especialidad).Scan(&m.ID); err != nil {
		return fmt.Errorf("error inserting doctor: %w", err)
	}
	return nil
}

// GetAllMedicos lists every doctor.
func GetAllMedicos(ctx context.Context, db *sql.DB) ([]models.Medico, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, nombre, especialidad FROM medicos ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("error querying doctors: %w", err)
	}
	defer rows.Close()

	medicos := []models.Medico{}
	for rows.Next() {
		var m models.Medico
		if err := rows.Scan(&m.ID, &m.Nombre, &m.Especialidad); err != nil {
			return nil, fmt.Errorf("error scanning doctor row: %w", err)
		}
		medicos = append(medicos, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating through doctor rows: %w", err)
	}
	return medicos, nil
}
