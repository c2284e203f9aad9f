package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kelydev/apiClinica/models"
)

const insertEquipo = `INSERT INTO equipo (nombre, descripcion) VALUES ($1, $2) RETURNING id`

// CreateEquipo inserts a single piece of equipment.
func CreateEquipo(ctx context.Context, db *sql.DB, e *models.Equipo) error {
	if err := db.QueryRowContext(ctx, insertEquipo, e.Nombre, e.Descripcion).Scan(&e.ID); err != nil {
		return fmt.Errorf("error inserting equipment: %w", err)
	}
	return nil
}

// CreateEquipos inserts every row inside one transaction. Either all rows are
// committed or none are.
func CreateEquipos(ctx context.Context, db *sql.DB, equipos []models.Equipo) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("error starting import transaction: %w", err)
	}
	defer tx.Rollback() // no-op after Commit

	for i := range equipos {
		if err := tx.QueryRowContext(ctx, insertEquipo, equipos[i].Nombre, equipos[i].Descripcion).Scan(&equipos[i].ID); err != nil {
			return 0, fmt.Errorf("error inserting equipment row %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("error committing import transaction: %w", err)
	}
	return len(equipos), nil
}

// GetAllEquipos lists all equipment ordered by ID.
func GetAllEquipos(ctx context.Context, db *sql.DB) ([]models.Equipo, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, nombre, descripcion FROM equipo ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error querying equipment: %w", err)
	}
	defer rows.Close()

	equipos := []models.Equipo{}
	for rows.Next() {
		var e models.Equipo
		if err := rows.Scan(&e.ID, &e.Nombre, &e.Descripcion); err != nil {
			return nil, fmt.Errorf("error scanning equipment row: %w", err)
		}
		equipos = append(equipos, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating through equipment rows: %w", err)
	}
	return equipos, nil
}
