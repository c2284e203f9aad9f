package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/kelydev/apiClinica/models"
)

const pacienteColumns = `id, nombre, edad, frecuencia_cardiaca`

// CreatePaciente inserts a patient.
func CreatePaciente(ctx context.Context, db *sql.DB, p *models.Paciente) error {
	query := `INSERT INTO pacientes (nombre, edad, frecuencia_cardiaca) VALUES ($1, $2, $3) RETURNING id`
	if err := db.QueryRowContext(ctx, query, p.Nombre, p.Edad, p.FrecuenciaCardiaca).Scan(&p.ID); err != nil {
		return fmt.Errorf("error inserting patient: %w", err)
	}
	return nil
}

// GetAllPacientes lists every patient by ID.
func GetAllPacientes(ctx context.Context, db *sql.DB) ([]models.Paciente, error) {
	return queryPacientes(ctx, db, `SELECT `+pacienteColumns+` FROM pacientes ORDER BY id`)
}

// GetPacientesByFrecuencia lists patients from highest to lowest heart rate.
func GetPacientesByFrecuencia(ctx context.Context, db *sql.DB) ([]models.Paciente, error) {
	return queryPacientes(ctx, db, `SELECT `+pacienteColumns+` FROM pacientes ORDER BY frecuencia_cardiaca DESC, id`)
}

// SearchPacientes filters patients by a name substring and/or an exact age.
// Every filter value is bound as a parameter.
func SearchPacientes(ctx context.Context, db *sql.DB, f models.PacienteFiltro) ([]models.Paciente, error) {
	var conditions []string
	args := []any{}
	placeholderCount := 1

	if f.Nombre != "" {
		conditions = append(conditions, fmt.Sprintf(`nombre ILIKE $%d`, placeholderCount))
		args = append(args, "%"+f.Nombre+"%")
		placeholderCount++
	}
	if f.Edad != nil {
		conditions = append(conditions, fmt.Sprintf(`edad = $%d`, placeholderCount))
		args = append(args, *f.Edad)
		placeholderCount++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " AND " + strings.Join(conditions, " AND ")
	}

	query := `SELECT ` + pacienteColumns + ` FROM pacientes WHERE 1=1` + whereClause + ` ORDER BY id`
	return queryPacientes(ctx, db, query, args...)
}

func queryPacientes(ctx context.Context, db *sql.DB, query string, args ...any) ([]models.Paciente, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying patients: %w", err)
	}
	defer rows.Close()

	pacientes := []models.Paciente{}
	for rows.Next() {
		var p models.Paciente
		if err := rows.Scan(&p.ID, &p.Nombre, &p.Edad, &p.FrecuenciaCardiaca); err != nil {
			return nil, fmt.Errorf("error scanning patient row: %w", err)
		}
		pacientes = append(pacientes, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating through patient rows: %w", err)
	}
	return pacientes, nil
}

// DeletePaciente deletes a patient by ID.
func DeletePaciente(ctx context.Context, db *sql.DB, id int) error {
	res, err := db.ExecContext(ctx, `DELETE FROM pacientes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting patient: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	return affectedOrNotFound(n)
}
