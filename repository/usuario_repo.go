package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kelydev/apiClinica/models"
	"golang.org/x/crypto/bcrypt"
)

// CreateUsuario hashes the plaintext password and inserts the user.
func CreateUsuario(ctx context.Context, db *sql.DB, u *models.Usuario, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	query := `INSERT INTO usuarios (nombre_usuario, password_hash, tipo_usuario) VALUES ($1, $2, $3) RETURNING id`
	err = db.QueryRowContext(ctx, query, u.NombreUsuario, string(hashedPassword), u.TipoUsuario).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("error inserting user: %w", err)
	}

	u.PasswordHash = string(hashedPassword)
	return nil
}

// GetUsuarioByNombre retrieves a user, including the password hash, by username.
func GetUsuarioByNombre(ctx context.Context, db *sql.DB, nombre string) (*models.Usuario, error) {
	var u models.Usuario
	query := `SELECT id, nombre_usuario, password_hash, tipo_usuario FROM usuarios WHERE nombre_usuario = $1`
	err := db.QueryRowContext(ctx, query, nombre).Scan(&u.ID, &u.NombreUsuario, &u.PasswordHash, &u.TipoUsuario)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // User not found, return nil error and nil user
		}
		return nil, fmt.Errorf("error getting user by username: %w", err)
	}
	return &u, nil
}

// GetUsuarioByID retrieves a user without the password hash.
func GetUsuarioByID(ctx context.Context, db *sql.DB, id int) (*models.Usuario, error) {
	var u models.Usuario
	query := `SELECT id, nombre_usuario, tipo_usuario FROM usuarios WHERE id = $1`
	err := db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.NombreUsuario, &u.TipoUsuario)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting user by ID: %w", err)
	}
	return &u, nil
}

// GetTipoUsuarioByCodigo returns the role granted by an access code.
func GetTipoUsuarioByCodigo(ctx context.Context, db *sql.DB, codigo string) (string, error) {
	var tipo string
	err := db.QueryRowContext(ctx, `SELECT tipo_usuario FROM codigos_acceso WHERE codigo = $1`, codigo).Scan(&tipo)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrInvalidAccessCode
		}
		return "", fmt.Errorf("error checking access code: %w", err)
	}
	return tipo, nil
}

// UpsertCodigoAcceso provisions an access code, replacing the role of an existing one.
func UpsertCodigoAcceso(ctx context.Context, db *sql.DB, c models.CodigoAcceso) error {
	query := `INSERT INTO codigos_acceso (codigo, tipo_usuario) VALUES ($1, $2)
		ON CONFLICT (codigo) DO UPDATE SET tipo_usuario = EXCLUDED.tipo_usuario`
	if _, err := db.ExecContext(ctx, query, c.Codigo, c.TipoUsuario); err != nil {
		return fmt.Errorf("error saving access code: %w", err)
	}
	return nil
}

// SearchUsuarios returns users whose name contains the given text, case-insensitively.
func SearchUsuarios(ctx context.Context, db *sql.DB, text string) ([]models.Usuario, error) {
	query := `SELECT id, nombre_usuario, tipo_usuario FROM usuarios WHERE nombre_usuario ILIKE $1 ORDER BY nombre_usuario`
	return queryUsuarios(ctx, db, query, "%"+text+"%")
}

// GetAllUsuarios lists every user.
func GetAllUsuarios(ctx context.Context, db *sql.DB) ([]models.Usuario, error) {
	return queryUsuarios(ctx, db, `SELECT id, nombre_usuario, tipo_usuario FROM usuarios ORDER BY id`)
}

func queryUsuarios(ctx context.Context, db *sql.DB, query string, args ...any) ([]models.Usuario, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	defer rows.Close()

	usuarios := []models.Usuario{}
	for rows.Next() {
		var u models.Usuario
		if err := rows.Scan(&u.ID, &u.NombreUsuario, &u.TipoUsuario); err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		usuarios = append(usuarios, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating through user rows: %w", err)
	}
	return usuarios, nil
}

// UpdateUsuario changes a user's name and role.
func UpdateUsuario(ctx context.Context, db *sql.DB, u models.Usuario) error {
	res, err := db.ExecContext(ctx, `UPDATE usuarios SET nombre_usuario = $1, tipo_usuario = $2 WHERE id = $3`,
		u.NombreUsuario, u.TipoUsuario, u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("error updating user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	return affectedOrNotFound(n)
}

// DeleteUsuario deletes a user by ID.
func DeleteUsuario(ctx context.Context, db *sql.DB, id int) error {
	res, err := db.ExecContext(ctx, `DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	return affectedOrNotFound(n)
}

// CheckPasswordHash compares a plaintext password with a stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil // Returns true if password matches hash
}
