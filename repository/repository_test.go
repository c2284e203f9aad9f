package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/kelydev/apiClinica/models"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

func q(s string) string { return regexp.QuoteMeta(s) }

func TestCreateUsuarioHashesPassword(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(q(`INSERT INTO usuarios (nombre_usuario, password_hash, tipo_usuario) VALUES ($1, $2, $3) RETURNING id`)).
		WithArgs("alice", sqlmock.AnyArg(), "medico").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	u := &models.Usuario{NombreUsuario: "alice", TipoUsuario: "medico"}
	require.NoError(t, CreateUsuario(context.Background(), db, u, "secreto"))

	assert.Equal(t, 7, u.ID)
	assert.NotEqual(t, "secreto", u.PasswordHash)
	assert.True(t, CheckPasswordHash("secreto", u.PasswordHash))
	assert.False(t, CheckPasswordHash("otro", u.PasswordHash))
}

func TestCreateUsuarioUniqueViolation(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(q(`INSERT INTO usuarios`)).
		WillReturnError(&pq.Error{Code: "23505"})

	err := CreateUsuario(context.Background(), db, &models.Usuario{NombreUsuario: "alice", TipoUsuario: "admin"}, "x")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestGetUsuarioByNombreNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(q(`FROM usuarios WHERE nombre_usuario = $1`)).
		WithArgs("nadie").
		WillReturnError(sql.ErrNoRows)

	u, err := GetUsuarioByNombre(context.Background(), db, "nadie")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestGetUsuarioByNombre(t *testing.T) {
	db, mock := newMock(t)
	hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	mock.ExpectQuery(q(`FROM usuarios WHERE nombre_usuario = $1`)).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre_usuario", "password_hash", "tipo_usuario"}).
			AddRow(1, "alice", string(hash), "medico"))

	u, err := GetUsuarioByNombre(context.Background(), db, "alice")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "medico", u.TipoUsuario)
	assert.True(t, CheckPasswordHash("pw", u.PasswordHash))
}

func TestGetTipoUsuarioByCodigo(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(q(`SELECT tipo_usuario FROM codigos_acceso WHERE codigo = $1`)).
		WithArgs("MED-1").
		WillReturnRows(sqlmock.NewRows([]string{"tipo_usuario"}).AddRow("medico"))
	mock.ExpectQuery(q(`SELECT tipo_usuario FROM codigos_acceso WHERE codigo = $1`)).
		WithArgs("bogus").
		WillReturnError(sql.ErrNoRows)

	tipo, err := GetTipoUsuarioByCodigo(context.Background(), db, "MED-1")
	require.NoError(t, err)
	assert.Equal(t, "medico", tipo)

	_, err = GetTipoUsuarioByCodigo(context.Background(), db, "bogus")
	assert.ErrorIs(t, err, ErrInvalidAccessCode)
}

func TestSearchUsuariosBindsPattern(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(q(`WHERE nombre_usuario ILIKE $1`)).
		WithArgs("%al%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre_usuario", "tipo_usuario"}).
			AddRow(1, "alice", "medico").
			AddRow(2, "alberto", "admin"))

	usuarios, err := SearchUsuarios(context.Background(), db, "al")
	require.NoError(t, err)
	assert.Len(t, usuarios, 2)
	assert.Equal(t, "alberto", usuarios[1].NombreUsuario)
}

func TestUpdateUsuario(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(q(`UPDATE usuarios SET nombre_usuario = $1, tipo_usuario = $2 WHERE id = $3`)).
		WithArgs("bob", "admin", 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q(`UPDATE usuarios`)).
		WithArgs("bob", "admin", 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, UpdateUsuario(context.Background(), db, models.Usuario{ID: 3, NombreUsuario: "bob", TipoUsuario: "admin"}))
	assert.ErrorIs(t, UpdateUsuario(context.Background(), db, models.Usuario{ID: 99, NombreUsuario: "bob", TipoUsuario: "admin"}), ErrNotFound)
}

func TestDeleteUsuarioTwiceIsNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(q(`DELETE FROM usuarios WHERE id = $1`)).WithArgs(5).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q(`DELETE FROM usuarios WHERE id = $1`)).WithArgs(5).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, DeleteUsuario(context.Background(), db, 5))
	assert.ErrorIs(t, DeleteUsuario(context.Background(), db, 5), ErrNotFound)
}

func TestUpsertCodigoAcceso(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(q(`INSERT INTO codigos_acceso (codigo, tipo_usuario) VALUES ($1, $2)`)).
		WithArgs("ADM-1", "admin").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, UpsertCodigoAcceso(context.Background(), db, models.CodigoAcceso{Codigo: "ADM-1", TipoUsuario: "admin"}))
}

func TestCreateEquiposCommits(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(q(insertEquipo)).WithArgs("Monitor", "Signos vitales").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(q(insertEquipo)).WithArgs("Bomba", "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectCommit()

	equipos := []models.Equipo{{Nombre: "Monitor", Descripcion: "Signos vitales"}, {Nombre: "Bomba"}}
	n, err := CreateEquipos(context.Background(), db, equipos)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, equipos[1].ID)
}

func TestCreateEquiposRollsBack(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(q(insertEquipo)).WithArgs("Monitor", "x").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(q(insertEquipo)).WithArgs("Bomba", "y").
		WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	_, err := CreateEquipos(context.Background(), db, []models.Equipo{{Nombre: "Monitor", Descripcion: "x"}, {Nombre: "Bomba", Descripcion: "y"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestGetAllEquipos(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(q(`SELECT id, nombre, descripcion FROM equipo ORDER BY id`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre", "descripcion"}).AddRow(1, "Monitor", "x"))

	equipos, err := GetAllEquipos(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, []models.Equipo{{ID: 1, Nombre: "Monitor", Descripcion: "x"}}, equipos)
}

func TestCreateInsumo(t *testing.T) {
	db, mock := newMock(t)
	fecha := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(q(`INSERT INTO insumos (nombre, cantidad, proveedor, fecha_adquisicion, departamento_id)`)).
		WithArgs("Gasas", 10, "ACME", fecha, 3).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
	mock.ExpectQuery(q(`INSERT INTO insumos`)).
		WithArgs("Guantes", 5, "ACME", nil, 3).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	in := &models.Insumo{Nombre: "Gasas", Cantidad: 10, Proveedor: "ACME", FechaAdquisicion: &fecha, DepartamentoID: 3}
	require.NoError(t, CreateInsumo(context.Background(), db, in))
	assert.Equal(t, 4, in.ID)

	sinFecha := &models.Insumo{Nombre: "Guantes", Cantidad: 5, Proveedor: "ACME", DepartamentoID: 3}
	require.NoError(t, CreateInsumo(context.Background(), db, sinFecha))
	assert.Equal(t, 5, sinFecha.ID)
}

func TestSearchPacientesIsParameterized(t *testing.T) {
	db, mock := newMock(t)
	edad := 40
	mock.ExpectQuery(q(`FROM pacientes WHERE 1=1 AND nombre ILIKE $1 AND edad = $2 ORDER BY id`)).
		WithArgs("%Ju'an%", 40).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre", "edad", "frecuencia_cardiaca"}))

	pacientes, err := SearchPacientes(context.Background(), db, models.PacienteFiltro{Nombre: "Ju'an", Edad: &edad})
	require.NoError(t, err)
	assert.Empty(t, pacientes)
}

func TestSearchPacientesByAgeOnly(t *testing.T) {
	db, mock := newMock(t)
	edad := 40
	mock.ExpectQuery(q(`FROM pacientes WHERE 1=1 AND edad = $1 ORDER BY id`)).
		WithArgs(40).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre", "edad", "frecuencia_cardiaca"}).AddRow(1, "Juan", 40, 72))

	pacientes, err := SearchPacientes(context.Background(), db, models.PacienteFiltro{Edad: &edad})
	require.NoError(t, err)
	assert.Equal(t, []models.Paciente{{ID: 1, Nombre: "Juan", Edad: 40, FrecuenciaCardiaca: 72}}, pacientes)
}

func TestSearchPacientesWithoutFilters(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(q(`FROM pacientes WHERE 1=1 ORDER BY id`)).
		WithArgs().
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre", "edad", "frecuencia_cardiaca"}))

	_, err := SearchPacientes(context.Background(), db, models.PacienteFiltro{})
	assert.NoError(t, err)
}

func TestGetPacientesByFrecuencia(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(q(`ORDER BY frecuencia_cardiaca DESC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre", "edad", "frecuencia_cardiaca"}).
			AddRow(2, "Ana", 30, 95).
			AddRow(1, "Juan", 40, 72))

	pacientes, err := GetPacientesByFrecuencia(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, pacientes, 2)
	assert.Equal(t, 95, pacientes[0].FrecuenciaCardiaca)
}

func TestDeletePaciente(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(q(`DELETE FROM pacientes WHERE id = $1`)).WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q(`DELETE FROM pacientes WHERE id = $1`)).WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, DeletePaciente(context.Background(), db, 1))
	assert.ErrorIs(t, DeletePaciente(context.Background(), db, 1), ErrNotFound)
}

func TestMedicos(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(q(`INSERT INTO medicos (nombre, especialidad) VALUES ($1, $2) RETURNING id`)).
		WithArgs("Dra. Ruiz", "Cardiología").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(q(`SELECT id, nombre, especialidad FROM medicos`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre", "especialidad"}).AddRow(1, "Dra. Ruiz", "Cardiología"))

	m := &models.Medico{Nombre: "Dra. Ruiz", Especialidad: "Cardiología"}
	require.NoError(t, CreateMedico(context.Background(), db, m))
	assert.Equal(t, 1, m.ID)

	medicos, err := GetAllMedicos(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, []models.Medico{*m}, medicos)
}
