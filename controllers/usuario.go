package controllers

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/kelydev/apiClinica/logger"
	"github.com/kelydev/apiClinica/models"
	"github.com/kelydev/apiClinica/repository"
	"github.com/kelydev/apiClinica/utils"
	"github.com/kelydev/apiClinica/views"
)

var verUsuarios = views.Link{Label: "Ver usuarios", URL: "/ver-usuarios"}

// BuscarUsuariosHandler returns the users whose name contains ?query=.
func BuscarUsuariosHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		usuarios, err := repository.SearchUsuarios(r.Context(), db, utils.QueryValue(r, "query"))
		if err != nil {
			logger.Errorf("Error searching users: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Error en la consulta"})
			return
		}
		writeJSON(w, http.StatusOK, usuarios)
	}
}

// VerUsuariosHandler renders the user table.
func VerUsuariosHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		usuarios, err := repository.GetAllUsuarios(r.Context(), db)
		if err != nil {
			logger.Errorf("Error getting users: %v", err)
			views.ServerError(w, "Error al obtener los usuarios.")
			return
		}
		views.Render(w, http.StatusOK, "usuarios.html", usuarios)
	}
}

// EliminarUsuarioHandler deletes the user given by the form field id.
func EliminarUsuarioHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.ParseID(utils.FormValue(r, "id"))
		if !ok {
			views.Fail(w, http.StatusBadRequest, "Error: ID del usuario inválido.", views.Home)
			return
		}

		err := repository.DeleteUsuario(r.Context(), db, id)
		if errors.Is(err, repository.ErrNotFound) {
			views.Fail(w, http.StatusNotFound, fmt.Sprintf("No se encontró ningún usuario con ID %d.", id), views.Home, verUsuarios)
			return
		}
		if err != nil {
			logger.Errorf("Error deleting user %d: %v", id, err)
			views.Fail(w, http.StatusInternalServerError, "Error al eliminar el usuario de la base de datos.", views.Home)
			return
		}

		views.Success(w, "Usuario Eliminado", fmt.Sprintf("Usuario con ID %d eliminado exitosamente.", id), views.Home, verUsuarios)
	}
}

// EditarUsuarioHandler renames a user or changes their role.
func EditarUsuarioHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := models.EdicionUsuario{
			ID:            utils.FormValue(r, "id"),
			NombreUsuario: utils.FormValue(r, "nombre_usuario"),
			TipoUsuario:   utils.FormValue(r, "tipo_usuario"),
		}
		id, ok := utils.ParseID(form.ID)
		if err := utils.Validate(form); err != nil || !ok {
			views.Fail(w, http.StatusBadRequest, "Error: Datos inválidos para editar el usuario.", views.Home)
			return
		}

		err := repository.UpdateUsuario(r.Context(), db, models.Usuario{ID: id, NombreUsuario: form.NombreUsuario, TipoUsuario: form.TipoUsuario})
		switch {
		case errors.Is(err, repository.ErrNotFound):
			views.Fail(w, http.StatusNotFound, fmt.Sprintf("No se encontró ningún usuario con ID %d.", id), views.Home, verUsuarios)
			return
		case errors.Is(err, repository.ErrUsernameTaken):
			views.Fail(w, http.StatusConflict, "El nombre de usuario ya está en uso", views.Home, verUsuarios)
			return
		case err != nil:
			logger.Errorf("Error updating user %d: %v", id, err)
			views.Fail(w, http.StatusInternalServerError, "Error al actualizar el usuario.", views.Home)
			return
		}

		views.Success(w, "Usuario Editado", fmt.Sprintf("Usuario con ID %d actualizado correctamente.", id), views.Home, verUsuarios)
	}
}
