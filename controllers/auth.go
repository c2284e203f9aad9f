package controllers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/kelydev/apiClinica/logger"
	"github.com/kelydev/apiClinica/middleware"
	"github.com/kelydev/apiClinica/models"
	"github.com/kelydev/apiClinica/repository"
	"github.com/kelydev/apiClinica/session"
	"github.com/kelydev/apiClinica/utils"
	"github.com/kelydev/apiClinica/views"
)

// RegisterHandler handles user registration with a pre-provisioned access code.
func RegisterHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := models.Registro{
			NombreUsuario: utils.FormValue(r, "nombre_usuario"),
			Password:      utils.FormValue(r, "password"),
			CodigoAcceso:  utils.FormValue(r, "codigo_acceso"),
		}
		if err := utils.Validate(form); err != nil {
			views.InvalidForm(w)
			return
		}

		// Check if user already exists
		existing, err := repository.GetUsuarioByNombre(r.Context(), db, form.NombreUsuario)
		if err != nil {
			logger.Errorf("Error checking for existing user: %v", err)
			views.ServerError(w, "Error al verificar usuario existente")
			return
		}
		if existing != nil {
			views.Fail(w, http.StatusConflict, "El nombre de usuario ya está en uso")
			return
		}

		rol, err := repository.GetTipoUsuarioByCodigo(r.Context(), db, form.CodigoAcceso)
		if errors.Is(err, repository.ErrInvalidAccessCode) {
			views.Fail(w, http.StatusBadRequest, "Código de acceso inválido")
			return
		}
		if err != nil {
			logger.Errorf("Error checking access code: %v", err)
			views.ServerError(w, "Error al registrar usuario")
			return
		}

		user := &models.Usuario{NombreUsuario: form.NombreUsuario, TipoUsuario: rol}
		err = repository.CreateUsuario(r.Context(), db, user, form.Password)
		if errors.Is(err, repository.ErrUsernameTaken) {
			views.Fail(w, http.StatusConflict, "El nombre de usuario ya está en uso")
			return
		}
		if err != nil {
			logger.Errorf("Error creating user: %v", err)
			views.ServerError(w, "Error al registrar usuario")
			return
		}

		logger.Infof("registered user %q with role %s", user.NombreUsuario, user.TipoUsuario)
		http.Redirect(w, r, middleware.LoginPage, http.StatusSeeOther)
	}
}

// LoginHandler checks credentials and starts a session. A failed attempt
// leaves any current session in place.
func LoginHandler(db *sql.DB, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creds := models.Credentials{
			NombreUsuario: utils.FormValue(r, "nombre_usuario"),
			Password:      utils.FormValue(r, "password"),
		}
		if err := utils.Validate(creds); err != nil {
			views.InvalidForm(w)
			return
		}

		user, err := repository.GetUsuarioByNombre(r.Context(), db, creds.NombreUsuario)
		if err != nil {
			logger.Errorf("Error fetching user for login: %v", err)
			views.ServerError(w, "Error al iniciar sesión")
			return
		}
		if user == nil {
			views.Fail(w, http.StatusUnauthorized, "Error: Usuario no encontrado.")
			return
		}
		if !repository.CheckPasswordHash(creds.Password, user.PasswordHash) {
			views.Fail(w, http.StatusUnauthorized, "Error: Contraseña incorrecta.")
			return
		}

		err = sessions.Start(w, r, session.User{ID: user.ID, Username: user.NombreUsuario, Role: user.TipoUsuario})
		if err != nil {
			logger.Errorf("Error starting session: %v", err)
			views.ServerError(w, "Error al iniciar sesión")
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// LogoutHandler destroys the session and sends the browser to the login page.
func LogoutHandler(sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions.End(w, r)
		http.Redirect(w, r, middleware.LoginPage, http.StatusFound)
	}
}

// TipoUsuarioHandler returns the role of the current session.
func TipoUsuarioHandler() http.HandlerFunc {
	return middleware.WithUser(func(w http.ResponseWriter, r *http.Request, user session.User) {
		writeJSON(w, http.StatusOK, map[string]string{"tipo_usuario": user.Role})
	})
}

// MisDatosHandler shows the current user's own record.
func MisDatosHandler(db *sql.DB) http.HandlerFunc {
	return middleware.WithUser(func(w http.ResponseWriter, r *http.Request, user session.User) {
		u, err := repository.GetUsuarioByID(r.Context(), db, user.ID)
		if err != nil {
			logger.Errorf("Error fetching user %d: %v", user.ID, err)
			views.ServerError(w, "Error al obtener tus datos.")
			return
		}
		if u == nil {
			views.Fail(w, http.StatusNotFound, "Error al obtener tus datos.", views.Home)
			return
		}
		views.Render(w, http.StatusOK, "mis_datos.html", u)
	})
}
