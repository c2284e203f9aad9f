package routes

import (
	"database/sql"
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"
	"github.com/kelydev/apiClinica/config"
	"github.com/kelydev/apiClinica/controllers"
	"github.com/kelydev/apiClinica/middleware"
	"github.com/kelydev/apiClinica/models"
	"github.com/kelydev/apiClinica/session"
)

// SetupRoutes configures the application routes.
func SetupRoutes(db *sql.DB, sessions *session.Manager, cfg *config.Config) *mux.Router {
	r := mux.NewRouter()
	auth := middleware.NewAuth(sessions)

	// --- Public Routes ---
	r.HandleFunc("/menu", controllers.MenuHandler()).Methods("GET")
	r.HandleFunc("/registrar", controllers.RegisterHandler(db)).Methods("POST")
	r.HandleFunc("/login", controllers.LoginHandler(db, sessions)).Methods("POST")
	r.HandleFunc("/logout", controllers.LogoutHandler(sessions)).Methods("GET")

	// --- Authenticated Routes (any role) ---
	authRouter := r.NewRoute().Subrouter()
	authRouter.Use(auth.RequireLogin)

	authRouter.HandleFunc("/", controllers.IndexHandler(filepath.Join(cfg.PublicDir, "index.html"))).Methods("GET")
	authRouter.HandleFunc("/tipo-usuario", controllers.TipoUsuarioHandler()).Methods("GET")
	authRouter.HandleFunc("/mis-datos", controllers.MisDatosHandler(db)).Methods("GET")

	// --- Admin Routes ---
	adminRouter := r.NewRoute().Subrouter()
	adminRouter.Use(auth.RequireLogin, auth.RequireRole(models.RolAdmin))

	adminRouter.HandleFunc("/buscar", controllers.BuscarUsuariosHandler(db)).Methods("GET")
	adminRouter.HandleFunc("/ver-usuarios", controllers.VerUsuariosHandler(db)).Methods("GET")
	adminRouter.HandleFunc("/eliminar-usuario", controllers.EliminarUsuarioHandler(db)).Methods("POST")
	adminRouter.HandleFunc("/editar-usuario", controllers.EditarUsuarioHandler(db)).Methods("POST")

	adminRouter.HandleFunc("/upload", controllers.UploadEquiposHandler(db, cfg.UploadDir)).Methods("POST")
	adminRouter.HandleFunc("/insertar-equipo", controllers.InsertarEquipoHandler(db)).Methods("POST")
	adminRouter.HandleFunc("/equipos", controllers.GetEquiposHandler(db)).Methods("GET")
	adminRouter.HandleFunc("/download", controllers.DownloadEquiposHandler(db)).Methods("GET")

	adminRouter.HandleFunc("/medicos", controllers.GetMedicosHandler(db)).Methods("GET")
	adminRouter.HandleFunc("/insertar-medico", controllers.InsertarMedicoHandler(db)).Methods("POST")

	// --- Clinical Routes (admin and medico) ---
	clinicRouter := r.NewRoute().Subrouter()
	clinicRouter.Use(auth.RequireLogin, auth.RequireRole(models.RolAdmin, models.RolMedico))

	clinicRouter.HandleFunc("/add-insumo", controllers.AddInsumoHandler(db)).Methods("POST")
	clinicRouter.HandleFunc("/submit-data", controllers.SubmitPacienteHandler(db)).Methods("POST")
	clinicRouter.HandleFunc("/pacientes", controllers.GetPacientesHandler(db)).Methods("GET")
	clinicRouter.HandleFunc("/buscar-pacientes", controllers.BuscarPacientesHandler(db)).Methods("GET")
	clinicRouter.HandleFunc("/ordenar-pacientes", controllers.OrdenarPacientesHandler(db)).Methods("GET")
	clinicRouter.HandleFunc("/eliminar-paciente", controllers.EliminarPacienteHandler(db)).Methods("POST")

	// Static file server (public)
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.PublicDir)))

	return r
}
