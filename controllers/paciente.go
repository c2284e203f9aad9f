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

var verPacientes = views.Link{Label: "Ver pacientes", URL: "/pacientes"}

// SubmitPacienteHandler stores a patient from the name, age and heart_rate fields.
func SubmitPacienteHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := models.PacienteForm{
			Name:      utils.FormValue(r, "name"),
			Age:       utils.FormValue(r, "age"),
			HeartRate: utils.FormValue(r, "heart_rate"),
		}
		if err := utils.Validate(form); err != nil {
			views.InvalidForm(w)
			return
		}
		edad, errEdad := utils.ParseInt(form.Age)
		frecuencia, errFrecuencia := utils.ParseInt(form.HeartRate)
		if errEdad != nil || errFrecuencia != nil {
			views.InvalidForm(w)
			return
		}

		paciente := models.Paciente{Nombre: form.Name, Edad: edad, FrecuenciaCardiaca: frecuencia}
		if err := repository.CreatePaciente(r.Context(), db, &paciente); err != nil {
			logger.Errorf("Error creating patient: %v", err)
			views.ServerError(w, "Error al guardar los datos en la base de datos.")
			return
		}

		views.Success(w, "Paciente Guardado", fmt.Sprintf("Paciente %s guardado en la base de datos.", paciente.Nombre))
	}
}

// GetPacientesHandler renders every patient with a delete form per row.
func GetPacientesHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pacientes, err := repository.GetAllPacientes(r.Context(), db)
		if err != nil {
			logger.Errorf("Error getting patients: %v", err)
			views.ServerError(w, "Error al obtener los datos.")
			return
		}
		views.Render(w, http.StatusOK, "pacientes.html", pacientes)
	}
}

// BuscarPacientesHandler filters patients by name_search and age_search.
// Both filters are optional.
func BuscarPacientesHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		edad, err := utils.ParseOptionalInt(utils.QueryValue(r, "age_search"))
		if err != nil {
			views.Fail(w, http.StatusBadRequest, "Error: la edad debe ser un número.")
			return
		}
		filtro := models.PacienteFiltro{Nombre: utils.QueryValue(r, "name_search"), Edad: edad}

		pacientes, err := repository.SearchPacientes(r.Context(), db, filtro)
		if err != nil {
			logger.Errorf("Error searching patients: %v", err)
			views.ServerError(w, "Error al obtener los datos.")
			return
		}
		views.Render(w, http.StatusOK, "pacientes_tabla.html", views.PacienteTable{
			Title:     "Resultados de Búsqueda",
			Heading:   "Resultados de Búsqueda",
			Pacientes: pacientes,
		})
	}
}

// OrdenarPacientesHandler lists patients from highest to lowest heart rate.
func OrdenarPacientesHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pacientes, err := repository.GetPacientesByFrecuencia(r.Context(), db)
		if err != nil {
			logger.Errorf("Error sorting patients: %v", err)
			views.ServerError(w, "Error al obtener los datos.")
			return
		}
		views.Render(w, http.StatusOK, "pacientes_tabla.html", views.PacienteTable{
			Title:     "Pacientes Ordenados",
			Heading:   "Pacientes Ordenados por Frecuencia Cardiaca",
			Pacientes: pacientes,
		})
	}
}

// EliminarPacienteHandler deletes the patient given by the form field id.
// The confirmation checkbox is checked in the browser only.
func EliminarPacienteHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.ParseID(utils.FormValue(r, "id"))
		if !ok {
			views.Fail(w, http.StatusBadRequest, "Error: ID del paciente inválido.", views.Home)
			return
		}

		err := repository.DeletePaciente(r.Context(), db, id)
		if errors.Is(err, repository.ErrNotFound) {
			views.Fail(w, http.StatusNotFound, fmt.Sprintf("No se encontró ningún paciente con ID %d.", id), views.Home, verPacientes)
			return
		}
		if err != nil {
			logger.Errorf("Error deleting patient %d: %v", id, err)
			views.ServerError(w, "Error al eliminar el paciente de la base de datos.")
			return
		}

		views.Success(w, "Paciente Eliminado", fmt.Sprintf("Paciente con ID %d eliminado exitosamente.", id), views.Home, verPacientes)
	}
}
