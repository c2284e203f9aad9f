package controllers

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/kelydev/apiClinica/logger"
	"github.com/kelydev/apiClinica/models"
	"github.com/kelydev/apiClinica/repository"
	"github.com/kelydev/apiClinica/utils"
	"github.com/kelydev/apiClinica/views"
)

// GetMedicosHandler renders the doctor table.
func GetMedicosHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		medicos, err := repository.GetAllMedicos(r.Context(), db)
		if err != nil {
			logger.Errorf("Error getting doctors: %v", err)
			views.ServerError(w, "Error al obtener los datos.")
			return
		}
		views.Render(w, http.StatusOK, "medicos.html", medicos)
	}
}

// InsertarMedicoHandler stores a doctor from the medico_name and especialidad fields.
func InsertarMedicoHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		medico := models.Medico{
			Nombre:       utils.FormValue(r, "medico_name"),
			Especialidad: utils.FormValue(r, "especialidad"),
		}
		if err := utils.Validate(medico); err != nil {
			views.InvalidForm(w)
			return
		}

		if err := repository.CreateMedico(r.Context(), db, &medico); err != nil {
			logger.Errorf("Error creating doctor: %v", err)
			views.ServerError(w, "Error al insertar el médico.")
			return
		}

		views.Success(w, "Medico Guardado", fmt.Sprintf("Medico %s guardado en la base de datos.", medico.Nombre))
	}
}
