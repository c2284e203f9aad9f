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

// AddInsumoHandler stores a supply acquired for a department.
func AddInsumoHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := models.InsumoForm{
			Nombre:         utils.FormValue(r, "nombre"),
			Cantidad:       utils.FormValue(r, "cantidad"),
			Proveedor:      utils.FormValue(r, "proveedor"),
			Fecha:          utils.FormValue(r, "fecha"),
			DepartamentoID: utils.FormValue(r, "departamento_id"),
		}
		if err := utils.Validate(form); err != nil {
			views.InvalidForm(w)
			return
		}

		cantidad, errCantidad := utils.ParseInt(form.Cantidad)
		departamento, errDepartamento := utils.ParseInt(form.DepartamentoID)
		fecha, errFecha := utils.ParseOptionalDate(form.Fecha)
		if errCantidad != nil || errDepartamento != nil || errFecha != nil {
			views.InvalidForm(w)
			return
		}

		insumo := models.Insumo{
			Nombre:           form.Nombre,
			Cantidad:         cantidad,
			Proveedor:        form.Proveedor,
			FechaAdquisicion: fecha,
			DepartamentoID:   departamento,
		}

		if err := repository.CreateInsumo(r.Context(), db, &insumo); err != nil {
			logger.Errorf("Error creating supply: %v", err)
			views.ServerError(w, "Error al registrar el insumo")
			return
		}

		views.Success(w, "Insumo Guardado", fmt.Sprintf("Insumo %s guardado en la base de datos.", insumo.Nombre))
	}
}
