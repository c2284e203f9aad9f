package controllers

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelydev/apiClinica/logger"
	"github.com/kelydev/apiClinica/models"
	"github.com/kelydev/apiClinica/repository"
	"github.com/kelydev/apiClinica/spreadsheet"
	"github.com/kelydev/apiClinica/utils"
	"github.com/kelydev/apiClinica/views"
)

const (
	maxUploadSize = 10 * 1024 * 1024
	xlsxMimeType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	verEquipos     = views.Link{Label: "Ver Equipos", URL: "/equipos"}
	paginaEquipos  = views.Link{Label: "Volver", URL: "/equipos.html"}
	errMissingFile = errors.New("no file uploaded")
)

// Helper function to save uploaded file
func saveUploadedFile(r *http.Request, formKey, uploadDir string) (string, error) {
	err := r.ParseMultipartForm(maxUploadSize)
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingFile) {
			return "", errMissingFile
		}
		return "", fmt.Errorf("error parsing multipart form: %w", err)
	}

	file, handler, err := r.FormFile(formKey)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", errMissingFile
		}
		return "", fmt.Errorf("error retrieving file '%s': %w", formKey, err)
	}
	defer file.Close()

	originalFilename := filepath.Base(handler.Filename)
	safeFilename := strings.ReplaceAll(originalFilename, "..", "")
	uniqueFilename := fmt.Sprintf("%d_%s", time.Now().UnixNano(), safeFilename)

	if err := os.MkdirAll(uploadDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("error creating upload directory: %w", err)
	}

	filePath := filepath.Join(uploadDir, uniqueFilename)
	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("error creating destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(filePath)
		return "", fmt.Errorf("error copying uploaded file: %w", err)
	}
	return filePath, nil
}

func removeFile(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warningf("error removing file '%s': %v", path, err)
	}
}

// UploadEquiposHandler imports equipment from the spreadsheet sent as
// excelFile. Rows are stored in a single transaction.
func UploadEquiposHandler(db *sql.DB, uploadDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path, err := saveUploadedFile(r, "excelFile", uploadDir)
		if errors.Is(err, errMissingFile) {
			views.Fail(w, http.StatusBadRequest, "Error: selecciona un archivo de Excel.", paginaEquipos)
			return
		}
		if err != nil {
			logger.Errorf("Error saving uploaded file: %v", err)
			views.ServerError(w, "Error al guardar el archivo.")
			return
		}
		defer removeFile(path)

		equipos, err := spreadsheet.ImportRows(path)
		if err != nil {
			logger.Warningf("Rejected spreadsheet upload: %v", err)
			views.Fail(w, http.StatusBadRequest, "Error: el archivo no es un libro de Excel válido.", paginaEquipos)
			return
		}

		n, err := repository.CreateEquipos(r.Context(), db, equipos)
		if err != nil {
			logger.Errorf("Error importing equipment: %v", err)
			views.ServerError(w, "Error al guardar los equipos. No se guardó ningún registro.")
			return
		}

		logger.Infof("imported %d equipment rows", n)
		views.Success(w, "Archivo Cargado", fmt.Sprintf("Archivo cargado y datos guardados: %d equipos.", n), paginaEquipos, verEquipos)
	}
}

// InsertarEquipoHandler stores one piece of equipment from the form.
func InsertarEquipoHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		equipo := models.Equipo{
			Nombre:      utils.FormValue(r, "nombre"),
			Descripcion: utils.FormValue(r, "descripcion"),
		}
		if err := utils.Validate(equipo); err != nil {
			views.InvalidForm(w)
			return
		}

		if err := repository.CreateEquipo(r.Context(), db, &equipo); err != nil {
			logger.Errorf("Error creating equipment: %v", err)
			views.ServerError(w, "Error al guardar el equipo en la base de datos.")
			return
		}

		views.Success(w, "Equipo Guardado", fmt.Sprintf("Equipo %q guardado correctamente.", equipo.Nombre), views.Back, verEquipos)
	}
}

// GetEquiposHandler renders the equipment table.
func GetEquiposHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		equipos, err := repository.GetAllEquipos(r.Context(), db)
		if err != nil {
			logger.Errorf("Error getting equipment: %v", err)
			views.ServerError(w, "Error al obtener los equipos.")
			return
		}
		views.Render(w, http.StatusOK, "equipos.html", equipos)
	}
}

// DownloadEquiposHandler sends every piece of equipment as equipos.xlsx.
func DownloadEquiposHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		equipos, err := repository.GetAllEquipos(r.Context(), db)
		if err != nil {
			logger.Errorf("Error getting equipment for export: %v", err)
			views.ServerError(w, "Error al obtener los equipos.")
			return
		}

		data, err := spreadsheet.ExportRows(equipos)
		if err != nil {
			logger.Errorf("Error building spreadsheet: %v", err)
			views.ServerError(w, "Error al generar el archivo.")
			return
		}

		w.Header().Set("Content-Type", xlsxMimeType)
		w.Header().Set("Content-Disposition", `attachment; filename="equipos.xlsx"`)
		w.Write(data)
	}
}
