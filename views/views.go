// Package views renders the HTML pages returned by the route handlers.
package views

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/kelydev/apiClinica/logger"
	"github.com/kelydev/apiClinica/models"
)

//go:embed templates/*.html
var files embed.FS

var templates = template.Must(template.ParseFS(files, "templates/*.html"))

// Link is a navigation button on a page.
type Link struct {
	Label string
	URL   string
}

var (
	// Home links back to the landing page.
	Home = Link{Label: "Volver a la página principal", URL: "/"}
	// Back is the short form of Home used on form results.
	Back = Link{Label: "Volver", URL: "/"}
)

// Message is a page with a single heading: confirmations and failures.
type Message struct {
	Title   string
	Heading string
	Error   bool
	Links   []Link
}

// PacienteTable is a read-only patient table.
type PacienteTable struct {
	Title     string
	Heading   string
	Pacientes []models.Paciente
}

// Render executes the named template into w with the given status code.
// The page is buffered so that a template failure still yields a clean 500.
func Render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		logger.Errorf("error rendering template %s: %v", name, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// renderMessage renders m with the message template.
func renderMessage(w http.ResponseWriter, status int, m Message) {
	Render(w, status, "mensaje.html", m)
}

// Success renders a confirmation page.
func Success(w http.ResponseWriter, title, heading string, links ...Link) {
	renderMessage(w, http.StatusOK, Message{Title: title, Heading: heading, Links: withDefault(links, Back)})
}

// Fail renders an error page with the given status.
func Fail(w http.ResponseWriter, status int, heading string, links ...Link) {
	renderMessage(w, status, Message{Title: "Error", Heading: heading, Error: true, Links: withDefault(links, Back)})
}

// InvalidForm renders the fixed validation failure page.
func InvalidForm(w http.ResponseWriter) {
	Fail(w, http.StatusBadRequest, "Error: todos los campos son obligatorios.")
}

// ServerError renders the generic persistence failure page.
func ServerError(w http.ResponseWriter, heading string) {
	Fail(w, http.StatusInternalServerError, heading)
}

// Forbidden renders the fixed access denied page.
func Forbidden(w http.ResponseWriter) {
	Render(w, http.StatusForbidden, "acceso_denegado.html", nil)
}

func withDefault(links []Link, def Link) []Link {
	if len(links) == 0 {
		return []Link{def}
	}
	return links
}
