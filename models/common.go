package models

// MenuItem is one entry of the navigation menu.
type MenuItem struct {
	Nombre string `json:"nombre"`
	URL    string `json:"url"`
}

// Menu is the static navigation list served by /menu.
var Menu = []MenuItem{
	{Nombre: "Inicio", URL: "/index.html"},
	{Nombre: "Equipos", URL: "/equipos.html"},
	{Nombre: "Usuarios", URL: "/usuarios.html"},
	{Nombre: "Búsqueda", URL: "/busqueda.html"},
}
