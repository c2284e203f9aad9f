package controllers

import (
	"net/http"

	"github.com/kelydev/apiClinica/models"
)

// MenuHandler returns the navigation menu.
func MenuHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.Menu)
	}
}

// IndexHandler serves the landing page to logged in users.
func IndexHandler(indexPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, indexPath)
	}
}
