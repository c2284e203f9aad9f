package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/kelydev/apiClinica/logger"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf("Error encoding response: %v", err)
	}
}
