package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/marketsantafe/leads-api/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error":   code,
		"message": message,
	})
}

// writeUseCaseError traduce la taxonomía de errores del usecase a HTTP.
// Lo inesperado sale como 500 con mensaje genérico: el detalle va al log,
// nunca al cliente.
func writeUseCaseError(w http.ResponseWriter, err error) {
	if de, ok := usecase.AsDomainError(err); ok {
		switch de.Code {
		case usecase.CodeNotFound:
			writeErrorResponse(w, http.StatusNotFound, de.Code, de.Message)
		case usecase.CodeForbidden:
			writeErrorResponse(w, http.StatusForbidden, de.Code, de.Message)
		case usecase.CodeAlreadySubmitted:
			writeErrorResponse(w, http.StatusConflict, de.Code, de.Message)
		case usecase.CodeValidation:
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":   de.Code,
				"message": de.Message,
				"errors":  de.Errors,
			})
		default:
			writeErrorResponse(w, http.StatusBadRequest, de.Code, de.Message)
		}
		return
	}

	log.Printf("❌ Error inesperado: %v", err)
	writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "algo salió mal, probá de nuevo")
}
