package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/marketsantafe/leads-api/internal/usecase"
)

type WizardHandler struct{}

func NewWizardHandler() *WizardHandler {
	return &WizardHandler{}
}

// FlowSteps expone la tabla de pasos del wizard para que el front arme el
// formulario sin hardcodear flujos.
func (h *WizardHandler) FlowSteps(w http.ResponseWriter, r *http.Request) {
	flowType := strings.ToUpper(chi.URLParam(r, "flowType"))

	steps, ok := usecase.FlowSteps(flowType)
	if !ok {
		writeErrorResponse(w, http.StatusNotFound, "INVALID_FLOW", "flujo desconocido: "+flowType)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"flow_type": flowType,
		"steps":     steps,
	})
}
