package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/marketsantafe/leads-api/internal/infra/http/middleware"
	"github.com/marketsantafe/leads-api/internal/infra/integration/chatbot"
)

type ChatbotHandler struct {
	Client *chatbot.Client
}

func NewChatbotHandler(client *chatbot.Client) *ChatbotHandler {
	return &ChatbotHandler{Client: client}
}

// Handle proxya el mensaje al bot de terceros. Si el bot no responde a
// tiempo se devuelve 200 con available=false: una caída ajena no puede
// pintar de rojo la UI del marketplace.
func (h *ChatbotHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input chatbot.MessageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}
	if input.Message == "" {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_MESSAGE", "message es obligatorio")
		return
	}

	output, err := h.Client.SendMessage(r.Context(), input)
	if err != nil {
		log.Printf("⚠️ Chatbot caído, respuesta degradada: %v", err)
		middleware.RecordChatbotFallback()
		writeJSON(w, http.StatusOK, map[string]any{
			"available": false,
			"reply":     "El asistente no está disponible en este momento. Probá de nuevo en unos minutos.",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"available":  true,
		"reply":      output.Reply,
		"session_id": output.SessionID,
	})
}
