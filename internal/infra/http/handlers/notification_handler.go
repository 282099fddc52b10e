package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/marketsantafe/leads-api/internal/auth"
	"github.com/marketsantafe/leads-api/internal/entity"
	"github.com/marketsantafe/leads-api/internal/infra/database"
)

type NotificationHandler struct {
	Repo entity.NotificationRepositoryInterface
}

func NewNotificationHandler(repo entity.NotificationRepositoryInterface) *NotificationHandler {
	return &NotificationHandler{Repo: repo}
}

func (h *NotificationHandler) ListByTenant(w http.ResponseWriter, r *http.Request) {
	tenantID, err := strconv.ParseInt(chi.URLParam(r, "tenantId"), 10, 64)
	if err != nil || tenantID <= 0 {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_ID", "id de inmobiliaria inválido")
		return
	}

	claims := auth.ClaimsFrom(r)
	if err := auth.AuthorizeTenantAccess(claims, tenantID, auth.RoleTenantAgent); err != nil {
		writeErrorResponse(w, http.StatusForbidden, "FORBIDDEN", "no podés ver notificaciones de otra inmobiliaria")
		return
	}

	unreadOnly := r.URL.Query().Get("unread") == "true"

	notifications, err := h.Repo.ListByTenant(r.Context(), tenantID, unreadOnly)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"notifications": notifications,
	})
}

// MarkRead marca la notificación como leída. El tenant sale de los claims
// del caller y viaja hasta el WHERE: el UUID solo no alcanza.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_ID", "id de notificación inválido")
		return
	}

	claims := auth.ClaimsFrom(r)
	if claims == nil || claims.Role == auth.RoleMarketAdmin {
		// La campanita es del panel de la inmobiliaria; el admin no la toca.
		writeErrorResponse(w, http.StatusForbidden, "FORBIDDEN", "sólo usuarios de inmobiliaria")
		return
	}

	if err := h.Repo.MarkRead(r.Context(), id, claims.TenantID); err != nil {
		if errors.Is(err, database.ErrNotificationNotFound) {
			writeErrorResponse(w, http.StatusNotFound, "NOT_FOUND", "notificación no encontrada")
			return
		}
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
