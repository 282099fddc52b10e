package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/marketsantafe/leads-api/internal/auth"
	"github.com/marketsantafe/leads-api/internal/entity"
	"github.com/marketsantafe/leads-api/internal/usecase"
)

type InboxHandler struct {
	ListUC *usecase.ListLeadsUseCase
}

func NewInboxHandler(listUC *usecase.ListLeadsUseCase) *InboxHandler {
	return &InboxHandler{ListUC: listUC}
}

// TenantLeads es el inbox de una inmobiliaria. El guard corre ANTES de
// tocar la base: caller sin permiso sobre ese tenant ni siquiera consulta.
func (h *InboxHandler) TenantLeads(w http.ResponseWriter, r *http.Request) {
	tenantID, err := strconv.ParseInt(chi.URLParam(r, "tenantId"), 10, 64)
	if err != nil || tenantID <= 0 {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_ID", "id de inmobiliaria inválido")
		return
	}

	claims := auth.ClaimsFrom(r)
	if err := auth.AuthorizeTenantAccess(claims, tenantID, auth.RoleTenantAgent); err != nil {
		writeErrorResponse(w, http.StatusForbidden, "FORBIDDEN", "no podés ver el inbox de otra inmobiliaria")
		return
	}

	filter := filterFromQuery(r)
	filter.TenantID = &tenantID
	filter.Zone = r.URL.Query().Get("zone")
	if v := r.URL.Query().Get("property_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.PropertyID = &id
		}
	}
	if v := r.URL.Query().Get("assigned_to"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.AssignedTo = &id
		}
	}

	h.respond(w, r, filter)
}

// AdminLeads es la variante cross-tenant del market admin.
func (h *InboxHandler) AdminLeads(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFrom(r)
	if claims == nil || claims.Role != auth.RoleMarketAdmin {
		writeErrorResponse(w, http.StatusForbidden, "FORBIDDEN", "sólo para administradores del marketplace")
		return
	}

	filter := filterFromQuery(r)
	if v := r.URL.Query().Get("tenant_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.TenantID = &id
		}
	}

	h.respond(w, r, filter)
}

func (h *InboxHandler) respond(w http.ResponseWriter, r *http.Request, filter entity.LeadFilter) {
	leads, pagination, err := h.ListUC.Execute(r.Context(), filter)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"leads":      leads,
		"pagination": pagination,
	})
}

func filterFromQuery(r *http.Request) entity.LeadFilter {
	q := r.URL.Query()

	filter := entity.LeadFilter{
		Status:   q.Get("status"),
		FlowType: q.Get("flow_type"),
		UserType: q.Get("user_type"),
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		filter.Limit = limit
	}

	return filter
}
