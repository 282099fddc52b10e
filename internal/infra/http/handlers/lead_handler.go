package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/marketsantafe/leads-api/internal/auth"
	"github.com/marketsantafe/leads-api/internal/entity"
	"github.com/marketsantafe/leads-api/internal/infra/http/middleware"
	"github.com/marketsantafe/leads-api/internal/usecase"
)

type LeadHandler struct {
	CreateUC    *usecase.CreateLeadUseCase
	AutosaveUC  *usecase.AutosaveStepUseCase
	SubmitUC    *usecase.SubmitLeadUseCase
	UpdateUC    *usecase.UpdateLeadUseCase
	LeadRepo    entity.LeadRepositoryInterface
	rateLimiter *RateLimiter
}

func NewLeadHandler(
	createUC *usecase.CreateLeadUseCase,
	autosaveUC *usecase.AutosaveStepUseCase,
	submitUC *usecase.SubmitLeadUseCase,
	updateUC *usecase.UpdateLeadUseCase,
	leadRepo entity.LeadRepositoryInterface,
) *LeadHandler {
	return &LeadHandler{
		CreateUC:    createUC,
		AutosaveUC:  autosaveUC,
		SubmitUC:    submitUC,
		UpdateUC:    updateUC,
		LeadRepo:    leadRepo,
		rateLimiter: NewRateLimiter(20, time.Minute), // 20 drafts/min por IP
	}
}

// CreateLead abre un draft del wizard. Es la única punta pública de
// escritura sin lead preexistente, por eso lleva rate limit por IP.
func (h *LeadHandler) CreateLead(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeErrorResponse(w, http.StatusTooManyRequests, "RATE_LIMITED", "demasiados intentos, esperá un minuto")
		return
	}

	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	lead, err := h.CreateUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordLeadCreated(lead.FlowType)

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"lead_id": lead.ID,
	})
}

// AutosaveStep guarda un paso del wizard. El front lo llama en cada campo;
// un fallo acá es best-effort y el cliente reintenta solo.
func (h *LeadHandler) AutosaveStep(w http.ResponseWriter, r *http.Request) {
	leadID, ok := parseLeadID(w, r)
	if !ok {
		return
	}

	var body struct {
		StepKey string          `json:"step_key"`
		Value   json.RawMessage `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}
	if body.StepKey == "" {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_STEP_KEY", "step_key es obligatorio")
		return
	}

	if err := h.AutosaveUC.Execute(r.Context(), leadID, body.StepKey, rawToString(body.Value)); err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordStepAutosave()

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "paso guardado",
	})
}

// SubmitLead cierra el wizard: valida, transiciona y notifica.
func (h *LeadHandler) SubmitLead(w http.ResponseWriter, r *http.Request) {
	leadID, ok := parseLeadID(w, r)
	if !ok {
		return
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	// El form llega plano y con tipos mezclados (el front manda números
	// como number o como string, según el campo); acá se aplana a string.
	form := make(map[string]string, len(raw))
	for k, v := range raw {
		form[k] = rawToString(v)
	}

	lead, err := h.SubmitUC.Execute(r.Context(), leadID, form)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordLeadSubmitted(lead.FlowType)

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "¡listo! una inmobiliaria se va a contactar con vos",
		"lead_id": lead.ID,
	})
}

// GetLead devuelve el detalle con joins. La autorización corre contra el
// tenant REAL del lead encontrado, no contra uno que mande el caller: así
// no se puede enumerar ids ajenos.
func (h *LeadHandler) GetLead(w http.ResponseWriter, r *http.Request) {
	leadID, ok := parseLeadID(w, r)
	if !ok {
		return
	}

	detail, err := h.LeadRepo.FindDetailByID(r.Context(), leadID)
	if err != nil {
		if err == entity.ErrLeadNotFound {
			writeErrorResponse(w, http.StatusNotFound, "NOT_FOUND", "lead no encontrado")
			return
		}
		writeUseCaseError(w, err)
		return
	}

	claims := auth.ClaimsFrom(r)
	ownerTenant := int64(-1) // sin tenant: sólo lo ve el admin del market
	if detail.TenantID != nil {
		ownerTenant = *detail.TenantID
	}
	if err := auth.AuthorizeTenantAccess(claims, ownerTenant, auth.RoleTenantAgent); err != nil {
		writeErrorResponse(w, http.StatusForbidden, "FORBIDDEN", "no podés ver leads de otra inmobiliaria")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"lead":    detail,
	})
}

// UpdateLead es el PATCH del panel: sólo status y asignación, y sólo para
// tenant_admin (o market_admin) de la inmobiliaria dueña.
func (h *LeadHandler) UpdateLead(w http.ResponseWriter, r *http.Request) {
	leadID, ok := parseLeadID(w, r)
	if !ok {
		return
	}

	lead, err := h.LeadRepo.FindByID(r.Context(), leadID)
	if err != nil {
		if err == entity.ErrLeadNotFound {
			writeErrorResponse(w, http.StatusNotFound, "NOT_FOUND", "lead no encontrado")
			return
		}
		writeUseCaseError(w, err)
		return
	}

	claims := auth.ClaimsFrom(r)
	ownerTenant := int64(-1)
	if lead.TenantID != nil {
		ownerTenant = *lead.TenantID
	}
	if err := auth.AuthorizeTenantAccess(claims, ownerTenant, auth.RoleTenantAdmin); err != nil {
		writeErrorResponse(w, http.StatusForbidden, "FORBIDDEN", "no podés modificar leads de otra inmobiliaria")
		return
	}

	var input usecase.UpdateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	if err := h.UpdateUC.Execute(r.Context(), leadID, input); err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "lead actualizado",
	})
}

func parseLeadID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_ID", "id de lead inválido")
		return 0, false
	}
	return id, true
}

// rawToString aplana un valor JSON a string: los strings pierden las
// comillas, el resto queda tal cual vino ("80000", "true", etc).
func rawToString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return string(raw)
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
