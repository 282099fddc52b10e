package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	SetSecret("secreto-de-test")

	token, err := GenerateToken(15, 7, RoleTenantAdmin)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(15), claims.UserID)
	assert.Equal(t, int64(7), claims.TenantID)
	assert.Equal(t, RoleTenantAdmin, claims.Role)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	SetSecret("secreto-de-test")

	_, err := ValidateToken("no-es-un-jwt")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	SetSecret("secreto-uno")
	token, err := GenerateToken(1, 1, RoleTenantAgent)
	assert.NoError(t, err)

	SetSecret("secreto-dos")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestAuthorizeTenantAccess(t *testing.T) {
	cases := []struct {
		name     string
		claims   *Claims
		tenantID int64
		required string
		allowed  bool
	}{
		{"sin claims", nil, 7, RoleTenantAgent, false},
		{"market_admin cualquier tenant", &Claims{Role: RoleMarketAdmin}, 7, RoleTenantAdmin, true},
		{"agente su propio tenant", &Claims{TenantID: 7, Role: RoleTenantAgent}, 7, RoleTenantAgent, true},
		{"agente otro tenant", &Claims{TenantID: 7, Role: RoleTenantAgent}, 8, RoleTenantAgent, false},
		{"agente sin rango de admin", &Claims{TenantID: 7, Role: RoleTenantAgent}, 7, RoleTenantAdmin, false},
		{"admin de tenant alcanza", &Claims{TenantID: 7, Role: RoleTenantAdmin}, 7, RoleTenantAdmin, true},
		{"rol desconocido", &Claims{TenantID: 7, Role: "visitante"}, 7, RoleTenantAgent, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := AuthorizeTenantAccess(tc.claims, tc.tenantID, tc.required)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrForbidden)
			}
		})
	}
}

func TestRequireAuthMissingHeader(t *testing.T) {
	SetSecret("secreto-de-test")

	handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no debería llegar al handler")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/leads", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthInjectsClaims(t *testing.T) {
	SetSecret("secreto-de-test")

	token, err := GenerateToken(15, 7, RoleTenantAgent)
	assert.NoError(t, err)

	var got *Claims
	handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = ClaimsFrom(r)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin/leads", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, got)
	assert.Equal(t, int64(7), got.TenantID)
}
