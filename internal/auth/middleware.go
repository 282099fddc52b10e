package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type contextKey string

const claimsKey contextKey = "auth_claims"

// RequireAuth valida el Bearer token y deja los claims en el contexto.
// Los handlers después deciden el tenant y el rol con AuthorizeTenantAccess.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeUnauthorized(w, "falta el header Authorization")
			return
		}

		claims, err := ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeUnauthorized(w, "token inválido o vencido")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFrom saca los claims que dejó el middleware; nil si la ruta no pasó
// por RequireAuth.
func ClaimsFrom(r *http.Request) *Claims {
	if val := r.Context().Value(claimsKey); val != nil {
		return val.(*Claims)
	}
	return nil
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "UNAUTHORIZED", "message": msg})
}
