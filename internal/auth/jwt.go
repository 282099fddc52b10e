package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles, de mayor a menor alcance.
const (
	RoleMarketAdmin = "market_admin"
	RoleTenantAdmin = "tenant_admin"
	RoleTenantAgent = "tenant_agent"
)

var roleRank = map[string]int{
	RoleTenantAgent: 1,
	RoleTenantAdmin: 2,
	RoleMarketAdmin: 3,
}

var ErrForbidden = errors.New("acceso denegado")

var jwtSecret []byte

// SetSecret configura la clave de firma (viene del config en el arranque).
func SetSecret(secret string) {
	jwtSecret = []byte(secret)
}

// Claims es el payload del token. Los tokens los emite el subsistema de
// auth del marketplace; acá sólo se validan. UserID identifica al staff de
// la inmobiliaria; TenantID es 0 para market_admin.
type Claims struct {
	UserID   int64  `json:"user_id"`
	TenantID int64  `json:"tenant_id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken firma un JWT para un usuario dado. Lo usan los tests y las
// herramientas de operación; el login real vive en otro servicio.
func GenerateToken(userID, tenantID int64, role string) (string, error) {
	if len(jwtSecret) == 0 {
		return "", errors.New("JWT secret no configurado")
	}

	claims := Claims{
		UserID:   userID,
		TenantID: tenantID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ValidateToken parsea y verifica el JWT.
func ValidateToken(tokenStr string) (*Claims, error) {
	if len(jwtSecret) == 0 {
		return nil, errors.New("JWT secret no configurado")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("token inválido o vencido")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("claims inválidos")
	}

	return claims, nil
}

// AuthorizeTenantAccess es EL guard de tenant, único para lecturas y
// escrituras: market_admin pasa siempre; un rol de inmobiliaria sólo pasa
// sobre su propio tenant y si su rol alcanza el requerido.
func AuthorizeTenantAccess(claims *Claims, tenantID int64, requiredRole string) error {
	if claims == nil {
		return ErrForbidden
	}
	if claims.Role == RoleMarketAdmin {
		return nil
	}
	if claims.TenantID != tenantID {
		return ErrForbidden
	}
	if roleRank[claims.Role] < roleRank[requiredRole] {
		return ErrForbidden
	}
	return nil
}
