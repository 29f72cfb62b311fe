package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/shubhkakadia/cabipro-sub001/internal/models"
)

// ErrInvalidToken is returned for every verification failure. Malformed,
// expired and bad-signature tokens are deliberately indistinguishable to
// the caller.
var ErrInvalidToken = errors.New("invalid or expired token")

// UserClaims identify an organization principal.
type UserClaims struct {
	UserID   int64           `json:"uid"`
	OrgID    int64           `json:"oid"`
	Email    string          `json:"email"`
	UserType models.UserType `json:"user_type"`
	jwt.RegisteredClaims
}

// AdminClaims identify a platform principal. Kept as a separate type from
// UserClaims so the two verification pipelines can never be crossed.
type AdminClaims struct {
	AdminID int64            `json:"aid"`
	Email   string           `json:"email"`
	Role    models.AdminRole `json:"role"`
	jwt.RegisteredClaims
}

// SignUserToken signs claims with HS256, attaching a fresh JTI and the
// given expiry. Expiry is supplied by the caller so the token, the session
// row and the cookie all share one timestamp.
func SignUserToken(claims UserClaims, secret string, expiresAt time.Time) (string, error) {
	claims.RegisteredClaims = registered(expiresAt)
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func SignAdminToken(claims AdminClaims, secret string, expiresAt time.Time) (string, error) {
	claims.RegisteredClaims = registered(expiresAt)
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseUserToken verifies signature and expiry and returns the claims.
func ParseUserToken(tokenStr, secret string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &UserClaims{}, keyFunc(secret))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*UserClaims)
	if !ok || claims.UserID == 0 || claims.OrgID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func ParseAdminToken(tokenStr, secret string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &AdminClaims{}, keyFunc(secret))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*AdminClaims)
	if !ok || claims.AdminID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func registered(expiresAt time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
}

func keyFunc(secret string) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	}
}
