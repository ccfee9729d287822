package tokens

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RolePrefix is the canonical role form shared by the gateway and the auth
// service. Tokens may carry roles either prefixed or bare; consumers must
// normalize before comparing.
const RolePrefix = "ROLE_"

var ErrExpired = errors.New("token expired")

// AccessClaims is the JWT payload issued on login. Subject is the username.
type AccessClaims struct {
	UserID uint     `json:"userId"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

func Issue(secret []byte, userID uint, username string, roles []string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		UserID: userID,
		Roles:  NormalizeRoles(roles),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Parse verifies signature and claims. An expired but otherwise valid token
// yields ErrExpired so callers can distinguish it from forgery.
func Parse(tokenStr string, secret []byte) (*AccessClaims, error) {
	var claims AccessClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return &claims, nil
}

func NormalizeRole(role string) string {
	if strings.HasPrefix(role, RolePrefix) {
		return role
	}
	return RolePrefix + role
}

func NormalizeRoles(roles []string) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, NormalizeRole(r))
	}
	return out
}
