package session

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// DecodeEmail extracts the email claim from a bearer token's payload
// without verifying the signature. The token is display-only on this
// side of the trust boundary; authorization is enforced by the backend.
// A malformed token or missing claim yields ok = false.
func DecodeEmail(token string) (email string, ok bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return "", false
	}
	claims, isMap := parsed.Claims.(jwt.MapClaims)
	if !isMap {
		return "", false
	}
	email, isString := claims["email"].(string)
	email = strings.TrimSpace(email)
	if !isString || email == "" {
		return "", false
	}
	return email, true
}
