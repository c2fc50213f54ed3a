package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dekarrin/lambdaq/server/dao"
)

const jwtIssuer = "lambdaqd"

// generateJWT issues a short-lived token for the given API key. The signing
// key is derived from the server secret plus the key's hashed secret, so
// revoking an API key (by deleting its row) invalidates every token already
// issued for it without needing a blocklist.
func generateJWT(secret []byte, k dao.APIKey) (string, error) {
	claims := &jwt.MapClaims{
		"iss": jwtIssuer,
		"exp": time.Now().Add(time.Hour).Unix(),
		"sub": k.ID.String(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)

	signKey := append([]byte{}, secret...)
	signKey = append(signKey, k.HashedSecret...)

	return tok.SignedString(signKey)
}

func getBearerToken(authHeader string) (string, error) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", fmt.Errorf("no authorization header present")
	}

	authParts := strings.SplitN(authHeader, " ", 2)
	if len(authParts) != 2 {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}

	scheme := strings.TrimSpace(strings.ToLower(authParts[0]))
	token := strings.TrimSpace(authParts[1])

	if scheme != "bearer" {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}

	return token, nil
}
