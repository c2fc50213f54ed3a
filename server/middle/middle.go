// Package middle contains HTTP middleware for the lambdaqd server.
package middle

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dekarrin/lambdaq/server/dao"
)

type ctxKey int

const (
	CtxLoggedIn ctxKey = iota
	CtxAPIKey
)

// Middleware wraps an http.Handler with additional behavior.
type Middleware func(next http.Handler) http.Handler

type mwFunc http.HandlerFunc

func (f mwFunc) ServeHTTP(w http.ResponseWriter, req *http.Request) { f(w, req) }

const jwtIssuer = "lambdaqd"

// Auth returns middleware that extracts a Bearer JWT, validates it against
// keys, and stores the authenticated dao.APIKey in the request context. If
// required is true, a missing or invalid token short-circuits with 401.
func Auth(keys dao.APIKeyRepository, secret []byte, required bool, unauthDelay time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return mwFunc(func(w http.ResponseWriter, req *http.Request) {
			var loggedIn bool
			var key dao.APIKey

			tok, err := getBearerToken(req.Header.Get("Authorization"))
			if err != nil {
				if required {
					unauthorized(w, req, unauthDelay, err.Error())
					return
				}
			} else {
				lookupKey, err := validateJWT(req.Context(), tok, secret, keys)
				if err != nil {
					if required {
						unauthorized(w, req, unauthDelay, err.Error())
						return
					}
				} else {
					key = lookupKey
					loggedIn = true
				}
			}

			ctx := req.Context()
			ctx = context.WithValue(ctx, CtxLoggedIn, loggedIn)
			ctx = context.WithValue(ctx, CtxAPIKey, key)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, req *http.Request, delay time.Duration, msg string) {
	time.Sleep(delay)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprintf(w, `{"error": %q}`, "Valid credentials are required for this endpoint")
}

func validateJWT(ctx context.Context, tok string, secret []byte, keys dao.APIKeyRepository) (dao.APIKey, error) {
	var key dao.APIKey

	_, err := jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
		subj, err := t.Claims.GetSubject()
		if err != nil {
			return nil, fmt.Errorf("cannot get subject: %w", err)
		}

		id, err := uuid.Parse(subj)
		if err != nil {
			return nil, fmt.Errorf("cannot parse subject UUID: %w", err)
		}

		key, err = keys.GetByID(ctx, id)
		if err != nil {
			if err == dao.ErrNotFound {
				return nil, fmt.Errorf("subject does not exist")
			}
			return nil, fmt.Errorf("subject could not be validated")
		}

		signKey := append([]byte{}, secret...)
		signKey = append(signKey, key.HashedSecret...)
		return signKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithIssuer(jwtIssuer), jwt.WithLeeway(time.Minute))

	if err != nil {
		return dao.APIKey{}, err
	}

	return key, nil
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

// LoggedIn reports whether the request context carries an authenticated
// API key, as set by Auth.
func LoggedIn(ctx context.Context) bool {
	v, _ := ctx.Value(CtxLoggedIn).(bool)
	return v
}

// Key retrieves the authenticated API key set by Auth. Its zero value
// means the request was not authenticated.
func Key(ctx context.Context) dao.APIKey {
	k, _ := ctx.Value(CtxAPIKey).(dao.APIKey)
	return k
}

// Recoverer returns middleware that converts a panic in the handler chain
// into a 500 response instead of crashing the server.
func Recoverer() Middleware {
	return func(next http.Handler) http.Handler {
		return mwFunc(func(w http.ResponseWriter, req *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					fmt.Printf("ERROR: panic: %v\nSTACK TRACE: %s\n", p, string(debug.Stack()))
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					fmt.Fprint(w, `{"error": "An internal server error occurred"}`)
				}
			}()
			next.ServeHTTP(w, req)
		})
	}
}
