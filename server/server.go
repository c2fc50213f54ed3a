// Package server implements the lambdaqd HTTP API: parsing, reducing, and
// tracing lambda terms over JSON, with sessions persisted via server/dao
// and API-key/JWT authentication via server/middle.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dekarrin/lambdaq/server/dao"
	"github.com/dekarrin/lambdaq/server/middle"
)

// Server is the lambdaqd HTTP API, routed with chi.
type Server struct {
	router chi.Router
	db     dao.Store
}

// New builds a Server backed by db, signing tokens with secret and holding
// unauthenticated requests for unauthDelay before responding, to blunt
// credential-guessing timing attacks.
func New(db dao.Store, secret []byte, unauthDelay time.Duration) Server {
	api := API{DB: db, Secret: secret, UnauthDelay: unauthDelay}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middle.Recoverer())

	r.Post("/login", api.HTTPLogin())

	r.Group(func(r chi.Router) {
		r.Use(middle.Auth(db.APIKeys(), secret, true, unauthDelay))
		r.Post("/parse", api.HTTPParse())
		r.Post("/reduce", api.HTTPReduce())
		r.Post("/trace", api.HTTPTrace())
		r.Get("/sessions/{id}", api.HTTPGetSession())
	})

	return Server{router: r, db: db}
}

func (s Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	s.router.ServeHTTP(w, req)
}

// ListenAndServe starts the HTTP server on addr, blocking until it exits.
func (s Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
