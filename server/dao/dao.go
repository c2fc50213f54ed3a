// Package dao provides data access objects for use in the lambdaq HTTP
// server: persisted evaluation sessions and the API keys allowed to create
// them.
package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrConstraintViolation = errors.New("a uniqueness constraint was violated")
	ErrNotFound            = errors.New("the requested resource was not found")
	ErrDecodingFailure     = errors.New("field could not be decoded from DB storage format to model format")
)

// Store holds all the repositories a Server needs.
type Store interface {
	Sessions() SessionRepository
	APIKeys() APIKeyRepository
	Close() error
}

// Session is one persisted parse/resolve/reduce run, addressable by the
// client that created it.
type Session struct {
	ID       uuid.UUID
	Source   string
	Mode     string
	Strategy string
	Result   string
	Steps    []string
	Created  time.Time
}

// SessionRepository stores evaluation sessions created over the HTTP API.
type SessionRepository interface {
	Create(ctx context.Context, s Session) (Session, error)
	GetByID(ctx context.Context, id uuid.UUID) (Session, error)
	GetAll(ctx context.Context) ([]Session, error)
	Close() error
}

// APIKey is a bcrypt-hashed credential allowed to authenticate against the
// HTTP API. The cleartext secret is never stored; HashedSecret is the
// bcrypt hash of it. A bearer token is of the form "<ID>.<secret>" so a
// request can look the row up by ID before checking the hash, rather than
// scanning every key.
type APIKey struct {
	ID           uuid.UUID
	Name         string
	HashedSecret []byte
	Created      time.Time
}

// APIKeyRepository stores API keys.
type APIKeyRepository interface {
	Create(ctx context.Context, k APIKey) (APIKey, error)
	GetByID(ctx context.Context, id uuid.UUID) (APIKey, error)
	GetAll(ctx context.Context) ([]APIKey, error)
	Close() error
}
