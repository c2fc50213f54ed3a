// Package inmem is a process-memory-backed implementation of server/dao,
// useful for tests and for running lambdaqd without a data directory.
package inmem

import (
	"fmt"

	"github.com/dekarrin/lambdaq/server/dao"
)

type store struct {
	seshes *InMemorySessionsRepository
	keys   *InMemoryAPIKeysRepository
}

// NewDatastore creates a dao.Store backed entirely by in-memory maps. Data
// does not survive process restart.
func NewDatastore() dao.Store {
	return &store{
		seshes: NewSessionsRepository(),
		keys:   NewAPIKeysRepository(),
	}
}

func (s *store) Sessions() dao.SessionRepository {
	return s.seshes
}

func (s *store) APIKeys() dao.APIKeyRepository {
	return s.keys
}

func (s *store) Close() error {
	var err error

	if seshErr := s.seshes.Close(); seshErr != nil {
		err = seshErr
	}
	if keysErr := s.keys.Close(); keysErr != nil {
		if err != nil {
			err = fmt.Errorf("%w\nadditionally, %s", err, keysErr)
		} else {
			err = keysErr
		}
	}

	return err
}
