package config

import (
	"fmt"
	"os"

	"github.com/dekarrin/lambdaq/server/dao"
	"github.com/dekarrin/lambdaq/server/dao/inmem"
	"github.com/dekarrin/lambdaq/server/dao/sqlite"
)

// Connect performs all logic needed to connect to the configured DB and
// initialize the store for use, exactly as the teacher's
// server/config.go Database.Connect does for its own DB types.
func (sc ServerConfig) Connect() (dao.Store, error) {
	switch sc.Type {
	case DatabaseInMem:
		return inmem.NewDatastore(), nil
	case DatabaseSQLite:
		if err := os.MkdirAll(sc.DataDir, 0770); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}

		store, err := sqlite.NewDatastore(sc.DataDir)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite: %w", err)
		}

		return store, nil
	case DatabaseNone:
		return nil, fmt.Errorf("cannot connect to 'none' DB")
	default:
		return nil, fmt.Errorf("unknown database type: %q", sc.Type.String())
	}
}

// Validate returns an error if the ServerConfig does not have the fields
// set that its Type requires.
func (sc ServerConfig) Validate() error {
	switch sc.Type {
	case DatabaseInMem:
		return nil
	case DatabaseSQLite:
		if sc.DataDir == "" {
			return fmt.Errorf("data_dir not set")
		}
		return nil
	case DatabaseNone:
		return fmt.Errorf("'none' DB is not valid")
	default:
		return fmt.Errorf("unknown database type: %q", sc.Type.String())
	}
}
