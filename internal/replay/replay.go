// Package replay persists a single REPL or HTTP evaluation as a binary log,
// so a run can be handed back to the interpreter (or to a bug report) byte
// for byte. It serializes with rezi the same way server/dao/sqlite persists
// game.State in the teacher repo.
package replay

import (
	"fmt"
	"os"

	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
)

// Session is a single parse-resolve-reduce run, recorded for replay.
type Session struct {
	ID       uuid.UUID
	Source   string
	Mode     string
	Strategy string
	Steps    []string
	Final    string
}

// Save encodes s with rezi and writes it to path, truncating any existing
// file.
func Save(path string, s Session) error {
	data := rezi.EncBinary(s)

	if err := os.WriteFile(path, data, 0660); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}

	return nil
}

// Load reads the rezi-encoded Session previously written by Save.
func Load(path string) (Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Session{}, fmt.Errorf("read session file: %w", err)
	}

	var s Session
	n, err := rezi.DecBinary(data, &s)
	if err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	if n != len(data) {
		return Session{}, fmt.Errorf("decoded byte count mismatch; only consumed %d/%d bytes", n, len(data))
	}

	return s, nil
}
