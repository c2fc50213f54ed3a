package sqlite

import (
	"context"
	"database/sql"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/dekarrin/lambdaq/server/dao"
	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
)

type SessionsDB struct {
	db *sql.DB
}

func (repo *SessionsDB) init() error {
	stmt := `CREATE TABLE IF NOT EXISTS sessions (
		id TEXT NOT NULL PRIMARY KEY,
		source TEXT NOT NULL,
		mode TEXT NOT NULL,
		strategy TEXT NOT NULL,
		result TEXT NOT NULL,
		steps TEXT NOT NULL,
		created INTEGER NOT NULL
	);`
	if _, err := repo.db.Exec(stmt); err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (repo *SessionsDB) Create(ctx context.Context, s dao.Session) (dao.Session, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Session{}, fmt.Errorf("could not generate ID: %w", err)
	}

	stepsData := rezi.EncBinary(s.Steps)
	encSteps := base64.StdEncoding.EncodeToString(stepsData)
	now := time.Now()

	stmt, err := repo.db.Prepare(`INSERT INTO sessions (id, source, mode, strategy, result, steps, created) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return dao.Session{}, wrapDBError(err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, newUUID.String(), s.Source, s.Mode, s.Strategy, s.Result, encSteps, now.Unix())
	if err != nil {
		return dao.Session{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

func (repo *SessionsDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Session, error) {
	row := repo.db.QueryRowContext(ctx, `SELECT id, source, mode, strategy, result, steps, created FROM sessions WHERE id = ?;`, id.String())

	return scanSession(row)
}

func (repo *SessionsDB) GetAll(ctx context.Context) ([]dao.Session, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, source, mode, strategy, result, steps, created FROM sessions ORDER BY id;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return all, err
		}
		all = append(all, s)
	}

	return all, nil
}

func (repo *SessionsDB) Close() error {
	return nil
}

// rowScanner is the subset of *sql.Row and *sql.Rows that Scan needs, so
// GetByID and GetAll can share one decoding routine.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (dao.Session, error) {
	var s dao.Session
	var id, encSteps string
	var created int64

	err := row.Scan(&id, &s.Source, &s.Mode, &s.Strategy, &s.Result, &encSteps, &created)
	if err != nil {
		return dao.Session{}, wrapDBError(err)
	}

	s.ID, err = uuid.Parse(id)
	if err != nil {
		return dao.Session{}, fmt.Errorf("stored UUID %q is invalid: %w", id, err)
	}
	s.Created = time.Unix(created, 0)

	stepsData, err := base64.StdEncoding.DecodeString(encSteps)
	if err != nil {
		return dao.Session{}, fmt.Errorf("decode stored steps: %w", err)
	}
	if len(stepsData) > 0 {
		n, err := rezi.DecBinary(stepsData, &s.Steps)
		if err != nil {
			return dao.Session{}, fmt.Errorf("REZI decode steps: %w", err)
		}
		if n != len(stepsData) {
			return dao.Session{}, fmt.Errorf("REZI decoded byte count mismatch; only consumed %d/%d bytes", n, len(stepsData))
		}
	}

	return s, nil
}
