package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dekarrin/lambdaq/server/dao"
	"github.com/google/uuid"
)

type APIKeysDB struct {
	db *sql.DB
}

func (repo *APIKeysDB) init() error {
	stmt := `CREATE TABLE IF NOT EXISTS api_keys (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		hashed_secret TEXT NOT NULL,
		created INTEGER NOT NULL
	);`
	if _, err := repo.db.Exec(stmt); err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (repo *APIKeysDB) Create(ctx context.Context, k dao.APIKey) (dao.APIKey, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.APIKey{}, fmt.Errorf("could not generate ID: %w", err)
	}

	now := time.Now()

	stmt, err := repo.db.Prepare(`INSERT INTO api_keys (id, name, hashed_secret, created) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return dao.APIKey{}, wrapDBError(err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, newUUID.String(), k.Name, string(k.HashedSecret), now.Unix())
	if err != nil {
		return dao.APIKey{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

func (repo *APIKeysDB) GetByID(ctx context.Context, id uuid.UUID) (dao.APIKey, error) {
	row := repo.db.QueryRowContext(ctx, `SELECT id, name, hashed_secret, created FROM api_keys WHERE id = ?;`, id.String())

	var k dao.APIKey
	var idStr, hashed string
	var created int64

	err := row.Scan(&idStr, &k.Name, &hashed, &created)
	if err != nil {
		return dao.APIKey{}, wrapDBError(err)
	}

	k.ID, err = uuid.Parse(idStr)
	if err != nil {
		return dao.APIKey{}, fmt.Errorf("stored UUID %q is invalid: %w", idStr, err)
	}
	k.HashedSecret = []byte(hashed)
	k.Created = time.Unix(created, 0)

	return k, nil
}

func (repo *APIKeysDB) GetAll(ctx context.Context) ([]dao.APIKey, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, name, hashed_secret, created FROM api_keys ORDER BY id;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.APIKey
	for rows.Next() {
		var k dao.APIKey
		var idStr, hashed string
		var created int64

		if err := rows.Scan(&idStr, &k.Name, &hashed, &created); err != nil {
			return all, wrapDBError(err)
		}

		k.ID, err = uuid.Parse(idStr)
		if err != nil {
			return all, fmt.Errorf("stored UUID %q is invalid: %w", idStr, err)
		}
		k.HashedSecret = []byte(hashed)
		k.Created = time.Unix(created, 0)

		all = append(all, k)
	}

	return all, nil
}

func (repo *APIKeysDB) Close() error {
	return nil
}
