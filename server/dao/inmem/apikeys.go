package inmem

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dekarrin/lambdaq/server/dao"
	"github.com/google/uuid"
)

func NewAPIKeysRepository() *InMemoryAPIKeysRepository {
	return &InMemoryAPIKeysRepository{
		keys: make(map[uuid.UUID]dao.APIKey),
	}
}

type InMemoryAPIKeysRepository struct {
	keys map[uuid.UUID]dao.APIKey
}

func (imkr *InMemoryAPIKeysRepository) Close() error {
	return nil
}

func (imkr *InMemoryAPIKeysRepository) Create(ctx context.Context, k dao.APIKey) (dao.APIKey, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.APIKey{}, fmt.Errorf("could not generate ID: %w", err)
	}

	k.ID = newUUID
	k.Created = time.Now()

	imkr.keys[k.ID] = k

	return k, nil
}

func (imkr *InMemoryAPIKeysRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.APIKey, error) {
	k, ok := imkr.keys[id]
	if !ok {
		return dao.APIKey{}, dao.ErrNotFound
	}

	return k, nil
}

func (imkr *InMemoryAPIKeysRepository) GetAll(ctx context.Context) ([]dao.APIKey, error) {
	all := make([]dao.APIKey, 0, len(imkr.keys))

	for k := range imkr.keys {
		all = append(all, imkr.keys[k])
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].ID.String() < all[j].ID.String()
	})

	return all, nil
}
