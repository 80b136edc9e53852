package memory

import (
	"context"
	"fmt"

	"github.com/fortyozsucka/college-football-picks/internal/domain/user"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) List(_ context.Context) ([]user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]user.User, 0, len(r.store.userList))
	for _, id := range r.store.userList {
		out = append(out, r.store.users[id])
	}
	return out, nil
}

func (r *UserRepository) GetByID(_ context.Context, userID string) (user.User, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.users[userID]
	return item, ok, nil
}

func (r *UserRepository) SetTotalScore(_ context.Context, userID string, total int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, ok := r.store.users[userID]
	if !ok {
		return fmt.Errorf("user %s not found", userID)
	}
	item.TotalScore = total
	r.store.users[userID] = item
	return nil
}
