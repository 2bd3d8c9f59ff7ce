package repositories

import (
	"context"

	"montsion-scolarite/internal/adapters/persistence/store"
	"montsion-scolarite/internal/core/domain"
)

// userRepository implements UserRepository over the snapshot store
type userRepository struct {
	store *store.Store
}

// NewUserRepository creates a new user repository
func NewUserRepository(st *store.Store) UserRepository {
	return &userRepository{store: st}
}

// GetByUsername gets a user by exact, case-sensitive username
func (r *userRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	var doc UsersDocument
	if err := r.store.Load(UsersCollection, &doc); err != nil {
		return nil, err
	}
	user, ok := doc.Users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user.Username = username
	return &user, nil
}

// Create inserts a new user and persists the directory. The whole
// load-check-save span runs under the collection lock so two concurrent
// creations of the same username cannot both succeed.
func (r *userRepository) Create(_ context.Context, user *domain.User) error {
	return r.store.Do(UsersCollection, func() error {
		var doc UsersDocument
		if err := r.store.Load(UsersCollection, &doc); err != nil {
			return err
		}
		if doc.Users == nil {
			doc.Users = make(map[string]domain.User)
		}
		if _, exists := doc.Users[user.Username]; exists {
			return domain.ErrUserAlreadyExists
		}
		doc.Users[user.Username] = *user
		return r.store.Save(UsersCollection, &doc)
	})
}

// ExistsByUsername reports whether a username is already taken
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	if err == domain.ErrUserNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
