package repositories

import (
	"context"

	"montsion-scolarite/internal/core/domain"
)

// Collection names inside the data directory.
const (
	UsersCollection    = "users"
	StudentsCollection = "students"
)

// UsersDocument is the whole-file snapshot of the user directory:
// a mapping of username to account.
type UsersDocument struct {
	Users map[string]domain.User `yaml:"users"`
}

// StudentsDocument is the whole-file snapshot of the student ledger.
type StudentsDocument struct {
	Students []domain.Student `yaml:"students"`
}

// UserRepository defines user directory access
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// StudentRepository defines student ledger access
type StudentRepository interface {
	List(ctx context.Context) ([]domain.Student, error)
	GetByID(ctx context.Context, id int64) (*domain.Student, error)
	Append(ctx context.Context, student *domain.Student) error
	AddPayment(ctx context.Context, id int64, amount int) (*domain.Student, error)
	Count(ctx context.Context) (int, error)
}
