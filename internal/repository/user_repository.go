package repository

import (
	"context"
	"database/sql"

	"lace-store/internal/domain"
)

type userRepository struct {
	*documentRepository[domain.User, *domain.User]
}

// NewUserRepository creates a postgres-backed UserRepository
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{
		documentRepository: newDocumentRepository[domain.User](db, "users"),
	}
}

// Create inserts a new user; a duplicate email yields ErrUserAlreadyExists
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.documentRepository.Create(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail retrieves a user by email, ignoring case
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, `WHERE LOWER(data->>'email') = $1`, domain.NormalizeEmail(email))
}
