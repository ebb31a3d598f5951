package userrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"duochat-server/internal/domain/user"
	"duochat-server/internal/infrastructure/database/dbschema"
)

// UserRepository implements user.Repository using GORM.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

// Create stores a new user and backfills generated fields.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	row := dbschema.NewSchemaUser(u)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	*u = *row.EtoD()
	return nil
}

// FindByEmail looks a user up by email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var row dbschema.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return row.EtoD(), nil
}

// FindByPublicID looks a user up by their external identifier.
func (r *UserRepository) FindByPublicID(ctx context.Context, publicID string) (*user.User, error) {
	var row dbschema.User
	err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return row.EtoD(), nil
}
