package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/kurirapp/courier-api/internal/model"
	"github.com/kurirapp/courier-api/pkg/pg"
	"gorm.io/gorm"
)

var (
	// ErrCourierNotFound is returned when no courier matches the lookup.
	ErrCourierNotFound = errors.New("courier not found")
	// ErrDuplicateUsername is returned when the username is already taken.
	ErrDuplicateUsername = errors.New("username already exists")
)

type CourierRepository struct {
	*pg.DB
}

func NewCourierRepository(db *pg.DB) *CourierRepository {
	return &CourierRepository{
		db,
	}
}

func (r *CourierRepository) Create(ctx context.Context, c *model.Courier) (*model.Courier, error) {
	entity := toCourierEntity(c)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("create courier: %w", err)
	}

	return toCourierModel(entity), nil
}

func (r *CourierRepository) GetByUsername(ctx context.Context, username string) (*model.Courier, error) {
	var entity CourierEntity

	err := r.Read(ctx).WithContext(ctx).Where("username = ?", username).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourierNotFound
		}
		return nil, fmt.Errorf("get courier by username: %w", err)
	}

	return toCourierModel(&entity), nil
}
