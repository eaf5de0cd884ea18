package pg

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// DB wraps a single gorm handle. Repositories go through Read/Write so the
// handle can later be split into separate read and write pools without
// touching call sites.
type DB struct {
	db *gorm.DB
}

func Create(config Config, withDebug bool) (*DB, error) {
	db, err := gorm.Open(postgres.Open(fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable", config.Host, config.User, config.Password, config.Database, config.Port)),
		&gorm.Config{
			NamingStrategy: schema.NamingStrategy{
				SingularTable: true,
			},
			TranslateError: true,
		})
	if err != nil {
		return nil, err
	}

	if withDebug {
		db = db.Debug()
	}
	return &DB{db: db}, nil
}

func (r *DB) Write(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *DB) Read(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}
