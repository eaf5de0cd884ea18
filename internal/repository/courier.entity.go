package repository

import (
	"time"

	"github.com/kurirapp/courier-api/internal/model"
)

type CourierEntity struct {
	ID           int64     `db:"id"            gorm:"primaryKey;autoIncrement;column:id"`
	Username     string    `db:"username"      gorm:"column:username;not null;uniqueIndex"`
	PasswordHash string    `db:"password_hash" gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `db:"created_at"    gorm:"column:created_at;autoCreateTime"`
}

func (CourierEntity) TableName() string {
	return "couriers"
}

func toCourierEntity(m *model.Courier) *CourierEntity {
	if m == nil {
		return nil
	}
	return &CourierEntity{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}

func toCourierModel(e *CourierEntity) *model.Courier {
	if e == nil {
		return nil
	}
	return &model.Courier{
		ID:           e.ID,
		Username:     e.Username,
		PasswordHash: e.PasswordHash,
		CreatedAt:    e.CreatedAt,
	}
}
