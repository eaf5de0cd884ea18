package model

import (
	"errors"
	"time"
)

type Courier struct {
	ID           int64     `json:"id"         db:"id"            gorm:"primaryKey;autoIncrement;column:id"`
	Username     string    `json:"username"   db:"username"      gorm:"column:username;not null;uniqueIndex"`
	PasswordHash string    `json:"-"          db:"password_hash" gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"    gorm:"column:created_at;autoCreateTime"`
}

func (Courier) TableName() string { return "couriers" }

// RegisterRequest is the input for creating a courier account.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (p RegisterRequest) Validate() error {
	if p.Username == "" {
		return errors.New("username is required")
	}
	if p.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// LoginRequest contains courier login credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
