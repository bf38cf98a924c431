package model

import (
	"time"
)

type User struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	Username       string    `json:"username" gorm:"not null;uniqueIndex"`
	Email          string    `json:"email" gorm:"not null;index"`
	HashedPassword string    `json:"-" gorm:"not null"`
	IsActive       bool      `json:"is_active" gorm:"not null"`
	IsAdmin        bool      `json:"is_admin" gorm:"not null;default:false"`
	CreatedAt      time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }
