// Package model defines database models
package model

import "time"

type User struct {
	ID           string    `gorm:"primaryKey;size:16" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Registered   time.Time `gorm:"not null" json:"registered"`
}
