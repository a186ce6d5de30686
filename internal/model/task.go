package model

import "time"

// Task has no owner of its own, authorization always goes through the
// creator of the project it belongs to
type Task struct {
	ID       string    `gorm:"primaryKey;size:16" json:"id"`
	Name     string    `gorm:"not null" json:"name"`
	Estado   bool      `gorm:"not null;default:false" json:"estado"`
	Proyecto string    `gorm:"index;size:16;not null" json:"proyecto"`
	Created  time.Time `gorm:"not null" json:"created"`
}
