package model

import "time"

// Project is owned by the user that created it. Only the name is mutable.
type Project struct {
	ID      string    `gorm:"primaryKey;size:16" json:"id"`
	Name    string    `gorm:"not null" json:"name"`
	Creator string    `gorm:"index;size:16;not null" json:"creator"`
	Created time.Time `gorm:"not null" json:"created"`
}
