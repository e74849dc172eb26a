package models

import "time"

// Color is a color attribute that products can reference.
type Color struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(50);not null"`
	ColorCode string    `json:"color_code" gorm:"type:varchar(7);not null"`
	CreatedAt time.Time `json:"-" gorm:"autoCreateTime"`
}
