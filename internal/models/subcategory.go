package models

import "time"

// SubCategory groups products. UpdatedAt is not refreshed automatically: it
// defaults to the insert time and only changes when the caller sets it.
type SubCategory struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null"`
	ShortName   string    `json:"short_name" gorm:"type:varchar(50);not null"`
	Image       *string   `json:"image" gorm:"type:varchar(100)"`
	Description string    `json:"description" gorm:"type:text;not null"`
	IsActive    bool      `json:"is_active" gorm:"not null"`
	CreatedByID uint      `json:"created_by" gorm:"not null;index"`
	CreatedBy   *User     `json:"-" gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE"`
	UpdatedByID uint      `json:"updated_by" gorm:"not null;index"`
	UpdatedBy   *User     `json:"-" gorm:"foreignKey:UpdatedByID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`
}
