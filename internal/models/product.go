package models

import (
	"fmt"
	"time"

	"selling/internal/apperrors"

	"gorm.io/gorm"
)

// SKUMaxLength is the width of the products.sku column.
const SKUMaxLength = 255

// Product is an item of the catalog. SKU is assigned once, when the row is
// first inserted, and is never recomputed.
type Product struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	Title       string       `json:"title" gorm:"type:varchar(200);not null"`
	CategoryID  uint         `json:"-" gorm:"not null;index"`
	Category    *SubCategory `json:"category" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	Description string       `json:"description" gorm:"type:text;not null"`
	SKU         string       `json:"sku" gorm:"column:sku;type:varchar(255);uniqueIndex;not null"`
	IsActive    bool         `json:"is_active" gorm:"not null"`
	CreatedByID uint         `json:"created_by" gorm:"not null;index"`
	CreatedBy   *User        `json:"-" gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE"`
	UpdatedByID uint         `json:"updated_by" gorm:"not null;index"`
	UpdatedBy   *User        `json:"-" gorm:"foreignKey:UpdatedByID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time    `json:"updated_at" gorm:"autoUpdateTime:false"`
	Colors      []Color      `json:"-" gorm:"many2many:product_colors;constraint:OnDelete:CASCADE"`
}

// BeforeCreate stamps the creation time and derives the SKU from it.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = tx.NowFunc()
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	sku := GenerateSKU(p.Title, p.CreatedAt)
	if len(sku) > SKUMaxLength {
		return apperrors.NewValidationError("title",
			fmt.Sprintf("generated SKU %q exceeds %d characters", sku, SKUMaxLength))
	}
	p.SKU = sku
	return nil
}

// ColorIDs returns the ids of the associated colors.
func (p *Product) ColorIDs() []uint {
	ids := make([]uint, 0, len(p.Colors))
	for _, c := range p.Colors {
		ids = append(ids, c.ID)
	}
	return ids
}
