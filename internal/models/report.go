package models

// CategoryCount is one row of the top categories report.
type CategoryCount struct {
	ID           uint   `json:"-"`
	Name         string `json:"name"`
	ProductCount int64  `json:"product_count"`
}

// ProductSearchResult is the projection returned by the product search.
type ProductSearchResult struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	SKU         string `json:"sku" gorm:"column:sku"`
	CreatedBy   string `json:"created_by"`
}
