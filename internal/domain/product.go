package domain

import "time"

// Product is a catalog entry. Prices are whole currency units (INR by
// default); variant prices are signed adjustments on top of BasePrice.
type Product struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	BasePrice   int64       `json:"basePrice"`
	Category    string      `json:"category"`
	Sizes       []string    `json:"sizes,omitempty"`
	Materials   []string    `json:"materials,omitempty"`
	Variants    []Variant   `json:"variants"`
	Rating      ReviewStats `json:"rating"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Variant is a purchasable color/style option with its own stock and
// price adjustment. ColorCode is a display hex string and plays no part
// in pricing.
type Variant struct {
	ID        string   `json:"id"`
	ProductID string   `json:"-"`
	Color     string   `json:"color"`
	ColorCode string   `json:"colorCode,omitempty"`
	Images    []string `json:"images,omitempty"`
	Stock     int      `json:"stock"`
	Price     int64    `json:"price"`
}

// ReviewStats aggregates approved reviews for a product.
type ReviewStats struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// VariantByID returns the variant with the given id, or nil.
func (p *Product) VariantByID(id string) *Variant {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i]
		}
	}
	return nil
}
