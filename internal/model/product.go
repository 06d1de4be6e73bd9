package model

import "time"

// Product represents a catalogue entry with its available stock.
type Product struct {
	ID        int       `json:"id"`
	Name      string    `json:"nom"`
	Price     float64   `json:"prix"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProductInput carries the already-coerced fields of a product creation request.
type ProductInput struct {
	Name  string
	Price float64
	Stock float64
}
