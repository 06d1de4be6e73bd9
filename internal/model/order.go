package model

import "time"

// StatusInProgress is the status of every newly placed order.
const StatusInProgress = "en cours"

// Order represents a committed purchase. It is never updated once created.
type Order struct {
	ID     int         `json:"id"`
	Date   time.Time   `json:"date"`
	Items  []OrderLine `json:"items"`
	Total  float64     `json:"total"`
	Status string      `json:"statut"`
}

// OrderLine is a snapshot of a product's name and price at placement time.
type OrderLine struct {
	ProductID int     `json:"produitId"`
	Name      string  `json:"nom"`
	Price     float64 `json:"prix"`
	Quantity  int     `json:"quantite"`
}

// OrderLineRequest represents a single item in an order request.
type OrderLineRequest struct {
	ProductID int `json:"produitId"`
	Quantity  int `json:"quantite"`
}
