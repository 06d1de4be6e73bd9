package repository

import (
	"orderdesk/internal/model"
)

// Catalog is an in-memory view over the produits collection. It is only
// valid inside the Update call that loaded it.
type Catalog struct {
	products []model.Product
	changed  bool
}

// NewCatalog wraps products loaded from the store.
func NewCatalog(products []model.Product) *Catalog {
	return &Catalog{products: products}
}

// Products returns a copy of the catalogue in stored order.
func (c *Catalog) Products() []model.Product {
	out := make([]model.Product, len(c.products))
	copy(out, c.products)
	return out
}

// FindByID returns the product with the given id, or nil.
// The returned pointer aliases the catalogue record.
func (c *Catalog) FindByID(id int) *model.Product {
	for i := range c.products {
		if c.products[i].ID == id {
			return &c.products[i]
		}
	}
	return nil
}

// ApplyStockDelta adds delta to the product's stock. It does not check the
// result is non-negative; callers validate before mutating. Unknown ids are ignored.
func (c *Catalog) ApplyStockDelta(id, delta int) {
	if p := c.FindByID(id); p != nil {
		p.Stock += delta
		c.changed = true
	}
}

// NextID returns max(id)+1, or 1 for an empty catalogue.
func (c *Catalog) NextID() int {
	return nextID(c.products, func(p model.Product) int { return p.ID })
}

// Add assigns the next id to p and appends it.
func (c *Catalog) Add(p model.Product) model.Product {
	p.ID = c.NextID()
	c.products = append(c.products, p)
	c.changed = true
	return p
}

// Changed reports whether the catalogue was mutated since it was loaded.
func (c *Catalog) Changed() bool {
	return c.changed
}

func nextID[T any](records []T, id func(T) int) int {
	highest := 0
	for _, r := range records {
		if v := id(r); v > highest {
			highest = v
		}
	}
	return highest + 1
}
