package repository

import (
	"testing"
	"time"

	"orderdesk/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProducts() []model.Product {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return []model.Product{
		{ID: 1, Name: "Widget", Price: 10, Stock: 5, CreatedAt: now},
		{ID: 4, Name: "Gadget", Price: 2.5, Stock: 0, CreatedAt: now},
	}
}

func TestCatalog_FindByID(t *testing.T) {
	c := NewCatalog(testProducts())

	tests := []struct {
		name     string
		id       int
		expected string
	}{
		{name: "First product", id: 1, expected: "Widget"},
		{name: "Second product", id: 4, expected: "Gadget"},
		{name: "Unknown product", id: 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := c.FindByID(tt.id)
			if tt.expected == "" {
				assert.Nil(t, p)
				return
			}
			require.NotNil(t, p)
			assert.Equal(t, tt.expected, p.Name)
		})
	}

	assert.False(t, c.Changed(), "lookups must not mark the catalogue as changed")
}

func TestCatalog_ApplyStockDelta(t *testing.T) {
	c := NewCatalog(testProducts())

	c.ApplyStockDelta(1, -3)
	assert.Equal(t, 2, c.FindByID(1).Stock)
	assert.True(t, c.Changed())

	// The mutator itself does not guard against negative stock.
	c.ApplyStockDelta(4, -1)
	assert.Equal(t, -1, c.FindByID(4).Stock)
}

func TestCatalog_ApplyStockDeltaUnknownID(t *testing.T) {
	c := NewCatalog(testProducts())

	c.ApplyStockDelta(99, -1)

	assert.False(t, c.Changed())
	assert.Equal(t, testProducts(), c.Products())
}

func TestCatalog_NextID(t *testing.T) {
	assert.Equal(t, 1, NewCatalog(nil).NextID())
	assert.Equal(t, 5, NewCatalog(testProducts()).NextID(), "next id follows the highest id, not the count")
}

func TestCatalog_Add(t *testing.T) {
	c := NewCatalog(nil)

	for want := 1; want <= 3; want++ {
		p := c.Add(model.Product{Name: "P", Price: 1, Stock: 1})
		assert.Equal(t, want, p.ID)
	}

	assert.Len(t, c.Products(), 3)
	assert.True(t, c.Changed())
}

func TestCatalog_ProductsReturnsCopy(t *testing.T) {
	c := NewCatalog(testProducts())

	products := c.Products()
	products[0].Stock = 100

	assert.Equal(t, 5, c.FindByID(1).Stock)
}
