package handler

import (
	"encoding/json"
	"testing"

	"orderdesk/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRequest_ToInput(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		want        model.ProductInput
		expectError bool
	}{
		{
			name: "Numbers",
			body: `{"nom":"Widget","prix":10,"stock":5}`,
			want: model.ProductInput{Name: "Widget", Price: 10, Stock: 5},
		},
		{
			name: "Numeric strings",
			body: `{"nom":"Widget","prix":"9.5","stock":" 3 "}`,
			want: model.ProductInput{Name: "Widget", Price: 9.5, Stock: 3},
		},
		{
			name: "Zero values are present",
			body: `{"nom":"Gratuit","prix":0,"stock":0}`,
			want: model.ProductInput{Name: "Gratuit", Price: 0, Stock: 0},
		},
		{
			name:        "Missing stock",
			body:        `{"nom":"Widget","prix":10}`,
			expectError: true,
		},
		{
			name:        "Null price",
			body:        `{"nom":"Widget","prix":null,"stock":1}`,
			expectError: true,
		},
		{
			name:        "Non numeric string",
			body:        `{"nom":"Widget","prix":"abc","stock":1}`,
			expectError: true,
		},
		{
			name:        "Name is not a string",
			body:        `{"nom":42,"prix":1,"stock":1}`,
			expectError: true,
		},
		{
			name:        "Price is an object",
			body:        `{"nom":"Widget","prix":{},"stock":1}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req productRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			input, err := req.toInput()

			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, input)
		})
	}
}

func TestOrderRequest_ToLines(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		want        []model.OrderLineRequest
		expectError bool
	}{
		{
			name: "Single item",
			body: `{"items":[{"produitId":1,"quantite":3}]}`,
			want: []model.OrderLineRequest{{ProductID: 1, Quantity: 3}},
		},
		{
			name: "Keeps request order",
			body: `{"items":[{"produitId":2,"quantite":1},{"produitId":1,"quantite":4}]}`,
			want: []model.OrderLineRequest{{ProductID: 2, Quantity: 1}, {ProductID: 1, Quantity: 4}},
		},
		{
			name: "Empty array reaches the domain",
			body: `{"items":[]}`,
			want: []model.OrderLineRequest{},
		},
		{
			name: "Zero quantity reaches the domain",
			body: `{"items":[{"produitId":1,"quantite":0}]}`,
			want: []model.OrderLineRequest{{ProductID: 1, Quantity: 0}},
		},
		{
			name:        "Missing items",
			body:        `{}`,
			expectError: true,
		},
		{
			name:        "Items is not an array",
			body:        `{"items":{"produitId":1,"quantite":1}}`,
			expectError: true,
		},
		{
			name:        "Element is not an object",
			body:        `{"items":[1]}`,
			expectError: true,
		},
		{
			name:        "Fractional quantity",
			body:        `{"items":[{"produitId":1,"quantite":1.5}]}`,
			expectError: true,
		},
		{
			name:        "Quantity as string",
			body:        `{"items":[{"produitId":1,"quantite":"2"}]}`,
			expectError: true,
		},
		{
			name:        "Missing product id",
			body:        `{"items":[{"quantite":2}]}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req orderRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			lines, err := req.toLines()

			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, lines)
		})
	}
}
