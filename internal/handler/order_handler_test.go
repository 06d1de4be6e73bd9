package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"orderdesk/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) List(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) PlaceOrder(ctx context.Context, items []model.OrderLineRequest) (*model.Order, error) {
	args := m.Called(ctx, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func TestOrderHandler_Create(t *testing.T) {
	logger := zerolog.Nop()
	widget := &model.Product{ID: 1, Name: "Widget", Price: 10, Stock: 5}

	placed := &model.Order{
		ID:     1,
		Date:   time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC),
		Items:  []model.OrderLine{{ProductID: 1, Name: "Widget", Price: 10, Quantity: 3}},
		Total:  30,
		Status: model.StatusInProgress,
	}

	tests := []struct {
		name           string
		body           string
		expectedItems  []model.OrderLineRequest
		mockReturn     *model.Order
		mockError      error
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "Success",
			body:           `{"items":[{"produitId":1,"quantite":3}]}`,
			expectedItems:  []model.OrderLineRequest{{ProductID: 1, Quantity: 3}},
			mockReturn:     placed,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Insufficient stock",
			body:           `{"items":[{"produitId":1,"quantite":6}]}`,
			expectedItems:  []model.OrderLineRequest{{ProductID: 1, Quantity: 6}},
			mockError:      model.NewInsufficientStockError(widget),
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Stock insuffisant pour Widget",
		},
		{
			name:           "Unknown product",
			body:           `{"items":[{"produitId":99,"quantite":1}]}`,
			expectedItems:  []model.OrderLineRequest{{ProductID: 99, Quantity: 1}},
			mockError:      model.NewProductNotFoundError(99),
			expectedStatus: http.StatusNotFound,
			expectedError:  "Produit 99 introuvable",
		},
		{
			name:           "Empty items rejected by the domain",
			body:           `{"items":[]}`,
			expectedItems:  []model.OrderLineRequest{},
			mockError:      model.NewInvalidInputError(model.MsgItemsInvalid),
			expectedStatus: http.StatusBadRequest,
			expectedError:  model.MsgItemsInvalid,
		},
		{
			name:           "Items not an array",
			body:           `{"items":"nope"}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  model.MsgItemsInvalid,
		},
		{
			name:           "Invalid JSON",
			body:           `not json`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  msgInvalidBody,
		},
		{
			name:           "Persistence error is hidden",
			body:           `{"items":[{"produitId":1,"quantite":1}]}`,
			expectedItems:  []model.OrderLineRequest{{ProductID: 1, Quantity: 1}},
			mockError:      model.NewPersistenceError("commit collections", errors.New("timeout")),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  msgServerError,
		},
		{
			name:           "Unknown error is hidden",
			body:           `{"items":[{"produitId":1,"quantite":1}]}`,
			expectedItems:  []model.OrderLineRequest{{ProductID: 1, Quantity: 1}},
			mockError:      errors.New("unexpected"),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  msgServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			handler := NewOrderHandler(mockService, logger)

			if tt.expectedItems != nil {
				if tt.mockError != nil {
					mockService.On("PlaceOrder", mock.Anything, tt.expectedItems).Return(nil, tt.mockError)
				} else {
					mockService.On("PlaceOrder", mock.Anything, tt.expectedItems).Return(tt.mockReturn, nil)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/api/commandes", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.Create(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decodeError(t, w.Body.String()))
			} else {
				var got model.Order
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
				assert.Equal(t, *placed, got)
			}

			if tt.expectedItems == nil {
				mockService.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestOrderHandler_Create_WireFormat(t *testing.T) {
	mockService := new(MockOrderService)
	handler := NewOrderHandler(mockService, zerolog.Nop())

	mockService.On("PlaceOrder", mock.Anything, []model.OrderLineRequest{{ProductID: 1, Quantity: 2}}).
		Return(&model.Order{
			ID:     4,
			Date:   time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC),
			Items:  []model.OrderLine{{ProductID: 1, Name: "Widget", Price: 10, Quantity: 2}},
			Total:  20,
			Status: model.StatusInProgress,
		}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/commandes",
		strings.NewReader(`{"items":[{"produitId":1,"quantite":2}]}`))
	w := httptest.NewRecorder()

	handler.Create(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{
		"id": 4,
		"date": "2026-03-04T10:00:00Z",
		"items": [{"produitId": 1, "nom": "Widget", "prix": 10, "quantite": 2}],
		"total": 20,
		"statut": "en cours"
	}`, w.Body.String())
}

func TestOrderHandler_List(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		mockReturn     []model.Order
		mockError      error
		expectedStatus int
		expectedCount  int
	}{
		{
			name: "Success",
			mockReturn: []model.Order{
				{ID: 1, Total: 30, Status: model.StatusInProgress},
				{ID: 2, Total: 10, Status: model.StatusInProgress},
			},
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name:           "No orders",
			mockReturn:     nil,
			expectedStatus: http.StatusOK,
			expectedCount:  0,
		},
		{
			name:           "Service error",
			mockError:      model.NewPersistenceError("load commandes", errors.New("boom")),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			handler := NewOrderHandler(mockService, logger)

			if tt.mockError != nil {
				mockService.On("List", mock.Anything).Return(nil, tt.mockError)
			} else {
				mockService.On("List", mock.Anything).Return(tt.mockReturn, nil)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/commandes", nil)
			w := httptest.NewRecorder()

			handler.List(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.mockError == nil {
				var got []model.Order
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
				assert.NotNil(t, got)
				assert.Len(t, got, tt.expectedCount)
			} else {
				assert.Equal(t, msgServerError, decodeError(t, w.Body.String()))
			}
			mockService.AssertExpectations(t)
		})
	}
}
