package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"orderdesk/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockWriter is a mock implementation of messageWriter.
type mockWriter struct {
	mock.Mock
}

func (m *mockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *mockWriter) Close() error {
	args := m.Called()
	return args.Error(0)
}

func testOrder() *model.Order {
	return &model.Order{
		ID:   12,
		Date: time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC),
		Items: []model.OrderLine{
			{ProductID: 1, Name: "Widget", Price: 10, Quantity: 3},
		},
		Total:  30,
		Status: model.StatusInProgress,
	}
}

func TestKafkaPublisher_PublishOrderPlaced(t *testing.T) {
	ctx := context.Background()
	writer := new(mockWriter)

	var sent []kafka.Message
	writer.On("WriteMessages", ctx, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).([]kafka.Message) }).
		Return(nil)

	p := newKafkaPublisher(writer, "orders", zerolog.Nop())
	require.NoError(t, p.PublishOrderPlaced(ctx, testOrder()))

	require.Len(t, sent, 1)
	assert.Equal(t, "12", string(sent[0].Key))

	var event Event
	require.NoError(t, json.Unmarshal(sent[0].Value, &event))
	assert.Equal(t, TypeOrderPlaced, event.Type)
	assert.Equal(t, 12, event.OrderID)
	assert.Equal(t, 30.0, event.Payload.Total)
	_, err := uuid.Parse(event.EventID)
	assert.NoError(t, err)

	writer.AssertExpectations(t)
}

func TestKafkaPublisher_WriteFailure(t *testing.T) {
	ctx := context.Background()
	writer := new(mockWriter)
	writer.On("WriteMessages", ctx, mock.Anything).Return(errors.New("broker unavailable"))

	p := newKafkaPublisher(writer, "orders", zerolog.Nop())
	err := p.PublishOrderPlaced(ctx, testOrder())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "order.placed for order 12")
}

func TestKafkaPublisher_Close(t *testing.T) {
	writer := new(mockWriter)
	writer.On("Close").Return(nil)

	p := newKafkaPublisher(writer, "orders", zerolog.Nop())
	require.NoError(t, p.Close())
	writer.AssertExpectations(t)
}

func TestNopPublisher(t *testing.T) {
	p := NewNopPublisher()
	assert.NoError(t, p.PublishOrderPlaced(context.Background(), testOrder()))
	assert.NoError(t, p.Close())
}
