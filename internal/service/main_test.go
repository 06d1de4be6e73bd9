package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"orderdesk/internal/metrics"
	"orderdesk/internal/model"
	"orderdesk/internal/repository"
	"orderdesk/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// MockRepository is a mock implementation of repository.Repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListProducts(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockRepository) ListOrders(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, fn func(tx *repository.Tx) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}

// MockPublisher is a mock implementation of events.Publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOrderPlaced(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// newFileRepository returns a repository over a bootstrapped file store and its directory.
func newFileRepository(t *testing.T) (repository.Repository, string) {
	t.Helper()

	dir := t.TempDir()
	s := store.NewFileStore(dir, zerolog.Nop())
	require.NoError(t, s.Bootstrap(context.Background(), store.Products, store.Orders))

	return repository.New(s, zerolog.Nop()), dir
}

// seedProducts writes products straight into the file store directory.
func seedProducts(t *testing.T, dir string, products ...model.Product) {
	t.Helper()

	data, err := store.Encode(products)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, store.Products+".json"), data, 0o644))
}

func readCollection(t *testing.T, dir, collection string) []byte {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, collection+".json"))
	require.NoError(t, err)
	return data
}

// scrape renders m in the prometheus text format.
func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}
