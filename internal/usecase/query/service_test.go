package query

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Vitesh21/konix/internal/adapter/cache"
	"github.com/Vitesh21/konix/internal/domain"
)

// MockObservationRepository is a mock implementation of ObservationRepository for testing
type MockObservationRepository struct {
	mock.Mock
}

func (m *MockObservationRepository) Save(ctx context.Context, obs *domain.Observation) error {
	args := m.Called(ctx, obs)
	return args.Error(0)
}

func (m *MockObservationRepository) FindLatest(ctx context.Context, coin domain.Asset) (*domain.Observation, error) {
	args := m.Called(ctx, coin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Observation), args.Error(1)
}

func (m *MockObservationRepository) FindRecentPrices(ctx context.Context, coin domain.Asset, limit int) ([]float64, error) {
	args := m.Called(ctx, coin, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float64), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func storedObservation(coin domain.Asset, price float64) *domain.Observation {
	return &domain.Observation{
		ID:         uuid.New(),
		Coin:       coin,
		Price:      price,
		MarketCap:  price * 1000,
		DayChange:  2.1,
		ObservedAt: time.Now(),
	}
}

func TestLatest_DurableStoreFirst(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockObservationRepository)
	historyCache := cache.NewMemory(100)

	service := NewQueryService(mockRepo, historyCache, testLogger())

	// Cache is empty; the durable result must be served on its own
	stored := storedObservation(domain.AssetBitcoin, 100)
	mockRepo.On("FindLatest", ctx, domain.AssetBitcoin).Return(stored, nil)

	obs, err := service.Latest(ctx, domain.AssetBitcoin)

	require.NoError(t, err)
	assert.Equal(t, stored, obs)
	mockRepo.AssertExpectations(t)
}

func TestLatest_FallsBackToCacheOnStoreError(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockObservationRepository)
	historyCache := cache.NewMemory(100)

	service := NewQueryService(mockRepo, historyCache, testLogger())

	cached := storedObservation(domain.AssetEthereum, 50)
	historyCache.Append(*cached)

	mockRepo.On("FindLatest", ctx, domain.AssetEthereum).
		Return(nil, errors.New("connection refused"))

	obs, err := service.Latest(ctx, domain.AssetEthereum)

	require.NoError(t, err)
	assert.Equal(t, 50.0, obs.Price)
	mockRepo.AssertExpectations(t)
}

func TestLatest_FallsBackToCacheOnEmptyStore(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockObservationRepository)
	historyCache := cache.NewMemory(100)

	service := NewQueryService(mockRepo, historyCache, testLogger())

	historyCache.Append(*storedObservation(domain.AssetMatic, 0.9))
	historyCache.Append(*storedObservation(domain.AssetMatic, 1.1))

	mockRepo.On("FindLatest", ctx, domain.AssetMatic).
		Return(nil, domain.ErrNotFound)

	obs, err := service.Latest(ctx, domain.AssetMatic)

	require.NoError(t, err)
	assert.Equal(t, 1.1, obs.Price, "cache fallback must serve its newest entry")
}

func TestLatest_BothTiersEmpty(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockObservationRepository)

	service := NewQueryService(mockRepo, cache.NewMemory(100), testLogger())

	mockRepo.On("FindLatest", ctx, domain.AssetBitcoin).
		Return(nil, domain.ErrNotFound)

	_, err := service.Latest(ctx, domain.AssetBitcoin)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLatest_NilRepoUsesCache(t *testing.T) {
	historyCache := cache.NewMemory(100)
	service := NewQueryService(nil, historyCache, testLogger())

	historyCache.Append(*storedObservation(domain.AssetBitcoin, 42))

	obs, err := service.Latest(context.Background(), domain.AssetBitcoin)

	require.NoError(t, err)
	assert.Equal(t, 42.0, obs.Price)
}

func TestDeviation_FromDurableStore(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockObservationRepository)

	service := NewQueryService(mockRepo, cache.NewMemory(100), testLogger())

	mockRepo.On("FindRecentPrices", ctx, domain.AssetBitcoin, 100).
		Return([]float64{10, 20, 30}, nil)

	dev, err := service.Deviation(ctx, domain.AssetBitcoin)

	require.NoError(t, err)
	assert.Equal(t, 8.16, dev)
	mockRepo.AssertExpectations(t)
}

func TestDeviation_FallsBackToCacheOnStoreError(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockObservationRepository)
	historyCache := cache.NewMemory(100)

	service := NewQueryService(mockRepo, historyCache, testLogger())

	// Pre-populate cache with ethereum prices [10, 20, 30]
	for _, price := range []float64{10, 20, 30} {
		historyCache.Append(*storedObservation(domain.AssetEthereum, price))
	}

	mockRepo.On("FindRecentPrices", ctx, domain.AssetEthereum, 100).
		Return(nil, errors.New("database is down"))

	dev, err := service.Deviation(ctx, domain.AssetEthereum)

	require.NoError(t, err)
	assert.Equal(t, 8.16, dev)
}

func TestDeviation_FallsBackToCacheOnEmptyStore(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockObservationRepository)
	historyCache := cache.NewMemory(100)

	service := NewQueryService(mockRepo, historyCache, testLogger())

	historyCache.Append(*storedObservation(domain.AssetMatic, 1))

	mockRepo.On("FindRecentPrices", ctx, domain.AssetMatic, 100).
		Return([]float64{}, nil)

	dev, err := service.Deviation(ctx, domain.AssetMatic)

	require.NoError(t, err)
	assert.Equal(t, 0.0, dev)
}

func TestDeviation_BothTiersEmpty(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockObservationRepository)

	service := NewQueryService(mockRepo, cache.NewMemory(100), testLogger())

	mockRepo.On("FindRecentPrices", ctx, domain.AssetEthereum, 100).
		Return([]float64{}, nil)

	_, err := service.Deviation(ctx, domain.AssetEthereum)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
