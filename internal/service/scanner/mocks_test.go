package scanner

import (
	"context"

	"github.com/Domenick1991/inflight/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockKnownCodeRepository struct {
	mock.Mock
}

func (m *MockKnownCodeRepository) Exists(ctx context.Context, qrURL string) (bool, error) {
	args := m.Called(ctx, qrURL)
	return args.Bool(0), args.Error(1)
}

func (m *MockKnownCodeRepository) ExistingAmong(ctx context.Context, qrURLs []string) (map[string]struct{}, error) {
	args := m.Called(ctx, qrURLs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]struct{}), args.Error(1)
}

func (m *MockKnownCodeRepository) List(ctx context.Context) ([]domain.KnownCode, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.KnownCode), args.Error(1)
}

type MockBottleRepository struct {
	mock.Mock
}

func (m *MockBottleRepository) FindByQR(ctx context.Context, qrURL string) (*domain.BottleSnapshot, error) {
	args := m.Called(ctx, qrURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BottleSnapshot), args.Error(1)
}

func (m *MockBottleRepository) FindByQRs(ctx context.Context, qrURLs []string) (map[string]domain.BottleSnapshot, error) {
	args := m.Called(ctx, qrURLs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.BottleSnapshot), args.Error(1)
}

func (m *MockBottleRepository) ListQRReferences(ctx context.Context, filter domain.QRReferenceFilter) ([]domain.QRCodeReference, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.QRCodeReference), args.Error(1)
}

type MockBottleEventRepository struct {
	mock.Mock
}

func (m *MockBottleEventRepository) Create(ctx context.Context, event *domain.BottleEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}
