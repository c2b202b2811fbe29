package collector

import (
	"context"

	"github.com/qepting91/hotfavs/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockGateway is a testify mock of domain.Gateway.
type MockGateway struct {
	mock.Mock
}

var _ domain.Gateway = (*MockGateway)(nil)

func (m *MockGateway) SearchTop(ctx context.Context, feedName string, limit int) ([]domain.Post, error) {
	args := m.Called(ctx, feedName, limit)
	posts, _ := args.Get(0).([]domain.Post)
	return posts, args.Error(1)
}

func (m *MockGateway) FetchByID(ctx context.Context, id string) (domain.Post, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Post), args.Error(1)
}
