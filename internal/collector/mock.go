package collector

import (
	"context"
	"fmt"
	"strings"

	"github.com/qepting91/hotfavs/internal/domain"
)

// MockClient implements domain.Gateway with deterministic fake data.
// Feeds whose name starts with "doesnotexist" report not found.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (mc *MockClient) SearchTop(ctx context.Context, feed string, limit int) ([]domain.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.TransportError{Op: "hot " + feed, Err: err}
	}
	if strings.HasPrefix(strings.ToLower(feed), "doesnotexist") {
		return nil, domain.ErrNotFound
	}

	limit = normalizeLimit(limit)
	posts := make([]domain.Post, 0, limit)
	for i := 0; i < limit; i++ {
		posts = append(posts, mockPost(fmt.Sprintf("m%s%d", strings.ToLower(feed), i), feed, i))
	}
	return posts, nil
}

// FetchByID answers for any id produced by SearchTop; ids without the "m" prefix are unknown.
func (mc *MockClient) FetchByID(ctx context.Context, id string) (domain.Post, error) {
	if err := ctx.Err(); err != nil {
		return domain.Post{}, &domain.TransportError{Op: "item " + id, Err: err}
	}
	if !strings.HasPrefix(id, "m") {
		return domain.Post{}, domain.ErrNotFound
	}
	return mockPost(id, "mock", 0), nil
}

func mockPost(id, feed string, rank int) domain.Post {
	return domain.Post{
		ID:           id,
		Name:         "t3_" + id,
		Title:        fmt.Sprintf("[%s] Simulated hot post #%d", feed, rank),
		Score:        1000 - rank*37,
		Permalink:    fmt.Sprintf("/r/%s/comments/%s/simulated/", feed, id),
		URL:          "http://localhost/mock-url/" + id,
		Subreddit:    "r/" + feed,
		Author:       "simulated_user",
		CommentCount: rank * 3,
	}
}
