package collector

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/qepting91/hotfavs/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hotListing(n int) string {
	children := make([]string, 0, n)
	for i := 0; i < n; i++ {
		children = append(children, fmt.Sprintf(
			`{"kind":"t3","data":{"id":"p%d","name":"t3_p%d","title":"Post %d","score":%d,"permalink":"/r/popular/comments/p%d/x/","url":"https://example.com/%d"}}`,
			i, i, i, 100-i, i, i))
	}
	return `{"kind":"Listing","data":{"children":[` + strings.Join(children, ",") + `]}}`
}

func newTestPublicClient(t *testing.T, h http.HandlerFunc) *PublicClient {
	t.Helper()
	s := httptest.NewServer(h)
	t.Cleanup(s.Close)

	c, err := NewPublicClient(s.URL, "hotfavs-test/1.0", 2*time.Second, 0)
	require.NoError(t, err)
	return c
}

func TestPublicClient_SearchTopOK(t *testing.T) {
	c := newTestPublicClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/r/popular/hot.json", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "hotfavs-test/1.0", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(hotListing(10)))
	})

	posts, err := c.SearchTop(context.Background(), "popular", 10)
	require.NoError(t, err)
	require.Len(t, posts, 10)

	for i, p := range posts {
		assert.Equal(t, fmt.Sprintf("p%d", i), p.ID, "upstream order must be preserved")
	}
	assert.Equal(t, "t3_p0", posts[0].Name)
	assert.Equal(t, 100, posts[0].Score)
	assert.Equal(t, "/r/popular/comments/p0/x/", posts[0].Permalink)
}

func TestPublicClient_SearchTopNotFound(t *testing.T) {
	c := newTestPublicClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"Not Found","error":404}`, http.StatusNotFound)
	})

	posts, err := c.SearchTop(context.Background(), "doesnotexist_xyz", 10)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, posts)
}

func TestPublicClient_SearchTopTransportFault(t *testing.T) {
	tests := []struct {
		name string
		h    http.HandlerFunc
	}{
		{
			name: "server error",
			h: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "upstream err", http.StatusInternalServerError)
			},
		},
		{
			name: "invalid json",
			h: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{not-json`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestPublicClient(t, tt.h)

			_, err := c.SearchTop(context.Background(), "golang", 10)
			require.Error(t, err)
			var te *domain.TransportError
			assert.True(t, errors.As(err, &te))
			assert.NotErrorIs(t, err, domain.ErrNotFound)
		})
	}
}

func TestPublicClient_Timeout(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_, _ = w.Write([]byte(hotListing(1)))
	}))
	defer s.Close()

	c, err := NewPublicClient(s.URL, "ua", 100*time.Millisecond, 0)
	require.NoError(t, err)

	_, err = c.SearchTop(context.Background(), "golang", 10)
	var te *domain.TransportError
	assert.True(t, errors.As(err, &te))
}

func TestPublicClient_FetchByID(t *testing.T) {
	c := newTestPublicClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/abc123.json":
			_, _ = w.Write([]byte(`[
				{"kind":"Listing","data":{"children":[{"kind":"t3","data":{"id":"abc123","name":"t3_abc123","title":"Hello","score":42,"permalink":"/r/golang/comments/abc123/hello/","url":"https://go.dev","num_comments":7}}]}},
				{"kind":"Listing","data":{"children":[]}}
			]`))
		case "/empty.json":
			_, _ = w.Write([]byte(`[{"kind":"Listing","data":{"children":[]}}]`))
		default:
			http.NotFound(w, r)
		}
	})

	p, err := c.FetchByID(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, domain.Post{
		ID:           "abc123",
		Name:         "t3_abc123",
		Title:        "Hello",
		Score:        42,
		Permalink:    "/r/golang/comments/abc123/hello/",
		URL:          "https://go.dev",
		CommentCount: 7,
	}, p)

	_, err = c.FetchByID(context.Background(), "empty")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = c.FetchByID(context.Background(), "gone")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNewPublicClient_RequiresUserAgent(t *testing.T) {
	_, err := NewPublicClient("", "", time.Second, 0)
	assert.Error(t, err)
}
