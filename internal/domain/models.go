package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// DefaultOrigin is the upstream origin used for API calls and display links.
const DefaultOrigin = "https://www.reddit.com"

// postKindPrefix marks a post fullname ("t3_abc123") rather than a bare id.
const postKindPrefix = "t3_"

// ErrNotFound is returned when the upstream reports the feed or item does not exist.
var ErrNotFound = errors.New("not found")

// TransportError wraps any upstream failure that is not a plain not-found.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Post is the read-only value fetched from upstream. Identity is ID.
type Post struct {
	ID           string  `json:"id"`
	Name         string  `json:"name,omitempty"`
	Title        string  `json:"title"`
	Score        int     `json:"score"`
	Permalink    string  `json:"permalink,omitempty"`
	URL          string  `json:"url"`
	Subreddit    string  `json:"subreddit,omitempty"`
	Author       string  `json:"author,omitempty"`
	CommentCount int     `json:"comment_count"`
	CreatedUTC   float64 `json:"created_utc"`
}

// Gateway defines the read-only lookups against the upstream feed.
type Gateway interface {
	SearchTop(ctx context.Context, feedName string, limit int) ([]Post, error)
	FetchByID(ctx context.Context, id string) (Post, error)
}

// CommentsURL builds the comments link for a post. Favorites rehydrated
// without a permalink fall back to /comments/{id}.
func CommentsURL(origin string, p Post) string {
	origin = strings.TrimRight(origin, "/")
	if p.Permalink != "" {
		return origin + p.Permalink
	}
	return origin + "/comments/" + p.ID
}

// CanonicalID reduces a post id or fullname to the bare upstream id, which is
// the identity of a favorite everywhere it is compared or stored.
func CanonicalID(id string) string {
	return strings.TrimPrefix(strings.TrimSpace(id), postKindPrefix)
}
