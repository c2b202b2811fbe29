package collector

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/loganintech/go-reddit/v2/reddit"
	"github.com/qepting91/hotfavs/internal/domain"
	"golang.org/x/time/rate"
)

// APIClient goes through the authenticated Reddit API.
type APIClient struct {
	client  *reddit.Client
	limiter *rate.Limiter
}

func NewAPIClient(id, secret, user, pass, userAgent string, minInterval time.Duration) (*APIClient, error) {
	creds := reddit.Credentials{ID: id, Secret: secret, Username: user, Password: pass}

	client, err := reddit.NewClient(creds, reddit.WithUserAgent(userAgent))
	if err != nil {
		return nil, err
	}

	return &APIClient{client: client, limiter: newLimiter(minInterval)}, nil
}

func (ac *APIClient) SearchTop(ctx context.Context, feed string, limit int) ([]domain.Post, error) {
	op := "hot " + feed
	if err := ac.limiter.Wait(ctx); err != nil {
		return nil, &domain.TransportError{Op: op, Err: err}
	}

	posts, _, err := ac.client.Subreddit.HotPosts(ctx, feed, &reddit.ListOptions{Limit: normalizeLimit(limit)})
	if err != nil {
		return nil, mapAPIError(op, err)
	}

	result := make([]domain.Post, 0, len(posts))
	for _, p := range posts {
		result = append(result, fromAPIPost(p))
	}
	return result, nil
}

func (ac *APIClient) FetchByID(ctx context.Context, id string) (domain.Post, error) {
	op := "item " + id
	if err := ac.limiter.Wait(ctx); err != nil {
		return domain.Post{}, &domain.TransportError{Op: op, Err: err}
	}

	pc, _, err := ac.client.Post.Get(ctx, id)
	if err != nil {
		return domain.Post{}, mapAPIError(op, err)
	}
	if pc == nil || pc.Post == nil {
		return domain.Post{}, domain.ErrNotFound
	}
	return fromAPIPost(pc.Post), nil
}

func mapAPIError(op string, err error) error {
	var errResp *reddit.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	return &domain.TransportError{Op: op, Err: fmt.Errorf("authenticated api error: %w", err)}
}

func fromAPIPost(p *reddit.Post) domain.Post {
	post := domain.Post{
		ID:           p.ID,
		Name:         p.FullID,
		Title:        p.Title,
		Score:        p.Score,
		Permalink:    p.Permalink,
		URL:          p.URL,
		Subreddit:    p.SubredditNamePrefixed,
		Author:       p.Author,
		CommentCount: p.NumberOfComments,
	}
	if p.Created != nil {
		post.CreatedUTC = float64(p.Created.Time.Unix())
	}
	return post
}
