package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/qepting91/hotfavs/internal/domain"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

// PublicClient reads the anonymous JSON endpoints.
type PublicClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	userAgent  string
}

type redditPostJSON struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Title       string  `json:"title"`
	Score       int     `json:"score"`
	Permalink   string  `json:"permalink"`
	URL         string  `json:"url"`
	Subreddit   string  `json:"subreddit_name_prefixed"`
	Author      string  `json:"author"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
}

type redditJSONResponse struct {
	Data struct {
		Children []struct {
			Data redditPostJSON `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func NewPublicClient(baseURL, userAgent string, timeout, minInterval time.Duration) (*PublicClient, error) {
	if userAgent == "" {
		return nil, fmt.Errorf("user agent is required for public mode")
	}
	if baseURL == "" {
		baseURL = domain.DefaultOrigin
	}
	return &PublicClient{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    newLimiter(minInterval),
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
	}, nil
}

func (pc *PublicClient) SearchTop(ctx context.Context, feed string, limit int) ([]domain.Post, error) {
	op := "hot " + feed
	u := fmt.Sprintf("%s/r/%s/hot.json?limit=%d", pc.baseURL, url.PathEscape(feed), normalizeLimit(limit))

	body, err := pc.get(ctx, op, u)
	if err != nil {
		return nil, err
	}

	var rResp redditJSONResponse
	if err := json.Unmarshal(body, &rResp); err != nil {
		return nil, &domain.TransportError{Op: op, Err: fmt.Errorf("decode listing: %w", err)}
	}

	posts := make([]domain.Post, 0, len(rResp.Data.Children))
	for _, child := range rResp.Data.Children {
		d := child.Data
		posts = append(posts, domain.Post{
			ID:           d.ID,
			Name:         d.Name,
			Title:        d.Title,
			Score:        d.Score,
			Permalink:    d.Permalink,
			URL:          d.URL,
			Subreddit:    d.Subreddit,
			Author:       d.Author,
			CommentCount: d.NumComments,
			CreatedUTC:   d.CreatedUTC,
		})
	}
	return posts, nil
}

// FetchByID reads /{id}.json, which answers with a [post listing, comment listing] pair.
func (pc *PublicClient) FetchByID(ctx context.Context, id string) (domain.Post, error) {
	op := "item " + id
	u := fmt.Sprintf("%s/%s.json", pc.baseURL, url.PathEscape(id))

	body, err := pc.get(ctx, op, u)
	if err != nil {
		return domain.Post{}, err
	}
	if !gjson.ValidBytes(body) {
		return domain.Post{}, &domain.TransportError{Op: op, Err: fmt.Errorf("invalid json")}
	}

	d := gjson.GetBytes(body, "0.data.children.0.data")
	if !d.Exists() {
		return domain.Post{}, domain.ErrNotFound
	}

	return domain.Post{
		ID:           d.Get("id").String(),
		Name:         d.Get("name").String(),
		Title:        d.Get("title").String(),
		Score:        int(d.Get("score").Int()),
		Permalink:    d.Get("permalink").String(),
		URL:          d.Get("url").String(),
		Subreddit:    d.Get("subreddit_name_prefixed").String(),
		Author:       d.Get("author").String(),
		CommentCount: int(d.Get("num_comments").Int()),
		CreatedUTC:   d.Get("created_utc").Float(),
	}, nil
}

func (pc *PublicClient) get(ctx context.Context, op, u string) ([]byte, error) {
	if err := pc.limiter.Wait(ctx); err != nil {
		return nil, &domain.TransportError{Op: op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &domain.TransportError{Op: op, Err: err}
	}
	req.Header.Set("User-Agent", pc.userAgent)

	resp, err := pc.httpClient.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &domain.TransportError{Op: op, Err: fmt.Errorf("reddit public access status: %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{Op: op, Err: err}
	}
	return body, nil
}
