// Package view holds the browsing state of one user and exposes it over HTTP.
package view

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/qepting91/hotfavs/internal/domain"
	"github.com/qepting91/hotfavs/internal/ingest"
	"github.com/qepting91/hotfavs/internal/metrics"
	"github.com/samber/lo"
)

// TopN is how many hot posts a search shows.
const TopN = 10

// State describes the outcome of the last search.
type State string

const (
	StateIdle        State = "idle"
	StateOK          State = "ok"
	StateEmpty       State = "empty"
	StateUnavailable State = "unavailable"
)

// Favorites is what the view needs from the favorites store.
type Favorites interface {
	Add(post domain.Post) bool
	Remove(id string) bool
	IsFavorite(id string) bool
	Posts() []domain.Post
	IDs() []string
	Ready() <-chan struct{}
}

// Row is one rendered post.
type Row struct {
	domain.Post
	Favorite    bool   `json:"favorite"`
	CommentsURL string `json:"comments_url"`
}

// Page is the render model for both lists.
type Page struct {
	Query     string `json:"query"`
	State     State  `json:"state"`
	Results   []Row  `json:"results"`
	Favorites []Row  `json:"favorites"`
	Ready     bool   `json:"ready"`
}

type View struct {
	gateway domain.Gateway
	store   Favorites
	origin  string
	logger  *slog.Logger

	mu      sync.RWMutex
	query   string
	state   State
	results []domain.Post
}

func New(gw domain.Gateway, store Favorites, origin string, logger *slog.Logger) *View {
	if logger == nil {
		logger = slog.Default()
	}
	if origin == "" {
		origin = domain.DefaultOrigin
	}
	return &View{gateway: gw, store: store, origin: origin, logger: logger, state: StateIdle}
}

// Search loads the hot posts of the named feed. Not found and invalid names
// show as empty results; transport faults show as unavailable.
func (v *View) Search(ctx context.Context, input string) State {
	query := strings.TrimSpace(input)

	name, ok := ingest.NormalizeFeedName(query)
	if !ok {
		v.logger.Info("Rejected feed name", "feed", query)
		return v.setResults(query, nil, StateEmpty)
	}

	posts, err := v.gateway.SearchTop(ctx, name, TopN)
	switch {
	case err == nil && len(posts) > 0:
		return v.setResults(query, posts, StateOK)
	case err == nil, errors.Is(err, domain.ErrNotFound):
		v.logger.Info("No posts for feed", "feed", name)
		return v.setResults(query, nil, StateEmpty)
	default:
		v.logger.Error("Search failed", "feed", name, "err", err)
		return v.setResults(query, nil, StateUnavailable)
	}
}

func (v *View) setResults(query string, posts []domain.Post, state State) State {
	metrics.Searches.WithLabelValues(string(state)).Inc()

	v.mu.Lock()
	defer v.mu.Unlock()
	v.query = query
	v.results = posts
	v.state = state
	return state
}

// AddFavorite marks id as favorite, taking the post from the last results or
// fetching it when it is not on screen.
func (v *View) AddFavorite(ctx context.Context, id string) (domain.Post, error) {
	id = domain.CanonicalID(id)
	v.mu.RLock()
	p, found := lo.Find(v.results, func(p domain.Post) bool { return p.ID == id })
	v.mu.RUnlock()

	if !found {
		var err error
		p, err = v.gateway.FetchByID(ctx, id)
		if err != nil {
			return domain.Post{}, err
		}
		if strings.TrimSpace(p.Title) == "" {
			return domain.Post{}, domain.ErrNotFound
		}
		p.ID = id
	}

	v.store.Add(p)
	return p, nil
}

func (v *View) RemoveFavorite(id string) bool {
	return v.store.Remove(id)
}

// Toggle flips the favorite mark of id and reports the new state.
func (v *View) Toggle(ctx context.Context, id string) (bool, error) {
	if v.store.IsFavorite(id) {
		v.store.Remove(id)
		return false, nil
	}
	if _, err := v.AddFavorite(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

// Snapshot returns the current render model.
func (v *View) Snapshot() Page {
	v.mu.RLock()
	page := Page{
		Query:   v.query,
		State:   v.state,
		Results: v.rows(v.results),
	}
	v.mu.RUnlock()

	page.Favorites = v.rows(v.store.Posts())
	select {
	case <-v.store.Ready():
		page.Ready = true
	default:
	}
	return page
}

// Results returns the last search results in upstream order.
func (v *View) Results() []domain.Post {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]domain.Post(nil), v.results...)
}

func (v *View) rows(posts []domain.Post) []Row {
	return lo.Map(posts, func(p domain.Post, _ int) Row {
		return Row{
			Post:        p,
			Favorite:    v.store.IsFavorite(p.ID),
			CommentsURL: domain.CommentsURL(v.origin, p),
		}
	})
}
