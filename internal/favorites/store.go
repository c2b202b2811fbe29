// Package favorites keeps the favorite posts of a session in step with the
// durable list of their ids.
package favorites

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/qepting91/hotfavs/internal/domain"
	"github.com/qepting91/hotfavs/internal/metrics"
	"github.com/qepting91/hotfavs/internal/storage"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Persister receives the full durable id sequence after every mutation.
type Persister interface {
	Persist(ids []string)
}

type Option func(*Store)

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithConcurrency caps in-flight rehydration fetches; n <= 0 means unbounded.
func WithConcurrency(n int) Option {
	return func(s *Store) { s.concurrency = n }
}

// Store owns the favorite set. posts is what gets rendered; unhydrated holds
// stored ids whose post has not been fetched (yet, or at all this session).
// The durable sequence is always derived from the two, never kept on its own.
type Store struct {
	gateway     domain.Gateway
	slot        storage.Slot
	persister   Persister
	logger      *slog.Logger
	concurrency int

	mu         sync.Mutex
	posts      []domain.Post
	unhydrated []string
	loaded     bool
	started    bool
	ready      chan struct{}
}

func New(gw domain.Gateway, slot storage.Slot, p Persister, opts ...Option) *Store {
	s := &Store{
		gateway:   gw,
		slot:      slot,
		persister: p,
		logger:    slog.Default(),
		ready:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the stored ids into the set without fetching any of them. It
// is enough for callers that only mutate the durable sequence. Only the first
// call reads the slot.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()
}

// Rehydrate loads the stored ids and fetches each unhydrated one concurrently
// in the background. It returns once the ids are loaded; Ready is closed when
// every fetch has finished. Only the first call has any effect.
func (s *Store) Rehydrate(ctx context.Context) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.loadLocked()
	ids := append([]string(nil), s.unhydrated...)
	s.mu.Unlock()

	s.logger.Info("Rehydrating favorites", "ids", len(ids))

	g := new(errgroup.Group)
	if s.concurrency > 0 {
		g.SetLimit(s.concurrency)
	}

	go func() {
		defer close(s.ready)
		for _, id := range ids {
			g.Go(func() error {
				s.hydrate(ctx, id)
				// Failures are per id; never cancel siblings.
				return nil
			})
		}
		_ = g.Wait()
		s.logger.Info("Favorites rehydrated", "hydrated", len(s.Posts()), "stored", len(s.IDs()))
	}()
}

func (s *Store) loadLocked() {
	if s.loaded {
		return
	}
	s.loaded = true

	ids, err := storage.LoadIDs(s.slot)
	if err != nil {
		s.logger.Warn("Favorites slot unreadable, starting empty", "err", err)
		ids = nil
	}
	ids = lo.Filter(ids, func(id string, _ int) bool {
		return !s.hydratedLocked(id) && !lo.Contains(s.unhydrated, id)
	})
	s.unhydrated = append(s.unhydrated, ids...)
}

// Ready is closed once rehydration has finished.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

func (s *Store) hydrate(ctx context.Context, id string) {
	p, err := s.gateway.FetchByID(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !lo.Contains(s.unhydrated, id) {
		// Removed or added by the user while the fetch was in flight.
		metrics.Hydrations.WithLabelValues("stale").Inc()
		return
	}
	if err != nil {
		metrics.Hydrations.WithLabelValues("failed").Inc()
		s.logger.Warn("Favorite hydration failed", "id", id, "err", err)
		return
	}
	if strings.TrimSpace(p.Title) == "" {
		metrics.Hydrations.WithLabelValues("untitled").Inc()
		s.logger.Warn("Favorite hydration returned no title", "id", id)
		return
	}

	p.ID = id
	s.unhydrated = lo.Without(s.unhydrated, id)
	s.posts = append(s.posts, p)
	metrics.Hydrations.WithLabelValues("ok").Inc()
}

// Add marks post as favorite under its canonical id. It reports false when
// the id was already a favorite, in which case nothing is written.
func (s *Store) Add(post domain.Post) bool {
	post.ID = domain.CanonicalID(post.ID)
	if post.ID == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hydratedLocked(post.ID) {
		return false
	}
	s.unhydrated = lo.Without(s.unhydrated, post.ID)
	s.posts = append(s.posts, post)
	metrics.Mutations.WithLabelValues("add").Inc()
	s.persistLocked()
	return true
}

// Remove drops id from the favorites and rewrites the durable sequence. It
// reports whether anything was removed.
func (s *Store) Remove(id string) bool {
	id = domain.CanonicalID(id)
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.posts) + len(s.unhydrated)
	s.posts = lo.Reject(s.posts, func(p domain.Post, _ int) bool { return p.ID == id })
	s.unhydrated = lo.Without(s.unhydrated, id)
	removed := len(s.posts)+len(s.unhydrated) < before
	if removed {
		metrics.Mutations.WithLabelValues("remove").Inc()
	}
	s.persistLocked()
	return removed
}

func (s *Store) IsFavorite(id string) bool {
	id = domain.CanonicalID(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydratedLocked(id)
}

// Posts returns a copy of the hydrated favorites in display order.
func (s *Store) Posts() []domain.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Post(nil), s.posts...)
}

// IDs returns the durable projection: hydrated ids, then ids still waiting on
// (or failed) hydration in stored order.
func (s *Store) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.idsLocked()
}

func (s *Store) hydratedLocked(id string) bool {
	return lo.ContainsBy(s.posts, func(p domain.Post) bool { return p.ID == id })
}

func (s *Store) idsLocked() []string {
	ids := make([]string, 0, len(s.posts)+len(s.unhydrated))
	for _, p := range s.posts {
		ids = append(ids, p.ID)
	}
	return append(ids, s.unhydrated...)
}

func (s *Store) persistLocked() {
	if s.persister == nil {
		return
	}
	s.persister.Persist(s.idsLocked())
}
