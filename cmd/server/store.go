package main

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	errEmailTaken      = errors.New("email already registered")
	errArticleNotFound = errors.New("article not found")
)

type user struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type author struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Website string `json:"website,omitempty"`
}

type article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Status      string    `json:"status"`
	PublishedAt string    `json:"publishedAt,omitempty"`
	Author      author    `json:"author"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
}

// store is an in-memory repository for the demo endpoints.
type store struct {
	mu       sync.RWMutex
	users    map[string]user
	articles map[string]article
	order    []string
	now      func() time.Time
}

func newStore() *store {
	return &store{
		users:    make(map[string]user),
		articles: make(map[string]article),
		now:      time.Now,
	}
}

func (s *store) createUser(_ context.Context, email, displayName string) (user, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[email]; ok {
		return user{}, errEmailTaken
	}
	u := user{ID: uuid.NewString(), Email: email, DisplayName: displayName, CreatedAt: s.now().UTC()}
	s.users[email] = u
	return u, nil
}

func (s *store) createArticle(_ context.Context, a article) article {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.ID = uuid.NewString()
	a.CreatedAt = s.now().UTC()
	if a.Status == "" {
		a.Status = "draft"
	}
	if a.Tags == nil {
		a.Tags = []string{}
	}
	s.articles[a.ID] = a
	s.order = append(s.order, a.ID)
	return a
}

func (s *store) article(_ context.Context, id string) (article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.articles[id]
	if !ok {
		return article{}, errArticleNotFound
	}
	return a, nil
}

// search returns articles whose title contains q, optionally restricted to
// articles carrying every tag, in creation order.
func (s *store) search(_ context.Context, q string, tags []string, offset, limit int) ([]article, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]article, 0)
	for _, id := range s.order {
		a := s.articles[id]
		if !strings.Contains(strings.ToLower(a.Title), q) {
			continue
		}
		if !containsAll(a.Tags, tags) {
			continue
		}
		matches = append(matches, a)
	}

	total := len(matches)
	if offset >= total {
		return []article{}, total
	}
	end := min(offset+limit, total)
	return matches[offset:end], total
}

func (s *store) ping(context.Context) error {
	if s == nil {
		return errors.New("store is not initialized")
	}
	return nil
}

func containsAll(have, want []string) bool {
	for _, w := range want {
		if !slices.Contains(have, w) {
			return false
		}
	}
	return true
}
