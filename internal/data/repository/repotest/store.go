// Package repotest provides in-memory repositories that honour the same
// uniqueness and cascade rules as the postgres schema.
package repotest

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"media-review/internal/data/entity"
	"media-review/internal/data/repository"
)

type Store struct {
	mu          sync.Mutex
	users       map[uuid.UUID]entity.User
	categories  map[uuid.UUID]entity.Category
	genres      map[uuid.UUID]entity.Genre
	titles      map[uuid.UUID]entity.Title
	titleGenres map[uuid.UUID]map[uuid.UUID]struct{}
	reviews     map[uuid.UUID]entity.Review
	comments    map[uuid.UUID]entity.Comment
}

func NewStore() *Store {
	return &Store{
		users:       make(map[uuid.UUID]entity.User),
		categories:  make(map[uuid.UUID]entity.Category),
		genres:      make(map[uuid.UUID]entity.Genre),
		titles:      make(map[uuid.UUID]entity.Title),
		titleGenres: make(map[uuid.UUID]map[uuid.UUID]struct{}),
		reviews:     make(map[uuid.UUID]entity.Review),
		comments:    make(map[uuid.UUID]entity.Comment),
	}
}

// Repository returns every repository backed by this store.
func (s *Store) Repository() *repository.Repository {
	return &repository.Repository{
		User:     &userRepo{s},
		Category: &categoryRepo{s},
		Genre:    &genreRepo{s},
		Title:    &titleRepo{s},
		Review:   &reviewRepo{s},
		Comment:  &commentRepo{s},
	}
}

// SeedUser inserts an account directly, filling in ID and timestamps when absent.
func (s *Store) SeedUser(u entity.User) *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
		u.UpdatedAt = u.CreatedAt
	}
	if u.Role == "" {
		u.Role = entity.RoleUser
	}
	s.users[u.ID] = u
	return &u
}

func duplicate(constraint string) error {
	return fmt.Errorf("%w: %s", repository.ErrDuplicate, constraint)
}

func notFound(what string, id uuid.UUID) error {
	return fmt.Errorf("%s %s: %w", what, id, repository.ErrNotFound)
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

func contains(haystack, needle string) bool {
	return needle == "" || strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func sortBy[T any](items []T, less func(a, b T) bool) {
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
}

// deleteReviewLocked removes a review and its comments.
func (s *Store) deleteReviewLocked(id uuid.UUID) {
	delete(s.reviews, id)
	for cid, c := range s.comments {
		if c.ReviewID == id {
			delete(s.comments, cid)
		}
	}
}
