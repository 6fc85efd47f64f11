package repotest

import (
	"context"

	"github.com/google/uuid"

	"media-review/internal/data/entity"
)

type titleRepo struct{ s *Store }

func (r *titleRepo) setGenresLocked(titleID uuid.UUID, genreIDs []uuid.UUID) {
	links := make(map[uuid.UUID]struct{}, len(genreIDs))
	for _, gid := range genreIDs {
		links[gid] = struct{}{}
	}
	r.s.titleGenres[titleID] = links
}

func (r *titleRepo) Create(_ context.Context, t *entity.Title, genreIDs []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.titles[t.ID] = *t
	r.setGenresLocked(t.ID, genreIDs)
	return nil
}

func (r *titleRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Title, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.titles[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *titleRepo) matches(t entity.Title, f entity.TitleFilter) bool {
	if f.CategorySlug != "" {
		if t.CategoryID == nil {
			return false
		}
		c, ok := r.s.categories[*t.CategoryID]
		if !ok || c.Slug != f.CategorySlug {
			return false
		}
	}
	if f.GenreSlug != "" {
		found := false
		for gid := range r.s.titleGenres[t.ID] {
			if g, ok := r.s.genres[gid]; ok && g.Slug == f.GenreSlug {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Year != 0 && t.Year != f.Year {
		return false
	}
	return contains(t.Name, f.Name)
}

func (r *titleRepo) filtered(f entity.TitleFilter) []*entity.Title {
	var out []*entity.Title
	for _, t := range r.s.titles {
		if r.matches(t, f) {
			t := t
			out = append(out, &t)
		}
	}
	sortBy(out, func(a, b *entity.Title) bool {
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID.String() < b.ID.String()
	})
	return out
}

func (r *titleRepo) FindAll(_ context.Context, f entity.TitleFilter, limit, offset int) ([]*entity.Title, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return page(r.filtered(f), limit, offset), nil
}

func (r *titleRepo) CountAll(_ context.Context, f entity.TitleFilter) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.filtered(f))), nil
}

func (r *titleRepo) Update(_ context.Context, t *entity.Title, genreIDs []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.titles[t.ID]
	if !ok {
		return notFound("title", t.ID)
	}

	stored.Name = t.Name
	stored.Year = t.Year
	stored.Description = t.Description
	stored.CategoryID = t.CategoryID
	stored.UpdatedAt = t.UpdatedAt
	r.s.titles[t.ID] = stored

	if genreIDs != nil {
		r.setGenresLocked(t.ID, genreIDs)
	}
	return nil
}

func (r *titleRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.titles[id]; !ok {
		return notFound("title", id)
	}
	delete(r.s.titles, id)
	delete(r.s.titleGenres, id)

	for rid, rev := range r.s.reviews {
		if rev.TitleID == id {
			r.s.deleteReviewLocked(rid)
		}
	}
	return nil
}
