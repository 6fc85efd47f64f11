package repotest

import (
	"context"

	"github.com/google/uuid"

	"media-review/internal/data/entity"
)

type categoryRepo struct{ s *Store }

func (r *categoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, other := range r.s.categories {
		if other.Slug == c.Slug {
			return duplicate("categories_slug_key")
		}
	}
	r.s.categories[c.ID] = *c
	return nil
}

func (r *categoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *categoryRepo) FindBySlug(_ context.Context, slug string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.categories {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *categoryRepo) filtered(search string) []*entity.Category {
	var out []*entity.Category
	for _, c := range r.s.categories {
		if contains(c.Name, search) {
			c := c
			out = append(out, &c)
		}
	}
	sortBy(out, func(a, b *entity.Category) bool { return a.Slug < b.Slug })
	return out
}

func (r *categoryRepo) FindAll(_ context.Context, search string, limit, offset int) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return page(r.filtered(search), limit, offset), nil
}

func (r *categoryRepo) CountAll(_ context.Context, search string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.filtered(search))), nil
}

func (r *categoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[id]; !ok {
		return notFound("category", id)
	}
	delete(r.s.categories, id)

	for tid, t := range r.s.titles {
		if t.CategoryID != nil && *t.CategoryID == id {
			t.CategoryID = nil
			r.s.titles[tid] = t
		}
	}
	return nil
}

type genreRepo struct{ s *Store }

func (r *genreRepo) Create(_ context.Context, g *entity.Genre) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, other := range r.s.genres {
		if other.Slug == g.Slug {
			return duplicate("genres_slug_key")
		}
	}
	r.s.genres[g.ID] = *g
	return nil
}

func (r *genreRepo) FindBySlug(_ context.Context, slug string) (*entity.Genre, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, g := range r.s.genres {
		if g.Slug == slug {
			return &g, nil
		}
	}
	return nil, nil
}

func (r *genreRepo) FindBySlugs(_ context.Context, slugs []string) ([]*entity.Genre, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	want := make(map[string]bool, len(slugs))
	for _, s := range slugs {
		want[s] = true
	}

	var out []*entity.Genre
	for _, g := range r.s.genres {
		if want[g.Slug] {
			g := g
			out = append(out, &g)
		}
	}
	sortBy(out, func(a, b *entity.Genre) bool { return a.Slug < b.Slug })
	return out, nil
}

func (r *genreRepo) FindByTitleID(_ context.Context, titleID uuid.UUID) ([]*entity.Genre, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*entity.Genre
	for gid := range r.s.titleGenres[titleID] {
		if g, ok := r.s.genres[gid]; ok {
			out = append(out, &g)
		}
	}
	sortBy(out, func(a, b *entity.Genre) bool { return a.Slug < b.Slug })
	return out, nil
}

func (r *genreRepo) filtered(search string) []*entity.Genre {
	var out []*entity.Genre
	for _, g := range r.s.genres {
		if contains(g.Name, search) {
			g := g
			out = append(out, &g)
		}
	}
	sortBy(out, func(a, b *entity.Genre) bool { return a.Slug < b.Slug })
	return out
}

func (r *genreRepo) FindAll(_ context.Context, search string, limit, offset int) ([]*entity.Genre, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return page(r.filtered(search), limit, offset), nil
}

func (r *genreRepo) CountAll(_ context.Context, search string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.filtered(search))), nil
}

func (r *genreRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.genres[id]; !ok {
		return notFound("genre", id)
	}
	delete(r.s.genres, id)

	for _, links := range r.s.titleGenres {
		delete(links, id)
	}
	return nil
}
