package repotest

import (
	"context"

	"github.com/google/uuid"

	"media-review/internal/data/entity"
)

type reviewRepo struct{ s *Store }

func (r *reviewRepo) withAuthor(rev entity.Review) *entity.Review {
	rev.AuthorUsername = r.s.users[rev.AuthorID].Username
	return &rev
}

func (r *reviewRepo) Create(_ context.Context, rev *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, other := range r.s.reviews {
		if other.TitleID == rev.TitleID && other.AuthorID == rev.AuthorID {
			return duplicate("reviews_title_author_key")
		}
	}
	stored := *rev
	stored.AuthorUsername = ""
	r.s.reviews[rev.ID] = stored
	return nil
}

func (r *reviewRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rev, ok := r.s.reviews[id]
	if !ok {
		return nil, nil
	}
	return r.withAuthor(rev), nil
}

func (r *reviewRepo) byTitle(titleID uuid.UUID) []*entity.Review {
	var out []*entity.Review
	for _, rev := range r.s.reviews {
		if rev.TitleID == titleID {
			out = append(out, r.withAuthor(rev))
		}
	}
	sortBy(out, func(a, b *entity.Review) bool {
		if !a.PubDate.Equal(b.PubDate) {
			return a.PubDate.After(b.PubDate)
		}
		return a.ID.String() < b.ID.String()
	})
	return out
}

func (r *reviewRepo) FindByTitleID(_ context.Context, titleID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return page(r.byTitle(titleID), limit, offset), nil
}

func (r *reviewRepo) FindByTitleAndAuthor(_ context.Context, titleID, authorID uuid.UUID) (*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, rev := range r.s.reviews {
		if rev.TitleID == titleID && rev.AuthorID == authorID {
			return r.withAuthor(rev), nil
		}
	}
	return nil, nil
}

func (r *reviewRepo) CountByTitleID(_ context.Context, titleID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.byTitle(titleID))), nil
}

func (r *reviewRepo) Update(_ context.Context, rev *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.reviews[rev.ID]
	if !ok {
		return notFound("review", rev.ID)
	}
	stored.Text = rev.Text
	stored.Score = rev.Score
	stored.UpdatedAt = rev.UpdatedAt
	r.s.reviews[rev.ID] = stored
	return nil
}

func (r *reviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.reviews[id]; !ok {
		return notFound("review", id)
	}
	r.s.deleteReviewLocked(id)
	return nil
}

func (r *reviewRepo) ScoreTotals(_ context.Context, titleID uuid.UUID) (int64, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var sum, count int64
	for _, rev := range r.s.reviews {
		if rev.TitleID == titleID {
			sum += int64(rev.Score)
			count++
		}
	}
	return sum, count, nil
}

type commentRepo struct{ s *Store }

func (r *commentRepo) withAuthor(c entity.Comment) *entity.Comment {
	c.AuthorUsername = r.s.users[c.AuthorID].Username
	return &c
}

func (r *commentRepo) Create(_ context.Context, c *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *c
	stored.AuthorUsername = ""
	r.s.comments[c.ID] = stored
	return nil
}

func (r *commentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.comments[id]
	if !ok {
		return nil, nil
	}
	return r.withAuthor(c), nil
}

func (r *commentRepo) byReview(reviewID uuid.UUID) []*entity.Comment {
	var out []*entity.Comment
	for _, c := range r.s.comments {
		if c.ReviewID == reviewID {
			out = append(out, r.withAuthor(c))
		}
	}
	sortBy(out, func(a, b *entity.Comment) bool {
		if !a.PubDate.Equal(b.PubDate) {
			return a.PubDate.After(b.PubDate)
		}
		return a.ID.String() < b.ID.String()
	})
	return out
}

func (r *commentRepo) FindByReviewID(_ context.Context, reviewID uuid.UUID, limit, offset int) ([]*entity.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return page(r.byReview(reviewID), limit, offset), nil
}

func (r *commentRepo) CountByReviewID(_ context.Context, reviewID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.byReview(reviewID))), nil
}

func (r *commentRepo) Update(_ context.Context, c *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.comments[c.ID]
	if !ok {
		return notFound("comment", c.ID)
	}
	stored.Text = c.Text
	stored.UpdatedAt = c.UpdatedAt
	r.s.comments[c.ID] = stored
	return nil
}

func (r *commentRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.comments[id]; !ok {
		return notFound("comment", id)
	}
	delete(r.s.comments, id)
	return nil
}
