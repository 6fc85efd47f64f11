package repotest

import (
	"context"
	"time"

	"github.com/google/uuid"

	"media-review/internal/data/entity"
)

type userRepo struct{ s *Store }

func (r *userRepo) checkUnique(u *entity.User) error {
	for id, other := range r.s.users {
		if id == u.ID {
			continue
		}
		if other.Username == u.Username {
			return duplicate("users_username_key")
		}
		if other.Email == u.Email {
			return duplicate("users_email_key")
		}
	}
	return nil
}

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.checkUnique(u); err != nil {
		return err
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *userRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *userRepo) find(match func(entity.User) bool) *entity.User {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if match(u) {
			return &u
		}
	}
	return nil
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Email == email }), nil
}

func (r *userRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Username == username }), nil
}

func (r *userRepo) filtered(search string) []*entity.User {
	var out []*entity.User
	for _, u := range r.s.users {
		if contains(u.Username, search) {
			u := u
			out = append(out, &u)
		}
	}
	sortBy(out, func(a, b *entity.User) bool { return a.Username < b.Username })
	return out
}

func (r *userRepo) FindAll(_ context.Context, search string, limit, offset int) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return page(r.filtered(search), limit, offset), nil
}

func (r *userRepo) CountAll(_ context.Context, search string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.filtered(search))), nil
}

func (r *userRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.users[u.ID]
	if !ok {
		return notFound("user", u.ID)
	}
	if err := r.checkUnique(u); err != nil {
		return err
	}

	// only columns the SQL update touches
	stored.Username = u.Username
	stored.Email = u.Email
	stored.FirstName = u.FirstName
	stored.LastName = u.LastName
	stored.Bio = u.Bio
	stored.Role = u.Role
	stored.UpdatedAt = u.UpdatedAt
	r.s.users[u.ID] = stored
	return nil
}

func (r *userRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, previous *time.Time, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok || !sameTime(u.LastLogin, previous) {
		return notFound("user", id)
	}
	u.LastLogin = &at
	r.s.users[id] = u
	return nil
}

func (r *userRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return notFound("user", id)
	}
	delete(r.s.users, id)

	for rid, rev := range r.s.reviews {
		if rev.AuthorID == id {
			r.s.deleteReviewLocked(rid)
		}
	}
	for cid, c := range r.s.comments {
		if c.AuthorID == id {
			delete(r.s.comments, cid)
		}
	}
	return nil
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
