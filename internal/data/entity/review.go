package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinScore = 1
	MaxScore = 10
)

type Review struct {
	ID        uuid.UUID `db:"id"`
	TitleID   uuid.UUID `db:"title_id"`
	AuthorID  uuid.UUID `db:"author_id"`
	Text      string    `db:"text"`
	Score     int       `db:"score"`
	PubDate   time.Time `db:"pub_date"`
	UpdatedAt time.Time `db:"updated_at"`

	// AuthorUsername is joined from users on reads.
	AuthorUsername string `db:"author_username"`
}

type Comment struct {
	ID        uuid.UUID `db:"id"`
	ReviewID  uuid.UUID `db:"review_id"`
	AuthorID  uuid.UUID `db:"author_id"`
	Text      string    `db:"text"`
	PubDate   time.Time `db:"pub_date"`
	UpdatedAt time.Time `db:"updated_at"`

	AuthorUsername string `db:"author_username"`
}
