package response

import (
	"time"

	"github.com/google/uuid"

	"media-review/internal/data/entity"
)

type ReviewResponse struct {
	ID      uuid.UUID `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

func ReviewToResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:      review.ID,
		Text:    review.Text,
		Author:  review.AuthorUsername,
		Score:   review.Score,
		PubDate: review.PubDate,
	}
}

type CommentResponse struct {
	ID      uuid.UUID `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pub_date"`
}

func CommentToResponse(comment *entity.Comment) CommentResponse {
	return CommentResponse{
		ID:      comment.ID,
		Text:    comment.Text,
		Author:  comment.AuthorUsername,
		PubDate: comment.PubDate,
	}
}
