package usecase

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"media-review/internal/data/repository"
	"media-review/pkg/mailer"
	"media-review/pkg/security"
)

// TokenIssuer issues bearer access tokens for an account.
type TokenIssuer interface {
	Issue(accountID uuid.UUID) (security.AccessToken, error)
}

// CodeIssuer signs confirmation codes over an account state fingerprint.
type CodeIssuer interface {
	Generate(state string) string
	Verify(state, code string) bool
}

type Service struct {
	Auth     AuthService
	User     UserService
	Category CategoryService
	Genre    GenreService
	Title    TitleService
	Review   ReviewService
	Comment  CommentService
}

func NewService(
	repo *repository.Repository,
	tokens TokenIssuer,
	codes CodeIssuer,
	mail mailer.Mailer,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:     NewAuthService(repo.User, tokens, codes, mail, log),
		User:     NewUserService(repo.User, log),
		Category: NewCategoryService(repo.Category, log),
		Genre:    NewGenreService(repo.Genre, log),
		Title:    NewTitleService(repo, log),
		Review:   NewReviewService(repo, log),
		Comment:  NewCommentService(repo, log),
	}
}
