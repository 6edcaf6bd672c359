package ports

import (
	"context"

	"github.com/devconnect/devconnect-api/internal/core/domain"
)

// PostService defines the feed use cases. Ownership rules: only the post
// author may delete a post; only the comment author may delete a comment
// (the post owner gets no special rights over foreign comments).
type PostService interface {
	Create(ctx context.Context, userID, text string) (*domain.Post, error)
	List(ctx context.Context) ([]*domain.Post, error)
	Get(ctx context.Context, postID string) (*domain.Post, error)
	Delete(ctx context.Context, postID, requesterID string) error

	Like(ctx context.Context, postID, userID string) ([]domain.Like, error)
	Unlike(ctx context.Context, postID, userID string) ([]domain.Like, error)

	AddComment(ctx context.Context, postID, userID, text string) ([]domain.Comment, error)
	RemoveComment(ctx context.Context, postID, commentID, requesterID string) ([]domain.Comment, error)
}
