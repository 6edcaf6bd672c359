package ports

import (
	"context"

	"github.com/devconnect/devconnect-api/internal/core/domain"
)

// PostRepository defines persistence for posts and their embedded like and
// comment lists. Like and comment mutations are store-level conditional
// updates on a single document: two concurrent likes from the same user
// cannot both succeed, and removals are keyed by id rather than index.
type PostRepository interface {
	Insert(ctx context.Context, p *domain.Post) error
	// List returns all posts ordered by creation time descending.
	List(ctx context.Context) ([]*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	Delete(ctx context.Context, id string) error

	// AddLike prepends a like entry unless the user already liked the
	// post, in which case domain.ErrAlreadyLiked is returned. The updated
	// like list is returned on success.
	AddLike(ctx context.Context, postID, userID string) ([]domain.Like, error)
	// RemoveLike removes the user's like entry; domain.ErrNotLiked when
	// there is none.
	RemoveLike(ctx context.Context, postID, userID string) ([]domain.Like, error)

	// AddComment prepends the comment and returns the updated list.
	AddComment(ctx context.Context, postID string, c domain.Comment) ([]domain.Comment, error)
	// RemoveComment removes the comment by id and returns the updated list.
	RemoveComment(ctx context.Context, postID, commentID string) ([]domain.Comment, error)
}
