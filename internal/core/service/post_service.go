package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/devconnect/devconnect-api/internal/core/domain"
	"github.com/devconnect/devconnect-api/internal/core/ports"
)

// PostService implements the feed use cases.
type PostService struct {
	posts  ports.PostRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewPostService(posts ports.PostRepository, users ports.UserRepository, logger zerolog.Logger) *PostService {
	return &PostService{posts: posts, users: users, logger: logger}
}

// Create stores a new post, snapshotting the author's name and avatar at
// creation time. The snapshots never update if the user changes later.
func (s *PostService) Create(ctx context.Context, userID, text string) (*domain.Post, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, err
	}

	post := &domain.Post{
		UserID:    user.ID,
		Name:      user.Name,
		Avatar:    user.Avatar,
		Text:      text,
		Likes:     []domain.Like{},
		Comments:  []domain.Comment{},
		CreatedAt: time.Now().UTC(),
	}

	if err := s.posts.Insert(ctx, post); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to create post")
		return nil, err
	}

	s.logger.Info().Str("post_id", post.ID).Str("user_id", userID).Msg("post created")
	return post, nil
}

func (s *PostService) List(ctx context.Context) ([]*domain.Post, error) {
	return s.posts.List(ctx)
}

func (s *PostService) Get(ctx context.Context, postID string) (*domain.Post, error) {
	return s.posts.FindByID(ctx, postID)
}

// Delete removes a post after verifying the requester is its author.
func (s *PostService) Delete(ctx context.Context, postID, requesterID string) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != requesterID {
		return domain.ErrForbidden
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}
	s.logger.Info().Str("post_id", postID).Msg("post deleted")
	return nil
}

// Like adds the caller to the like list. The repository performs the
// membership check and insert as one conditional document update, so a
// concurrent duplicate like cannot slip through.
func (s *PostService) Like(ctx context.Context, postID, userID string) ([]domain.Like, error) {
	return s.posts.AddLike(ctx, postID, userID)
}

// Unlike removes the caller's like entry; rejected when no entry exists.
func (s *PostService) Unlike(ctx context.Context, postID, userID string) ([]domain.Like, error) {
	return s.posts.RemoveLike(ctx, postID, userID)
}

// AddComment prepends a comment with author snapshots taken now.
func (s *PostService) AddComment(ctx context.Context, postID, userID, text string) ([]domain.Comment, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, err
	}

	comment := domain.Comment{
		UserID:    user.ID,
		Name:      user.Name,
		Avatar:    user.Avatar,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	return s.posts.AddComment(ctx, postID, comment)
}

// RemoveComment deletes a comment after verifying the requester authored
// it. The post owner has no special rights over foreign comments.
func (s *PostService) RemoveComment(ctx context.Context, postID, commentID, requesterID string) ([]domain.Comment, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := post.FindComment(commentID)
	if comment == nil {
		return nil, domain.ErrCommentNotFound
	}
	if comment.UserID != requesterID {
		return nil, domain.ErrForbidden
	}

	return s.posts.RemoveComment(ctx, postID, commentID)
}
