package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/devconnect/devconnect-api/internal/api/middleware"
	"github.com/devconnect/devconnect-api/internal/core/domain"
)

type stubPostService struct {
	createFn        func(ctx context.Context, userID, text string) (*domain.Post, error)
	deleteFn        func(ctx context.Context, postID, requesterID string) error
	likeFn          func(ctx context.Context, postID, userID string) ([]domain.Like, error)
	removeCommentFn func(ctx context.Context, postID, commentID, requesterID string) ([]domain.Comment, error)
}

func (s *stubPostService) Create(ctx context.Context, userID, text string) (*domain.Post, error) {
	return s.createFn(ctx, userID, text)
}

func (s *stubPostService) List(ctx context.Context) ([]*domain.Post, error) {
	return nil, nil
}

func (s *stubPostService) Get(ctx context.Context, postID string) (*domain.Post, error) {
	return nil, domain.ErrPostNotFound
}

func (s *stubPostService) Delete(ctx context.Context, postID, requesterID string) error {
	return s.deleteFn(ctx, postID, requesterID)
}

func (s *stubPostService) Like(ctx context.Context, postID, userID string) ([]domain.Like, error) {
	return s.likeFn(ctx, postID, userID)
}

func (s *stubPostService) Unlike(ctx context.Context, postID, userID string) ([]domain.Like, error) {
	return nil, domain.ErrNotLiked
}

func (s *stubPostService) AddComment(ctx context.Context, postID, userID, text string) ([]domain.Comment, error) {
	return nil, nil
}

func (s *stubPostService) RemoveComment(ctx context.Context, postID, commentID, requesterID string) ([]domain.Comment, error) {
	return s.removeCommentFn(ctx, postID, commentID, requesterID)
}

func TestPostHandler_Create_Success(t *testing.T) {
	h := NewPostHandler(&stubPostService{
		createFn: func(ctx context.Context, userID, text string) (*domain.Post, error) {
			if userID != "user_1" || text != "hello" {
				t.Fatalf("unexpected args: %s %s", userID, text)
			}
			return &domain.Post{
				ID:       "post_1",
				UserID:   userID,
				Name:     "Alice",
				Text:     text,
				Likes:    []domain.Like{},
				Comments: []domain.Comment{},
			}, nil
		},
	})

	c, rec := newTestContext(t, http.MethodPost, "/api/posts", `{"text":"hello"}`)
	c.Set(middleware.UserIDKey, "user_1")

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["_id"] != "post_1" || resp["text"] != "hello" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if likes, ok := resp["likes"].([]any); !ok || len(likes) != 0 {
		t.Fatalf("expected empty likes array, got %+v", resp["likes"])
	}
}

func TestPostHandler_Create_EmptyText(t *testing.T) {
	h := NewPostHandler(&stubPostService{
		createFn: func(ctx context.Context, userID, text string) (*domain.Post, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	})

	c, _ := newTestContext(t, http.MethodPost, "/api/posts", `{"text":""}`)
	c.Set(middleware.UserIDKey, "user_1")

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestPostHandler_Create_WithoutClaims(t *testing.T) {
	h := NewPostHandler(&stubPostService{})

	c, _ := newTestContext(t, http.MethodPost, "/api/posts", `{"text":"hello"}`)

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestPostHandler_Delete_Success(t *testing.T) {
	h := NewPostHandler(&stubPostService{
		deleteFn: func(ctx context.Context, postID, requesterID string) error {
			if postID != "post_1" || requesterID != "user_1" {
				t.Fatalf("unexpected args: %s %s", postID, requesterID)
			}
			return nil
		},
	})

	c, rec := newTestContext(t, http.MethodDelete, "/api/posts/post_1", "")
	c.SetParamNames("id")
	c.SetParamValues("post_1")
	c.Set(middleware.UserIDKey, "user_1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["msg"] != "post successfully deleted" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestPostHandler_Delete_ForeignPost(t *testing.T) {
	h := NewPostHandler(&stubPostService{
		deleteFn: func(ctx context.Context, postID, requesterID string) error {
			return domain.ErrForbidden
		},
	})

	c, _ := newTestContext(t, http.MethodDelete, "/api/posts/post_1", "")
	c.SetParamNames("id")
	c.SetParamValues("post_1")
	c.Set(middleware.UserIDKey, "user_2")

	// Sentinel passes through; the central error handler renders it as 401.
	if err := h.Delete(c); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestPostHandler_Like_ReturnsUpdatedList(t *testing.T) {
	h := NewPostHandler(&stubPostService{
		likeFn: func(ctx context.Context, postID, userID string) ([]domain.Like, error) {
			return []domain.Like{{ID: "like_1", UserID: userID}}, nil
		},
	})

	c, rec := newTestContext(t, http.MethodPut, "/api/posts/like/post_1", "")
	c.SetParamNames("id")
	c.SetParamValues("post_1")
	c.Set(middleware.UserIDKey, "user_1")

	if err := h.Like(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var likes []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &likes); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(likes) != 1 || likes[0]["user"] != "user_1" {
		t.Fatalf("unexpected likes payload: %+v", likes)
	}
}

func TestPostHandler_Like_Duplicate(t *testing.T) {
	h := NewPostHandler(&stubPostService{
		likeFn: func(ctx context.Context, postID, userID string) ([]domain.Like, error) {
			return nil, domain.ErrAlreadyLiked
		},
	})

	c, _ := newTestContext(t, http.MethodPut, "/api/posts/like/post_1", "")
	c.SetParamNames("id")
	c.SetParamValues("post_1")
	c.Set(middleware.UserIDKey, "user_1")

	if err := h.Like(c); err != domain.ErrAlreadyLiked {
		t.Fatalf("expected ErrAlreadyLiked, got %v", err)
	}
}

func TestPostHandler_RemoveComment(t *testing.T) {
	h := NewPostHandler(&stubPostService{
		removeCommentFn: func(ctx context.Context, postID, commentID, requesterID string) ([]domain.Comment, error) {
			if postID != "post_1" || commentID != "comment_1" || requesterID != "user_1" {
				t.Fatalf("unexpected args: %s %s %s", postID, commentID, requesterID)
			}
			return []domain.Comment{}, nil
		},
	})

	c, rec := newTestContext(t, http.MethodDelete, "/api/posts/comments/post_1/comment_1", "")
	c.SetParamNames("post_id", "comment_id")
	c.SetParamValues("post_1", "comment_1")
	c.Set(middleware.UserIDKey, "user_1")

	if err := h.RemoveComment(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
