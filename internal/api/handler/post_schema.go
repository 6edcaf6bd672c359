package handler

// createPostRequest is the body of POST /api/posts and of
// POST /api/posts/comments/:id.
type createPostRequest struct {
	Text string `json:"text" validate:"required"`
}
