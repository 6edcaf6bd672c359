package domain

import (
	"errors"
	"time"
)

var ErrPostNotFound = errors.New("post not found")
var ErrCommentNotFound = errors.New("comment does not exist")
var ErrAlreadyLiked = errors.New("post already liked")
var ErrNotLiked = errors.New("post has not yet been liked")
var ErrForbidden = errors.New("user not authorized")

// Like marks that a user liked a post. At most one entry per user id per
// post; the store-level conditional update enforces this under concurrency.
type Like struct {
	ID     string `json:"_id,omitempty" bson:"_id,omitempty"`
	UserID string `json:"user" bson:"user"`
}

// Comment is an embedded comment on a post. Name and Avatar are snapshots
// of the commenting user taken at write time.
type Comment struct {
	ID        string    `json:"_id" bson:"_id"`
	UserID    string    `json:"user" bson:"user"`
	Name      string    `json:"name" bson:"name"`
	Avatar    string    `json:"avatar" bson:"avatar"`
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"date" bson:"date"`
}

// Post is the feed aggregate: the post body plus its embedded like and
// comment lists. Name and Avatar snapshot the author at creation time and
// never update retroactively.
type Post struct {
	ID        string    `json:"_id" bson:"_id,omitempty"`
	UserID    string    `json:"user" bson:"user"`
	Name      string    `json:"name" bson:"name"`
	Avatar    string    `json:"avatar" bson:"avatar"`
	Text      string    `json:"text" bson:"text"`
	Likes     []Like    `json:"likes" bson:"likes"`
	Comments  []Comment `json:"comments" bson:"comments"`
	CreatedAt time.Time `json:"date" bson:"date"`
}

// LikedBy reports whether userID already appears in the like list.
func (p *Post) LikedBy(userID string) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

// FindComment returns the comment with the given id, or nil.
func (p *Post) FindComment(commentID string) *Comment {
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			return &p.Comments[i]
		}
	}
	return nil
}
