package model

import "time"

// PostStatus represents the publication state of a blog post
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// Post represents a blog post
type Post struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	BodyHTML    string     `json:"bodyHtml"`
	CoverURL    string     `json:"coverUrl,omitempty"`
	Status      PostStatus `json:"status"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CommentStatus represents the moderation state of a comment
type CommentStatus string

const (
	CommentStatusPending  CommentStatus = "pending"
	CommentStatusApproved CommentStatus = "approved"
)

// Comment represents a reader comment on a blog post
type Comment struct {
	ID         string        `json:"id"`
	PostID     string        `json:"postId"`
	AuthorName string        `json:"authorName"`
	Email      string        `json:"-"`
	Body       string        `json:"body"`
	Status     CommentStatus `json:"status"`
	CreatedAt  time.Time     `json:"createdAt"`
}
