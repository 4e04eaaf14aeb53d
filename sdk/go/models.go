package aeon

import "time"

// Post represents a published blog post returned by the API.
type Post struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	BodyHTML    string     `json:"bodyHtml"`
	CoverURL    string     `json:"coverUrl,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

// Comment represents an approved reader comment.
type Comment struct {
	ID         string    `json:"id"`
	PostID     string    `json:"postId"`
	AuthorName string    `json:"authorName"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CommentRequest contains a comment submission.
type CommentRequest struct {
	AuthorName string `json:"author_name,omitempty"`
	Email      string `json:"email,omitempty"`
	Body       string `json:"body"`
}

// SubscribeRequest contains a newsletter signup.
type SubscribeRequest struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// InquiryRequest contains a contact form submission.
type InquiryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}
