package model

import "time"

// ScheduledEmailType discriminates what a scheduled email announces
type ScheduledEmailType string

const (
	ScheduledEmailTypeBlog    ScheduledEmailType = "blog"
	ScheduledEmailTypeProduct ScheduledEmailType = "product"
)

// ScheduledEmailStatus represents the lifecycle state of a scheduled email.
// Valid transitions are pending -> sent and pending -> cancelled; a sent or
// cancelled record is immutable.
type ScheduledEmailStatus string

const (
	ScheduledEmailStatusPending   ScheduledEmailStatus = "pending"
	ScheduledEmailStatusSent      ScheduledEmailStatus = "sent"
	ScheduledEmailStatusCancelled ScheduledEmailStatus = "cancelled"
)

// ScheduledEmail represents an admin-created broadcast scheduled for a
// future send time. A blog-type record references a post; a product-type
// record carries the product fields inline.
type ScheduledEmail struct {
	ID           string               `json:"id"`
	Type         ScheduledEmailType   `json:"type"`
	PostID       string               `json:"postId,omitempty"`
	ProductTitle string               `json:"productTitle,omitempty"`
	ProductDesc  string               `json:"productDescription,omitempty"`
	ProductImage string               `json:"productImageUrl,omitempty"`
	ProductLink  string               `json:"productLinkUrl,omitempty"`
	ScheduledFor time.Time            `json:"scheduledFor"`
	Status       ScheduledEmailStatus `json:"status"`
	SentAt       *time.Time           `json:"sentAt,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}
