package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/logger"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/model"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/repository"
)

// Blog errors
var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrEmptyComment    = errors.New("comment body is required")
)

// BlogService manages posts and reader comments.
type BlogService struct {
	posts    *repository.PostRepository
	comments *repository.CommentRepository
	log      *logger.Logger
}

// NewBlogService creates a new BlogService.
func NewBlogService(posts *repository.PostRepository, comments *repository.CommentRepository, log *logger.Logger) *BlogService {
	return &BlogService{
		posts:    posts,
		comments: comments,
		log:      log.WithComponent("blog"),
	}
}

// PostInput holds the admin-supplied fields for creating or updating a post.
type PostInput struct {
	Title    string
	Excerpt  string
	BodyHTML string
	CoverURL string
	Publish  bool
}

// CreatePost creates a post. Publishing sets the published timestamp.
func (s *BlogService) CreatePost(ctx context.Context, in PostInput) (*model.Post, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("post title is required")
	}

	now := time.Now()
	post := &model.Post{
		ID:        uuid.New().String(),
		Slug:      Slugify(in.Title),
		Title:     in.Title,
		Excerpt:   in.Excerpt,
		BodyHTML:  in.BodyHTML,
		CoverURL:  in.CoverURL,
		Status:    model.PostStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Publish {
		post.Status = model.PostStatusPublished
		post.PublishedAt = &now
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	s.log.Info().Str("post_id", post.ID).Str("slug", post.Slug).Msg("post created")
	return post, nil
}

// UpdatePost updates a post's content and publication state.
func (s *BlogService) UpdatePost(ctx context.Context, id string, in PostInput) (*model.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	post.Title = in.Title
	post.Slug = Slugify(in.Title)
	post.Excerpt = in.Excerpt
	post.BodyHTML = in.BodyHTML
	post.CoverURL = in.CoverURL
	if in.Publish && post.Status != model.PostStatusPublished {
		now := time.Now()
		post.Status = model.PostStatusPublished
		post.PublishedAt = &now
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post and its comments.
func (s *BlogService) DeletePost(ctx context.Context, id string) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}

// GetPublishedPost returns a published post by slug.
func (s *BlogService) GetPublishedPost(ctx context.Context, slug string) (*model.Post, error) {
	post, err := s.posts.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if post.Status != model.PostStatusPublished {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// ListPublishedPosts returns published posts for the public blog index.
func (s *BlogService) ListPublishedPosts(ctx context.Context) ([]model.Post, error) {
	return s.posts.ListPublished(ctx)
}

// ListAllPosts returns every post for the admin UI.
func (s *BlogService) ListAllPosts(ctx context.Context) ([]model.Post, error) {
	return s.posts.ListAll(ctx)
}

// AddComment records a reader comment in pending status for moderation.
func (s *BlogService) AddComment(ctx context.Context, postID, authorName, email, body string) (*model.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyComment
	}
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	comment := &model.Comment{
		ID:         uuid.New().String(),
		PostID:     postID,
		AuthorName: strings.TrimSpace(authorName),
		Email:      strings.ToLower(strings.TrimSpace(email)),
		Body:       strings.TrimSpace(body),
		Status:     model.CommentStatusPending,
		CreatedAt:  time.Now(),
	}
	if comment.AuthorName == "" {
		comment.AuthorName = "Anonymous"
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns approved comments for a post.
func (s *BlogService) ListComments(ctx context.Context, postID string) ([]model.Comment, error) {
	return s.comments.ListApprovedByPost(ctx, postID)
}

// ListPendingComments returns comments awaiting moderation.
func (s *BlogService) ListPendingComments(ctx context.Context) ([]model.Comment, error) {
	return s.comments.ListPending(ctx)
}

// ApproveComment approves a pending comment.
func (s *BlogService) ApproveComment(ctx context.Context, id string) error {
	if err := s.comments.Approve(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	return nil
}

// DeleteComment removes a comment.
func (s *BlogService) DeleteComment(ctx context.Context, id string) error {
	if err := s.comments.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	return nil
}

var slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a title into a URL slug.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugUnsafe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
