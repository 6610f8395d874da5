package bugbounty

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bugbounty-ksp/client-go/internal/api"
)

// PublishArticle publishes a new article to the platform.
//
// Title must be non-empty after trimming, and an article needs body
// content, images, or both; violations return ValidationError before any
// request is sent. Publishing is not idempotent: repeated identical calls
// create repeated articles.
func (c *Client) PublishArticle(ctx context.Context, title, content string, opts ...PublishOption) (*PublishResponse, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	cfg := &publishConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if strings.TrimSpace(title) == "" {
		return nil, &ValidationError{Field: "title", Message: "title must not be empty"}
	}
	if content == "" && len(cfg.images) == 0 {
		return nil, &ValidationError{Field: "content", Message: "article needs content or images"}
	}

	frontmatter := ""
	if cfg.frontmatter != nil {
		data, err := json.Marshal(cfg.frontmatter)
		if err != nil {
			return nil, &ValidationError{
				Field:   "frontmatter",
				Message: fmt.Sprintf("not serializable: %v", err),
			}
		}
		frontmatter = string(data)
	}

	if err := c.ensureVerified(ctx); err != nil {
		return nil, err
	}

	resp, err := c.apiClient.PublishArticle(ctx, api.PublishArticleRequest{
		Title:       title,
		Content:     content,
		Frontmatter: frontmatter,
		FilePath:    cfg.filePath,
		Images:      cfg.images,
	})
	if err != nil {
		return nil, c.unverify(err)
	}

	return newPublishResponse(resp), nil
}

// GetArticle fetches a published article by its published id.
func (c *Client) GetArticle(ctx context.Context, publishedID string) (*Article, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}
	if publishedID == "" {
		return nil, &ValidationError{Field: "published_id", Message: "published id must not be empty"}
	}

	if err := c.ensureVerified(ctx); err != nil {
		return nil, err
	}

	resp, err := c.apiClient.GetArticle(ctx, publishedID)
	if err != nil {
		return nil, c.unverify(err)
	}

	return newArticle(resp), nil
}

// DeleteArticle deletes an article by its published id. Only the article
// owner or moderators can delete; articles are archived rather than
// permanently removed.
//
// Whether deleting an already-deleted article is a no-op or NotFoundError
// is the platform's call; the client surfaces whatever the server reports.
func (c *Client) DeleteArticle(ctx context.Context, publishedID string) (*DeleteResponse, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}
	if publishedID == "" {
		return nil, &ValidationError{Field: "published_id", Message: "published id must not be empty"}
	}

	if err := c.ensureVerified(ctx); err != nil {
		return nil, err
	}

	resp, err := c.apiClient.DeleteArticle(ctx, publishedID)
	if err != nil {
		return nil, c.unverify(err)
	}

	return newDeleteResponse(resp), nil
}
