package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"

	"github.com/bugbounty-ksp/client-go/internal/apierrors"
)

// VerifyAuth checks the API key against the auth endpoint. The probe runs
// under its own short deadline so a misconfigured key fails fast.
func (c *Client) VerifyAuth(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, VerifyTimeout)
	defer cancel()
	return c.Do(ctx, http.MethodGet, "/api/auth/verify", nil, nil)
}

// PublishArticle publishes an article. Attached images switch the request
// to multipart form encoding with one "images[<filename>]" part per image;
// without images the body is plain JSON.
func (c *Client) PublishArticle(ctx context.Context, req PublishArticleRequest) (*PublishArticleResponse, error) {
	frontmatter := req.Frontmatter
	if frontmatter == "" {
		frontmatter = "{}"
	}

	var result PublishArticleResponse
	if len(req.Images) == 0 {
		body := publishArticleJSONRequest{
			Title:       req.Title,
			Content:     req.Content,
			Frontmatter: frontmatter,
			FilePath:    req.FilePath,
		}
		if err := c.Do(ctx, http.MethodPost, "/api/articles/publish", body, &result); err != nil {
			return nil, err
		}
		return &result, nil
	}

	fields := map[string]string{
		"title":       req.Title,
		"content":     req.Content,
		"frontmatter": frontmatter,
		"file_path":   req.FilePath,
	}
	files := make([]FilePart, 0, len(req.Images))
	for filename, data := range req.Images {
		files = append(files, FilePart{
			FieldName: fmt.Sprintf("images[%s]", filename),
			FileName:  filename,
			Data:      data,
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].FileName < files[j].FileName })

	if err := c.DoMultipart(ctx, http.MethodPost, "/api/articles/publish", fields, files, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetArticle fetches a published article by id.
func (c *Client) GetArticle(ctx context.Context, publishedID string) (*ArticleResponse, error) {
	path := fmt.Sprintf("/api/articles/%s", url.PathEscape(publishedID))
	var result ArticleResponse
	if err := c.Do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, apierrors.WithArticleID(err, publishedID)
	}
	return &result, nil
}

// DeleteArticle deletes an article. Deletions are soft on the platform
// side: the article is archived, not removed.
func (c *Client) DeleteArticle(ctx context.Context, publishedID string) (*DeleteArticleResponse, error) {
	path := fmt.Sprintf("/api/articles/%s", url.PathEscape(publishedID))
	var result DeleteArticleResponse
	if err := c.Do(ctx, http.MethodDelete, path, nil, &result); err != nil {
		return nil, apierrors.WithArticleID(err, publishedID)
	}
	return &result, nil
}
