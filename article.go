package bugbounty

import (
	"fmt"
	"strings"
	"time"

	"github.com/bugbounty-ksp/client-go/internal/api"
)

// Frontmatter is the structured metadata attached to an article, mirroring
// the YAML block of the source markdown file. It is sent to the platform as
// a JSON-encoded string alongside the article body.
type Frontmatter map[string]any

// requiredFrontmatterFields are the fields the platform requires before an
// article is listed publicly.
var requiredFrontmatterFields = []string{"title", "tags", "category", "difficulty", "author"}

// Validate checks that the frontmatter carries every field the platform
// requires, with a non-empty title and string tags. PublishArticle does not
// call this: the platform accepts partial frontmatter for drafts, so
// enforcing completeness is the caller's choice.
func (f Frontmatter) Validate() error {
	var missing []string
	for _, field := range requiredFrontmatterFields {
		if _, ok := f[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{
			Field:   "frontmatter",
			Message: fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")),
		}
	}

	if title, ok := f["title"].(string); !ok || strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "frontmatter", Message: "title must be a non-empty string"}
	}

	switch tags := f["tags"].(type) {
	case []string:
	case []any:
		// JSON and YAML decoders produce []any; each element must still
		// be a string.
		for _, tag := range tags {
			if _, ok := tag.(string); !ok {
				return &ValidationError{Field: "frontmatter", Message: "all tags must be strings"}
			}
		}
	default:
		return &ValidationError{Field: "frontmatter", Message: "tags must be a list"}
	}

	return nil
}

// PublishResponse is the result of a successful publish.
type PublishResponse struct {
	Success     bool
	ArticleID   string
	PublishedID string
	// WebURL is the public URL of the published article.
	WebURL string
	// Images maps uploaded filenames to their CDN URLs.
	Images    map[string]string
	CreatedAt time.Time
}

// Article is a published article as returned by the platform. It is a pure
// data struct; use Client methods to operate on it.
type Article struct {
	ArticleID   string
	PublishedID string
	Title       string
	Content     string
	// Frontmatter is the article metadata as the JSON-encoded string the
	// platform stores.
	Frontmatter string
	WebURL      string
	Images      map[string]string
	CreatedAt   time.Time
	Archived    bool
}

// DeleteResponse confirms an article deletion. Deletions are soft: the
// platform archives the article rather than removing it.
type DeleteResponse struct {
	Success     bool
	ArticleID   string
	PublishedID string
	DeletedAt   time.Time
	Archived    bool
}

func newPublishResponse(resp *api.PublishArticleResponse) *PublishResponse {
	return &PublishResponse{
		Success:     resp.Success,
		ArticleID:   resp.ArticleID,
		PublishedID: resp.PublishedID,
		WebURL:      resp.WebURL,
		Images:      resp.Images,
		CreatedAt:   resp.CreatedAt,
	}
}

func newArticle(resp *api.ArticleResponse) *Article {
	return &Article{
		ArticleID:   resp.ArticleID,
		PublishedID: resp.PublishedID,
		Title:       resp.Title,
		Content:     resp.Content,
		Frontmatter: resp.Frontmatter,
		WebURL:      resp.WebURL,
		Images:      resp.Images,
		CreatedAt:   resp.CreatedAt,
		Archived:    resp.Archived,
	}
}

func newDeleteResponse(resp *api.DeleteArticleResponse) *DeleteResponse {
	// Older platform versions omit archived from the delete response;
	// deletions are archival by default, so an absent field means true.
	archived := true
	if resp.Archived != nil {
		archived = *resp.Archived
	}
	return &DeleteResponse{
		Success:     resp.Success,
		ArticleID:   resp.ArticleID,
		PublishedID: resp.PublishedID,
		DeletedAt:   resp.DeletedAt,
		Archived:    archived,
	}
}
