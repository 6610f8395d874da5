package api

import "time"

// PublishArticleRequest carries a publish to POST /api/articles/publish.
// Frontmatter is the article metadata already encoded as a JSON string,
// which is how the platform expects it in both JSON and multipart form.
type PublishArticleRequest struct {
	Title       string
	Content     string
	Frontmatter string
	FilePath    string
	Images      map[string][]byte
}

// publishArticleJSONRequest is the JSON body used when no images are attached.
type publishArticleJSONRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	Frontmatter string `json:"frontmatter"`
	FilePath    string `json:"file_path"`
}

// PublishArticleResponse represents the POST /api/articles/publish response.
// Images maps uploaded filenames to their CDN URLs.
type PublishArticleResponse struct {
	Success     bool              `json:"success"`
	ArticleID   string            `json:"article_id"`
	PublishedID string            `json:"published_id"`
	WebURL      string            `json:"web_url"`
	Images      map[string]string `json:"images,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// ArticleResponse represents the GET /api/articles/{id} response.
type ArticleResponse struct {
	ArticleID   string            `json:"article_id"`
	PublishedID string            `json:"published_id"`
	Title       string            `json:"title"`
	Content     string            `json:"content"`
	Frontmatter string            `json:"frontmatter,omitempty"`
	WebURL      string            `json:"web_url,omitempty"`
	Images      map[string]string `json:"images,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	Archived    bool              `json:"archived"`
}

// DeleteArticleResponse represents the DELETE /api/articles/{id} response.
// Archived is a pointer because the server may omit it; deletions are soft
// by default, so an absent field means true.
type DeleteArticleResponse struct {
	Success     bool      `json:"success"`
	ArticleID   string    `json:"article_id"`
	PublishedID string    `json:"published_id"`
	DeletedAt   time.Time `json:"deleted_at"`
	Archived    *bool     `json:"archived"`
}
