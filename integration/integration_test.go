//go:build integration

package integration

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"
	bugbounty "github.com/bugbounty-ksp/client-go"
)

var (
	apiKey  string
	baseURL string
)

func TestMain(m *testing.M) {
	// Load .env file if it exists (won't error if missing)
	if err := godotenv.Load("../.env"); err != nil {
		os.Stderr.WriteString("Note: .env file not found at project root\n")
	}

	apiKey = os.Getenv("BUGBOUNTY_API_KEY")
	baseURL = os.Getenv("BUGBOUNTY_API_URL")

	if apiKey == "" {
		os.Stderr.WriteString("Skipping integration tests: BUGBOUNTY_API_KEY not set\n")
		os.Exit(0)
	}

	if baseURL == "" {
		os.Stderr.WriteString("Skipping integration tests: BUGBOUNTY_API_URL not set\n")
		os.Exit(0)
	}

	os.Stderr.WriteString("Running integration tests...\n")
	os.Stderr.WriteString("API URL: " + baseURL + "\n")

	os.Exit(m.Run())
}

func newClient(t *testing.T, opts ...bugbounty.Option) *bugbounty.Client {
	t.Helper()

	opts = append([]bugbounty.Option{
		bugbounty.WithBaseURL(baseURL),
		bugbounty.WithTimeout(30 * time.Second),
	}, opts...)

	client, err := bugbounty.New(apiKey, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	t.Cleanup(func() {
		client.Close()
	})

	return client
}

func testFrontmatter(title string) bugbounty.Frontmatter {
	return bugbounty.Frontmatter{
		"title":      title,
		"tags":       []string{"integration"},
		"category":   "testing",
		"difficulty": "easy",
		"author":     "go-sdk-suite",
	}
}

func TestIntegration_VerifyAuthentication(t *testing.T) {
	client := newClient(t)
	ctx := testContext(t)

	if client.Verified() {
		t.Error("Verified() = true before any operation")
	}

	if err := client.VerifyAuthentication(ctx); err != nil {
		t.Fatalf("VerifyAuthentication() error = %v", err)
	}

	if !client.Verified() {
		t.Error("Verified() = false after successful verification")
	}
}

func TestIntegration_VerifyAuthentication_RejectedKey(t *testing.T) {
	// Well-formed but unissued key: passes the local format check, fails
	// server-side.
	client, err := bugbounty.New("sk_"+strings.Repeat("0", 32),
		bugbounty.WithBaseURL(baseURL),
		bugbounty.WithTimeout(30*time.Second),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer client.Close()

	ctx := testContext(t)

	err = client.VerifyAuthentication(ctx)
	if !errors.Is(err, bugbounty.ErrUnauthorized) {
		t.Errorf("VerifyAuthentication() error = %v, want ErrUnauthorized", err)
	}
	if client.Verified() {
		t.Error("Verified() = true after rejection")
	}
}

func TestIntegration_PublishGetDelete(t *testing.T) {
	client := newClient(t)
	ctx := testContext(t)

	title := "Go SDK Round Trip"
	resp, err := client.PublishArticle(ctx, title,
		"# Round trip\n\nPublished by the Go SDK integration suite.",
		bugbounty.WithFrontmatter(testFrontmatter(title)),
		bugbounty.WithFilePath("writeups/go-sdk-round-trip.md"),
	)
	if err != nil {
		t.Fatalf("PublishArticle() error = %v", err)
	}

	t.Logf("Published: %s", resp.WebURL)

	if !resp.Success {
		t.Error("Success = false")
	}
	if resp.PublishedID == "" {
		t.Fatal("PublishedID is empty")
	}
	if resp.WebURL == "" {
		t.Error("WebURL is empty")
	}
	if resp.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero")
	}

	// Fetch it back
	article, err := client.GetArticle(ctx, resp.PublishedID)
	if err != nil {
		t.Fatalf("GetArticle() error = %v", err)
	}
	if article.Title != title {
		t.Errorf("Title = %q, want %q", article.Title, title)
	}
	if article.Archived {
		t.Error("Archived = true for a freshly published article")
	}

	// Delete it
	del, err := client.DeleteArticle(ctx, resp.PublishedID)
	if err != nil {
		t.Fatalf("DeleteArticle() error = %v", err)
	}
	if !del.Success {
		t.Error("delete Success = false")
	}
	if !del.Archived {
		t.Error("delete Archived = false, want soft delete")
	}

	// A soft-deleted article either 404s or comes back archived, depending
	// on server-side retention.
	got, err := client.GetArticle(ctx, resp.PublishedID)
	if err != nil {
		var nf *bugbounty.NotFoundError
		if !errors.As(err, &nf) {
			t.Errorf("GetArticle() after delete error = %v, want NotFoundError", err)
		}
	} else if !got.Archived {
		t.Error("article still retrievable after delete but not archived")
	}
}

func TestIntegration_PublishWithImages(t *testing.T) {
	client := newClient(t)
	ctx := testContext(t)

	title := "Go SDK Image Upload"
	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	resp, err := client.PublishArticle(ctx, title,
		"# Images\n\n![diagram](diagram.png)",
		bugbounty.WithFrontmatter(testFrontmatter(title)),
		bugbounty.WithImages(map[string][]byte{"diagram.png": png}),
	)
	if err != nil {
		t.Fatalf("PublishArticle() error = %v", err)
	}
	defer client.DeleteArticle(ctx, resp.PublishedID)

	if len(resp.Images) == 0 {
		t.Error("Images is empty, want a CDN URL for diagram.png")
	}

	t.Logf("Uploaded images: %v", resp.Images)
}

func TestIntegration_LazyVerification(t *testing.T) {
	client := newClient(t)
	ctx := testContext(t)

	// Construction alone must not verify
	if client.Verified() {
		t.Fatal("Verified() = true before any operation")
	}

	title := "Go SDK Lazy Verification"
	resp, err := client.PublishArticle(ctx, title,
		"# Lazy\n\nThe first privileged call verifies the key.",
		bugbounty.WithFrontmatter(testFrontmatter(title)),
	)
	if err != nil {
		t.Fatalf("PublishArticle() error = %v", err)
	}
	defer client.DeleteArticle(ctx, resp.PublishedID)

	if !client.Verified() {
		t.Error("Verified() = false after a successful operation")
	}
}

func TestIntegration_GetArticle_NotFound(t *testing.T) {
	client := newClient(t)
	ctx := testContext(t)

	const missing = "pub-go-sdk-does-not-exist"
	_, err := client.GetArticle(ctx, missing)

	var notFound *bugbounty.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("GetArticle() error = %v, want NotFoundError", err)
	}
	if notFound.ArticleID != missing {
		t.Errorf("ArticleID = %q, want %q", notFound.ArticleID, missing)
	}
	if !errors.Is(err, bugbounty.ErrArticleNotFound) {
		t.Error("error does not match ErrArticleNotFound")
	}
}

func TestIntegration_ValidationBeforeNetwork(t *testing.T) {
	client := newClient(t)
	ctx := testContext(t)

	_, err := client.PublishArticle(ctx, "", "content")

	var validation *bugbounty.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("PublishArticle() error = %v, want ValidationError", err)
	}
	if validation.Field != "title" {
		t.Errorf("Field = %q, want %q", validation.Field, "title")
	}
}

func TestIntegration_FromEnv(t *testing.T) {
	// TestMain guarantees both variables are set.
	client, err := bugbounty.NewFromEnv()
	if err != nil {
		t.Fatalf("NewFromEnv() error = %v", err)
	}
	defer client.Close()

	ctx := testContext(t)

	if err := client.VerifyAuthentication(ctx); err != nil {
		t.Fatalf("VerifyAuthentication() error = %v", err)
	}
}

// testContext creates a test context with cleanup.
func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	t.Cleanup(cancel)
	return ctx
}
