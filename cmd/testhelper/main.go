// Command testhelper drives the SDK from the cross-SDK integration
// harness. Each subcommand reads JSON from stdin where it needs input and
// writes a single JSON document to stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	bugbounty "github.com/bugbounty-ksp/client-go"
	"github.com/bugbounty-ksp/client-go/apikey"
)

func main() {
	if err := run(os.Args, DefaultConfig()); err != nil {
		fatal("%v", err)
	}
}

// Config carries the process streams so tests can substitute buffers.
type Config struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultConfig returns a Config wired to the real process streams.
func DefaultConfig() *Config {
	return &Config{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// ClientInterface is the subset of the SDK client the helper commands use.
type ClientInterface interface {
	VerifyAuthentication(ctx context.Context) error
	PublishArticle(ctx context.Context, title, content string, opts ...bugbounty.PublishOption) (*bugbounty.PublishResponse, error)
	DeleteArticle(ctx context.Context, publishedID string) (*bugbounty.DeleteResponse, error)
}

func run(args []string, cfg *Config) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: testhelper <command> [args]")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	switch args[1] {
	case "generate-key":
		return runGenerateKey(cfg, args[2:])
	case "key-info":
		if len(args) < 3 {
			return fmt.Errorf("usage: testhelper key-info <key>")
		}
		return runKeyInfo(cfg, args[2])
	case "check-key":
		client, err := bugbounty.NewFromEnv()
		if err != nil {
			return fmt.Errorf("create client: %w", err)
		}
		defer client.Close()
		return runCheckKey(ctx, client, cfg)
	case "publish":
		client, err := bugbounty.NewFromEnv()
		if err != nil {
			return fmt.Errorf("create client: %w", err)
		}
		defer client.Close()
		return runPublish(ctx, client, cfg)
	case "delete":
		if len(args) < 3 {
			return fmt.Errorf("usage: testhelper delete <published_id>")
		}
		client, err := bugbounty.NewFromEnv()
		if err != nil {
			return fmt.Errorf("create client: %w", err)
		}
		defer client.Close()
		return runDelete(ctx, client, cfg, args[2])
	default:
		return fmt.Errorf("unknown command: %s", args[1])
	}
}

// GenerateOutput is the generate-key result.
type GenerateOutput struct {
	Keys []string `json:"keys"`
}

func runGenerateKey(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("generate-key", flag.ContinueOnError)
	fs.SetOutput(cfg.Stderr)
	test := fs.Bool("test", false, "generate test-environment keys")
	count := fs.Int("count", 1, "number of keys to generate")
	if err := fs.Parse(args); err != nil {
		return err
	}

	env := apikey.EnvironmentLive
	if *test {
		env = apikey.EnvironmentTest
	}

	keys, err := apikey.GenerateBatch(*count, env)
	if err != nil {
		return fmt.Errorf("generate keys: %w", err)
	}

	if err := json.NewEncoder(cfg.Stdout).Encode(GenerateOutput{Keys: keys}); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func runKeyInfo(cfg *Config, key string) error {
	info := apikey.GetInfo(key)
	if err := json.NewEncoder(cfg.Stdout).Encode(info); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func runCheckKey(ctx context.Context, client ClientInterface, cfg *Config) error {
	if err := client.VerifyAuthentication(ctx); err != nil {
		return fmt.Errorf("check key: %w", err)
	}
	if err := json.NewEncoder(cfg.Stdout).Encode(map[string]bool{"valid": true}); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

// PublishInput is the publish command's stdin document. Image payloads are
// base64 strings, which encoding/json maps to []byte.
type PublishInput struct {
	Title       string                `json:"title"`
	Content     string                `json:"content"`
	Frontmatter bugbounty.Frontmatter `json:"frontmatter,omitempty"`
	FilePath    string                `json:"file_path,omitempty"`
	Images      map[string][]byte     `json:"images,omitempty"`
}

// PublishOutput is the publish command's stdout document.
type PublishOutput struct {
	Success     bool              `json:"success"`
	ArticleID   string            `json:"article_id"`
	PublishedID string            `json:"published_id"`
	WebURL      string            `json:"web_url"`
	Images      map[string]string `json:"images,omitempty"`
	CreatedAt   string            `json:"created_at"`
}

func runPublish(ctx context.Context, client ClientInterface, cfg *Config) error {
	data, err := io.ReadAll(cfg.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	var input PublishInput
	if err := json.Unmarshal(data, &input); err != nil {
		return fmt.Errorf("parse input: %w", err)
	}

	var opts []bugbounty.PublishOption
	if input.Frontmatter != nil {
		opts = append(opts, bugbounty.WithFrontmatter(input.Frontmatter))
	}
	if input.FilePath != "" {
		opts = append(opts, bugbounty.WithFilePath(input.FilePath))
	}
	if len(input.Images) > 0 {
		opts = append(opts, bugbounty.WithImages(input.Images))
	}

	resp, err := client.PublishArticle(ctx, input.Title, input.Content, opts...)
	if err != nil {
		return fmt.Errorf("publish article: %w", err)
	}

	output := PublishOutput{
		Success:     resp.Success,
		ArticleID:   resp.ArticleID,
		PublishedID: resp.PublishedID,
		WebURL:      resp.WebURL,
		Images:      resp.Images,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}
	if err := json.NewEncoder(cfg.Stdout).Encode(output); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

// DeleteOutput is the delete command's stdout document.
type DeleteOutput struct {
	Success     bool   `json:"success"`
	ArticleID   string `json:"article_id"`
	PublishedID string `json:"published_id"`
	DeletedAt   string `json:"deleted_at"`
	Archived    bool   `json:"archived"`
}

func runDelete(ctx context.Context, client ClientInterface, cfg *Config, publishedID string) error {
	resp, err := client.DeleteArticle(ctx, publishedID)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}

	output := DeleteOutput{
		Success:     resp.Success,
		ArticleID:   resp.ArticleID,
		PublishedID: resp.PublishedID,
		DeletedAt:   resp.DeletedAt.Format(time.RFC3339),
		Archived:    resp.Archived,
	}
	if err := json.NewEncoder(cfg.Stdout).Encode(output); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
