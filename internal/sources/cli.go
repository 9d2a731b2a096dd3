package sources

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/brandintel/competitor-intel-bot/internal/gateway"
	"github.com/brandintel/competitor-intel-bot/internal/models"
	"github.com/sirupsen/logrus"
)

// CLISource fetches posts through the external social-media CLI. Each
// operation is a thin wrapper: build subcommand + arguments, run the
// gateway, parse JSON.
type CLISource struct {
	gw *gateway.Gateway
}

// Ensure CLISource implements Source
var _ Source = (*CLISource)(nil)

// NewCLISource creates a source backed by the given gateway.
func NewCLISource(gw *gateway.Gateway) *CLISource {
	return &CLISource{gw: gw}
}

func (s *CLISource) Name() string {
	return "cli"
}

// Search runs a free-form query (`from:<handle>` restricts to an author).
func (s *CLISource) Search(ctx context.Context, query string, limit int) ([]models.Post, error) {
	return s.fetch(ctx, fmt.Sprintf("search %q", query), "search", []string{query, "--limit", strconv.Itoa(limit)})
}

// Mentions fetches recent mentions of the authenticated account.
func (s *CLISource) Mentions(ctx context.Context, limit int) ([]models.Post, error) {
	return s.fetch(ctx, "mentions", "mentions", []string{"--limit", strconv.Itoa(limit)})
}

// Bookmarks fetches the authenticated account's bookmarked posts.
func (s *CLISource) Bookmarks(ctx context.Context, limit int) ([]models.Post, error) {
	return s.fetch(ctx, "bookmarks", "bookmarks", []string{"--limit", strconv.Itoa(limit)})
}

// ReadPost fetches one post by id. Returns nil (not an error) when the
// post cannot be fetched or parsed.
func (s *CLISource) ReadPost(ctx context.Context, id string) (*models.Post, error) {
	posts, err := s.fetch(ctx, fmt.Sprintf("read %s", id), "read", []string{id})
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, nil
	}
	return &posts[0], nil
}

// Replies fetches direct replies to a post.
func (s *CLISource) Replies(ctx context.Context, id string, limit int) ([]models.Post, error) {
	return s.fetch(ctx, fmt.Sprintf("replies %s", id), "replies", []string{id, "--limit", strconv.Itoa(limit)})
}

// Thread fetches a full conversation thread.
func (s *CLISource) Thread(ctx context.Context, id string) ([]models.Post, error) {
	return s.fetch(ctx, fmt.Sprintf("thread %s", id), "thread", []string{id})
}

// fetch applies the best-effort policy: auth failures propagate, anything
// else is logged as a skip and returns an empty slice.
func (s *CLISource) fetch(ctx context.Context, op, subcommand string, args []string) ([]models.Post, error) {
	out, err := s.gw.Execute(ctx, subcommand, args, gateway.Options{JSON: true})
	if err != nil {
		var authErr *gateway.AuthError
		if errors.As(err, &authErr) {
			return nil, err
		}
		logrus.Warnf("Skipping %s after exhausted retries: %v", op, err)
		return []models.Post{}, nil
	}

	posts, err := gateway.ParsePosts(out)
	if err != nil {
		logrus.Warnf("Skipping %s, unparseable output: %v", op, err)
		return []models.Post{}, nil
	}

	return posts, nil
}
