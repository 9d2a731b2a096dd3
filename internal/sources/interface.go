package sources

import (
	"context"

	"github.com/brandintel/competitor-intel-bot/internal/models"
)

// Source is the contract the aggregator fetches posts through. All
// operations are best-effort: transient and parse failures are logged and
// yield empty results, so one bad handle never aborts a run. The only
// error any method returns is *gateway.AuthError, which is fatal.
type Source interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]models.Post, error)
	Mentions(ctx context.Context, limit int) ([]models.Post, error)
	Bookmarks(ctx context.Context, limit int) ([]models.Post, error)
	ReadPost(ctx context.Context, id string) (*models.Post, error)
	Replies(ctx context.Context, id string, limit int) ([]models.Post, error)
	Thread(ctx context.Context, id string) ([]models.Post, error)
}
