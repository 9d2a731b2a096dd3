package gateway

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/brandintel/competitor-intel-bot/internal/models"
)

// ParseError indicates the external tool emitted output that is not the
// JSON object or array it promised. Callers treat it like a transient
// failure for the affected handle.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse external tool output: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// rawPost tolerates the several field spellings the external tool uses for
// the same concept. It exists only inside this package; everything past
// the gateway sees models.Post.
type rawPost struct {
	ID       string `json:"id"`
	IDStr    string `json:"id_str"`
	Text     string `json:"text"`
	FullText string `json:"full_text"`
	Content  string `json:"content"`

	Author     string `json:"author"`
	Username   string `json:"username"`
	ScreenName string `json:"screen_name"`
	User       struct {
		Username   string `json:"username"`
		ScreenName string `json:"screen_name"`
	} `json:"user"`

	URL       string `json:"url"`
	CreatedAt string `json:"created_at"`
	Timestamp string `json:"timestamp"`

	Likes         int `json:"likes"`
	LikeCount     int `json:"like_count"`
	FavoriteCount int `json:"favorite_count"`
	Retweets      int `json:"retweets"`
	RetweetCount  int `json:"retweet_count"`
	Shares        int `json:"shares"`
	Replies       int `json:"replies"`
	ReplyCount    int `json:"reply_count"`
	Quotes        int `json:"quotes"`
	QuoteCount    int `json:"quote_count"`

	PublicMetrics struct {
		LikeCount    int `json:"like_count"`
		RetweetCount int `json:"retweet_count"`
		ReplyCount   int `json:"reply_count"`
		QuoteCount   int `json:"quote_count"`
	} `json:"public_metrics"`
}

// ParsePosts decodes the tool's stdout into canonical posts. A single
// JSON object is normalized to a one-element slice so callers handle
// every result shape uniformly.
func ParsePosts(output string) ([]models.Post, error) {
	trimmed := strings.TrimSpace(output)
	if trimmed == "" {
		return nil, &ParseError{Err: fmt.Errorf("empty output")}
	}

	var raws []rawPost
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal([]byte(trimmed), &raws); err != nil {
			return nil, &ParseError{Err: err}
		}
	case '{':
		var single rawPost
		if err := json.Unmarshal([]byte(trimmed), &single); err != nil {
			return nil, &ParseError{Err: err}
		}
		raws = []rawPost{single}
	default:
		return nil, &ParseError{Err: fmt.Errorf("output is not a JSON object or array")}
	}

	posts := make([]models.Post, 0, len(raws))
	for _, raw := range raws {
		posts = append(posts, raw.normalize())
	}
	return posts, nil
}

func (r rawPost) normalize() models.Post {
	return models.Post{
		ID:        firstString(r.ID, r.IDStr),
		Text:      firstString(r.Text, r.FullText, r.Content),
		Author:    firstString(r.Author, r.Username, r.ScreenName, r.User.Username, r.User.ScreenName),
		URL:       r.URL,
		CreatedAt: parseTimestamp(firstString(r.CreatedAt, r.Timestamp)),
		Likes:     firstInt(r.LikeCount, r.Likes, r.FavoriteCount, r.PublicMetrics.LikeCount),
		Retweets:  firstInt(r.RetweetCount, r.Retweets, r.Shares, r.PublicMetrics.RetweetCount),
		Replies:   firstInt(r.ReplyCount, r.Replies, r.PublicMetrics.ReplyCount),
		Quotes:    firstInt(r.QuoteCount, r.Quotes, r.PublicMetrics.QuoteCount),
	}
}

func firstString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstInt(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

// timestampFormats covers the spellings seen in the tool's output.
var timestampFormats = []string{
	time.RFC3339,
	time.RubyDate, // classic twitter format
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(value string) time.Time {
	for _, layout := range timestampFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
