package gateway

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePosts_SingleObjectNormalizedToList(t *testing.T) {
	output := `{"text":"hello","author":"someone","like_count":7}`

	posts, err := ParsePosts(output)

	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "hello", posts[0].Text)
	assert.Equal(t, "someone", posts[0].Author)
	assert.Equal(t, 7, posts[0].Likes)
}

func TestParsePosts_Array(t *testing.T) {
	output := `[
		{"text":"first","reply_count":2},
		{"full_text":"second","retweet_count":4}
	]`

	posts, err := ParsePosts(output)

	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "first", posts[0].Text)
	assert.Equal(t, 2, posts[0].Replies)
	assert.Equal(t, "second", posts[1].Text)
	assert.Equal(t, 4, posts[1].Retweets)
}

func TestParsePosts_FieldNameTolerance(t *testing.T) {
	output := `[
		{"content":"a","screen_name":"alice","favorite_count":10,"shares":3,"replies":1,"quotes":2,"timestamp":"2025-06-01T10:00:00Z"},
		{"text":"b","user":{"username":"bob"},"public_metrics":{"like_count":5,"retweet_count":6,"reply_count":7,"quote_count":8},"created_at":"2025-06-02T10:00:00Z"}
	]`

	posts, err := ParsePosts(output)

	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, "a", posts[0].Text)
	assert.Equal(t, "alice", posts[0].Author)
	assert.Equal(t, 10, posts[0].Likes)
	assert.Equal(t, 3, posts[0].Retweets)
	assert.Equal(t, 1, posts[0].Replies)
	assert.Equal(t, 2, posts[0].Quotes)
	assert.Equal(t, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), posts[0].CreatedAt)

	assert.Equal(t, "bob", posts[1].Author)
	assert.Equal(t, 5, posts[1].Likes)
	assert.Equal(t, 6, posts[1].Retweets)
	assert.Equal(t, 7, posts[1].Replies)
	assert.Equal(t, 8, posts[1].Quotes)
}

func TestParsePosts_MalformedOutput(t *testing.T) {
	tests := []struct {
		name   string
		output string
	}{
		{name: "empty", output: ""},
		{name: "whitespace", output: "   \n"},
		{name: "plain text", output: "error: something went wrong"},
		{name: "truncated json", output: `[{"text":"a"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePosts(tt.output)

			require.Error(t, err)
			var parseErr *ParseError
			assert.True(t, errors.As(err, &parseErr))
		})
	}
}

func TestParsePosts_EmptyArray(t *testing.T) {
	posts, err := ParsePosts(`[]`)

	require.NoError(t, err)
	assert.Empty(t, posts)
}
