package intel

import (
	"testing"

	"github.com/brandintel/competitor-intel-bot/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_EmptyPostsYieldZeroSummary(t *testing.T) {
	summary := Summarize(nil)

	assert.Equal(t, models.EngagementSummary{Likes: 0, Retweets: 0, Replies: 0}, summary)
}

func TestSummarize_RoundsToNearestInteger(t *testing.T) {
	posts := []models.Post{
		{Likes: 10, Retweets: 1, Replies: 0},
		{Likes: 11, Retweets: 2, Replies: 1},
	}

	summary := Summarize(posts)

	// 10.5 rounds away from zero
	assert.Equal(t, 11, summary.Likes)
	assert.Equal(t, 2, summary.Retweets)
	assert.Equal(t, 1, summary.Replies)
}

func TestExtractThemes_RankedByFrequency(t *testing.T) {
	keywords := []string{"AI automation", "Claude Code", "newsletter growth"}
	posts := []models.Post{
		{Text: "Newsletter growth is hard. Newsletter growth takes time."},
		{Text: "AI automation helps with newsletter growth"},
	}

	themes := ExtractThemes(posts, keywords)

	require.Len(t, themes, 2, "keywords absent from all text must be omitted")
	assert.Equal(t, "newsletter growth", themes[0].Theme)
	assert.Equal(t, 3, themes[0].Frequency)
	assert.Equal(t, "AI automation", themes[1].Theme)
	assert.Equal(t, 1, themes[1].Frequency)
}

func TestExtractThemes_CaseInsensitive(t *testing.T) {
	posts := []models.Post{{Text: "CLAUDE CODE and claude code and Claude Code"}}

	themes := ExtractThemes(posts, []string{"Claude Code"})

	require.Len(t, themes, 1)
	assert.Equal(t, 3, themes[0].Frequency)
}

func TestScoreCollaboration(t *testing.T) {
	tests := []struct {
		name      string
		summary   models.EngagementSummary
		wantScore int
		wantLevel string
	}{
		{
			name:      "zero engagement",
			summary:   models.EngagementSummary{},
			wantScore: 0,
			wantLevel: "low",
		},
		{
			name:      "clamped at 100 for huge engagement",
			summary:   models.EngagementSummary{Likes: 100000, Retweets: 100000, Replies: 100000},
			wantScore: 100,
			wantLevel: "high",
		},
		{
			name: "medium band",
			// (0.3*500 + 0.4*500 + 0.3*500) / 10 = 50
			summary:   models.EngagementSummary{Likes: 500, Retweets: 500, Replies: 500},
			wantScore: 50,
			wantLevel: "medium",
		},
		{
			name: "boundary 70 is still medium",
			// (0.3*700 + 0.4*700 + 0.3*700) / 10 = 70
			summary:   models.EngagementSummary{Likes: 700, Retweets: 700, Replies: 700},
			wantScore: 70,
			wantLevel: "medium",
		},
		{
			name: "just above 70 is high",
			summary:   models.EngagementSummary{Likes: 710, Retweets: 710, Replies: 710},
			wantScore: 71,
			wantLevel: "high",
		},
		{
			name: "retweets weighted heaviest",
			// (0.4*1000) / 10 = 40 -> low band boundary
			summary:   models.EngagementSummary{Retweets: 1000},
			wantScore: 40,
			wantLevel: "low",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collab := ScoreCollaboration(tt.summary)

			assert.Equal(t, tt.wantScore, collab.Score)
			assert.Equal(t, tt.wantLevel, collab.Level)
			assert.GreaterOrEqual(t, collab.Score, 0)
			assert.LessOrEqual(t, collab.Score, 100)
		})
	}
}

func TestScoreTrend(t *testing.T) {
	tests := []struct {
		name         string
		summary      models.EngagementSummary
		wantStrength int
		wantLevel    string
	}{
		{name: "weak", summary: models.EngagementSummary{Likes: 20, Retweets: 10}, wantStrength: 15, wantLevel: "weak"},
		{name: "boundary 50 is weak", summary: models.EngagementSummary{Likes: 60, Retweets: 40}, wantStrength: 50, wantLevel: "weak"},
		{name: "moderate", summary: models.EngagementSummary{Likes: 100, Retweets: 50}, wantStrength: 75, wantLevel: "moderate"},
		{name: "boundary 100 is moderate", summary: models.EngagementSummary{Likes: 150, Retweets: 50}, wantStrength: 100, wantLevel: "moderate"},
		{name: "strong", summary: models.EngagementSummary{Likes: 200, Retweets: 150}, wantStrength: 175, wantLevel: "strong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strength, level := ScoreTrend(tt.summary)

			assert.Equal(t, tt.wantStrength, strength)
			assert.Equal(t, tt.wantLevel, level)
		})
	}
}

func TestFindContentGaps_AllAnglesPresent(t *testing.T) {
	posts := []models.Post{
		{Text: "How to avoid the biggest mistake in your framework"},
		{Text: "Why this case study matters"},
	}

	gaps := FindContentGaps(posts)

	assert.Empty(t, gaps)
}

func TestFindContentGaps_NoAnglesPresent(t *testing.T) {
	posts := []models.Post{{Text: "just vibes over here"}}

	gaps := FindContentGaps(posts)

	assert.Equal(t, []string{"tactical", "educational", "proof", "contrarian", "systematic"}, gaps)
}

func TestFindContentGaps_NoPosts(t *testing.T) {
	gaps := FindContentGaps(nil)

	assert.Len(t, gaps, 5)
}

func TestFindContentGaps_Partial(t *testing.T) {
	posts := []models.Post{{Text: "How to write a case study"}}

	gaps := FindContentGaps(posts)

	assert.Equal(t, []string{"educational", "contrarian", "systematic"}, gaps)
}
