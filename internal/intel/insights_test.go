package intel

import (
	"testing"

	"github.com/brandintel/competitor-intel-bot/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveInsights_CompetitorPositioning(t *testing.T) {
	report := &models.Report{
		Competitors: []models.AnalysisEntry{
			{Handle: "a", Themes: []models.Theme{{Theme: "ai", Frequency: 2}, {Theme: "growth", Frequency: 1}}},
			{Handle: "b", Themes: []models.Theme{{Theme: "growth", Frequency: 4}}},
		},
	}

	insights := deriveInsights(report)

	require.Len(t, insights, 1)
	assert.Equal(t, "competitor_positioning", insights[0].Type)
	assert.Contains(t, insights[0].Description, `"growth"`)
	assert.Contains(t, insights[0].Description, "5")
}

func TestDeriveInsights_NoDataNoInsights(t *testing.T) {
	insights := deriveInsights(&models.Report{})

	assert.Empty(t, insights)
}

func TestDeriveInsights_CollaborationRequiresScoreAbove70(t *testing.T) {
	report := &models.Report{
		Influencers: []models.AnalysisEntry{
			{Handle: "low", Collaboration: &models.Collaboration{Score: 70, Level: "medium"}},
			{Handle: "high1", Collaboration: &models.Collaboration{Score: 71, Level: "high"}},
			{Handle: "high2", Collaboration: &models.Collaboration{Score: 95, Level: "high"}},
		},
	}

	insights := deriveInsights(report)

	require.Len(t, insights, 1)
	assert.Equal(t, "collaboration_opportunity", insights[0].Type)
	assert.Contains(t, insights[0].Description, "high1")
	assert.Contains(t, insights[0].Description, "high2")
	assert.NotContains(t, insights[0].Description, "low")
}

func TestDeriveInsights_TrendRequiresStrongBand(t *testing.T) {
	moderate := &models.Report{
		Trends: []models.TrendEntry{{Keyword: "x", Strength: 75, Level: "moderate"}},
	}
	assert.Empty(t, deriveInsights(moderate), "moderate trends emit no insight")

	strong := &models.Report{
		Trends: []models.TrendEntry{
			{Keyword: "x", Strength: 75, Level: "moderate"},
			{Keyword: "y", Strength: 140, Level: "strong"},
		},
	}

	insights := deriveInsights(strong)

	require.Len(t, insights, 1)
	assert.Equal(t, "trend_opportunity", insights[0].Type)
	assert.Contains(t, insights[0].Description, "y (140)")
	assert.NotContains(t, insights[0].Description, "x (75)")
}

func TestDeriveRecommendations_GapPriorities(t *testing.T) {
	report := &models.Report{
		Trends: []models.TrendEntry{
			{Keyword: "x", ContentGaps: []string{"proof", "contrarian"}},
			{Keyword: "y", ContentGaps: []string{"proof"}},
		},
	}

	recs := deriveRecommendations(report)

	// proof (2 trends), contrarian (1 trend), plus the unconditional
	// daily-posting entry.
	require.Len(t, recs, 3)

	assert.Equal(t, "content_gap", recs[0].Type)
	assert.Equal(t, "high", recs[0].Priority)
	assert.Contains(t, recs[0].Suggestion, "proof")

	assert.Equal(t, "content_gap", recs[1].Type)
	assert.Equal(t, "medium", recs[1].Priority)
	assert.Contains(t, recs[1].Suggestion, "contrarian")
}

func TestDeriveRecommendations_PostDailyAlwaysLast(t *testing.T) {
	empty := deriveRecommendations(&models.Report{})
	require.Len(t, empty, 1)
	assert.Equal(t, "consistency", empty[0].Type)

	withGaps := deriveRecommendations(&models.Report{
		Trends: []models.TrendEntry{{Keyword: "x", ContentGaps: []string{"tactical"}}},
	})
	require.Len(t, withGaps, 2)
	assert.Equal(t, "consistency", withGaps[len(withGaps)-1].Type)
}

func TestDeriveRecommendations_EngagementStrategy(t *testing.T) {
	replyHeavyReport := &models.Report{
		Competitors: []models.AnalysisEntry{
			{TopPosts: []models.Post{{Likes: 5, Replies: 20}, {Likes: 10, Replies: 15}}},
		},
	}

	recs := deriveRecommendations(replyHeavyReport)

	require.Len(t, recs, 2)
	assert.Equal(t, "engagement_strategy", recs[0].Type)
	assert.Equal(t, "high", recs[0].Priority)

	likeHeavyReport := &models.Report{
		Competitors: []models.AnalysisEntry{
			{TopPosts: []models.Post{{Likes: 100, Replies: 3}}},
		},
	}

	recs = deriveRecommendations(likeHeavyReport)

	require.Len(t, recs, 1)
	assert.Equal(t, "consistency", recs[0].Type)
}
