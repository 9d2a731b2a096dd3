package intel

import (
	"fmt"
	"strings"

	"github.com/brandintel/competitor-intel-bot/internal/models"
)

// deriveInsights produces at most one insight per category from the
// gathered report sections.
func deriveInsights(report *models.Report) []models.Insight {
	var insights []models.Insight

	if insight := competitorPositioning(report.Competitors); insight != nil {
		insights = append(insights, *insight)
	}

	if insight := collaborationOpportunity(report.Influencers); insight != nil {
		insights = append(insights, *insight)
	}

	if insight := trendOpportunity(report.Trends); insight != nil {
		insights = append(insights, *insight)
	}

	return insights
}

// competitorPositioning surfaces the single most frequent theme across all
// competitor entries, frequencies summed. Ties keep first-seen order.
func competitorPositioning(competitors []models.AnalysisEntry) *models.Insight {
	totals := make(map[string]int)
	var order []string

	for _, entry := range competitors {
		for _, theme := range entry.Themes {
			if _, seen := totals[theme.Theme]; !seen {
				order = append(order, theme.Theme)
			}
			totals[theme.Theme] += theme.Frequency
		}
	}

	if len(order) == 0 {
		return nil
	}

	top := order[0]
	for _, theme := range order[1:] {
		if totals[theme] > totals[top] {
			top = theme
		}
	}

	return &models.Insight{
		Type:        "competitor_positioning",
		Title:       "Dominant competitor theme",
		Description: fmt.Sprintf("Competitors are posting most about %q (%d mentions across tracked handles)", top, totals[top]),
		Action:      fmt.Sprintf("Differentiate by leading with a contrarian or deeper take on %q", top),
	}
}

// collaborationOpportunity is emitted only when at least one influencer
// scored above 70.
func collaborationOpportunity(influencers []models.AnalysisEntry) *models.Insight {
	var handles []string
	for _, entry := range influencers {
		if entry.Collaboration != nil && entry.Collaboration.Score > 70 {
			handles = append(handles, entry.Handle)
		}
	}

	if len(handles) == 0 {
		return nil
	}

	return &models.Insight{
		Type:        "collaboration_opportunity",
		Title:       "High-potential collaborators",
		Description: fmt.Sprintf("%d influencer(s) scored above 70: %s", len(handles), strings.Join(handles, ", ")),
		Action:      "Reach out with a concrete collaboration pitch while their engagement is high",
	}
}

// trendOpportunity is emitted only when at least one trend is strong.
func trendOpportunity(trends []models.TrendEntry) *models.Insight {
	var strong []string
	for _, trend := range trends {
		if trend.Level == "strong" {
			strong = append(strong, fmt.Sprintf("%s (%d)", trend.Keyword, trend.Strength))
		}
	}

	if len(strong) == 0 {
		return nil
	}

	return &models.Insight{
		Type:        "trend_opportunity",
		Title:       "Strong trending keywords",
		Description: fmt.Sprintf("Strong engagement on: %s", strings.Join(strong, ", ")),
		Action:      "Publish on these keywords within the next few days while attention lasts",
	}
}

// deriveRecommendations produces the ordered recommendation list: one per
// distinct content gap, an engagement-strategy entry when competitor
// replies outweigh likes, and an unconditional daily-posting entry last.
func deriveRecommendations(report *models.Report) []models.Recommendation {
	var recs []models.Recommendation

	gapCounts := make(map[string]int)
	for _, trend := range report.Trends {
		for _, gap := range trend.ContentGaps {
			gapCounts[gap]++
		}
	}

	// Canonical angle order keeps the output deterministic.
	for _, angle := range contentAngles {
		count, found := gapCounts[angle.Tag]
		if !found {
			continue
		}

		priority := "medium"
		if count > 1 {
			priority = "high"
		}

		recs = append(recs, models.Recommendation{
			Type:       "content_gap",
			Priority:   priority,
			Suggestion: fmt.Sprintf("Cover the %s angle (%q content) missing from %d trending keyword(s)", angle.Tag, angle.Keyword, count),
		})
	}

	if replyHeavy(report.Competitors) {
		recs = append(recs, models.Recommendation{
			Type:       "engagement_strategy",
			Priority:   "high",
			Suggestion: "Competitor audiences reply more than they like; prioritize conversation-starting posts over broadcast content",
		})
	}

	recs = append(recs, models.Recommendation{
		Type:       "consistency",
		Priority:   "medium",
		Suggestion: "Post daily to stay in the conversation; consistency compounds reach",
	})

	return recs
}

// replyHeavy reports whether the mean reply count across all competitors'
// top posts exceeds the mean like count.
func replyHeavy(competitors []models.AnalysisEntry) bool {
	var likes, replies, posts int
	for _, entry := range competitors {
		for _, post := range entry.TopPosts {
			likes += post.Likes
			replies += post.Replies
			posts++
		}
	}

	if posts == 0 {
		return false
	}

	return float64(replies)/float64(posts) > float64(likes)/float64(posts)
}
