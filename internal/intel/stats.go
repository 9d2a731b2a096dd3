package intel

import (
	"math"
	"sort"
	"strings"

	"github.com/brandintel/competitor-intel-bot/internal/models"
)

const (
	// maxPostsPerHandle bounds how many recent posts are analyzed per
	// handle or keyword.
	maxPostsPerHandle = 5

	// maxTrendKeywords caps trend analysis to the first configured
	// keywords to limit external tool calls.
	maxTrendKeywords = 3
)

// contentAngles are the canonical content angles checked during gap
// detection, each labeled by its weight tag.
var contentAngles = []struct {
	Keyword string
	Tag     string
}{
	{"how to", "tactical"},
	{"why", "educational"},
	{"case study", "proof"},
	{"mistake", "contrarian"},
	{"framework", "systematic"},
}

// Summarize computes per-metric averages rounded to the nearest integer.
// An empty post list yields the zero summary.
func Summarize(posts []models.Post) models.EngagementSummary {
	if len(posts) == 0 {
		return models.EngagementSummary{}
	}

	var likes, retweets, replies int
	for _, post := range posts {
		likes += post.Likes
		retweets += post.Retweets
		replies += post.Replies
	}

	n := float64(len(posts))
	return models.EngagementSummary{
		Likes:    int(math.Round(float64(likes) / n)),
		Retweets: int(math.Round(float64(retweets) / n)),
		Replies:  int(math.Round(float64(replies) / n)),
	}
}

// ExtractThemes counts case-insensitive occurrences of each configured
// keyword across the posts' text and returns the matched keywords ranked
// descending by frequency. Keywords that never occur are omitted.
func ExtractThemes(posts []models.Post, keywords []string) []models.Theme {
	combined := combinedText(posts)

	var themes []models.Theme
	for _, keyword := range keywords {
		count := strings.Count(combined, strings.ToLower(keyword))
		if count > 0 {
			themes = append(themes, models.Theme{Theme: keyword, Frequency: count})
		}
	}

	sort.SliceStable(themes, func(i, j int) bool {
		return themes[i].Frequency > themes[j].Frequency
	})

	return themes
}

// ScoreCollaboration derives the partnership heuristic from an engagement
// summary. The weights and bands are policy constants, not a fitted model.
func ScoreCollaboration(e models.EngagementSummary) models.Collaboration {
	raw := (0.3*float64(e.Likes) + 0.4*float64(e.Retweets) + 0.3*float64(e.Replies)) / 10
	score := int(math.Round(math.Min(100, raw)))
	if score < 0 {
		score = 0
	}

	level := "low"
	switch {
	case score > 70:
		level = "high"
	case score > 40:
		level = "medium"
	}

	return models.Collaboration{Score: score, Level: level}
}

// ScoreTrend computes a keyword's strength score and band from its
// engagement summary.
func ScoreTrend(e models.EngagementSummary) (int, string) {
	strength := int(math.Round(float64(e.Likes+e.Retweets) / 2))

	level := "weak"
	switch {
	case strength > 100:
		level = "strong"
	case strength > 50:
		level = "moderate"
	}

	return strength, level
}

// FindContentGaps reports the weight tags of every canonical angle absent
// from all of the posts' text. No posts means every angle is a gap.
func FindContentGaps(posts []models.Post) []string {
	combined := combinedText(posts)

	var gaps []string
	for _, angle := range contentAngles {
		if !strings.Contains(combined, angle.Keyword) {
			gaps = append(gaps, angle.Tag)
		}
	}
	return gaps
}

func combinedText(posts []models.Post) string {
	var b strings.Builder
	for _, post := range posts {
		b.WriteString(post.Text)
		b.WriteString(" ")
	}
	return strings.ToLower(b.String())
}
