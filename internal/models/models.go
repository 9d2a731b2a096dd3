package models

import "time"

// Post is the canonical record for a social post returned by the external
// CLI tool. The tool's output is loosely shaped (several alternative field
// names for the same concept); normalization into this type happens once at
// the gateway boundary.
type Post struct {
	ID        string    `json:"id,omitempty"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Likes     int       `json:"likes"`
	Retweets  int       `json:"retweets"`
	Replies   int       `json:"replies"`
	Quotes    int       `json:"quotes"`
}

// EngagementSummary holds per-metric averages over a set of posts,
// rounded to the nearest integer and zero-filled when the set is empty.
type EngagementSummary struct {
	Likes    int `json:"avg_likes"`
	Retweets int `json:"avg_retweets"`
	Replies  int `json:"avg_replies"`
}

// Theme is a configured keyword with its occurrence count across post text.
type Theme struct {
	Theme     string `json:"theme"`
	Frequency int    `json:"frequency"`
}

// Collaboration is the heuristic partnership score for an influencer.
type Collaboration struct {
	Score int    `json:"score"` // clamped to [0, 100]
	Level string `json:"level"` // "high", "medium", "low"
}

// AnalysisEntry is one tracked handle's slice of the report. Competitors
// and influencers share the shape; only influencers carry a collaboration
// score.
type AnalysisEntry struct {
	Handle        string            `json:"handle"`
	PostsAnalyzed int               `json:"posts_analyzed"`
	TopPosts      []Post            `json:"top_posts"`
	Engagement    EngagementSummary `json:"engagement"`
	Themes        []Theme           `json:"content_themes"`
	Collaboration *Collaboration    `json:"collaboration_potential,omitempty"`
}

// TrendEntry is one tracked keyword's slice of the report.
type TrendEntry struct {
	Keyword     string   `json:"keyword"`
	PostCount   int      `json:"post_count"`
	TopPosts    []Post   `json:"top_posts"`
	Strength    int      `json:"strength"`
	Level       string   `json:"level"` // "strong", "moderate", "weak"
	ContentGaps []string `json:"content_gaps"`
}

// Insight is a derived observation; at most one is emitted per category.
type Insight struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
}

// Recommendation is an actionable suggestion derived from the gathered data.
type Recommendation struct {
	Type       string `json:"type"`
	Priority   string `json:"priority"` // "high" or "medium"
	Suggestion string `json:"suggestion"`
}

// ReportSummary holds the counts printed at the end of a successful run.
type ReportSummary struct {
	CompetitorsTracked int `json:"competitors_tracked"`
	InfluencersTracked int `json:"influencers_tracked"`
	TrendsFound        int `json:"trends_found"`
	Insights           int `json:"insights"`
	Recommendations    int `json:"recommendations"`
}

// Report is the full intelligence report for one brand and one run.
// Sections are append-only while the run builds them; the finished report
// is serialized exactly once.
type Report struct {
	Brand           string           `json:"brand"`
	GeneratedAt     time.Time        `json:"generated_at"`
	Competitors     []AnalysisEntry  `json:"competitors"`
	Influencers     []AnalysisEntry  `json:"influencers"`
	Trends          []TrendEntry     `json:"trends"`
	Insights        []Insight        `json:"insights"`
	Recommendations []Recommendation `json:"recommendations"`
	Summary         ReportSummary    `json:"summary"`
}
