// Command test-report runs the full aggregation pipeline against canned
// posts, without the external CLI, and prints the resulting report. Useful
// for checking report shape and notification formatting offline.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/brandintel/competitor-intel-bot/internal/config"
	"github.com/brandintel/competitor-intel-bot/internal/intel"
	"github.com/brandintel/competitor-intel-bot/internal/models"
	"github.com/brandintel/competitor-intel-bot/internal/storage"
)

// cannedSource serves fixed posts keyed by search query.
type cannedSource struct {
	results map[string][]models.Post
}

func (c *cannedSource) Name() string { return "canned" }

func (c *cannedSource) Search(ctx context.Context, query string, limit int) ([]models.Post, error) {
	posts := c.results[query]
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (c *cannedSource) Mentions(ctx context.Context, limit int) ([]models.Post, error) {
	return nil, nil
}

func (c *cannedSource) Bookmarks(ctx context.Context, limit int) ([]models.Post, error) {
	return nil, nil
}

func (c *cannedSource) ReadPost(ctx context.Context, id string) (*models.Post, error) {
	return nil, nil
}

func (c *cannedSource) Replies(ctx context.Context, id string, limit int) ([]models.Post, error) {
	return nil, nil
}

func (c *cannedSource) Thread(ctx context.Context, id string) ([]models.Post, error) {
	return nil, nil
}

func main() {
	now := time.Now().UTC()

	source := &cannedSource{results: map[string][]models.Post{
		"from:rivalco": {
			{Author: "rivalco", Text: "How to scale AI automation for small teams", CreatedAt: now, Likes: 180, Retweets: 60, Replies: 25},
			{Author: "rivalco", Text: "Why your newsletter growth stalls after 1k subscribers", CreatedAt: now, Likes: 95, Retweets: 30, Replies: 40},
		},
		"from:buildwithmia": {
			{Author: "buildwithmia", Text: "Case study: AI automation saved us 20 hours a week", CreatedAt: now, Likes: 900, Retweets: 450, Replies: 120},
		},
		"AI automation": {
			{Author: "someone", Text: "AI automation is eating ops work", CreatedAt: now, Likes: 300, Retweets: 120, Replies: 35},
			{Author: "other", Text: "The mistake everyone makes with AI automation", CreatedAt: now, Likes: 150, Retweets: 40, Replies: 22},
		},
		"newsletter growth": {
			{Author: "writer", Text: "Newsletter growth framework for 2025", CreatedAt: now, Likes: 60, Retweets: 18, Replies: 9},
		},
	}}

	brands := config.Brands{
		"demo": {
			Keywords:    []string{"AI automation", "newsletter growth"},
			Competitors: []string{"rivalco"},
			Influencers: []string{"buildwithmia"},
		},
	}

	cfg := &config.Config{OutputDir: "test_output"}

	store, err := storage.NewLocalStorage(cfg.OutputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "storage init failed: %v\n", err)
		os.Exit(1)
	}

	service := intel.NewService(cfg, brands, source, store, nil, nil)

	report, err := service.Run(context.Background(), "demo", intel.RunOptions{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "run failed: %v\n", err)
		os.Exit(1)
	}

	printReport(report)
	fmt.Printf("\nFull report written under %s/%s\n", cfg.OutputDir, intel.ReportPath(report.Brand, report.GeneratedAt))
}

func printReport(report *models.Report) {
	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Printf("COMPETITOR INTEL REPORT - %s\n", report.Brand)
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Printf("Competitors: %d | Influencers: %d | Trends: %d\n",
		report.Summary.CompetitorsTracked, report.Summary.InfluencersTracked, report.Summary.TrendsFound)

	for _, entry := range report.Influencers {
		if entry.Collaboration != nil {
			fmt.Printf("\n@%s collaboration potential: %d (%s)\n",
				entry.Handle, entry.Collaboration.Score, entry.Collaboration.Level)
		}
	}

	for _, trend := range report.Trends {
		fmt.Printf("\nTrend %q: strength %d (%s), gaps: %s\n",
			trend.Keyword, trend.Strength, trend.Level, strings.Join(trend.ContentGaps, ", "))
	}

	if len(report.Insights) > 0 {
		fmt.Println("\nInsights:")
		for _, insight := range report.Insights {
			fmt.Printf("  - [%s] %s\n", insight.Type, insight.Description)
		}
	}

	if len(report.Recommendations) > 0 {
		fmt.Println("\nRecommendations:")
		for _, rec := range report.Recommendations {
			fmt.Printf("  - [%s] %s\n", rec.Priority, rec.Suggestion)
		}
	}

	if data, err := json.MarshalIndent(report.Summary, "", "  "); err == nil {
		fmt.Printf("\nSummary: %s\n", string(data))
	}
}
