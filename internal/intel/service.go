package intel

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/brandintel/competitor-intel-bot/internal/config"
	"github.com/brandintel/competitor-intel-bot/internal/models"
	"github.com/brandintel/competitor-intel-bot/internal/notifications"
	"github.com/brandintel/competitor-intel-bot/internal/sources"
	"github.com/brandintel/competitor-intel-bot/internal/storage"
	"github.com/sirupsen/logrus"
)

// Service orchestrates one intelligence run: sequential fetches per
// competitor handle, influencer handle and trend keyword, followed by
// derived insights/recommendations and a single report write.
type Service struct {
	config   *config.Config
	brands   config.Brands
	source   sources.Source
	storage  storage.StorageInterface
	archive  storage.StorageInterface // optional secondary backend
	notifier notifications.NotificationInterface

	metrics *Metrics
	mu      sync.RWMutex
}

// Metrics holds counters for the serve-mode /metrics endpoint.
type Metrics struct {
	RunCount           int       `json:"run_count"`
	LastRun            time.Time `json:"last_run"`
	LastRunDuration    string    `json:"last_run_duration"`
	LastBrand          string    `json:"last_brand"`
	CompetitorsTracked int       `json:"competitors_tracked"`
	InfluencersTracked int       `json:"influencers_tracked"`
	TrendsFound        int       `json:"trends_found"`
}

// RunOptions selects which handle categories to gather. Trends are always
// gathered.
type RunOptions struct {
	CompetitorsOnly bool
	InfluencersOnly bool
}

// NewService creates a new intelligence service. archive and notifier may
// be nil.
func NewService(cfg *config.Config, brands config.Brands, source sources.Source, store storage.StorageInterface, archive storage.StorageInterface, notifier notifications.NotificationInterface) *Service {
	return &Service{
		config:   cfg,
		brands:   brands,
		source:   source,
		storage:  store,
		archive:  archive,
		notifier: notifier,
		metrics:  &Metrics{},
	}
}

// ReportPath is the artifact path for a brand's report on a given day.
// Reruns on the same calendar date map to the same path and overwrite.
func ReportPath(brand string, t time.Time) string {
	return path.Join(brand, "intelligence", fmt.Sprintf("competitor-intel-%s.json", t.Format("2006-01-02")))
}

// Run gathers intelligence for one brand and persists the report. The
// returned report is a fully built value; nothing is shared or mutated
// after Run returns.
func (s *Service) Run(ctx context.Context, brandName string, opts RunOptions) (*models.Report, error) {
	start := time.Now()

	brand, err := s.brands.Get(brandName)
	if err != nil {
		return nil, err
	}

	logrus.Infof("Starting intelligence run for brand %s", brandName)

	report := &models.Report{
		Brand:       brandName,
		GeneratedAt: start.UTC(),
	}

	if !opts.InfluencersOnly {
		for _, handle := range brand.Competitors {
			logrus.Infof("Analyzing competitor @%s", handle)
			entry, err := s.analyzeHandle(ctx, handle, brand.Keywords, false)
			if err != nil {
				return nil, err
			}
			if entry != nil {
				report.Competitors = append(report.Competitors, *entry)
			}
		}
	}

	if !opts.CompetitorsOnly {
		for _, handle := range brand.Influencers {
			logrus.Infof("Analyzing influencer @%s", handle)
			entry, err := s.analyzeHandle(ctx, handle, brand.Keywords, true)
			if err != nil {
				return nil, err
			}
			if entry != nil {
				report.Influencers = append(report.Influencers, *entry)
			}
		}
	}

	for i, keyword := range brand.Keywords {
		if i >= maxTrendKeywords {
			break
		}
		logrus.Infof("Analyzing trend keyword %q", keyword)
		entry, err := s.analyzeTrend(ctx, keyword)
		if err != nil {
			return nil, err
		}
		if entry != nil {
			report.Trends = append(report.Trends, *entry)
		}
	}

	report.Insights = deriveInsights(report)
	report.Recommendations = deriveRecommendations(report)
	report.Summary = models.ReportSummary{
		CompetitorsTracked: len(report.Competitors),
		InfluencersTracked: len(report.Influencers),
		TrendsFound:        len(report.Trends),
		Insights:           len(report.Insights),
		Recommendations:    len(report.Recommendations),
	}

	if err := s.persist(report); err != nil {
		return nil, err
	}

	s.updateMetrics(report, time.Since(start))
	s.notify(report)

	logrus.Infof("Run completed in %v: %d competitors, %d influencers, %d trends, %d insights, %d recommendations",
		time.Since(start), report.Summary.CompetitorsTracked, report.Summary.InfluencersTracked,
		report.Summary.TrendsFound, report.Summary.Insights, report.Summary.Recommendations)

	return report, nil
}

// analyzeHandle builds one analysis entry from a handle's recent posts.
// Returns nil when no posts came back; the report omits that handle.
func (s *Service) analyzeHandle(ctx context.Context, handle string, keywords []string, influencer bool) (*models.AnalysisEntry, error) {
	posts, err := s.source.Search(ctx, "from:"+handle, maxPostsPerHandle)
	if err != nil {
		return nil, err
	}

	if len(posts) == 0 {
		logrus.Warnf("No recent posts for @%s, skipping", handle)
		return nil, nil
	}
	if len(posts) > maxPostsPerHandle {
		posts = posts[:maxPostsPerHandle]
	}

	engagement := Summarize(posts)
	entry := &models.AnalysisEntry{
		Handle:        handle,
		PostsAnalyzed: len(posts),
		TopPosts:      posts,
		Engagement:    engagement,
		Themes:        ExtractThemes(posts, keywords),
	}

	if influencer {
		collab := ScoreCollaboration(engagement)
		entry.Collaboration = &collab
	}

	return entry, nil
}

// analyzeTrend builds one trend entry from a keyword's matching posts.
// Returns nil when no posts came back.
func (s *Service) analyzeTrend(ctx context.Context, keyword string) (*models.TrendEntry, error) {
	posts, err := s.source.Search(ctx, keyword, maxPostsPerHandle)
	if err != nil {
		return nil, err
	}

	if len(posts) == 0 {
		logrus.Warnf("No posts for keyword %q, skipping", keyword)
		return nil, nil
	}
	if len(posts) > maxPostsPerHandle {
		posts = posts[:maxPostsPerHandle]
	}

	strength, level := ScoreTrend(Summarize(posts))

	return &models.TrendEntry{
		Keyword:     keyword,
		PostCount:   len(posts),
		TopPosts:    posts,
		Strength:    strength,
		Level:       level,
		ContentGaps: FindContentGaps(posts),
	}, nil
}

// persist writes the report exactly once to the backend of record and,
// when configured, archives a copy. Archive failures are logged only.
func (s *Service) persist(report *models.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	filename := ReportPath(report.Brand, report.GeneratedAt)
	if err := s.storage.Store(filename, data); err != nil {
		return fmt.Errorf("failed to persist report: %w", err)
	}

	if s.archive != nil {
		if err := s.archive.Store(filename, data); err != nil {
			logrus.Errorf("Failed to archive report %s: %v", filename, err)
		}
	}

	return nil
}

func (s *Service) notify(report *models.Report) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendReport(report); err != nil {
		logrus.Errorf("Failed to send report notifications: %v", err)
	}
}

func (s *Service) updateMetrics(report *models.Report, duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.RunCount++
	s.metrics.LastRun = time.Now()
	s.metrics.LastRunDuration = duration.String()
	s.metrics.LastBrand = report.Brand
	s.metrics.CompetitorsTracked = report.Summary.CompetitorsTracked
	s.metrics.InfluencersTracked = report.Summary.InfluencersTracked
	s.metrics.TrendsFound = report.Summary.TrendsFound
}

// GetMetrics returns current metrics as JSON
func (s *Service) GetMetrics() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, _ := json.MarshalIndent(s.metrics, "", "  ")
	return string(data)
}
