package scheduler

import (
	"context"

	"github.com/brandintel/competitor-intel-bot/internal/config"
	"github.com/brandintel/competitor-intel-bot/internal/intel"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Service schedules intelligence runs for every brand whose monitoring
// flags enable at least one category.
type Service struct {
	config       *config.Config
	brands       config.Brands
	intelService *intel.Service
	cron         *cron.Cron
}

// NewService creates a new scheduler service
func NewService(cfg *config.Config, brands config.Brands, intelService *intel.Service) *Service {
	return &Service{
		config:       cfg,
		brands:       brands,
		intelService: intelService,
		cron:         cron.New(cron.WithSeconds()),
	}
}

// Start begins the scheduled runs
func (s *Service) Start() error {
	var cronExpression string

	switch s.config.ReportSchedule {
	case "daily":
		// Run daily at 9 AM UTC
		cronExpression = "0 0 9 * * *"
	case "weekly":
		// Run weekly on Monday at 9 AM UTC
		cronExpression = "0 0 9 * * MON"
	default:
		cronExpression = "0 0 9 * * *"
	}

	_, err := s.cron.AddFunc(cronExpression, func() {
		s.runAll()
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	logrus.Infof("Scheduler started with %s schedule for %d brand(s)", s.config.ReportSchedule, len(s.brands))
	return nil
}

// runAll runs every monitored brand in sequence. A failed brand does not
// stop the others.
func (s *Service) runAll() {
	logrus.Info("Starting scheduled intelligence runs")

	for name, brand := range s.brands {
		opts, monitored := scheduledOptions(brand.Monitoring)
		if !monitored {
			logrus.Debugf("Brand %s has monitoring disabled, skipping", name)
			continue
		}

		if _, err := s.intelService.Run(context.Background(), name, opts); err != nil {
			logrus.Errorf("Scheduled run failed for brand %s: %v", name, err)
		}
	}
}

// scheduledOptions maps a brand's monitoring flags onto run options.
// Trends alone still warrant a run; both handle categories disabled maps
// to a trends-only gather via CompetitorsOnly+InfluencersOnly.
func scheduledOptions(m config.Monitoring) (intel.RunOptions, bool) {
	if !m.Competitors && !m.Influencers && !m.Trends {
		return intel.RunOptions{}, false
	}

	return intel.RunOptions{
		CompetitorsOnly: !m.Influencers,
		InfluencersOnly: !m.Competitors,
	}, true
}

// Stop stops the scheduler
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		logrus.Info("Scheduler stopped")
	}
}
