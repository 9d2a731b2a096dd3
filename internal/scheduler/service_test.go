package scheduler

import (
	"testing"

	"github.com/brandintel/competitor-intel-bot/internal/config"
	"github.com/brandintel/competitor-intel-bot/internal/intel"
	"github.com/stretchr/testify/assert"
)

func TestScheduledOptions(t *testing.T) {
	tests := []struct {
		name          string
		monitoring    config.Monitoring
		wantOpts      intel.RunOptions
		wantMonitored bool
	}{
		{
			name:          "all disabled skips the brand",
			monitoring:    config.Monitoring{},
			wantMonitored: false,
		},
		{
			name:          "both handle categories",
			monitoring:    config.Monitoring{Competitors: true, Influencers: true, Trends: true},
			wantOpts:      intel.RunOptions{},
			wantMonitored: true,
		},
		{
			name:          "competitors only",
			monitoring:    config.Monitoring{Competitors: true, Trends: true},
			wantOpts:      intel.RunOptions{CompetitorsOnly: true},
			wantMonitored: true,
		},
		{
			name:          "influencers only",
			monitoring:    config.Monitoring{Influencers: true},
			wantOpts:      intel.RunOptions{InfluencersOnly: true},
			wantMonitored: true,
		},
		{
			name:          "trends only gathers neither handle category",
			monitoring:    config.Monitoring{Trends: true},
			wantOpts:      intel.RunOptions{CompetitorsOnly: true, InfluencersOnly: true},
			wantMonitored: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, monitored := scheduledOptions(tt.monitoring)

			assert.Equal(t, tt.wantMonitored, monitored)
			if monitored {
				assert.Equal(t, tt.wantOpts, opts)
			}
		})
	}
}
