package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/brandintel/competitor-intel-bot/internal/config"
	"github.com/brandintel/competitor-intel-bot/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Service sends finished-report summaries via the configured channels.
// The report file is the artifact of record; notification failures are
// surfaced to the caller but never fail a run.
type Service struct {
	config *config.Config
	client *resty.Client
}

// Ensure Service implements NotificationInterface
var _ NotificationInterface = (*Service)(nil)

// WebhookMessage is a Teams-compatible MessageCard payload.
type WebhookMessage struct {
	Type     string           `json:"@type"`
	Context  string           `json:"@context"`
	Title    string           `json:"title"`
	Text     string           `json:"text"`
	Sections []WebhookSection `json:"sections,omitempty"`
}

type WebhookSection struct {
	ActivityTitle string        `json:"activityTitle,omitempty"`
	ActivityText  string        `json:"activityText,omitempty"`
	Facts         []WebhookFact `json:"facts,omitempty"`
	Markdown      bool          `json:"markdown,omitempty"`
}

type WebhookFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewService creates a new notification service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		client: resty.New().SetTimeout(30 * time.Second),
	}
}

// SendReport sends a report summary via every configured channel.
func (s *Service) SendReport(report *models.Report) error {
	var errors []string

	if s.config.WebhookURL != "" {
		if err := s.sendToWebhook(report); err != nil {
			logrus.Errorf("Failed to send webhook notification: %v", err)
			errors = append(errors, fmt.Sprintf("webhook: %v", err))
		} else {
			logrus.Info("Successfully sent report summary to webhook")
		}
	}

	if s.config.NotificationEmail != "" {
		if err := s.sendEmail(report); err != nil {
			logrus.Errorf("Failed to send email notification: %v", err)
			errors = append(errors, fmt.Sprintf("email: %v", err))
		} else {
			logrus.Info("Successfully sent report summary via email")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("notification errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

func (s *Service) sendToWebhook(report *models.Report) error {
	message := s.buildWebhookMessage(report)

	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(message).
		Post(s.config.WebhookURL)

	if err != nil {
		return fmt.Errorf("failed to send webhook message: %w", err)
	}

	if resp.StatusCode() != 200 {
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return nil
}

func (s *Service) buildWebhookMessage(report *models.Report) *WebhookMessage {
	message := &WebhookMessage{
		Type:    "MessageCard",
		Context: "https://schema.org/extensions",
		Title:   fmt.Sprintf("Competitor Intel Report - %s", report.Brand),
		Text: fmt.Sprintf("Tracked %d competitors, %d influencers and %d trends",
			report.Summary.CompetitorsTracked, report.Summary.InfluencersTracked, report.Summary.TrendsFound),
	}

	facts := []WebhookFact{
		{Name: "Brand", Value: report.Brand},
		{Name: "Generated", Value: report.GeneratedAt.Format("2006-01-02 15:04:05 UTC")},
		{Name: "Competitors", Value: fmt.Sprintf("%d", report.Summary.CompetitorsTracked)},
		{Name: "Influencers", Value: fmt.Sprintf("%d", report.Summary.InfluencersTracked)},
		{Name: "Trends", Value: fmt.Sprintf("%d", report.Summary.TrendsFound)},
		{Name: "Insights", Value: fmt.Sprintf("%d", report.Summary.Insights)},
		{Name: "Recommendations", Value: fmt.Sprintf("%d", report.Summary.Recommendations)},
	}

	message.Sections = append(message.Sections, WebhookSection{
		ActivityTitle: "Summary",
		Facts:         facts,
		Markdown:      true,
	})

	if len(report.Insights) > 0 {
		var lines []string
		for _, insight := range report.Insights {
			lines = append(lines, fmt.Sprintf("**%s** - %s", insight.Title, insight.Description))
		}

		message.Sections = append(message.Sections, WebhookSection{
			ActivityTitle: "Insights",
			ActivityText:  strings.Join(lines, "\n\n"),
			Markdown:      true,
		})
	}

	return message
}

func (s *Service) sendEmail(report *models.Report) error {
	subject := fmt.Sprintf("Competitor Intel Report - %s (%d insights)",
		report.Brand, report.Summary.Insights)

	htmlBody, err := s.buildEmailHTML(report)
	if err != nil {
		return fmt.Errorf("failed to build email HTML: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.config.SMTPUsername)
	m.SetHeader("To", s.config.NotificationEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", s.buildEmailText(report))
	m.AddAlternative("text/html", htmlBody)

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func (s *Service) buildEmailHTML(report *models.Report) (string, error) {
	tmpl := `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Competitor Intel Report</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .header { background-color: #1d9bf0; color: white; padding: 20px; border-radius: 5px; }
        .summary { background-color: #f5f5f5; padding: 15px; margin: 20px 0; border-radius: 5px; }
        .insight { border-left: 4px solid #1d9bf0; padding: 10px; margin: 10px 0; background-color: #fafafa; }
        .rec { border-left: 4px solid #107c10; padding: 10px; margin: 10px 0; background-color: #fafafa; }
        .rec.high { border-left-color: #d13438; }
        .meta { color: #666; font-size: 0.9em; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Competitor Intel Report - {{.Brand}}</h1>
        <p>Generated on {{.GeneratedAt.Format "January 2, 2006 at 3:04 PM UTC"}}</p>
    </div>

    <div class="summary">
        <h2>Summary</h2>
        <p><strong>Competitors tracked:</strong> {{.Summary.CompetitorsTracked}}</p>
        <p><strong>Influencers tracked:</strong> {{.Summary.InfluencersTracked}}</p>
        <p><strong>Trends found:</strong> {{.Summary.TrendsFound}}</p>
    </div>

    {{if .Insights}}
    <h2>Insights</h2>
    {{range .Insights}}
        <div class="insight">
            <strong>{{.Title}}</strong>
            <p>{{.Description}}</p>
            <p class="meta">Next step: {{.Action}}</p>
        </div>
    {{end}}
    {{end}}

    {{if .Recommendations}}
    <h2>Recommendations</h2>
    {{range .Recommendations}}
        <div class="rec {{.Priority}}">
            <p>{{.Suggestion}}</p>
            <p class="meta">Priority: {{.Priority}}</p>
        </div>
    {{end}}
    {{end}}

    <hr>
    <p><small>This report was generated automatically by the competitor intel bot.</small></p>
</body>
</html>
`

	t, err := template.New("email").Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, report); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *Service) buildEmailText(report *models.Report) string {
	var text strings.Builder

	text.WriteString(fmt.Sprintf("Competitor Intel Report - %s\n", report.Brand))
	text.WriteString(fmt.Sprintf("Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC")))

	text.WriteString("SUMMARY\n")
	text.WriteString("=======\n")
	text.WriteString(fmt.Sprintf("Competitors tracked: %d\n", report.Summary.CompetitorsTracked))
	text.WriteString(fmt.Sprintf("Influencers tracked: %d\n", report.Summary.InfluencersTracked))
	text.WriteString(fmt.Sprintf("Trends found: %d\n", report.Summary.TrendsFound))

	if len(report.Insights) > 0 {
		text.WriteString("\nINSIGHTS\n")
		text.WriteString("========\n")
		for i, insight := range report.Insights {
			text.WriteString(fmt.Sprintf("\n%d. %s\n", i+1, insight.Title))
			text.WriteString(fmt.Sprintf("   %s\n", insight.Description))
			text.WriteString(fmt.Sprintf("   Next step: %s\n", insight.Action))
		}
	}

	if len(report.Recommendations) > 0 {
		text.WriteString("\nRECOMMENDATIONS\n")
		text.WriteString("===============\n")
		for i, rec := range report.Recommendations {
			text.WriteString(fmt.Sprintf("\n%d. [%s] %s\n", i+1, rec.Priority, rec.Suggestion))
		}
	}

	text.WriteString("\n---\nThis report was generated automatically by the competitor intel bot.\n")

	return text.String()
}
