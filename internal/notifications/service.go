package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"github.com/brandpulse/monitor/internal/config"
	"github.com/brandpulse/monitor/internal/models"
)

// Service handles sending notifications via various channels
type Service struct {
	config *config.Config
	client *resty.Client
}

// Ensure Service implements NotificationInterface
var _ NotificationInterface = (*Service)(nil)

// TeamsMessage represents a Microsoft Teams message
type TeamsMessage struct {
	Type     string         `json:"@type"`
	Context  string         `json:"@context"`
	Title    string         `json:"title"`
	Text     string         `json:"text"`
	Sections []TeamsSection `json:"sections,omitempty"`
}

type TeamsSection struct {
	ActivityTitle string      `json:"activityTitle,omitempty"`
	ActivityText  string      `json:"activityText,omitempty"`
	Facts         []TeamsFact `json:"facts,omitempty"`
	Markdown      bool        `json:"markdown,omitempty"`
}

type TeamsFact struct {
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

// SendAlert delivers a crisis alert via the configured channels
func (s *Service) SendAlert(alert *models.Alert) error {
	var errs []string

	if s.config.TeamsWebhookURL != "" {
		if err := s.postToTeams(s.buildAlertMessage(alert)); err != nil {
			logrus.Errorf("Failed to send Teams alert: %v", err)
			errs = append(errs, fmt.Sprintf("Teams: %v", err))
		} else {
			logrus.Infof("Sent %s alert to Teams: %s", alert.Type, alert.Title)
		}
	}

	if s.config.NotificationEmail != "" {
		subject := fmt.Sprintf("[%s] %s", strings.ToUpper(alert.Type), alert.Title)
		if err := s.sendEmail(subject, s.buildAlertText(alert), ""); err != nil {
			logrus.Errorf("Failed to send alert email: %v", err)
			errs = append(errs, fmt.Sprintf("Email: %v", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("notification errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// SendHealthReport delivers a periodic brand health digest
func (s *Service) SendHealthReport(report *models.HealthReport) error {
	var errs []string

	if s.config.TeamsWebhookURL != "" {
		if err := s.postToTeams(s.buildReportMessage(report)); err != nil {
			logrus.Errorf("Failed to send Teams digest: %v", err)
			errs = append(errs, fmt.Sprintf("Teams: %v", err))
		} else {
			logrus.Info("Successfully sent health digest to Teams")
		}
	}

	if s.config.NotificationEmail != "" {
		subject := fmt.Sprintf("Brand Health Digest - %s (%d brands)", report.Period, len(report.Brands))
		htmlBody, err := s.buildReportHTML(report)
		if err != nil {
			return fmt.Errorf("failed to build digest HTML: %w", err)
		}
		if err := s.sendEmail(subject, s.buildReportText(report), htmlBody); err != nil {
			logrus.Errorf("Failed to send digest email: %v", err)
			errs = append(errs, fmt.Sprintf("Email: %v", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("notification errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

func (s *Service) postToTeams(message *TeamsMessage) error {
	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(message).
		Post(s.config.TeamsWebhookURL)

	if err != nil {
		return fmt.Errorf("failed to send Teams message: %w", err)
	}

	if resp.StatusCode() != 200 {
		return fmt.Errorf("Teams webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return nil
}

func (s *Service) buildAlertMessage(alert *models.Alert) *TeamsMessage {
	message := &TeamsMessage{
		Type:    "MessageCard",
		Context: "https://schema.org/extensions",
		Title:   alert.Title,
		Text:    alert.Message,
	}

	if alert.Mention != nil {
		facts := []TeamsFact{
			{Name: "Platform", Value: alert.Mention.Platform},
			{Name: "Crisis Level", Value: alert.Mention.CrisisLevel},
			{Name: "Crisis Probability", Value: fmt.Sprintf("%.2f", alert.Mention.CrisisProbability)},
			{Name: "Sentiment", Value: fmt.Sprintf("%s (%.2f)", alert.Mention.SentimentLabel, alert.Mention.SentimentScore)},
		}
		if alert.Mention.Author != "" {
			facts = append(facts, TeamsFact{Name: "Author", Value: alert.Mention.Author})
		}

		message.Sections = append(message.Sections, TeamsSection{
			ActivityTitle: "Mention",
			ActivityText:  truncate(alert.Mention.Content, 280),
			Facts:         facts,
			Markdown:      true,
		})
	}

	return message
}

func (s *Service) buildAlertText(alert *models.Alert) string {
	var text strings.Builder

	text.WriteString(fmt.Sprintf("%s\n%s\n", alert.Title, alert.Message))
	if alert.Mention != nil {
		text.WriteString(fmt.Sprintf("\nPlatform: %s\n", alert.Mention.Platform))
		text.WriteString(fmt.Sprintf("Crisis: %s (%.2f)\n", alert.Mention.CrisisLevel, alert.Mention.CrisisProbability))
		text.WriteString(fmt.Sprintf("Sentiment: %s (%.2f)\n", alert.Mention.SentimentLabel, alert.Mention.SentimentScore))
		text.WriteString(fmt.Sprintf("Content: %s\n", truncate(alert.Mention.Content, 280)))
		if alert.Mention.URL != "" {
			text.WriteString(fmt.Sprintf("URL: %s\n", alert.Mention.URL))
		}
	}

	return text.String()
}

func (s *Service) buildReportMessage(report *models.HealthReport) *TeamsMessage {
	message := &TeamsMessage{
		Type:    "MessageCard",
		Context: "https://schema.org/extensions",
		Title:   fmt.Sprintf("Brand Health Digest - %s", strings.Title(report.Period)),
		Text:    fmt.Sprintf("Health summary for %d brands", len(report.Brands)),
	}

	for _, summary := range report.Brands {
		facts := []TeamsFact{
			{Name: "Total Mentions", Value: fmt.Sprintf("%d", summary.TotalMentions)},
			{Name: "Positive", Value: fmt.Sprintf("%d (%.1f%%)", summary.PositiveCount, summary.PositivePercentage)},
			{Name: "Neutral", Value: fmt.Sprintf("%d (%.1f%%)", summary.NeutralCount, summary.NeutralPercentage)},
			{Name: "Negative", Value: fmt.Sprintf("%d (%.1f%%)", summary.NegativeCount, summary.NegativePercentage)},
			{Name: "Average Sentiment", Value: fmt.Sprintf("%.2f", summary.AverageSentiment)},
			{Name: "High-Crisis Alerts", Value: fmt.Sprintf("%d", summary.HighCrisisAlerts)},
		}

		message.Sections = append(message.Sections, TeamsSection{
			ActivityTitle: fmt.Sprintf("Brand %s", summary.BrandID),
			Facts:         facts,
			Markdown:      true,
		})
	}

	return message
}

func (s *Service) buildReportHTML(report *models.HealthReport) (string, error) {
	tmpl := `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Brand Health Digest</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .header { background-color: #0078d4; color: white; padding: 20px; border-radius: 5px; }
        .brand { background-color: #f5f5f5; padding: 15px; margin: 20px 0; border-radius: 5px; }
        .alert { border-left: 4px solid #d13438; padding: 10px; margin: 10px 0; background-color: #fafafa; }
        .meta { color: #666; font-size: 0.9em; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Brand Health Digest</h1>
        <p>{{.Period}} digest generated on {{.GeneratedAt.Format "January 2, 2006 at 3:04 PM UTC"}}</p>
    </div>

    {{range .Brands}}
    <div class="brand">
        <h2>Brand {{.BrandID}}</h2>
        <p><strong>Total Mentions:</strong> {{.TotalMentions}}</p>
        <p><strong>Positive:</strong> {{.PositiveCount}} ({{printf "%.1f" .PositivePercentage}}%)</p>
        <p><strong>Neutral:</strong> {{.NeutralCount}} ({{printf "%.1f" .NeutralPercentage}}%)</p>
        <p><strong>Negative:</strong> {{.NegativeCount}} ({{printf "%.1f" .NegativePercentage}}%)</p>
        <p><strong>Average Sentiment:</strong> {{printf "%.2f" .AverageSentiment}}</p>
        <p><strong>High-Crisis Alerts:</strong> {{.HighCrisisAlerts}}</p>
    </div>
    {{end}}

    {{if .TopAlerts}}
    <h2>Top Crisis Mentions</h2>
    {{range .TopAlerts}}
    <div class="alert">
        <p>{{truncate .Content 200}}</p>
        <div class="meta">{{.Platform}} | {{.CrisisLevel}} ({{printf "%.2f" .CrisisProbability}})</div>
    </div>
    {{end}}
    {{end}}

    <hr>
    <p><small>This digest was generated automatically by the brand monitor.</small></p>
</body>
</html>
`

	t := template.New("digest").Funcs(template.FuncMap{
		"truncate": truncate,
	})

	t, err := t.Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, report); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *Service) buildReportText(report *models.HealthReport) string {
	var text strings.Builder

	text.WriteString(fmt.Sprintf("Brand Health Digest - %s\n", strings.Title(report.Period)))
	text.WriteString(fmt.Sprintf("Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC")))

	for _, summary := range report.Brands {
		text.WriteString(fmt.Sprintf("Brand %s\n", summary.BrandID))
		text.WriteString(fmt.Sprintf("  Total Mentions: %d\n", summary.TotalMentions))
		text.WriteString(fmt.Sprintf("  Positive: %d (%.1f%%)\n", summary.PositiveCount, summary.PositivePercentage))
		text.WriteString(fmt.Sprintf("  Neutral: %d (%.1f%%)\n", summary.NeutralCount, summary.NeutralPercentage))
		text.WriteString(fmt.Sprintf("  Negative: %d (%.1f%%)\n", summary.NegativeCount, summary.NegativePercentage))
		text.WriteString(fmt.Sprintf("  Average Sentiment: %.2f\n", summary.AverageSentiment))
		text.WriteString(fmt.Sprintf("  High-Crisis Alerts: %d\n\n", summary.HighCrisisAlerts))
	}

	if len(report.TopAlerts) > 0 {
		text.WriteString("TOP CRISIS MENTIONS\n")
		text.WriteString("===================\n")
		for i, mention := range report.TopAlerts {
			text.WriteString(fmt.Sprintf("\n%d. [%s] %s\n", i+1, mention.Platform, truncate(mention.Content, 200)))
			text.WriteString(fmt.Sprintf("   Level: %s (%.2f)\n", mention.CrisisLevel, mention.CrisisProbability))
		}
	}

	text.WriteString("\n---\nThis digest was generated automatically by the brand monitor.\n")

	return text.String()
}

func (s *Service) sendEmail(subject, textBody, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.config.SMTPUsername)
	m.SetHeader("To", s.config.NotificationEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	if htmlBody != "" {
		m.AddAlternative("text/html", htmlBody)
	}

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length] + "..."
}
