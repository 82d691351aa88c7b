package notifications

import "github.com/brandpulse/monitor/internal/models"

// NotificationInterface defines the contract for notification services
type NotificationInterface interface {
	SendAlert(alert *models.Alert) error
	SendHealthReport(report *models.HealthReport) error
}
