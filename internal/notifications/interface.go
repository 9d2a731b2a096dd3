package notifications

import "github.com/brandintel/competitor-intel-bot/internal/models"

// NotificationInterface defines the contract for notification services
type NotificationInterface interface {
	SendReport(report *models.Report) error
}
