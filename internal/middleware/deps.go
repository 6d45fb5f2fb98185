package middleware

import (
	"github.com/maxiwise/MF_Api.git/internal/services"
)

// Singletons wired up in main and shared by the handlers.
var (
	navUpdaterInstance *services.NavUpdater
	analyticsClient    *services.Analytics
	crmClient          *services.CRMClient
)

// SetNavUpdater makes the NAV updater available to the handlers.
func SetNavUpdater(updater *services.NavUpdater) {
	navUpdaterInstance = updater
}

// GetNavUpdater returns the NAV updater instance.
func GetNavUpdater() *services.NavUpdater {
	return navUpdaterInstance
}

// SetAnalytics injects the analytics capability. Handlers must still
// check consent before calling it.
func SetAnalytics(a *services.Analytics) {
	analyticsClient = a
}

// SetCRMClient injects the CRM forms client.
func SetCRMClient(c *services.CRMClient) {
	crmClient = c
}
