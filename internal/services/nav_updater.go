package services

import (
	"log"
	"sync"
	"time"

	"github.com/maxiwise/MF_Api.git/internal/models"
)

// FundRepositoryInterface lists what the updater needs from the fund
// repository.
type FundRepositoryInterface interface {
	GetAllSchemes() ([]models.FundScheme, error)
	UpdateNav(fundID string, nav float64, navDate string) error
	SaveNavSnapshot(fundID string, nav float64, date time.Time) error
}

// AlertRepositoryInterface lists the alert-rule operations the updater
// evaluates on every refresh.
type AlertRepositoryInterface interface {
	GetActiveRules() ([]models.NavAlertRule, error)
	MarkTriggered(ruleID string) error
	OwnerEmail(ruleID string) (string, error)
}

// NavUpdater periodically refreshes NAVs for every stored fund, writes
// one snapshot row per fund per day and fires NAV alert rules.
type NavUpdater struct {
	interval    time.Duration
	fundRepo    FundRepositoryInterface
	alertRepo   AlertRepositoryInterface
	isRunning   bool
	stopChan    chan struct{}
	mutex       sync.Mutex
	lastUpdated time.Time
	cachedNavs  map[string]models.NavData
}

// NewNavUpdater wires the updater to its repositories.
func NewNavUpdater(interval time.Duration, fundRepo FundRepositoryInterface, alertRepo AlertRepositoryInterface) *NavUpdater {
	return &NavUpdater{
		interval:   interval,
		fundRepo:   fundRepo,
		alertRepo:  alertRepo,
		stopChan:   make(chan struct{}),
		cachedNavs: make(map[string]models.NavData),
	}
}

// Start launches the refresh loop. The first refresh runs immediately.
func (u *NavUpdater) Start() {
	u.mutex.Lock()
	defer u.mutex.Unlock()

	if u.isRunning {
		return
	}
	u.isRunning = true
	u.stopChan = make(chan struct{})

	go func() {
		ticker := time.NewTicker(u.interval)
		defer ticker.Stop()

		u.refreshAll()

		for {
			select {
			case <-ticker.C:
				u.refreshAll()
			case <-u.stopChan:
				return
			}
		}
	}()

	log.Printf("NAV updater started with interval %v", u.interval)
}

// Stop halts the refresh loop.
func (u *NavUpdater) Stop() {
	u.mutex.Lock()
	defer u.mutex.Unlock()

	if !u.isRunning {
		return
	}
	u.isRunning = false
	close(u.stopChan)
	log.Printf("NAV updater stopped")
}

// GetCachedNav returns the most recent NAV seen for an ISIN, if any.
func (u *NavUpdater) GetCachedNav(isin string) (models.NavData, bool) {
	u.mutex.Lock()
	defer u.mutex.Unlock()
	nav, exists := u.cachedNavs[isin]
	return nav, exists
}

// GetLastUpdated reports when the last full refresh finished.
func (u *NavUpdater) GetLastUpdated() time.Time {
	u.mutex.Lock()
	defer u.mutex.Unlock()
	return u.lastUpdated
}

func (u *NavUpdater) refreshAll() {
	schemes, err := u.fundRepo.GetAllSchemes()
	if err != nil {
		log.Printf("Error loading schemes for NAV refresh: %v", err)
		return
	}

	updated := 0
	for _, s := range schemes {
		if u.refreshFund(s) {
			updated++
		}
	}

	u.evaluateAlerts()

	u.mutex.Lock()
	u.lastUpdated = time.Now()
	u.mutex.Unlock()
	log.Printf("NAV refresh completed for %d of %d funds", updated, len(schemes))
}

func (u *NavUpdater) refreshFund(s models.FundScheme) bool {
	nav, err := GetNavFromFeed(s.ISIN)
	if err != nil {
		log.Printf("Error refreshing NAV for %s: %v", s.ISIN, err)
		return false
	}
	if nav.Value <= 0 {
		// don't persist an obviously bad quote
		return false
	}

	if err := u.fundRepo.UpdateNav(s.ID, nav.Value, nav.Date); err != nil {
		log.Printf("Error storing NAV for %s: %v", s.ISIN, err)
		return false
	}
	if err := u.fundRepo.SaveNavSnapshot(s.ID, nav.Value, time.Now()); err != nil {
		log.Printf("Error storing NAV snapshot for %s: %v", s.ISIN, err)
	}

	u.mutex.Lock()
	u.cachedNavs[s.ISIN] = models.NavData{NetAssetValue: nav.Value, Date: nav.Date}
	u.mutex.Unlock()
	return true
}

// evaluateAlerts fires every active, untriggered rule whose target has
// been crossed, then marks it so it only fires once.
func (u *NavUpdater) evaluateAlerts() {
	if u.alertRepo == nil {
		return
	}
	rules, err := u.alertRepo.GetActiveRules()
	if err != nil {
		log.Printf("Error loading alert rules: %v", err)
		return
	}

	for _, rule := range rules {
		nav, ok := u.GetCachedNav(rule.ISIN)
		if !ok {
			continue
		}

		crossed := false
		switch rule.Type {
		case models.AlertTypeNavAbove:
			crossed = nav.NetAssetValue >= rule.TargetValue
		case models.AlertTypeNavBelow:
			crossed = nav.NetAssetValue <= rule.TargetValue
		}
		if !crossed {
			continue
		}

		if err := u.alertRepo.MarkTriggered(rule.ID); err != nil {
			log.Printf("Error marking rule %s triggered: %v", rule.ID, err)
			continue
		}

		email, err := u.alertRepo.OwnerEmail(rule.ID)
		if err != nil || email == "" {
			log.Printf("No owner email for rule %s: %v", rule.ID, err)
			continue
		}
		if err := SendNavAlertEmail(email, rule.ISIN, nav.NetAssetValue, rule.TargetValue, rule.Type); err != nil {
			log.Printf("Error sending alert email for rule %s: %v", rule.ID, err)
		}
	}
}
