package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxiwise/MF_Api.git/internal/models"
)

type fakeAlertRepo struct {
	rules     []models.NavAlertRule
	triggered []string
	emails    map[string]string
}

func (r *fakeAlertRepo) GetActiveRules() ([]models.NavAlertRule, error) {
	return r.rules, nil
}

func (r *fakeAlertRepo) MarkTriggered(ruleID string) error {
	r.triggered = append(r.triggered, ruleID)
	return nil
}

func (r *fakeAlertRepo) OwnerEmail(ruleID string) (string, error) {
	return r.emails[ruleID], nil
}

func newTestUpdater(alertRepo AlertRepositoryInterface) *NavUpdater {
	return NewNavUpdater(time.Hour, nil, alertRepo)
}

func TestEvaluateAlertsFiresCrossedRules(t *testing.T) {
	repo := &fakeAlertRepo{
		rules: []models.NavAlertRule{
			{ID: "r1", ISIN: "INF123", Type: models.AlertTypeNavAbove, TargetValue: 100},
			{ID: "r2", ISIN: "INF123", Type: models.AlertTypeNavBelow, TargetValue: 90},
			{ID: "r3", ISIN: "INF456", Type: models.AlertTypeNavAbove, TargetValue: 50},
		},
		emails: map[string]string{"r1": "a@example.com", "r3": "b@example.com"},
	}
	u := newTestUpdater(repo)
	u.cachedNavs["INF123"] = models.NavData{NetAssetValue: 105}
	u.cachedNavs["INF456"] = models.NavData{NetAssetValue: 49.5}

	u.evaluateAlerts()

	// r1 crossed upward, r2 is above its floor, r3 hasn't reached target
	require.Len(t, repo.triggered, 1)
	assert.Equal(t, "r1", repo.triggered[0])
}

func TestEvaluateAlertsSkipsUnknownISIN(t *testing.T) {
	repo := &fakeAlertRepo{
		rules: []models.NavAlertRule{
			{ID: "r1", ISIN: "INF999", Type: models.AlertTypeNavAbove, TargetValue: 10},
		},
	}
	u := newTestUpdater(repo)

	u.evaluateAlerts()
	assert.Empty(t, repo.triggered)
}

func TestEvaluateAlertsBelowRule(t *testing.T) {
	repo := &fakeAlertRepo{
		rules: []models.NavAlertRule{
			{ID: "r1", ISIN: "INF123", Type: models.AlertTypeNavBelow, TargetValue: 90},
		},
		emails: map[string]string{"r1": "a@example.com"},
	}
	u := newTestUpdater(repo)
	u.cachedNavs["INF123"] = models.NavData{NetAssetValue: 88}

	u.evaluateAlerts()
	assert.Equal(t, []string{"r1"}, repo.triggered)
}

func TestGetCachedNav(t *testing.T) {
	u := newTestUpdater(nil)
	_, ok := u.GetCachedNav("INF123")
	assert.False(t, ok)

	u.cachedNavs["INF123"] = models.NavData{NetAssetValue: 42.5, Date: "2026-08-29"}
	nav, ok := u.GetCachedNav("INF123")
	require.True(t, ok)
	assert.Equal(t, 42.5, nav.NetAssetValue)
}

func TestStartStopIdempotent(t *testing.T) {
	u := newTestUpdater(nil)

	// Stop before Start must not panic or close a nil channel
	u.Stop()
	assert.False(t, u.isRunning)

	u.isRunning = true
	u.Start() // already running, second loop must not spawn
	u.Stop()
	u.Stop()
	assert.False(t, u.isRunning)
}
