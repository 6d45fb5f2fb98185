package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/maxiwise/MF_Api.git/internal/models"
)

// WatchlistRepository handles watchlist groups, their funds and the
// NAV alert rules attached to them.
type WatchlistRepository struct {
	db *sql.DB
}

func NewWatchlistRepository(db *sql.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// CreateGroup creates an empty watchlist group.
func (r *WatchlistRepository) CreateGroup(group *models.WatchlistGroup) error {
	if group.ID == "" {
		group.ID = uuid.NewString()
	}
	now := time.Now()
	group.CreatedAt = now
	group.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO watchlist_groups (id, user_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		group.ID, group.UserID, group.Name, group.Description, group.CreatedAt, group.UpdatedAt,
	)
	return err
}

// GetGroupsByUserID returns a user's groups without items; list views
// don't need the full contents.
func (r *WatchlistRepository) GetGroupsByUserID(userID string) ([]models.WatchlistGroup, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, name, COALESCE(description, ''), created_at, updated_at
		FROM watchlist_groups WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := []models.WatchlistGroup{}
	for rows.Next() {
		var g models.WatchlistGroup
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.Description, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// GetGroupByID loads one group with its items and rules.
func (r *WatchlistRepository) GetGroupByID(id string) (*models.WatchlistGroup, error) {
	var g models.WatchlistGroup
	err := r.db.QueryRow(
		`SELECT id, user_id, name, COALESCE(description, ''), created_at, updated_at
		FROM watchlist_groups WHERE id = $1`, id,
	).Scan(&g.ID, &g.UserID, &g.Name, &g.Description, &g.CreatedAt, &g.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.New("watchlist group not found")
	}
	if err != nil {
		return nil, err
	}

	itemRows, err := r.db.Query(
		`SELECT i.id, i.group_id, COALESCE(i.fund_id, ''), i.isin, COALESCE(i.scheme_name, ''),
		        i.added_nav, COALESCE(f.nav, 0), i.created_at
		FROM watchlist_items i
		LEFT JOIN funds f ON f.isin = i.isin
		WHERE i.group_id = $1 ORDER BY i.created_at`, id)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item models.WatchlistItem
		err := itemRows.Scan(&item.ID, &item.GroupID, &item.FundID, &item.ISIN,
			&item.SchemeName, &item.AddedNav, &item.CurrentNav, &item.CreatedAt)
		if err != nil {
			return nil, err
		}
		if item.AddedNav > 0 && item.CurrentNav > 0 {
			item.ChangePct = (item.CurrentNav - item.AddedNav) / item.AddedNav * 100
		}
		g.Items = append(g.Items, item)
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	ruleRows, err := r.db.Query(
		`SELECT id, group_id, type, isin, target_value, active, triggered, created_at, updated_at
		FROM nav_alert_rules WHERE group_id = $1 ORDER BY created_at`, id)
	if err != nil {
		return nil, err
	}
	defer ruleRows.Close()

	for ruleRows.Next() {
		var rule models.NavAlertRule
		err := ruleRows.Scan(&rule.ID, &rule.GroupID, &rule.Type, &rule.ISIN,
			&rule.TargetValue, &rule.Active, &rule.Triggered, &rule.CreatedAt, &rule.UpdatedAt)
		if err != nil {
			return nil, err
		}
		g.Rules = append(g.Rules, rule)
	}
	return &g, ruleRows.Err()
}

// DeleteGroup removes a group; items and rules cascade.
func (r *WatchlistRepository) DeleteGroup(id, userID string) error {
	res, err := r.db.Exec(
		`DELETE FROM watchlist_groups WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.New("watchlist group not found")
	}
	return nil
}

// AddItem adds one fund to a group, remembering the NAV at add time.
func (r *WatchlistRepository) AddItem(item *models.WatchlistItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.CreatedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO watchlist_items (id, group_id, fund_id, isin, scheme_name, added_nav, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (group_id, isin) DO NOTHING`,
		item.ID, item.GroupID, item.FundID, item.ISIN, item.SchemeName, item.AddedNav, item.CreatedAt,
	)
	return err
}

// RemoveItem drops one fund from a group.
func (r *WatchlistRepository) RemoveItem(groupID, isin string) error {
	_, err := r.db.Exec(
		`DELETE FROM watchlist_items WHERE group_id = $1 AND isin = $2`, groupID, isin)
	return err
}

// CreateRule attaches a NAV alert rule to a group.
func (r *WatchlistRepository) CreateRule(rule *models.NavAlertRule) error {
	if rule.Type != models.AlertTypeNavAbove && rule.Type != models.AlertTypeNavBelow {
		return errors.New("invalid alert rule type")
	}
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	now := time.Now()
	rule.CreatedAt = now
	rule.UpdatedAt = now
	rule.Active = true
	rule.Triggered = false

	_, err := r.db.Exec(
		`INSERT INTO nav_alert_rules (id, group_id, type, isin, target_value, active, triggered, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rule.ID, rule.GroupID, rule.Type, rule.ISIN, rule.TargetValue,
		rule.Active, rule.Triggered, rule.CreatedAt, rule.UpdatedAt,
	)
	return err
}

// DeleteRule removes one alert rule.
func (r *WatchlistRepository) DeleteRule(ruleID string) error {
	_, err := r.db.Exec(`DELETE FROM nav_alert_rules WHERE id = $1`, ruleID)
	return err
}

// GetActiveRules returns every rule that is armed and not yet fired.
func (r *WatchlistRepository) GetActiveRules() ([]models.NavAlertRule, error) {
	rows, err := r.db.Query(
		`SELECT id, group_id, type, isin, target_value, active, triggered, created_at, updated_at
		FROM nav_alert_rules WHERE active = TRUE AND triggered = FALSE`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rules := []models.NavAlertRule{}
	for rows.Next() {
		var rule models.NavAlertRule
		err := rows.Scan(&rule.ID, &rule.GroupID, &rule.Type, &rule.ISIN,
			&rule.TargetValue, &rule.Active, &rule.Triggered, &rule.CreatedAt, &rule.UpdatedAt)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// MarkTriggered flips a rule so it fires only once.
func (r *WatchlistRepository) MarkTriggered(ruleID string) error {
	_, err := r.db.Exec(
		`UPDATE nav_alert_rules SET triggered = TRUE, updated_at = NOW() WHERE id = $1`, ruleID)
	return err
}

// OwnerEmail resolves a rule to the email of the user owning its group.
func (r *WatchlistRepository) OwnerEmail(ruleID string) (string, error) {
	var email string
	err := r.db.QueryRow(
		`SELECT u.email
		FROM nav_alert_rules r
		JOIN watchlist_groups g ON g.id = r.group_id
		JOIN users u ON u.id = g.user_id
		WHERE r.id = $1`, ruleID,
	).Scan(&email)
	if err == sql.ErrNoRows {
		return "", errors.New("rule not found")
	}
	return email, err
}
