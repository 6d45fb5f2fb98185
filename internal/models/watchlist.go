package models

import "time"

// Alert rule types.
const (
	AlertTypeNavAbove = "nav_above"
	AlertTypeNavBelow = "nav_below"
)

// WatchlistGroup is a named collection of funds a signed-in user is
// tracking, optionally with NAV alert rules attached.
type WatchlistGroup struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Items       []WatchlistItem `json:"items,omitempty"`
	Rules       []NavAlertRule  `json:"rules,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// WatchlistItem is one fund inside a group. Nav and change fields are
// computed at read time, not stored.
type WatchlistItem struct {
	ID         string    `json:"id"`
	GroupID    string    `json:"group_id"`
	FundID     string    `json:"fund_id"`
	ISIN       string    `json:"isin" binding:"required"`
	SchemeName string    `json:"scheme_name"`
	AddedNav   float64   `json:"added_nav"`
	CurrentNav float64   `json:"current_nav"`
	ChangePct  float64   `json:"change_pct"`
	CreatedAt  time.Time `json:"created_at"`
}

// NavAlertRule fires once when a watched fund's NAV crosses the target.
type NavAlertRule struct {
	ID          string    `json:"id"`
	GroupID     string    `json:"group_id"`
	Type        string    `json:"type" binding:"required"` // "nav_above" or "nav_below"
	ISIN        string    `json:"isin" binding:"required"`
	TargetValue float64   `json:"target_value" binding:"required"`
	Active      bool      `json:"active"`
	Triggered   bool      `json:"triggered"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
