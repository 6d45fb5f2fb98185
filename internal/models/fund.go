package models

import "time"

// FundScheme is one row of the searchable scheme list. The frontend
// resolves an ISIN to our internal id through this list before it asks
// for chart data.
type FundScheme struct {
	ID          string    `json:"id"`
	ISIN        string    `json:"isin"`
	SchemeName  string    `json:"scheme_name"`
	AMC         string    `json:"amc"`
	Category    string    `json:"category"`
	SubCategory string    `json:"sub_category,omitempty"`
	Rating      int       `json:"rating"`
	Nav         float64   `json:"nav"`
	NavDate     string    `json:"nav_date"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NavData is the latest published NAV for one ISIN.
type NavData struct {
	NetAssetValue float64 `json:"net_asset_value"`
	Date          string  `json:"date"`
}

// NavSnapshot is one stored NAV observation, one row per fund per day.
type NavSnapshot struct {
	ID     string    `json:"id"`
	FundID string    `json:"fund_id"`
	Date   time.Time `json:"date"`
	Nav    float64   `json:"nav"`
}
