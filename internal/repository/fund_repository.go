package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/maxiwise/MF_Api.git/internal/models"
)

// FundRepository handles the cached scheme list and NAV history.
type FundRepository struct {
	db *sql.DB
}

func NewFundRepository(db *sql.DB) *FundRepository {
	return &FundRepository{db: db}
}

// UpsertScheme inserts or refreshes one scheme row from the feed.
func (r *FundRepository) UpsertScheme(s models.FundScheme) error {
	query := `
		INSERT INTO funds (id, isin, scheme_name, amc, category, sub_category, rating, nav, nav_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (isin) DO UPDATE SET
			scheme_name = EXCLUDED.scheme_name,
			amc = EXCLUDED.amc,
			category = EXCLUDED.category,
			sub_category = EXCLUDED.sub_category,
			rating = EXCLUDED.rating,
			nav = EXCLUDED.nav,
			nav_date = EXCLUDED.nav_date,
			updated_at = NOW()`

	_, err := r.db.Exec(query,
		s.ID, s.ISIN, s.SchemeName, s.AMC, s.Category, s.SubCategory, s.Rating, s.Nav, s.NavDate)
	return err
}

// GetAllSchemes returns the full cached scheme list ordered by name.
func (r *FundRepository) GetAllSchemes() ([]models.FundScheme, error) {
	query := `
		SELECT id, isin, scheme_name, COALESCE(amc, ''), COALESCE(category, ''),
		       COALESCE(sub_category, ''), rating, nav, COALESCE(nav_date, ''), updated_at
		FROM funds ORDER BY scheme_name`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schemes := []models.FundScheme{}
	for rows.Next() {
		var s models.FundScheme
		err := rows.Scan(&s.ID, &s.ISIN, &s.SchemeName, &s.AMC, &s.Category,
			&s.SubCategory, &s.Rating, &s.Nav, &s.NavDate, &s.UpdatedAt)
		if err != nil {
			return nil, err
		}
		schemes = append(schemes, s)
	}
	return schemes, rows.Err()
}

// GetSchemeByID looks up one scheme by internal id.
func (r *FundRepository) GetSchemeByID(id string) (*models.FundScheme, error) {
	return r.getScheme(`WHERE id = $1`, id)
}

// GetSchemeByISIN resolves an ISIN to its scheme row. This is the
// lookup the chart-data endpoint runs before it touches the feed.
func (r *FundRepository) GetSchemeByISIN(isin string) (*models.FundScheme, error) {
	return r.getScheme(`WHERE isin = $1`, isin)
}

func (r *FundRepository) getScheme(where string, arg string) (*models.FundScheme, error) {
	s := &models.FundScheme{}
	query := `
		SELECT id, isin, scheme_name, COALESCE(amc, ''), COALESCE(category, ''),
		       COALESCE(sub_category, ''), rating, nav, COALESCE(nav_date, ''), updated_at
		FROM funds ` + where

	err := r.db.QueryRow(query, arg).Scan(&s.ID, &s.ISIN, &s.SchemeName, &s.AMC,
		&s.Category, &s.SubCategory, &s.Rating, &s.Nav, &s.NavDate, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.New("fund not found")
	}
	return s, err
}

// UpdateNav stores the latest NAV quote on the scheme row.
func (r *FundRepository) UpdateNav(fundID string, nav float64, navDate string) error {
	query := `UPDATE funds SET nav = $1, nav_date = $2, updated_at = NOW() WHERE id = $3`
	_, err := r.db.Exec(query, nav, navDate, fundID)
	return err
}

// SaveNavSnapshot keeps one NAV row per fund per day; a later quote for
// the same day overwrites the earlier one.
func (r *FundRepository) SaveNavSnapshot(fundID string, nav float64, date time.Time) error {
	if nav <= 0 {
		return nil // never store an invalid quote
	}

	id := fmt.Sprintf("nav_%s_%s", fundID, date.Format("20060102"))
	query := `
		INSERT INTO nav_snapshots (id, fund_id, date, nav)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (fund_id, date) DO UPDATE SET nav = EXCLUDED.nav`

	_, err := r.db.Exec(query, id, fundID, date.Format("2006-01-02"), nav)
	return err
}

// GetNavHistory returns snapshots for a fund over the trailing number
// of days, oldest first.
func (r *FundRepository) GetNavHistory(fundID string, days int) ([]models.NavSnapshot, error) {
	if days <= 0 {
		days = 30
	}
	query := `
		SELECT id, fund_id, date, nav
		FROM nav_snapshots
		WHERE fund_id = $1 AND date >= CURRENT_DATE - $2 * INTERVAL '1 day'
		ORDER BY date`

	rows, err := r.db.Query(query, fundID, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshots := []models.NavSnapshot{}
	for rows.Next() {
		var s models.NavSnapshot
		if err := rows.Scan(&s.ID, &s.FundID, &s.Date, &s.Nav); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}
