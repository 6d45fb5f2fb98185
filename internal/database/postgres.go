package database

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

var DB *sql.DB

func InitDB() error {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		connStr = fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			getenvDefault("DB_HOST", "localhost"),
			getenvDefault("DB_PORT", "5432"),
			getenvDefault("DB_USER", "maxiwise"),
			os.Getenv("DB_PASSWORD"),
			getenvDefault("DB_NAME", "maxiwise"),
		)
	}

	var err error
	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		return err
	}
	if err = DB.Ping(); err != nil {
		return err
	}

	// Users table (rows come from Clerk webhooks or the local signup path)
	createUsersSQL := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		name TEXT NOT NULL,
		created_at TIMESTAMPTZ DEFAULT NOW()
	);`

	if _, err = DB.Exec(createUsersSQL); err != nil {
		return err
	}

	// Fund schemes cached from the upstream feed
	createFundsSQL := `
	CREATE TABLE IF NOT EXISTS funds (
		id TEXT PRIMARY KEY,
		isin TEXT UNIQUE NOT NULL,
		scheme_name TEXT NOT NULL,
		amc TEXT,
		category TEXT,
		sub_category TEXT,
		rating INTEGER DEFAULT 0,
		nav DOUBLE PRECISION DEFAULT 0,
		nav_date TEXT,
		updated_at TIMESTAMPTZ DEFAULT NOW()
	);`

	if _, err = DB.Exec(createFundsSQL); err != nil {
		return err
	}

	// One NAV observation per fund per day
	createNavSnapshotsSQL := `
	CREATE TABLE IF NOT EXISTS nav_snapshots (
		id TEXT PRIMARY KEY,
		fund_id TEXT NOT NULL,
		date DATE NOT NULL,
		nav DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		UNIQUE(fund_id, date),
		FOREIGN KEY(fund_id) REFERENCES funds(id) ON DELETE CASCADE
	);`

	if _, err = DB.Exec(createNavSnapshotsSQL); err != nil {
		return err
	}

	// Watchlist groups
	createGroupsSQL := `
	CREATE TABLE IF NOT EXISTS watchlist_groups (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW(),
		FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
	);`

	if _, err = DB.Exec(createGroupsSQL); err != nil {
		return err
	}

	// Funds inside watchlist groups
	createItemsSQL := `
	CREATE TABLE IF NOT EXISTS watchlist_items (
		id TEXT PRIMARY KEY,
		group_id TEXT NOT NULL,
		fund_id TEXT,
		isin TEXT NOT NULL,
		scheme_name TEXT,
		added_nav DOUBLE PRECISION DEFAULT 0,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		UNIQUE(group_id, isin),
		FOREIGN KEY(group_id) REFERENCES watchlist_groups(id) ON DELETE CASCADE
	);`

	if _, err = DB.Exec(createItemsSQL); err != nil {
		return err
	}

	// NAV alert rules
	createRulesSQL := `
	CREATE TABLE IF NOT EXISTS nav_alert_rules (
		id TEXT PRIMARY KEY,
		group_id TEXT NOT NULL,
		type TEXT NOT NULL,
		isin TEXT NOT NULL,
		target_value DOUBLE PRECISION NOT NULL,
		active BOOLEAN DEFAULT TRUE,
		triggered BOOLEAN DEFAULT FALSE,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW(),
		FOREIGN KEY(group_id) REFERENCES watchlist_groups(id) ON DELETE CASCADE
	);`

	if _, err = DB.Exec(createRulesSQL); err != nil {
		return err
	}

	createSnapshotIndexSQL := `
	CREATE INDEX IF NOT EXISTS idx_nav_snapshots_fund_date
	ON nav_snapshots(fund_id, date);`

	if _, err = DB.Exec(createSnapshotIndexSQL); err != nil {
		return err
	}

	return RunMigrations()
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
