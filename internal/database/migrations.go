package database

import (
	"log"
)

// RunMigrations applies additive schema changes on top of the base
// tables created by InitDB.
func RunMigrations() error {
	log.Println("Running database migrations...")

	// Funds gained a rating column after launch; existing deployments
	// pick it up here.
	addRatingColumnSQL := `
	ALTER TABLE funds ADD COLUMN IF NOT EXISTS rating INTEGER DEFAULT 0;
	ALTER TABLE funds ADD COLUMN IF NOT EXISTS sub_category TEXT;
	`

	if _, err := DB.Exec(addRatingColumnSQL); err != nil {
		log.Printf("Error adding fund columns: %v", err)
		return err
	}

	// Watchlist items remember the NAV at the time they were added.
	addAddedNavSQL := `
	ALTER TABLE watchlist_items ADD COLUMN IF NOT EXISTS added_nav DOUBLE PRECISION DEFAULT 0;
	`

	if _, err := DB.Exec(addAddedNavSQL); err != nil {
		log.Printf("Error adding added_nav column: %v", err)
		return err
	}

	return nil
}
