package database

import (
	"fmt"
)

// migration is a named schema change compiled into the binary. Migrations
// run once each, in order, tracked in the migrations table.
type migration struct {
	name string
	up   func(d Dialect) string
}

var migrations = []migration{
	{
		name: "001_path_progress",
		up: func(d Dialect) string {
			return fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS path_progress (
					path_type VARCHAR(32) PRIMARY KEY,
					schema_version INTEGER NOT NULL DEFAULT 1,
					current_checkpoint INTEGER NOT NULL DEFAULT 1,
					completed_checkpoints INTEGER NOT NULL DEFAULT 0,
					answered_question_ids TEXT NOT NULL DEFAULT '',
					power_up_inventory TEXT NOT NULL DEFAULT '{}',
					correct_answers INTEGER NOT NULL DEFAULT 0,
					total_questions INTEGER NOT NULL DEFAULT 0,
					best_accuracy REAL NOT NULL DEFAULT 0,
					total_time_spent INTEGER NOT NULL DEFAULT 0,
					fallback_count INTEGER NOT NULL DEFAULT 0,
					last_played %s,
					is_completed BOOLEAN NOT NULL DEFAULT FALSE
				);
			`, d.TimestampType())
		},
	},
	{
		name: "002_questions",
		up: func(d Dialect) string {
			return fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS questions (
					id %s,
					path_type VARCHAR(32) NOT NULL,
					difficulty INTEGER NOT NULL,
					prompt TEXT NOT NULL,
					choices TEXT NOT NULL,
					answer_index INTEGER NOT NULL,
					created_at %s
				);
			`, d.AutoIncrementPK(), d.TimestampType())
		},
	},
	{
		name: "003_questions_path_difficulty_idx",
		up: func(d Dialect) string {
			// Runs once via the tracking table; MySQL has no IF NOT EXISTS for indexes
			return `CREATE INDEX idx_questions_path_difficulty ON questions (path_type, difficulty);`
		},
	},
}

// RunMigrations executes all pending schema migrations
func (db *DB) RunMigrations() error {
	// Create migrations table if it doesn't exist
	if _, err := db.DB.Exec(db.Dialect.CreateMigrationsTableQuery()); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, m := range migrations {
		hasRun, err := db.hasMigrationRun(m.name)
		if err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}

		if hasRun {
			continue
		}

		if _, err := db.DB.Exec(m.up(db.Dialect)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", m.name, err)
		}

		if err := db.recordMigration(m.name); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", m.name, err)
		}
	}

	return nil
}

// hasMigrationRun checks if a migration has already been executed
func (db *DB) hasMigrationRun(name string) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM migrations WHERE name = ?"
	err := db.QueryRow(query, name).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// recordMigration marks a migration as completed
func (db *DB) recordMigration(name string) error {
	query := "INSERT INTO migrations (name) VALUES (?)"
	_, err := db.Exec(query, name)
	return err
}
