package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
)

type migration struct {
	version string
	sql     string
}

var migrations = []migration{
	{
		version: "001_create_users",
		sql: `
			CREATE TABLE IF NOT EXISTS users (
				id                BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				name              VARCHAR(100) NOT NULL,
				email             VARCHAR(255) NOT NULL UNIQUE,
				password_hash     VARCHAR(255) NOT NULL,
				gender            VARCHAR(10) NOT NULL DEFAULT '',
				height_cm         INT NOT NULL DEFAULT 0,
				weight_kg         INT NOT NULL DEFAULT 0,
				profile_completed BOOLEAN NOT NULL DEFAULT FALSE,
				created_at        DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
				updated_at        DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6)
			)`,
	},
	{
		version: "002_create_tasks",
		sql: `
			CREATE TABLE IF NOT EXISTS tasks (
				id               BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				user_id          BIGINT UNSIGNED NOT NULL,
				title            VARCHAR(255) NOT NULL,
				task_type        VARCHAR(16) NOT NULL,
				duration_minutes INT NOT NULL,
				completed        BOOLEAN NOT NULL DEFAULT FALSE,
				completed_at     DATETIME(6) NULL,
				created_at       DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
				updated_at       DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
				INDEX idx_tasks_user_completed (user_id, completed),
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			)`,
	},
	{
		version: "003_create_daily_fitness_logs",
		sql: `
			CREATE TABLE IF NOT EXISTS daily_fitness_logs (
				id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				user_id     BIGINT UNSIGNED NOT NULL,
				date        DATE NOT NULL,
				did_workout BOOLEAN NOT NULL DEFAULT FALSE,
				created_at  DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
				UNIQUE KEY uq_fitness_user_date (user_id, date),
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			)`,
	},
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    VARCHAR(255) PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		applied, err := isMigrationApplied(ctx, db, m.version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		if err := executeMigration(ctx, db, m); err != nil {
			return err
		}

		slog.Info("applied migration", "version", m.version)
	}

	return nil
}

func isMigrationApplied(ctx context.Context, db *sql.DB, version string) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM schema_migrations WHERE version = ?",
		version,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check migration %s: %w", version, err)
	}
	return count > 0, nil
}

func executeMigration(ctx context.Context, db *sql.DB, m migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for %s: %w", m.version, err)
	}

	for _, stmt := range strings.Split(m.sql, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to execute migration %s: %w", m.version, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version) VALUES (?)",
		m.version,
	); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record migration %s: %w", m.version, err)
	}

	return tx.Commit()
}
