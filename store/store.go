// Package store persists scraped development applications in MySQL.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/apex/log"
	_ "github.com/go-sql-driver/mysql"

	"github.com/planningalerts-scrapers/murraybridge/model"
)

// Store handles all database operations.
type Store struct {
	db *sql.DB
}

// Open connects to MySQL with the given DSN and verifies the connection.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &Store{db: db}, nil
}

// NewWithDB wraps an existing connection. Used by tests.
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the data table if it doesn't exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS data (
			council_reference VARCHAR(64) NOT NULL,
			address VARCHAR(255) NOT NULL,
			description TEXT NOT NULL,
			info_url VARCHAR(255) NOT NULL,
			comment_url VARCHAR(255) NOT NULL,
			date_scraped VARCHAR(16) NOT NULL,
			date_received VARCHAR(16),
			on_notice_from VARCHAR(16),
			on_notice_to VARCHAR(16),
			PRIMARY KEY (council_reference)
		)
	`

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create data table: %w", err)
	}
	return nil
}

// Upsert inserts the application keyed by its council reference. Re-running
// the scraper over the same register must be idempotent, so a duplicate key
// is not an error: the row is left untouched and inserted is false.
func (s *Store) Upsert(ctx context.Context, app *model.DevelopmentApplication) (inserted bool, err error) {
	query := `
		INSERT IGNORE INTO data
			(council_reference, address, description, info_url, comment_url,
			 date_scraped, date_received, on_notice_from, on_notice_to)
		VALUES (?, ?, ?, ?, ?, ?, ?, NULL, NULL)
	`

	res, err := s.db.ExecContext(ctx, query,
		app.ApplicationNumber,
		app.Address,
		app.Description,
		app.InformationURL,
		app.CommentURL,
		app.ScrapeDate,
		nullable(app.ReceivedDate),
	)
	if err != nil {
		return false, fmt.Errorf("insert application %s: %w", app.ApplicationNumber, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for %s: %w", app.ApplicationNumber, err)
	}
	if affected == 0 {
		log.WithField("reference", app.ApplicationNumber).Debug("application already stored")
		return false, nil
	}
	return true, nil
}

// Count reports the number of stored applications.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM data").Scan(&n); err != nil {
		return 0, fmt.Errorf("count applications: %w", err)
	}
	return n, nil
}

// nullable maps empty strings to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
