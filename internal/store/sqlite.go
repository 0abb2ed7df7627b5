// Package store persists a history of computed loan calculations in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bfporto/tabelaprice/pkg/amortization"
	"github.com/bfporto/tabelaprice/pkg/constants"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Calculation is one stored schedule computation.
type Calculation struct {
	ID            int64
	Name          string
	Principal     float64
	Rate          float64
	Periods       int
	DownPayment   bool
	Payment       float64
	TotalPaid     float64
	TotalInterest float64
	CreatedAt     time.Time
}

// SQLiteStore implements calculation history persistence using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore creates a new SQLite store instance at dbPath, creating the
// schema if needed.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("dbPath cannot be empty")
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLiteStore{db: db, dbPath: dbPath}
	if err := s.createSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) createSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS calculations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			principal REAL NOT NULL,
			rate REAL NOT NULL,
			periods INTEGER NOT NULL,
			down_payment INTEGER NOT NULL DEFAULT 0,
			payment REAL NOT NULL,
			total_paid REAL NOT NULL,
			total_interest REAL NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_calculations_created_at ON calculations(created_at);
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveCalculation stores one schedule computation in the history.
func (s *SQLiteStore) SaveCalculation(ctx context.Context, name string, terms amortization.Terms,
	downPayment bool, schedule *amortization.Schedule) (int64, error) {
	if schedule == nil || len(schedule.Installments) == 0 {
		return 0, fmt.Errorf("cannot save an empty schedule")
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO calculations (name, principal, rate, periods, down_payment, payment, total_paid, total_interest, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		name, terms.Principal, terms.Rate, terms.Periods, downPayment,
		schedule.Installments[0].Payment, schedule.TotalPaid, schedule.TotalInterest,
		time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save calculation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get calculation id: %w", err)
	}
	return id, nil
}

// ListCalculations returns the most recent calculations, newest first. A
// non-positive limit falls back to the default history size.
func (s *SQLiteStore) ListCalculations(ctx context.Context, limit int) ([]Calculation, error) {
	if limit <= 0 {
		limit = constants.DefaultHistoryLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, principal, rate, periods, down_payment, payment, total_paid, total_interest, created_at
		FROM calculations
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query calculations: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var calculations []Calculation
	for rows.Next() {
		var c Calculation
		if err := rows.Scan(&c.ID, &c.Name, &c.Principal, &c.Rate, &c.Periods, &c.DownPayment,
			&c.Payment, &c.TotalPaid, &c.TotalInterest, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan calculation: %w", err)
		}
		calculations = append(calculations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate calculations: %w", err)
	}

	return calculations, nil
}
