// Package sqlstore persists lots in a SQLite database.
//
// It implements tradelab.TradeStore for users who outgrow the JSONL journal:
// same operations, concurrent-access safe, still a single file.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/etnz/tradelab"
)

// Dates are stored as RFC3339 UTC text so that range filters compare
// correctly with plain string comparison. Amounts are stored as exact
// decimal strings.
const schema = `
CREATE TABLE IF NOT EXISTS lots (
	id          TEXT PRIMARY KEY,
	ticker      TEXT NOT NULL,
	direction   TEXT NOT NULL,
	entry_date  TEXT NOT NULL,
	entry_price TEXT NOT NULL,
	quantity    TEXT NOT NULL,
	fees        TEXT NOT NULL,
	currency    TEXT NOT NULL,
	exit_date   TEXT,
	exit_price  TEXT,
	memo        TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS lots_ticker ON lots(ticker);
CREATE INDEX IF NOT EXISTS lots_entry_date ON lots(entry_date);
`

// Store is a SQLite-backed lot store.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

var _ tradelab.TradeStore = (*Store)(nil)

// Open opens the database at path, creating file and schema when missing.
func Open(path string, log zerolog.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// WAL mode for better concurrency.
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{
		db:  db,
		log: log.With().Str("store", "sqlite").Logger(),
	}, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

const lotColumns = "id, ticker, direction, entry_date, entry_price, quantity, fees, currency, exit_date, exit_price, memo"

// List returns the lots matching the filter, oldest entry first.
func (s *Store) List(ctx context.Context, f tradelab.Filter) ([]tradelab.Lot, error) {
	query := "SELECT " + lotColumns + " FROM lots"
	var clauses []string
	var args []any

	if f.Ticker != "" {
		clauses = append(clauses, "ticker = ?")
		args = append(args, f.Ticker)
	}
	switch f.Status {
	case tradelab.StatusOpen:
		clauses = append(clauses, "exit_date IS NULL")
	case tradelab.StatusClosed:
		clauses = append(clauses, "exit_date IS NOT NULL")
	}
	if !f.From.IsZero() {
		clauses = append(clauses, "entry_date >= ?")
		args = append(args, sqlTime(f.From))
	}
	if !f.To.IsZero() {
		clauses = append(clauses, "entry_date <= ?")
		args = append(args, sqlTime(f.To))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY entry_date, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list lots: %w", err)
	}
	defer rows.Close()

	var lots []tradelab.Lot
	for rows.Next() {
		l, err := scanLot(rows)
		if err != nil {
			return nil, err
		}
		lots = append(lots, l)
	}
	return lots, rows.Err()
}

// Create validates and inserts the lot. A missing id is assigned one.
func (s *Store) Create(ctx context.Context, l tradelab.Lot) (tradelab.Lot, error) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if err := l.Validate(); err != nil {
		return l, err
	}

	var exitDate, exitPrice any
	if l.Closed() {
		exitDate = sqlTime(l.ExitDate)
		exitPrice = l.ExitPrice.Amount()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO lots (`+lotColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		l.ID,
		l.Ticker,
		l.Direction.String(),
		sqlTime(l.EntryDate),
		l.EntryPrice.Amount(),
		l.Quantity.String(),
		l.Fees.Amount(),
		l.EntryPrice.Currency(),
		exitDate,
		exitPrice,
		l.Memo,
	)
	if err != nil {
		return l, fmt.Errorf("failed to insert lot: %w", err)
	}
	s.log.Debug().Str("id", l.ID).Str("ticker", l.Ticker).Msg("created lot")
	return l, nil
}

// CloseLot records the exit of an open lot and returns the closed lot.
func (s *Store) CloseLot(ctx context.Context, id string, exitDate time.Time, exitPrice tradelab.Money) (tradelab.Lot, error) {
	l, ok, err := s.get(ctx, id)
	if err != nil {
		return l, err
	}
	if !ok {
		return l, fmt.Errorf("no lot with id %q", id)
	}
	if l.Closed() {
		return l, fmt.Errorf("lot %q is already closed", id)
	}
	if c := exitPrice.Currency(); c != "" && c != l.EntryPrice.Currency() {
		return l, fmt.Errorf("exit price currency %s does not match lot currency %s", c, l.EntryPrice.Currency())
	}

	// A bare amount adopts the lot currency.
	normalized, err := tradelab.ParseMoney(exitPrice.Amount(), l.EntryPrice.Currency())
	if err != nil {
		return l, err
	}
	l.ExitDate = exitDate
	l.ExitPrice = normalized
	if err := l.Validate(); err != nil {
		return l, err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE lots SET exit_date = ?, exit_price = ? WHERE id = ?
	`,
		sqlTime(exitDate),
		exitPrice.Amount(),
		id,
	)
	if err != nil {
		return l, fmt.Errorf("failed to close lot: %w", err)
	}
	s.log.Debug().Str("id", id).Msg("closed lot")
	return l, nil
}

// Delete removes the lot and reports whether it existed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM lots WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete lot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// get loads a single lot by id.
func (s *Store) get(ctx context.Context, id string) (tradelab.Lot, bool, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+lotColumns+" FROM lots WHERE id = ?", id)
	l, err := scanLot(row)
	if err == sql.ErrNoRows {
		return l, false, nil
	}
	if err != nil {
		return l, false, err
	}
	return l, true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLot(row rowScanner) (tradelab.Lot, error) {
	var l tradelab.Lot
	var direction, entryDate, entryPrice, quantity, fees, currency string
	var exitDate, exitPrice sql.NullString

	err := row.Scan(
		&l.ID,
		&l.Ticker,
		&direction,
		&entryDate,
		&entryPrice,
		&quantity,
		&fees,
		&currency,
		&exitDate,
		&exitPrice,
		&l.Memo,
	)
	if err != nil {
		return l, err
	}

	if l.Direction, err = tradelab.ParseDirection(direction); err != nil {
		return l, fmt.Errorf("lot %s: %w", l.ID, err)
	}
	if l.EntryDate, err = time.Parse(time.RFC3339, entryDate); err != nil {
		return l, fmt.Errorf("lot %s: invalid entry date %q: %w", l.ID, entryDate, err)
	}
	if l.EntryPrice, err = tradelab.ParseMoney(entryPrice, currency); err != nil {
		return l, fmt.Errorf("lot %s: invalid entry price %q: %w", l.ID, entryPrice, err)
	}
	if l.Quantity, err = tradelab.ParseQuantity(quantity); err != nil {
		return l, fmt.Errorf("lot %s: invalid quantity %q: %w", l.ID, quantity, err)
	}
	if l.Fees, err = tradelab.ParseMoney(fees, currency); err != nil {
		return l, fmt.Errorf("lot %s: invalid fees %q: %w", l.ID, fees, err)
	}
	if exitDate.Valid {
		if l.ExitDate, err = time.Parse(time.RFC3339, exitDate.String); err != nil {
			return l, fmt.Errorf("lot %s: invalid exit date %q: %w", l.ID, exitDate.String, err)
		}
	}
	if exitPrice.Valid {
		if l.ExitPrice, err = tradelab.ParseMoney(exitPrice.String, currency); err != nil {
			return l, fmt.Errorf("lot %s: invalid exit price %q: %w", l.ID, exitPrice.String, err)
		}
	}
	return l, nil
}

func sqlTime(t time.Time) string { return t.UTC().Format(time.RFC3339) }
