package source

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/kilianp07/fuelstats/core/model"
	coresource "github.com/kilianp07/fuelstats/core/source"
	"github.com/kilianp07/fuelstats/infra/logger"
)

// SQLiteTable is the table SQLiteSource reads. Columns hold the same text as
// the tab separated log, so rows go through the regular record parser.
const SQLiteTable = "fuel_log"

const sqliteQuery = `SELECT date, km, liters, cost FROM ` + SQLiteTable + ` ORDER BY rowid`

// SQLiteSource reads records from a SQLite database.
type SQLiteSource struct {
	path string
	log  logger.Logger
}

// NewSQLiteSource returns a source reading the database at path.
func NewSQLiteSource(path string) *SQLiteSource {
	return &SQLiteSource{path: path, log: logger.New("sqlite-source")}
}

func (s *SQLiteSource) Name() string { return "sqlite:" + s.path }

// Load reads every row in insertion order. The database must exist; opening
// a missing path would otherwise create an empty file.
func (s *SQLiteSource) Load(ctx context.Context) ([]model.Record, error) {
	if _, err := os.Stat(s.path); err != nil {
		return nil, fmt.Errorf("open fuel log: %w", err)
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			s.log.Warnf("close %s: %v", s.path, cerr)
		}
	}()

	rows, err := db.QueryContext(ctx, sqliteQuery)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", SQLiteTable, err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Record
	row := 0
	for rows.Next() {
		row++
		var date, km, liters, cost sql.NullString
		if err := rows.Scan(&date, &km, &liters, &cost); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", row, err)
		}
		line := strings.Join([]string{date.String, km.String, liters.String, cost.String}, model.FieldSeparator)
		rec, err := model.ParseRecord(line)
		if err != nil {
			return nil, &coresource.ParseError{Source: s.Name(), Line: row, Text: line, Err: err}
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", SQLiteTable, err)
	}
	s.log.Debugw("fuel log loaded", map[string]any{"path": s.path, "records": len(out)})
	return out, nil
}
