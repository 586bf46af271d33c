package source

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/fuelstats/core/factory"
	coresource "github.com/kilianp07/fuelstats/core/source"
)

const sampleLog = "7.04.2022\t100000\t90,5\t120,6\n2.01.2023\t100900\t55,25\t99,9\n"

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tanken.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileSource_Load(t *testing.T) {
	src := NewFileSource(writeLog(t, sampleLog))
	recs, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, 2023, recs[1].Date.Year)
	assert.Equal(t, 55.25, recs[1].Liters)
}

func TestFileSource_Missing(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "nope.txt")).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestFileSource_BadLine(t *testing.T) {
	path := writeLog(t, sampleLog+"3.01.2023\t101000\tx\t1\n")
	_, err := NewFileSource(path).Load(context.Background())
	var pe *coresource.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 3, pe.Line)
	assert.Equal(t, path, pe.Source)
}

func TestFileSource_Stdin(t *testing.T) {
	src := NewFileSource(StdinPath)
	src.stdin = strings.NewReader(sampleLog)
	recs, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, recs, 2)
	assert.Equal(t, "stdin", src.Name())
}

func createDB(t *testing.T, rows [][4]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fuel.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	_, err = db.Exec(`CREATE TABLE fuel_log (date TEXT, km INTEGER, liters TEXT, cost TEXT)`)
	require.NoError(t, err)
	for _, r := range rows {
		_, err := db.Exec(`INSERT INTO fuel_log (date, km, liters, cost) VALUES (?, ?, ?, ?)`, r[0], r[1], r[2], r[3])
		require.NoError(t, err)
	}
	return path
}

func TestSQLiteSource_Load(t *testing.T) {
	path := createDB(t, [][4]any{
		{"7.04.2022", 100000, "90,5", "120,6"},
		{"2.01.2023", 100900, "55.25", "99,9"},
	})
	recs, err := NewSQLiteSource(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, 100000, recs[0].KM)
	assert.Equal(t, 90.5, recs[0].Liters)
	assert.Equal(t, 55.25, recs[1].Liters)
}

func TestSQLiteSource_BadRow(t *testing.T) {
	path := createDB(t, [][4]any{
		{"7.04.2022", 100000, "90,5", "120,6"},
		{"bad", 100900, "55", "99"},
	})
	_, err := NewSQLiteSource(path).Load(context.Background())
	var pe *coresource.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Line)
}

func TestSQLiteSource_MissingTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	_, err := NewSQLiteSource(path).Load(context.Background())
	assert.ErrorContains(t, err, "fuel_log")
}

func TestSQLiteSource_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typo.db")
	_, err := NewSQLiteSource(path).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	_, statErr := os.Stat(path)
	assert.True(t, errors.Is(statErr, fs.ErrNotExist), "database file created")
}

func TestRegisteredSources(t *testing.T) {
	assert.Equal(t, []string{"file", "sqlite"}, coresource.Types())

	src, err := coresource.New(factory.ModuleConfig{Type: "file", Conf: map[string]any{"path": "tanken.txt"}})
	require.NoError(t, err)
	assert.IsType(t, &FileSource{}, src)

	src, err = coresource.New(factory.ModuleConfig{Type: "sqlite", Conf: map[string]any{"path": "fuel.db"}})
	require.NoError(t, err)
	assert.Equal(t, "sqlite:fuel.db", src.Name())

	_, err = coresource.New(factory.ModuleConfig{Type: "file"})
	assert.Error(t, err)
}
