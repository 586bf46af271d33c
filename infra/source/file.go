package source

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/kilianp07/fuelstats/core/model"
	coresource "github.com/kilianp07/fuelstats/core/source"
	"github.com/kilianp07/fuelstats/infra/logger"
)

// StdinPath makes FileSource read standard input.
const StdinPath = "-"

// FileSource reads a tab separated fuel log from disk.
type FileSource struct {
	path  string
	stdin io.Reader
	log   logger.Logger
}

// NewFileSource returns a source for path. "-" reads standard input.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path, stdin: os.Stdin, log: logger.New("file-source")}
}

func (s *FileSource) Name() string {
	if s.path == StdinPath {
		return "stdin"
	}
	return s.path
}

// Load reads and parses the whole file.
func (s *FileSource) Load(ctx context.Context) ([]model.Record, error) {
	if s.path == StdinPath {
		return coresource.ReadRecords(ctx, s.stdin, s.Name())
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open fuel log: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.log.Warnf("close %s: %v", s.path, cerr)
		}
	}()
	recs, err := coresource.ReadRecords(ctx, f, s.Name())
	if err != nil {
		return nil, err
	}
	s.log.Debugw("fuel log loaded", map[string]any{"path": s.path, "records": len(recs)})
	return recs, nil
}
