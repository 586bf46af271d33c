// Package source defines where fuel log records come from.
package source

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/kilianp07/fuelstats/core/factory"
	"github.com/kilianp07/fuelstats/core/model"
)

// Source loads every record of a fuel log in log order.
type Source interface {
	Load(ctx context.Context) ([]model.Record, error)
	// Name identifies the source in logs and reports.
	Name() string
}

// ParseError points at the line of the log that could not be parsed.
type ParseError struct {
	Source string
	Line   int
	Text   string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v (line %q)", e.Source, e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }

var registry = factory.NewRegistry[Source]()

// Register adds a source factory identified by name.
func Register(name string, f factory.Factory[Source]) error {
	return registry.Register(name, f)
}

// New creates the Source described by cfg.
func New(cfg factory.ModuleConfig) (Source, error) {
	return registry.Create(cfg)
}

// Types lists the registered source types.
func Types() []string { return registry.Names() }

// ReadRecords parses r line by line. The first bad line stops the read.
// name is used in ParseError to tell the operator which input failed.
func ReadRecords(ctx context.Context, r io.Reader, name string) ([]model.Record, error) {
	var out []model.Record
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line++
		text := sc.Text()
		rec, err := model.ParseRecord(text)
		if err != nil {
			return nil, &ParseError{Source: name, Line: line, Text: text, Err: err}
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return out, nil
}
