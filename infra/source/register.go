package source

import (
	"fmt"

	"github.com/kilianp07/fuelstats/core/factory"
	coresource "github.com/kilianp07/fuelstats/core/source"
)

// init registers the builtin sources.
func init() {
	_ = coresource.Register("file", func(conf map[string]any) (coresource.Source, error) {
		c, err := decodePath(conf)
		if err != nil {
			return nil, err
		}
		return NewFileSource(c), nil
	})
	_ = coresource.Register("sqlite", func(conf map[string]any) (coresource.Source, error) {
		c, err := decodePath(conf)
		if err != nil {
			return nil, err
		}
		return NewSQLiteSource(c), nil
	})
}

func decodePath(conf map[string]any) (string, error) {
	var c struct {
		Path string `json:"path"`
	}
	if err := factory.Decode(conf, &c); err != nil {
		return "", err
	}
	if c.Path == "" {
		return "", fmt.Errorf("source path is required")
	}
	return c.Path, nil
}
