package wizard

import (
	"fmt"

	"github.com/MyCarrier-DevOps/go-commitizen/internal/config"
)

// Bootstrap creates an empty configuration document for path and sets
// name, version and tag_format, in that order. The document is not
// persisted.
func Bootstrap(path, rule, version, tagFormat string) (config.Document, error) {
	doc, err := config.New(path)
	if err != nil {
		return nil, err
	}
	if err := doc.InitEmpty(); err != nil {
		return nil, fmt.Errorf("initializing %s: %w", path, err)
	}

	values := []struct {
		key   string
		value string
	}{
		{"name", rule},
		{"version", version},
		{"tag_format", tagFormat},
	}
	for _, v := range values {
		if err := doc.SetKey(v.key, v.value); err != nil {
			return nil, fmt.Errorf("setting %s: %w", v.key, err)
		}
	}
	return doc, nil
}
