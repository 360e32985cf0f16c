package cli

import (
	"fmt"
	"strings"

	"codeberg.org/snonux/mediakit/internal/processor"
)

// ParseParams parses repeated key=value entries into processor params.
func ParseParams(entries []string) (processor.Params, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	params := make(processor.Params, len(entries))
	for _, entry := range entries {
		key, value, found := strings.Cut(entry, "=")
		if !found {
			return nil, fmt.Errorf("use --param key=value to pass processor arguments, got %q", entry)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("parameter key cannot be empty in %q", entry)
		}
		params[key] = strings.TrimSpace(value)
	}
	return params, nil
}
