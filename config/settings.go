// Package config provides configuration structures for the index server:
// per-index settings and the YAML-loaded server configuration.
package config

import "strings"

// IndexSettings contains the configuration of a single index: its unique name
// and the ordered list of indexed fields. Field order matters: document
// field lengths and per-posting term frequencies are positional, one entry
// per field in this order.
type IndexSettings struct {
	Name   string   `json:"name"`
	Fields []string `json:"fields"`
}

// Validate checks the settings for basic requirements and returns a list of
// human-readable problems, empty when the settings are valid.
func (settings *IndexSettings) Validate() []string {
	var problems []string

	if strings.TrimSpace(settings.Name) == "" {
		problems = append(problems, "Index name cannot be empty or whitespace-only")
	}
	if len(settings.Fields) == 0 {
		problems = append(problems, "Index must have at least one field")
	}

	seen := make(map[string]struct{}, len(settings.Fields))
	for _, field := range settings.Fields {
		if strings.TrimSpace(field) == "" {
			problems = append(problems, "Field name cannot be empty or whitespace-only")
			continue
		}
		if _, dup := seen[field]; dup {
			problems = append(problems, "Duplicate field name: "+field)
		}
		seen[field] = struct{}{}
	}

	return problems
}
