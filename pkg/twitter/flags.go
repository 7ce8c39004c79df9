package twitter

import (
	"fmt"
)

// operationFlags is the per-operation part of the feature-flag document.
type operationFlags struct {
	QueryID      string
	Features     any
	FieldToggles any
	Variables    map[string]any
}

// lookupFlags reads the entry for one operation.
func lookupFlags(flags any, name string) (*operationFlags, error) {
	doc, _ := flags.(map[string]any)
	entry, _ := doc[name].(map[string]any)

	id, _ := entry["queryId"].(string)
	if id == "" {
		return nil, fmt.Errorf("twitter: %s: %w in featureFlags", name, ErrMissingQueryID)
	}

	spec := &operationFlags{
		QueryID:      id,
		Features:     entry["features"],
		FieldToggles: entry["fieldToggles"],
	}
	if spec.Features == nil {
		spec.Features = doc["features"]
	}
	if vars, ok := entry["variables"].(map[string]any); ok {
		spec.Variables = vars
	}
	return spec, nil
}
