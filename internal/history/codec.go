package history

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Marshal encodes entries as a JSON array. A nil slice encodes as [].
func Marshal(entries []Calculation) (string, error) {
	if entries == nil {
		entries = []Calculation{}
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("marshal history: %w", err)
	}
	return string(b), nil
}

// Unmarshal decodes a persisted history. Empty input and null decode to an
// empty history.
func Unmarshal(raw string) ([]Calculation, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil, nil
	}

	var entries []Calculation
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("unmarshal history: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return entries, nil
}
