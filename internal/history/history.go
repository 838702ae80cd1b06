// Package history keeps the bounded, newest-first list of past
// calculations and mirrors it to a key-value store.
package history

import (
	"context"
	"errors"
	"fmt"

	"ruleofthree/internal/proportion"
)

// MaxEntries bounds the history length.
const MaxEntries = 5

// DefaultKey is the store key holding the serialized history.
const DefaultKey = "ruleOfThreeHistory"

var (
	// ErrPersist wraps store failures. The in-memory history is still
	// updated when it is returned.
	ErrPersist = errors.New("persist history")
	// ErrClearNotConfirmed is returned by Clear without confirmation.
	ErrClearNotConfirmed = errors.New("clearing history requires confirmation")
)

// Store is the subset of storage.Store the history needs.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Values are the three inputs and the rounded result.
type Values struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
	C float64 `json:"c"`
	X float64 `json:"x"`
}

// Calculation is one recorded computation. Never mutated after creation.
type Calculation struct {
	Mode      proportion.Mode `json:"mode"`
	Values    Values          `json:"values"`
	Formula   string          `json:"formula"`
	Timestamp string          `json:"timestamp"`
}

// Summary renders the entry as "a → b | c → x".
func (c Calculation) Summary() string {
	return fmt.Sprintf("%s → %s | %s → %s",
		proportion.FormatNumber(c.Values.A),
		proportion.FormatNumber(c.Values.B),
		proportion.FormatNumber(c.Values.C),
		proportion.FormatNumber(c.Values.X),
	)
}

// Inputs are the operands of a past calculation, used to pre-fill fields.
type Inputs struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
	C float64 `json:"c"`
}

// History is not safe for concurrent use.
type History struct {
	store   Store
	key     string
	entries []Calculation
}

// New returns an empty history persisted under key. A nil store keeps the
// history in memory only.
func New(store Store, key string) *History {
	if key == "" {
		key = DefaultKey
	}
	return &History{store: store, key: key}
}

func (h *History) Key() string { return h.key }

// Load replaces the in-memory list with the persisted one. An absent key
// yields an empty history. On error the history is left empty.
func (h *History) Load(ctx context.Context) error {
	h.entries = nil
	if h.store == nil {
		return nil
	}

	raw, ok, err := h.store.Get(ctx, h.key)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	if !ok {
		return nil
	}

	entries, err := Unmarshal(raw)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	h.entries = entries
	return nil
}

// Record puts c first, drops anything past MaxEntries and persists.
func (h *History) Record(ctx context.Context, c Calculation) error {
	entries := make([]Calculation, 0, MaxEntries+1)
	entries = append(entries, c)
	entries = append(entries, h.entries...)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	h.entries = entries

	return h.persist(ctx)
}

// Clear empties the history and removes the persisted key. confirmed
// carries the user's answer to the confirmation prompt.
func (h *History) Clear(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return ErrClearNotConfirmed
	}

	h.entries = nil
	if h.store == nil {
		return nil
	}
	if err := h.store.Delete(ctx, h.key); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// MostRecent returns the inputs of the newest entry.
func (h *History) MostRecent() (Inputs, bool) {
	if len(h.entries) == 0 {
		return Inputs{}, false
	}
	v := h.entries[0].Values
	return Inputs{A: v.A, B: v.B, C: v.C}, true
}

// Entries returns a copy, newest first.
func (h *History) Entries() []Calculation {
	out := make([]Calculation, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *History) Len() int { return len(h.entries) }

func (h *History) persist(ctx context.Context) error {
	if h.store == nil {
		return nil
	}

	raw, err := Marshal(h.entries)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	if err := h.store.Set(ctx, h.key, raw); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}
