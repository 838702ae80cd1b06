// Package app owns the calculator's process state: the selected mode and
// the history, and the five actions a user can trigger.
package app

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"ruleofthree/internal/history"
	"ruleofthree/internal/i18n"
	"ruleofthree/internal/proportion"
)

// TimestampLayout formats the time recorded with each calculation.
const TimestampLayout = "15:04:05"

// State is not safe for concurrent use; callers serialize actions.
type State struct {
	mode    proportion.Mode
	history *history.History
	locale  language.Tag
	printer *message.Printer
	now     func() time.Time
	logger  *zap.Logger
}

type Option func(*State)

func WithLogger(l *zap.Logger) Option {
	return func(s *State) { s.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *State) { s.now = now }
}

func WithLocale(tag language.Tag) Option {
	return func(s *State) { s.locale = tag }
}

// New returns a State in Direct mode over h.
func New(h *history.History, opts ...Option) *State {
	s := &State{
		mode:    proportion.Direct,
		history: h,
		locale:  i18n.Default,
		now:     time.Now,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.printer = i18n.NewPrinter(s.locale)
	return s
}

// Restore loads the persisted history and returns the newest inputs for
// pre-filling the fields. A history that cannot be loaded starts empty.
func (s *State) Restore(ctx context.Context) (history.Inputs, bool) {
	if err := s.history.Load(ctx); err != nil {
		s.logger.Warn("history not restored, starting empty",
			zap.String("key", s.history.Key()),
			zap.Error(err),
		)
	}
	return s.LastInputs()
}

func (s *State) Mode() proportion.Mode { return s.mode }

func (s *State) Locale() language.Tag { return s.locale }

// SetMode switches the formula used by Calculate and returns the
// description of the new mode.
func (s *State) SetMode(m proportion.Mode) string {
	s.mode = m
	return s.DescribeMode()
}

// DescribeMode returns the description of the current mode.
func (s *State) DescribeMode() string {
	return proportion.Describe(s.printer, s.mode)
}

// ModeLabel is the localized name of m.
func (s *State) ModeLabel(m proportion.Mode) string {
	return m.Label(s.printer)
}

// Result is a successful calculation.
type Result struct {
	Calculation history.Calculation
	// Display is X with exactly two decimals.
	Display     string
	Explanation proportion.Explanation
	// Persisted is false when the history could not be written.
	Persisted bool
}

// Rejection is what the user sees when inputs are invalid.
type Rejection struct {
	Message string
	Hint    string
}

// Reject returns the localized validation message and worked example hint.
func (s *State) Reject() Rejection {
	return Rejection{
		Message: s.printer.Sprintf(i18n.MsgValidation),
		Hint:    s.printer.Sprintf(i18n.MsgValidationHint),
	}
}

// Calculate parses the raw field values and calculates.
func (s *State) Calculate(ctx context.Context, rawA, rawB, rawC string) (Result, error) {
	a, b, c, err := proportion.ParseOperands(rawA, rawB, rawC)
	if err != nil {
		return Result{}, err
	}
	return s.CalculateValues(ctx, a, b, c)
}

// CalculateValues finds X for the current mode and records it. Invalid
// operands return a proportion.ValidationError and leave history untouched.
func (s *State) CalculateValues(ctx context.Context, a, b, c float64) (Result, error) {
	raw, err := proportion.Compute(s.mode, a, b, c)
	if err != nil {
		return Result{}, err
	}
	x := proportion.Round2(raw)

	calc := history.Calculation{
		Mode:      s.mode,
		Values:    history.Values{A: a, B: b, C: c, X: x},
		Formula:   proportion.Formula(s.mode),
		Timestamp: s.now().Format(TimestampLayout),
	}

	res := Result{
		Calculation: calc,
		Display:     proportion.FormatFixed2(x),
		Explanation: proportion.Explain(s.printer, s.mode, a, b, c, x),
		Persisted:   true,
	}

	if err := s.history.Record(ctx, calc); err != nil {
		if !errors.Is(err, history.ErrPersist) {
			return Result{}, err
		}
		res.Persisted = false
		s.logger.Warn("history not persisted",
			zap.String("key", s.history.Key()),
			zap.Error(err),
		)
	}

	return res, nil
}

// Fields is the content of the input and result fields.
type Fields struct {
	A, B, C, X string
	Message    string
}

// ClearFields empties every field and restores the placeholder text.
func (s *State) ClearFields() Fields {
	return Fields{Message: s.printer.Sprintf(i18n.MsgPlaceholder)}
}

// LoadExample returns the worked example for the current mode.
func (s *State) LoadExample() proportion.Example {
	return proportion.ExampleFor(s.printer, s.mode)
}

// LastInputs returns the operands of the newest history entry.
func (s *State) LastInputs() (history.Inputs, bool) {
	return s.history.MostRecent()
}

// HistoryItem is one rendered history line.
type HistoryItem struct {
	Calculation history.Calculation
	Label       string
	Summary     string
}

// HistoryView is the rendered history list. Empty is set only when
// there are no items.
type HistoryView struct {
	Items []HistoryItem
	Empty string
}

func (s *State) HistoryView() HistoryView {
	entries := s.history.Entries()
	if len(entries) == 0 {
		return HistoryView{Empty: s.printer.Sprintf(i18n.MsgEmptyHistory)}
	}

	items := make([]HistoryItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, HistoryItem{
			Calculation: e,
			Label:       s.ModeLabel(e.Mode),
			Summary:     e.Summary(),
		})
	}
	return HistoryView{Items: items}
}

// HistoryLen is the number of stored calculations.
func (s *State) HistoryLen() int { return s.history.Len() }

// ConfirmPrompt is the question to ask before ClearHistory.
func (s *State) ConfirmPrompt() string {
	return s.printer.Sprintf(i18n.MsgClearHistoryPrompt)
}

// ClearHistory empties the history when confirmed. A failure to remove the
// persisted copy is logged; the in-memory history is cleared regardless.
func (s *State) ClearHistory(ctx context.Context, confirmed bool) error {
	err := s.history.Clear(ctx, confirmed)
	if errors.Is(err, history.ErrPersist) {
		s.logger.Warn("persisted history not removed",
			zap.String("key", s.history.Key()),
			zap.Error(err),
		)
		return nil
	}
	return err
}
