package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"ruleofthree/internal/app"
	"ruleofthree/internal/handlers"
	"ruleofthree/internal/history"
	"ruleofthree/internal/observability"
	"ruleofthree/internal/proportion"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// Handler serves the user actions over HTTP. Actions are serialized so
// each one runs to completion before the next starts.
type Handler struct {
	mu    sync.Mutex
	state *app.State
}

// NewHandler initialises the calculator metrics and wraps state.
func NewHandler(state *app.State) (*Handler, error) {
	if err := InitMetrics(); err != nil {
		return nil, err
	}
	historyEntries.Set(float64(state.HistoryLen()))
	return &Handler{state: state}, nil
}

// begin opens the span for one action and returns the trace-aware logger.
func (h *Handler) begin(r *http.Request, opName string) (context.Context, trace.Span, *zap.Logger) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "calculator."+opName,
		trace.WithAttributes(
			attribute.String("calculator.operation", opName),
			attribute.String("request.id", observability.RequestIDFromContext(ctx)),
		),
	)
	return ctx, span, logger
}

func (h *Handler) badRequest(ctx context.Context, span trace.Span, logger *zap.Logger, opName, msg string, err error, w http.ResponseWriter) {
	observability.RecordError(ctx, span, logger, errorCounter, opName, http.StatusBadRequest,
		handlers.ErrorResponse{Error: msg}, err, w)
}

// ---------------------------------------------------------------------------
// Mode
// ---------------------------------------------------------------------------

// GetMode handles GET /api/mode
func (h *Handler) GetMode(w http.ResponseWriter, r *http.Request) {
	_, span, _ := h.begin(r, "get_mode")
	defer span.End()

	h.mu.Lock()
	defer h.mu.Unlock()

	handlers.WriteJSON(w, http.StatusOK, h.modeResponse(h.state.DescribeMode()))
}

// SetMode handles PUT /api/mode
func (h *Handler) SetMode(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := h.begin(r, "set_mode")
	defer span.End()

	var req ModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(ctx, span, logger, "set_mode", "invalid request body", err, w)
		return
	}

	mode, err := proportion.ParseMode(req.Mode)
	if err != nil {
		h.badRequest(ctx, span, logger, "set_mode", err.Error(), err, w)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	previous := h.state.Mode()
	description := h.state.SetMode(mode)

	span.SetAttributes(attribute.String("calculator.mode", mode.String()))
	span.SetStatus(codes.Ok, "")

	logger.Info("mode changed",
		zap.Stringer("from", previous),
		zap.Stringer("to", mode),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusOK, h.modeResponse(description))
}

func (h *Handler) modeResponse(description string) ModeResponse {
	mode := h.state.Mode()
	return ModeResponse{
		Mode:        mode,
		Label:       h.state.ModeLabel(mode),
		Description: description,
	}
}

// ---------------------------------------------------------------------------
// Calculate
// ---------------------------------------------------------------------------

// Calculate handles POST /api/calculate. It demonstrates the full pattern:
// child span, span attributes & events, custom metrics, trace-correlated
// structured logging and error recording.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	const opName = "calculate"

	ctx, span, logger := h.begin(r, opName)
	defer span.End()
	requestID := observability.RequestIDFromContext(ctx)

	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(ctx, span, logger, opName, "invalid request body", err, w)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	mode := h.state.Mode()
	span.SetAttributes(attribute.String("calculator.mode", mode.String()))

	start := time.Now()
	res, err := h.state.Calculate(ctx, string(req.A), string(req.B), string(req.C))
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		if errors.Is(err, proportion.ErrValidation) {
			rej := h.state.Reject()
			observability.RecordError(ctx, span, logger, errorCounter, opName, http.StatusUnprocessableEntity,
				handlers.ErrorResponse{Error: rej.Message, Hint: rej.Hint}, err, w)
			return
		}
		observability.RecordError(ctx, span, logger, errorCounter, opName, http.StatusInternalServerError,
			handlers.ErrorResponse{Error: "internal error"}, err, w)
		return
	}

	calc := res.Calculation

	span.SetAttributes(
		attribute.Float64("calculator.operand.a", calc.Values.A),
		attribute.Float64("calculator.operand.b", calc.Values.B),
		attribute.Float64("calculator.operand.c", calc.Values.C),
	)

	attrs := metric.WithAttributes(attribute.String("mode", mode.String()))
	calcCounter.Add(ctx, 1, attrs)
	calcHistogram.Record(ctx, elapsed, attrs)
	resultGauge.Record(ctx, calc.Values.X, attrs)
	historyEntries.Set(float64(h.state.HistoryLen()))

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.Float64("result", calc.Values.X),
		attribute.Bool("persisted", res.Persisted),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.Float64("calculator.result", calc.Values.X))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculation completed",
		zap.Stringer("mode", mode),
		zap.Float64("a", calc.Values.A),
		zap.Float64("b", calc.Values.B),
		zap.Float64("c", calc.Values.C),
		zap.Float64("x", calc.Values.X),
		zap.Bool("persisted", res.Persisted),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, CalculateResponse{
		Mode:        calc.Mode,
		A:           calc.Values.A,
		B:           calc.Values.B,
		C:           calc.Values.C,
		X:           calc.Values.X,
		Display:     res.Display,
		Formula:     calc.Formula,
		Explanation: res.Explanation,
		Timestamp:   calc.Timestamp,
		Persisted:   res.Persisted,
	})
}

// ---------------------------------------------------------------------------
// Fields
// ---------------------------------------------------------------------------

// ClearFields handles POST /api/fields/clear
func (h *Handler) ClearFields(w http.ResponseWriter, r *http.Request) {
	_, span, _ := h.begin(r, "clear_fields")
	defer span.End()

	h.mu.Lock()
	defer h.mu.Unlock()

	f := h.state.ClearFields()
	handlers.WriteJSON(w, http.StatusOK, FieldsResponse{
		A: f.A, B: f.B, C: f.C, X: f.X,
		Message: f.Message,
	})
}

// LoadExample handles POST /api/example
func (h *Handler) LoadExample(w http.ResponseWriter, r *http.Request) {
	_, span, _ := h.begin(r, "load_example")
	defer span.End()

	h.mu.Lock()
	defer h.mu.Unlock()

	ex := h.state.LoadExample()
	span.SetAttributes(attribute.String("calculator.mode", ex.Mode.String()))

	handlers.WriteJSON(w, http.StatusOK, ExampleResponse{
		Mode:        ex.Mode,
		A:           proportion.FormatNumber(ex.A),
		B:           proportion.FormatNumber(ex.B),
		C:           proportion.FormatNumber(ex.C),
		Title:       ex.Title,
		Question:    ex.Question,
		Instruction: ex.Instruction,
	})
}

// ---------------------------------------------------------------------------
// History
// ---------------------------------------------------------------------------

// History handles GET /api/history
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	_, span, _ := h.begin(r, "history")
	defer span.End()

	h.mu.Lock()
	defer h.mu.Unlock()

	view := h.state.HistoryView()
	resp := HistoryResponse{
		Entries:      make([]HistoryEntry, 0, len(view.Items)),
		EmptyMessage: view.Empty,
	}
	for _, item := range view.Items {
		resp.Entries = append(resp.Entries, HistoryEntry{
			Mode:      item.Calculation.Mode,
			Label:     item.Label,
			Summary:   item.Summary,
			Timestamp: item.Calculation.Timestamp,
			Formula:   item.Calculation.Formula,
			Values:    item.Calculation.Values,
		})
	}

	span.SetAttributes(attribute.Int("history.entries", len(resp.Entries)))
	handlers.WriteJSON(w, http.StatusOK, resp)
}

// LastInputs handles GET /api/history/last. It answers 204 when the
// history is empty.
func (h *Handler) LastInputs(w http.ResponseWriter, r *http.Request) {
	_, span, _ := h.begin(r, "last_inputs")
	defer span.End()

	h.mu.Lock()
	defer h.mu.Unlock()

	in, ok := h.state.LastInputs()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, InputsResponse{A: in.A, B: in.B, C: in.C})
}

// ClearHistory handles DELETE /api/history?confirm=true. Without
// confirmation it answers 428 with the question to put to the user.
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	const opName = "clear_history"

	ctx, span, logger := h.begin(r, opName)
	defer span.End()

	confirmed := false
	if v := r.URL.Query().Get("confirm"); v != "" {
		var err error
		if confirmed, err = strconv.ParseBool(v); err != nil {
			h.badRequest(ctx, span, logger, opName, fmt.Sprintf("invalid confirm value %q", v), err, w)
			return
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.state.ClearHistory(ctx, confirmed); err != nil {
		if errors.Is(err, history.ErrClearNotConfirmed) {
			observability.RecordError(ctx, span, logger, errorCounter, opName, http.StatusPreconditionRequired,
				handlers.ErrorResponse{Error: h.state.ConfirmPrompt()}, err, w)
			return
		}
		observability.RecordError(ctx, span, logger, errorCounter, opName, http.StatusInternalServerError,
			handlers.ErrorResponse{Error: "internal error"}, err, w)
		return
	}

	historyEntries.Set(0)
	span.SetStatus(codes.Ok, "")

	logger.Info("history cleared",
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	w.WriteHeader(http.StatusNoContent)
}
