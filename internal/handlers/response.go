package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// ErrorResponse is the body of every error answer.
type ErrorResponse struct {
	Error string `json:"error"`
	// Hint tells the user what a valid input looks like.
	Hint      string `json:"hint,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// encodeFailureBody is sent when the real body cannot be encoded.
const encodeFailureBody = `{"error":"internal error"}` + "\n"

// WriteJSON writes v as a JSON body with the given status. The body is
// encoded before the header goes out, so a value that cannot be encoded
// becomes a 500 instead of a truncated answer.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		zap.L().Error("encode response body", zap.Int("status", status), zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(encodeFailureBody))
		return
	}

	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

// WriteError writes a standardised JSON error response.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteErrorResponse(w, status, ErrorResponse{Error: msg})
}

func WriteErrorResponse(w http.ResponseWriter, status int, body ErrorResponse) {
	WriteJSON(w, status, body)
}

// Health handles GET /health.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
