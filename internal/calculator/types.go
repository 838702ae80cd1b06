package calculator

import (
	"bytes"
	"encoding/json"

	"ruleofthree/internal/history"
	"ruleofthree/internal/proportion"
)

// FieldValue is the raw content of an input field. The UI may send it as
// a JSON number or a string; null means an empty field.
type FieldValue string

func (f *FieldValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FieldValue(s)
	default:
		*f = FieldValue(data)
	}
	return nil
}

// CalculateRequest is the JSON body for POST /api/calculate.
type CalculateRequest struct {
	A FieldValue `json:"a"`
	B FieldValue `json:"b"`
	C FieldValue `json:"c"`
}

// CalculateResponse is the JSON response for POST /api/calculate.
type CalculateResponse struct {
	Mode        proportion.Mode        `json:"mode"`
	A           float64                `json:"a"`
	B           float64                `json:"b"`
	C           float64                `json:"c"`
	X           float64                `json:"x"`
	Display     string                 `json:"display"`
	Formula     string                 `json:"formula"`
	Explanation proportion.Explanation `json:"explanation"`
	Timestamp   string                 `json:"timestamp"`
	Persisted   bool                   `json:"persisted"`
}

// ModeRequest is the JSON body for PUT /api/mode.
type ModeRequest struct {
	Mode string `json:"mode"`
}

// ModeResponse describes the current mode.
type ModeResponse struct {
	Mode        proportion.Mode `json:"mode"`
	Label       string          `json:"label"`
	Description string          `json:"description"`
}

// FieldsResponse is the content of the input fields after clearing them.
type FieldsResponse struct {
	A       string `json:"a"`
	B       string `json:"b"`
	C       string `json:"c"`
	X       string `json:"x"`
	Message string `json:"message"`
}

// ExampleResponse pre-fills the fields with a worked example.
type ExampleResponse struct {
	Mode        proportion.Mode `json:"mode"`
	A           string          `json:"a"`
	B           string          `json:"b"`
	C           string          `json:"c"`
	Title       string          `json:"title"`
	Question    string          `json:"question"`
	Instruction string          `json:"instruction"`
}

// HistoryEntry is one rendered history line.
type HistoryEntry struct {
	Mode      proportion.Mode `json:"mode"`
	Label     string          `json:"label"`
	Summary   string          `json:"summary"`
	Timestamp string          `json:"timestamp"`
	Formula   string          `json:"formula"`
	Values    history.Values  `json:"values"`
}

// HistoryResponse is the JSON response for GET /api/history.
type HistoryResponse struct {
	Entries      []HistoryEntry `json:"entries"`
	EmptyMessage string         `json:"empty_message,omitempty"`
}

// InputsResponse pre-fills the fields from the newest history entry.
type InputsResponse struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
	C float64 `json:"c"`
}
