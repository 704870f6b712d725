package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/gridkz/pkg/errors"
	"github.com/matzehuels/gridkz/pkg/kzones"
)

// skipPayload is one dropped section in a response.
type skipPayload struct {
	Section string `json:"section"`
	Line    int    `json:"line,omitempty"`
	Code    string `json:"code"`
	Reason  string `json:"reason"`
}

func skipPayloads(skips []kzones.Skip) []skipPayload {
	if len(skips) == 0 {
		return nil
	}
	out := make([]skipPayload, len(skips))
	for i, s := range skips {
		out[i] = skipPayload{
			Section: s.Section,
			Line:    s.Line,
			Code:    string(s.Code),
			Reason:  s.Reason,
		}
	}
	return out
}

// errorPayload is the body of every failed response.
type errorPayload struct {
	Code      string        `json:"code"`
	Message   string        `json:"message"`
	RequestID string        `json:"request_id,omitempty"`
	Skipped   []skipPayload `json:"skipped,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

// respondJSON writes v with the given status. Encoding failures are
// logged, not surfaced; headers are already gone by then.
func (s *Server) respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		loggerFrom(r.Context()).Error("encode response", "err", err)
	}
}

// respondError maps an error code to an HTTP status and writes the
// error envelope. skips, when present, name the sections that were
// dropped before the conversion came up empty.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, skips []kzones.Skip) {
	code := errors.GetCode(err)
	s.respondJSON(w, r, statusFor(code), errorResponse{
		Error: errorPayload{
			Code:      string(code),
			Message:   errors.UserMessage(err),
			RequestID: requestIDFrom(r.Context()),
			Skipped:   skipPayloads(skips),
		},
	})
}

// statusFor maps error codes to HTTP statuses.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeNoConvertibleZones:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidName,
		errors.ErrCodeInvalidVariable,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidExpression,
		errors.ErrCodeUnknownVariable,
		errors.ErrCodeDivisionByZero,
		errors.ErrCodeMalformedLine,
		errors.ErrCodeIncompleteSection:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound,
		errors.ErrCodeFileNotFound,
		errors.ErrCodeLayoutNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
