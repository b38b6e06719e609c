package http

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/sanya-cherniy/l2.11/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	codeMethodNotAllowed   = "method_not_allowed"
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeMissingField       = "missing_required_field"
	codeInvalidDateTime    = "invalid_date_time"
	codeInvalidDate        = "invalid_date"
	codeEventNameRequired  = "event_name_required"
	codeEventExists        = "event_exists"
	codeEventNotFound      = "event_not_found"
	codeForbidden          = "forbidden"
)

// ErrorStatus selects the HTTP status for business-rule failures.
type ErrorStatus struct {
	NotFound int
	Conflict int
}

// LegacyErrorStatus reports both missing and duplicate events as 503, which
// existing clients of the calendar API rely on.
func LegacyErrorStatus() ErrorStatus {
	return ErrorStatus{
		NotFound: http.StatusServiceUnavailable,
		Conflict: http.StatusServiceUnavailable,
	}
}

func ConventionalErrorStatus() ErrorStatus {
	return ErrorStatus{
		NotFound: http.StatusNotFound,
		Conflict: http.StatusConflict,
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type resultResponse struct {
	Result any `json:"result"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

func writeResult(w http.ResponseWriter, status int, result any) {
	payload, err := json.Marshal(resultResponse{Result: result})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

// writeServiceError maps calendar service errors. Anything unrecognised,
// store corruption included, is a 500 with no body.
func writeServiceError(w http.ResponseWriter, statuses ErrorStatus, err error) {
	switch {
	case errors.Is(err, domain.ErrEventExists):
		writeError(w, statuses.Conflict, codeEventExists, err.Error())
	case errors.Is(err, domain.ErrEventNotFound):
		writeError(w, statuses.NotFound, codeEventNotFound, err.Error())
	case errors.Is(err, domain.ErrEventNameEmpty):
		writeError(w, http.StatusBadRequest, codeEventNameRequired, err.Error())
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}
}
