package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sanya-cherniy/l2.11/internal/app"
	"github.com/sanya-cherniy/l2.11/internal/domain"
)

const (
	queryDateLayout = "2006-01-02"
	maxBodyBytes    = 1 << 20
)

// EventCommandService is the minimal interface needed for the write endpoints.
type EventCommandService interface {
	CreateEvent(ctx context.Context, in app.CreateEventInput) (string, error)
	UpdateEvent(ctx context.Context, in app.UpdateEventInput) (string, error)
	DeleteEvent(ctx context.Context, in app.DeleteEventInput) (string, error)
}

// EventQueryService is the minimal interface needed for the range endpoints.
type EventQueryService interface {
	EventsForDay(ctx context.Context, date time.Time) ([]domain.Event, error)
	EventsForWeek(ctx context.Context, date time.Time) ([]domain.Event, error)
	EventsForMonth(ctx context.Context, date time.Time) ([]domain.Event, error)
}

type eventRequest struct {
	DateTime  string `json:"date_time"`
	EventName string `json:"event_name"`
}

type updateEventRequest struct {
	DateTime     string `json:"date_time"`
	EventName    string `json:"event_name"`
	NewDateTime  string `json:"new_date_time"`
	NewEventName string `json:"new_event_name"`
}

type eventResponse struct {
	Date time.Time `json:"date"`
	Name string    `json:"name"`
}

// requestError is an input problem detected before the service is called.
type requestError struct {
	code string
	msg  string
}

func (e *requestError) Error() string { return e.msg }

// HandleCreateEvent returns the POST /create_event handler.
func HandleCreateEvent(svc EventCommandService, statuses ErrorStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		var req eventRequest
		if reqErr := decodeBody(r, &req); reqErr != nil {
			writeError(w, http.StatusBadRequest, reqErr.code, reqErr.msg)
			return
		}
		date, reqErr := parseEventKey(req.DateTime, req.EventName, "date_time", "event_name")
		if reqErr != nil {
			writeError(w, http.StatusBadRequest, reqErr.code, reqErr.msg)
			return
		}

		msg, err := svc.CreateEvent(r.Context(), app.CreateEventInput{Date: date, Name: req.EventName})
		if err != nil {
			writeServiceError(w, statuses, err)
			return
		}
		writeResult(w, http.StatusCreated, msg)
	}
}

// HandleUpdateEvent returns the POST /update_event handler.
func HandleUpdateEvent(svc EventCommandService, statuses ErrorStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		var req updateEventRequest
		if reqErr := decodeBody(r, &req); reqErr != nil {
			writeError(w, http.StatusBadRequest, reqErr.code, reqErr.msg)
			return
		}
		date, reqErr := parseEventKey(req.DateTime, req.EventName, "date_time", "event_name")
		if reqErr != nil {
			writeError(w, http.StatusBadRequest, reqErr.code, reqErr.msg)
			return
		}
		newDate, reqErr := parseEventKey(req.NewDateTime, req.NewEventName, "new_date_time", "new_event_name")
		if reqErr != nil {
			writeError(w, http.StatusBadRequest, reqErr.code, reqErr.msg)
			return
		}

		msg, err := svc.UpdateEvent(r.Context(), app.UpdateEventInput{
			Date:    date,
			Name:    req.EventName,
			NewDate: newDate,
			NewName: req.NewEventName,
		})
		if err != nil {
			writeServiceError(w, statuses, err)
			return
		}
		writeResult(w, http.StatusOK, msg)
	}
}

// HandleDeleteEvent returns the POST /delete_event handler.
func HandleDeleteEvent(svc EventCommandService, statuses ErrorStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		var req eventRequest
		if reqErr := decodeBody(r, &req); reqErr != nil {
			writeError(w, http.StatusBadRequest, reqErr.code, reqErr.msg)
			return
		}
		date, reqErr := parseEventKey(req.DateTime, req.EventName, "date_time", "event_name")
		if reqErr != nil {
			writeError(w, http.StatusBadRequest, reqErr.code, reqErr.msg)
			return
		}

		msg, err := svc.DeleteEvent(r.Context(), app.DeleteEventInput{Date: date, Name: req.EventName})
		if err != nil {
			writeServiceError(w, statuses, err)
			return
		}
		writeResult(w, http.StatusOK, msg)
	}
}

// HandleEventsForDay returns the GET /events_for_day handler.
func HandleEventsForDay(svc EventQueryService) http.HandlerFunc {
	return handleEventsQuery(svc.EventsForDay)
}

// HandleEventsForWeek returns the GET /events_for_week handler.
func HandleEventsForWeek(svc EventQueryService) http.HandlerFunc {
	return handleEventsQuery(svc.EventsForWeek)
}

// HandleEventsForMonth returns the GET /events_for_month handler.
func HandleEventsForMonth(svc EventQueryService) http.HandlerFunc {
	return handleEventsQuery(svc.EventsForMonth)
}

func handleEventsQuery(query func(context.Context, time.Time) ([]domain.Event, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		raw := r.URL.Query().Get("date")
		if raw == "" {
			writeError(w, http.StatusBadRequest, codeMissingField, "missing field `date`")
			return
		}
		date, err := time.Parse(queryDateLayout, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidDate, fmt.Sprintf("invalid date: %v", err))
			return
		}

		events, err := query(r.Context(), date)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		resp := make([]eventResponse, 0, len(events))
		for _, event := range events {
			resp = append(resp, eventResponse{
				Date: event.Date,
				Name: event.Name,
			})
		}
		writeResult(w, http.StatusOK, resp)
	}
}

// decodeBody requires the body to hold exactly one JSON value; trailing
// bytes after it are rejected.
func decodeBody(r *http.Request, dst any) *requestError {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return &requestError{code: codeInvalidRequestBody, msg: fmt.Sprintf("invalid request body: %v", err)}
	}
	if len(data) > maxBodyBytes {
		return &requestError{code: codeInvalidRequestBody, msg: "invalid request body: too large"}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return &requestError{code: codeInvalidRequestBody, msg: "invalid request body: empty"}
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return &requestError{code: codeInvalidRequestBody, msg: fmt.Sprintf("invalid request body: %v", err)}
	}
	return nil
}

// parseEventKey validates a date/name pair and returns the date in UTC.
func parseEventKey(rawDate, name, dateField, nameField string) (time.Time, *requestError) {
	if rawDate == "" {
		return time.Time{}, &requestError{code: codeMissingField, msg: fmt.Sprintf("missing field `%s`", dateField)}
	}
	if name == "" {
		return time.Time{}, &requestError{code: codeEventNameRequired, msg: fmt.Sprintf("missing field `%s`", nameField)}
	}
	date, err := time.Parse(time.RFC3339, rawDate)
	if err != nil {
		return time.Time{}, &requestError{code: codeInvalidDateTime, msg: fmt.Sprintf("invalid %s: %v", dateField, err)}
	}
	return date.UTC(), nil
}
