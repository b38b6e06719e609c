package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanya-cherniy/l2.11/internal/app"
	"github.com/sanya-cherniy/l2.11/internal/domain"
)

type stubCalendarService struct {
	msg    string
	events []domain.Event
	err    error

	created app.CreateEventInput
	updated app.UpdateEventInput
	deleted app.DeleteEventInput
	queried time.Time
}

func (s *stubCalendarService) CreateEvent(_ context.Context, in app.CreateEventInput) (string, error) {
	s.created = in
	return s.msg, s.err
}

func (s *stubCalendarService) UpdateEvent(_ context.Context, in app.UpdateEventInput) (string, error) {
	s.updated = in
	return s.msg, s.err
}

func (s *stubCalendarService) DeleteEvent(_ context.Context, in app.DeleteEventInput) (string, error) {
	s.deleted = in
	return s.msg, s.err
}

func (s *stubCalendarService) EventsForDay(_ context.Context, date time.Time) ([]domain.Event, error) {
	s.queried = date
	return s.events, s.err
}

func (s *stubCalendarService) EventsForWeek(ctx context.Context, date time.Time) ([]domain.Event, error) {
	return s.EventsForDay(ctx, date)
}

func (s *stubCalendarService) EventsForMonth(ctx context.Context, date time.Time) ([]domain.Event, error) {
	return s.EventsForDay(ctx, date)
}

func TestHandleCreateEvent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		method         string
		body           string
		statuses       ErrorStatus
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "success",
			body:           `{"date_time":"2024-03-04T10:00:00Z","event_name":"standup"}`,
			expectedStatus: http.StatusCreated,
			expectedSubstr: `{"result":"ok"}`,
		},
		{
			name:           "unknown fields ignored",
			body:           `{"date_time":"2024-03-04T10:00:00Z","event_name":"standup","room":"b2"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "invalid json",
			body:           `{"date_time":`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: codeInvalidRequestBody,
		},
		{
			name:           "trailing garbage",
			body:           `{"date_time":"2024-03-04T10:00:00Z","event_name":"standup"}garbage`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: codeInvalidRequestBody,
		},
		{
			name:           "second json value",
			body:           `{"date_time":"2024-03-04T10:00:00Z","event_name":"standup"}{"x":1}`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: codeInvalidRequestBody,
		},
		{
			name:           "trailing whitespace",
			body:           "{\"date_time\":\"2024-03-04T10:00:00Z\",\"event_name\":\"standup\"}\n",
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "empty body",
			body:           "",
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: codeInvalidRequestBody,
		},
		{
			name:           "missing date",
			body:           `{"event_name":"standup"}`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "missing field `date_time`",
		},
		{
			name:           "missing name",
			body:           `{"date_time":"2024-03-04T10:00:00Z"}`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "missing field `event_name`",
		},
		{
			name:           "date without zone",
			body:           `{"date_time":"2024-03-04 10:00","event_name":"standup"}`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: codeInvalidDateTime,
		},
		{
			name:           "duplicate legacy",
			body:           `{"date_time":"2024-03-04T10:00:00Z","event_name":"standup"}`,
			serviceErr:     domain.ErrEventExists,
			expectedStatus: http.StatusServiceUnavailable,
			expectedSubstr: codeEventExists,
		},
		{
			name:           "duplicate conventional",
			body:           `{"date_time":"2024-03-04T10:00:00Z","event_name":"standup"}`,
			statuses:       ConventionalErrorStatus(),
			serviceErr:     domain.ErrEventExists,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "wrong method",
			method:         http.MethodGet,
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			method := tt.method
			if method == "" {
				method = http.MethodPost
			}
			statuses := tt.statuses
			if statuses == (ErrorStatus{}) {
				statuses = LegacyErrorStatus()
			}
			svc := &stubCalendarService{msg: "ok", err: tt.serviceErr}
			req := httptest.NewRequest(method, "/create_event", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			HandleCreateEvent(svc, statuses).ServeHTTP(rec, req)

			require.Equal(t, tt.expectedStatus, rec.Code, rec.Body.String())
			if tt.expectedSubstr != "" {
				assert.Contains(t, rec.Body.String(), tt.expectedSubstr)
			}
		})
	}
}

func TestHandleCreateEvent_NormalizesToUTC(t *testing.T) {
	t.Parallel()

	svc := &stubCalendarService{msg: "ok"}
	body := `{"date_time":"2024-03-04T13:00:00+03:00","event_name":"standup"}`
	req := httptest.NewRequest(http.MethodPost, "/create_event", strings.NewReader(body))
	rec := httptest.NewRecorder()

	HandleCreateEvent(svc, LegacyErrorStatus()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC), svc.created.Date)
	assert.Equal(t, "standup", svc.created.Name)
}

func TestHandleUpdateEvent(t *testing.T) {
	t.Parallel()

	valid := `{"date_time":"2024-03-04T10:00:00Z","event_name":"a","new_date_time":"2024-03-05T11:00:00Z","new_event_name":"b"}`

	tests := []struct {
		name           string
		body           string
		statuses       ErrorStatus
		serviceErr     error
		expectedStatus int
	}{
		{name: "success", body: valid, expectedStatus: http.StatusOK},
		{name: "trailing data", body: valid + `{"x":1}`, expectedStatus: http.StatusBadRequest},
		{
			name:           "missing new name",
			body:           `{"date_time":"2024-03-04T10:00:00Z","event_name":"a","new_date_time":"2024-03-05T11:00:00Z"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad new date",
			body:           `{"date_time":"2024-03-04T10:00:00Z","event_name":"a","new_date_time":"tomorrow","new_event_name":"b"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{name: "not found legacy", body: valid, serviceErr: domain.ErrEventNotFound, expectedStatus: http.StatusServiceUnavailable},
		{
			name:           "not found conventional",
			body:           valid,
			statuses:       ConventionalErrorStatus(),
			serviceErr:     domain.ErrEventNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{name: "store corrupted", body: valid, serviceErr: domain.ErrStoreCorrupted, expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			statuses := tt.statuses
			if statuses == (ErrorStatus{}) {
				statuses = LegacyErrorStatus()
			}
			svc := &stubCalendarService{msg: "updated", err: tt.serviceErr}
			req := httptest.NewRequest(http.MethodPost, "/update_event", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			HandleUpdateEvent(svc, statuses).ServeHTTP(rec, req)

			require.Equal(t, tt.expectedStatus, rec.Code, rec.Body.String())
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "a", svc.updated.Name)
				assert.Equal(t, "b", svc.updated.NewName)
				assert.Equal(t, time.Date(2024, 3, 5, 11, 0, 0, 0, time.UTC), svc.updated.NewDate)
			}
			if tt.expectedStatus == http.StatusInternalServerError {
				assert.Empty(t, rec.Body.String())
			}
		})
	}
}

func TestHandleDeleteEvent(t *testing.T) {
	t.Parallel()

	body := `{"date_time":"2024-03-04T10:00:00Z","event_name":"a"}`

	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
	}{
		{name: "success", expectedStatus: http.StatusOK},
		{name: "trailing data", body: body + "garbage", expectedStatus: http.StatusBadRequest},
		{name: "not found", serviceErr: domain.ErrEventNotFound, expectedStatus: http.StatusServiceUnavailable},
		{name: "internal error", serviceErr: errors.New("boom"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			reqBody := tt.body
			if reqBody == "" {
				reqBody = body
			}
			svc := &stubCalendarService{msg: "removed", err: tt.serviceErr}
			req := httptest.NewRequest(http.MethodPost, "/delete_event", strings.NewReader(reqBody))
			rec := httptest.NewRecorder()

			HandleDeleteEvent(svc, LegacyErrorStatus()).ServeHTTP(rec, req)

			require.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "a", svc.deleted.Name)
			}
			if tt.expectedStatus == http.StatusBadRequest {
				assert.Empty(t, svc.deleted.Name, "service must not be called")
			}
		})
	}
}

func TestHandleEventsQuery(t *testing.T) {
	t.Parallel()

	event := domain.Event{Date: time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC), Name: "standup"}

	tests := []struct {
		name           string
		target         string
		events         []domain.Event
		serviceErr     error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "events",
			target:         "/events_for_day?date=2024-03-04",
			events:         []domain.Event{event},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"result":[{"date":"2024-03-04T10:00:00Z","name":"standup"}]}`,
		},
		{
			name:           "empty",
			target:         "/events_for_day?date=2024-03-04",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"result":[]}`,
		},
		{name: "missing date", target: "/events_for_day", expectedStatus: http.StatusBadRequest},
		{name: "malformed date", target: "/events_for_day?date=04.03.2024", expectedStatus: http.StatusBadRequest},
		{name: "impossible date", target: "/events_for_day?date=2024-02-30", expectedStatus: http.StatusBadRequest},
		{
			name:           "store corrupted",
			target:         "/events_for_day?date=2024-03-04",
			serviceErr:     domain.ErrStoreCorrupted,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubCalendarService{events: tt.events, err: tt.serviceErr}
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()

			HandleEventsForDay(svc).ServeHTTP(rec, req)

			require.Equal(t, tt.expectedStatus, rec.Code, rec.Body.String())
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, rec.Body.String())
				assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), svc.queried)
			}
		})
	}
}

func TestHandleEventsQuery_RejectsPost(t *testing.T) {
	t.Parallel()

	for _, handler := range []http.HandlerFunc{
		HandleEventsForDay(&stubCalendarService{}),
		HandleEventsForWeek(&stubCalendarService{}),
		HandleEventsForMonth(&stubCalendarService{}),
	} {
		req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/events?date=%s", "2024-03-04"), nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	}
}
