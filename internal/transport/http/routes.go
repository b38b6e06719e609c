package http

import "net/http"

// CalendarService is everything the routes need from the application layer.
type CalendarService interface {
	EventCommandService
	EventQueryService
}

// NewMux wires the calendar endpoints, /health and the JSON 404 fallback.
func NewMux(svc CalendarService, statuses ErrorStatus) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", HealthHandler)
	mux.Handle("/create_event", HandleCreateEvent(svc, statuses))
	mux.Handle("/update_event", HandleUpdateEvent(svc, statuses))
	mux.Handle("/delete_event", HandleDeleteEvent(svc, statuses))
	mux.Handle("/events_for_day", HandleEventsForDay(svc))
	mux.Handle("/events_for_week", HandleEventsForWeek(svc))
	mux.Handle("/events_for_month", HandleEventsForMonth(svc))
	mux.Handle("/", NotFoundHandler())
	return mux
}
