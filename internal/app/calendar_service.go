package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sanya-cherniy/l2.11/internal/domain"
)

// EventRepository is the storage the calendar service runs against.
type EventRepository interface {
	Insert(ctx context.Context, event domain.Event) error
	Replace(ctx context.Context, key domain.Key, next domain.Event) (domain.Event, error)
	Remove(ctx context.Context, key domain.Key) (domain.Event, error)
	Filter(ctx context.Context, match func(domain.Event) bool) ([]domain.Event, error)
}

type CalendarService struct {
	repo EventRepository
}

func NewCalendarService(repo EventRepository) *CalendarService {
	return &CalendarService{repo: repo}
}

type CreateEventInput struct {
	Date time.Time
	Name string
}

// CreateEvent stores a new event and returns a confirmation message.
func (s *CalendarService) CreateEvent(ctx context.Context, in CreateEventInput) (string, error) {
	event, err := domain.NewEvent(in.Date, in.Name)
	if err != nil {
		return "", err
	}
	if err := s.repo.Insert(ctx, event); err != nil {
		return "", err
	}
	return fmt.Sprintf("Added event: %s", event), nil
}

type UpdateEventInput struct {
	Date    time.Time
	Name    string
	NewDate time.Time
	NewName string
}

// UpdateEvent replaces both fields of the event identified by Date and Name.
func (s *CalendarService) UpdateEvent(ctx context.Context, in UpdateEventInput) (string, error) {
	next, err := domain.NewEvent(in.NewDate, in.NewName)
	if err != nil {
		return "", err
	}
	key := domain.Key{Date: in.Date.UTC(), Name: in.Name}
	prev, err := s.repo.Replace(ctx, key, next)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Update event: %s, on event: %s", prev, next), nil
}

type DeleteEventInput struct {
	Date time.Time
	Name string
}

func (s *CalendarService) DeleteEvent(ctx context.Context, in DeleteEventInput) (string, error) {
	removed, err := s.repo.Remove(ctx, domain.Key{Date: in.Date.UTC(), Name: in.Name})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Removed event: %s", removed), nil
}

func (s *CalendarService) EventsForDay(ctx context.Context, date time.Time) ([]domain.Event, error) {
	return s.repo.Filter(ctx, domain.SameDay(date))
}

func (s *CalendarService) EventsForWeek(ctx context.Context, date time.Time) ([]domain.Event, error) {
	return s.repo.Filter(ctx, domain.SameWeek(date))
}

func (s *CalendarService) EventsForMonth(ctx context.Context, date time.Time) ([]domain.Event, error) {
	return s.repo.Filter(ctx, domain.SameMonth(date))
}
