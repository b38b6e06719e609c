package domain

import (
	"fmt"
	"time"
)

const displayLayout = "2006-01-02 15:04:05"

// Event is a single calendar entry. Date and Name together identify it.
type Event struct {
	Date time.Time
	Name string
}

// NewEvent normalizes date to UTC.
func NewEvent(date time.Time, name string) (Event, error) {
	if name == "" {
		return Event{}, ErrEventNameEmpty
	}
	return Event{Date: date.UTC(), Name: name}, nil
}

// Key is the lookup key used to address an existing event.
type Key struct {
	Date time.Time
	Name string
}

func (e Event) Key() Key {
	return Key{Date: e.Date, Name: e.Name}
}

// Matches reports whether e is the record addressed by k.
func (e Event) Matches(k Key) bool {
	return e.Date.Equal(k.Date) && e.Name == k.Name
}

func (e Event) String() string {
	return fmt.Sprintf("'%s' for date %s", e.Name, FormatDate(e.Date))
}

// FormatDate renders t in UTC the way confirmation messages expect. A
// non-zero fraction is printed with 3, 6 or 9 digits, the shortest that
// holds it exactly.
func FormatDate(t time.Time) string {
	t = t.UTC()
	out := t.Format(displayLayout)
	switch ns := t.Nanosecond(); {
	case ns == 0:
	case ns%1_000_000 == 0:
		out += fmt.Sprintf(".%03d", ns/1_000_000)
	case ns%1_000 == 0:
		out += fmt.Sprintf(".%06d", ns/1_000)
	default:
		out += fmt.Sprintf(".%09d", ns)
	}
	return out + " UTC"
}
