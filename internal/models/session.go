package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Session visibility values.
const (
	TypePublic  = "public"
	TypePrivate = "private"
)

// Session represents one planned hobby gathering. The attendee roster is
// embedded in the record itself (single JSON column), so every store write
// replaces the whole record.
type Session struct {
	ID              string       `gorm:"primaryKey;size:64"`
	Title           string       `gorm:"size:255;not null"`
	Description     string       `gorm:"type:text;not null"`
	Date            string       `gorm:"size:16;not null"` // YYYY-MM-DD
	Time            string       `gorm:"size:8;not null"`  // HH:MM
	MaxParticipants int          `gorm:"not null"`
	Type            string       `gorm:"size:16;index;not null"` // public / private
	Location        string       `gorm:"size:255"`
	ManagementCode  string       `gorm:"size:64;not null"` // secret, creation response only
	Attendees       AttendeeList `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Attendee is a join record scoped to one session. It lives inside the
// session's attendee column, never in a table of its own.
type Attendee struct {
	ID             string    `json:"id"`
	Name           string    `json:"name,omitempty"`
	AttendanceCode string    `json:"attendanceCode"` // secret, join response only
	ClientID       string    `json:"clientId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// AttendeeList stores the roster as a JSON array in a single text column.
type AttendeeList []Attendee

func (l AttendeeList) Value() (driver.Value, error) {
	if l == nil {
		l = AttendeeList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal attendees: %w", err)
	}
	return string(b), nil
}

func (l *AttendeeList) Scan(src interface{}) error {
	if src == nil {
		*l = AttendeeList{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("scan attendees: unexpected type %T", src)
	}
	if len(data) == 0 {
		*l = AttendeeList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

// StartsAt combines date and time into a single local instant.
func (s *Session) StartsAt() (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", s.Date+" "+s.Time, time.Local)
}

// Upcoming reports whether the session starts at or after now. Records with
// an unparseable date/time are never upcoming.
func (s *Session) Upcoming(now time.Time) bool {
	at, err := s.StartsAt()
	if err != nil {
		return false
	}
	return !at.Before(now)
}

// HasClient reports whether some attendee already joined with this client id.
func (s *Session) HasClient(clientID string) bool {
	if clientID == "" {
		return false
	}
	for i := range s.Attendees {
		if s.Attendees[i].ClientID == clientID {
			return true
		}
	}
	return false
}
