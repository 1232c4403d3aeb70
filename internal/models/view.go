package models

import "time"

// SessionView is the sanitized shape returned to callers: no management code,
// attendees stripped of their codes and client ids.
type SessionView struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Date            string         `json:"date"`
	Time            string         `json:"time"`
	MaxParticipants int            `json:"maxParticipants"`
	Type            string         `json:"type"`
	Location        string         `json:"location,omitempty"`
	Attendees       []AttendeeView `json:"attendees"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// AttendeeView hides the attendance code and client id.
type AttendeeView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (a *Attendee) View() AttendeeView {
	return AttendeeView{
		ID:        a.ID,
		Name:      a.Name,
		CreatedAt: a.CreatedAt,
	}
}

func (s *Session) View() SessionView {
	attendees := make([]AttendeeView, 0, len(s.Attendees))
	for i := range s.Attendees {
		attendees = append(attendees, s.Attendees[i].View())
	}
	return SessionView{
		ID:              s.ID,
		Title:           s.Title,
		Description:     s.Description,
		Date:            s.Date,
		Time:            s.Time,
		MaxParticipants: s.MaxParticipants,
		Type:            s.Type,
		Location:        s.Location,
		Attendees:       attendees,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
