// Package service enforces the session/attendance rules: visibility,
// code-based authorization, capacity, duplicate-join prevention, and the
// serialization of concurrent mutations against a session id. The store
// underneath is a dumb record store; every rule lives here.
package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"session-planner/internal/models"
	"session-planner/internal/store"
	"session-planner/internal/token"
	"session-planner/internal/util"
)

// List scopes.
const (
	ScopeAll      = "all"
	ScopeUpcoming = "upcoming"
	ScopePast     = "past"
)

// Service implements the session business rules over a SessionStore.
type Service struct {
	store store.SessionStore
	locks *keyedLock
}

// New creates a Service. maxPending bounds the per-session mutation queue;
// zero or negative picks the default.
func New(st store.SessionStore, maxPending int) *Service {
	return &Service{
		store: st,
		locks: newKeyedLock(maxPending),
	}
}

// CreateInput carries the fields required to publish a session.
type CreateInput struct {
	Title           string
	Description     string
	Date            string // YYYY-MM-DD
	Time            string // HH:MM
	MaxParticipants int
	Type            string // public / private
	Location        string
}

// CreateResult is the only place the management code is ever handed out.
type CreateResult struct {
	ID             string
	ManagementCode string
}

// UpdatePatch is a partial update; nil fields mean "no change".
type UpdatePatch struct {
	Title           *string
	Description     *string
	Date            *string
	Time            *string
	MaxParticipants *int
	Type            *string
	Location        *string
}

// AttendResult is the only place an attendance code is ever handed out.
type AttendResult struct {
	AttendeeID     string
	AttendanceCode string
}

// List returns sanitized public sessions, optionally narrowed by scope
// (upcoming/past/all) and a case-insensitive substring filter over title,
// description and location. Reads take no per-session lock.
func (s *Service) List(filter, scope string) ([]models.SessionView, error) {
	sessions, err := s.store.GetAll()
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	now := time.Now()
	q := strings.ToLower(strings.TrimSpace(filter))

	items := make([]models.SessionView, 0, len(sessions))
	for i := range sessions {
		sess := &sessions[i]
		if sess.Type != models.TypePublic {
			continue
		}
		switch scope {
		case ScopeUpcoming:
			if !sess.Upcoming(now) {
				continue
			}
		case ScopePast:
			if sess.Upcoming(now) {
				continue
			}
		}
		if q != "" && !matchesFilter(sess, q) {
			continue
		}
		items = append(items, sess.View())
	}
	return items, nil
}

// Get returns the sanitized session, public or private (private sessions are
// reachable by direct id, they just stay out of the listing).
func (s *Service) Get(id string) (*models.SessionView, error) {
	sess, err := s.getSession(id)
	if err != nil {
		return nil, err
	}
	view := sess.View()
	return &view, nil
}

// Create validates required fields, allocates id and management code, and
// persists the session with an empty roster.
func (s *Service) Create(in CreateInput) (*CreateResult, error) {
	verr := &ValidationError{}
	requireText(verr, "title", in.Title)
	requireText(verr, "description", in.Description)
	requireText(verr, "date", in.Date)
	requireText(verr, "time", in.Time)
	if in.MaxParticipants <= 0 {
		verr.Missing = append(verr.Missing, "maxParticipants")
	}
	requireText(verr, "type", in.Type)

	if in.Type != "" && in.Type != models.TypePublic && in.Type != models.TypePrivate {
		verr.Invalid = append(verr.Invalid, "type")
	}
	if in.Date != "" && util.ValidateDate(in.Date) != nil {
		verr.Invalid = append(verr.Invalid, "date")
	}
	if in.Time != "" && util.ValidateTime(in.Time) != nil {
		verr.Invalid = append(verr.Invalid, "time")
	}
	if !verr.ok() {
		return nil, verr
	}

	code, err := token.NewCode()
	if err != nil {
		return nil, fmt.Errorf("generate management code: %w", err)
	}

	now := time.Now()
	sess := &models.Session{
		ID:              token.NewID(),
		Title:           strings.TrimSpace(in.Title),
		Description:     strings.TrimSpace(in.Description),
		Date:            in.Date,
		Time:            in.Time,
		MaxParticipants: in.MaxParticipants,
		Type:            in.Type,
		Location:        strings.TrimSpace(in.Location),
		ManagementCode:  code,
		Attendees:       models.AttendeeList{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.Insert(sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &CreateResult{ID: sess.ID, ManagementCode: sess.ManagementCode}, nil
}

// Update applies a partial patch after management-code authorization.
func (s *Service) Update(id, managementCode string, patch UpdatePatch) (*models.SessionView, error) {
	if verr := validatePatch(patch); verr != nil {
		return nil, verr
	}

	release, err := s.locks.acquire(id)
	if err != nil {
		return nil, err
	}
	defer release()

	sess, err := s.authorize(id, managementCode)
	if err != nil {
		return nil, err
	}

	applyPatch(sess, patch)
	sess.UpdatedAt = time.Now()
	if err := s.store.Update(sess); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}
	view := sess.View()
	return &view, nil
}

// Delete removes the session and, with it, every attendee record.
func (s *Service) Delete(id, managementCode string) error {
	release, err := s.locks.acquire(id)
	if err != nil {
		return err
	}
	defer release()

	if _, err := s.authorize(id, managementCode); err != nil {
		return err
	}
	if err := s.store.Remove(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Attend joins the session. Capacity and duplicate-client checks run against
// the roster read under the same per-id lock as the append, so two racing
// joins can never both pass.
func (s *Service) Attend(id, name, clientID string) (*AttendResult, error) {
	release, err := s.locks.acquire(id)
	if err != nil {
		return nil, err
	}
	defer release()

	sess, err := s.getSession(id)
	if err != nil {
		return nil, err
	}
	if len(sess.Attendees) >= sess.MaxParticipants {
		return nil, ErrSessionFull
	}
	if sess.HasClient(clientID) {
		return nil, ErrDuplicateAttendee
	}

	code, err := token.NewCode()
	if err != nil {
		return nil, fmt.Errorf("generate attendance code: %w", err)
	}
	attendee := models.Attendee{
		ID:             token.NewID(),
		Name:           strings.TrimSpace(name),
		AttendanceCode: code,
		ClientID:       clientID,
		CreatedAt:      time.Now(),
	}
	sess.Attendees = append(sess.Attendees, attendee)
	sess.UpdatedAt = time.Now()
	if err := s.store.Update(sess); err != nil {
		return nil, fmt.Errorf("save attendee: %w", err)
	}
	return &AttendResult{AttendeeID: attendee.ID, AttendanceCode: attendee.AttendanceCode}, nil
}

// Unattend removes the attendee holding the given attendance code.
func (s *Service) Unattend(id, attendanceCode string) error {
	release, err := s.locks.acquire(id)
	if err != nil {
		return err
	}
	defer release()

	sess, err := s.getSession(id)
	if err != nil {
		return err
	}
	if attendanceCode == "" {
		return ErrMissingCode
	}

	idx := -1
	for i := range sess.Attendees {
		if codeMatches(sess.Attendees[i].AttendanceCode, attendanceCode) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrForbidden
	}

	sess.Attendees = append(sess.Attendees[:idx], sess.Attendees[idx+1:]...)
	sess.UpdatedAt = time.Now()
	if err := s.store.Update(sess); err != nil {
		return fmt.Errorf("save roster: %w", err)
	}
	return nil
}

// Kick removes an attendee by id on behalf of the organizer. Removing an id
// that is already gone still succeeds.
func (s *Service) Kick(id, managementCode, attendeeID string) error {
	release, err := s.locks.acquire(id)
	if err != nil {
		return err
	}
	defer release()

	sess, err := s.authorize(id, managementCode)
	if err != nil {
		return err
	}

	kept := sess.Attendees[:0]
	for i := range sess.Attendees {
		if sess.Attendees[i].ID != attendeeID {
			kept = append(kept, sess.Attendees[i])
		}
	}
	sess.Attendees = kept
	sess.UpdatedAt = time.Now()
	if err := s.store.Update(sess); err != nil {
		return fmt.Errorf("save roster: %w", err)
	}
	return nil
}

// Roster returns the full sanitized view for the organizer (still without any
// codes). Used by the roster export endpoint.
func (s *Service) Roster(id, managementCode string) (*models.SessionView, error) {
	sess, err := s.authorize(id, managementCode)
	if err != nil {
		return nil, err
	}
	view := sess.View()
	return &view, nil
}

// getSession maps the store's not-found onto the service taxonomy.
func (s *Service) getSession(id string) (*models.Session, error) {
	sess, err := s.store.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return sess, nil
}

// authorize loads the session and checks the management code. Existence is
// checked first: an unknown id is NotFound, a known id with the wrong code is
// Forbidden, and nothing else distinguishes the two.
func (s *Service) authorize(id, managementCode string) (*models.Session, error) {
	sess, err := s.getSession(id)
	if err != nil {
		return nil, err
	}
	if !codeMatches(sess.ManagementCode, managementCode) {
		return nil, ErrForbidden
	}
	return sess, nil
}

// codeMatches compares codes in constant time.
func codeMatches(stored, given string) bool {
	if stored == "" || given == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}

func matchesFilter(sess *models.Session, q string) bool {
	return strings.Contains(strings.ToLower(sess.Title), q) ||
		strings.Contains(strings.ToLower(sess.Description), q) ||
		strings.Contains(strings.ToLower(sess.Location), q)
}

func requireText(verr *ValidationError, field, value string) {
	if strings.TrimSpace(value) == "" {
		verr.Missing = append(verr.Missing, field)
	}
}

func validatePatch(patch UpdatePatch) *ValidationError {
	verr := &ValidationError{}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		verr.Invalid = append(verr.Invalid, "title")
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) == "" {
		verr.Invalid = append(verr.Invalid, "description")
	}
	if patch.Date != nil && util.ValidateDate(*patch.Date) != nil {
		verr.Invalid = append(verr.Invalid, "date")
	}
	if patch.Time != nil && util.ValidateTime(*patch.Time) != nil {
		verr.Invalid = append(verr.Invalid, "time")
	}
	if patch.MaxParticipants != nil && *patch.MaxParticipants <= 0 {
		verr.Invalid = append(verr.Invalid, "maxParticipants")
	}
	if patch.Type != nil && *patch.Type != models.TypePublic && *patch.Type != models.TypePrivate {
		verr.Invalid = append(verr.Invalid, "type")
	}
	if !verr.ok() {
		return verr
	}
	return nil
}

// applyPatch copies provided fields onto the record; omitted fields are left
// alone. Lowering maxParticipants below the current roster size is allowed
// and only affects future joins.
func applyPatch(sess *models.Session, patch UpdatePatch) {
	if patch.Title != nil {
		sess.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		sess.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Date != nil {
		sess.Date = *patch.Date
	}
	if patch.Time != nil {
		sess.Time = *patch.Time
	}
	if patch.MaxParticipants != nil {
		sess.MaxParticipants = *patch.MaxParticipants
	}
	if patch.Type != nil {
		sess.Type = *patch.Type
	}
	if patch.Location != nil {
		sess.Location = strings.TrimSpace(*patch.Location)
	}
}
