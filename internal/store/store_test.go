package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"session-planner/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sessions.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Session{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return New(db)
}

func sample(id string) *models.Session {
	now := time.Now().Truncate(time.Second)
	return &models.Session{
		ID:              id,
		Title:           "Board Games Night",
		Description:     "Casual games",
		Date:            "2099-05-01",
		Time:            "19:00",
		MaxParticipants: 8,
		Type:            models.TypePublic,
		ManagementCode:  "mgmt-" + id,
		Attendees: models.AttendeeList{
			{ID: "a1", Name: "Sam", AttendanceCode: "code-1", ClientID: "device-1", CreatedAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestInsertAndGet(t *testing.T) {
	d := newTestDB(t)

	want := sample("s1")
	if err := d.Insert(want); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	got, err := d.Get("s1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != want.Title || got.ManagementCode != want.ManagementCode {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
	// the roster survives the JSON column round trip
	if len(got.Attendees) != 1 || got.Attendees[0].AttendanceCode != "code-1" ||
		got.Attendees[0].ClientID != "device-1" {
		t.Errorf("Get() attendees = %+v", got.Attendees)
	}
}

func TestGet_NotFound(t *testing.T) {
	d := newTestDB(t)
	if _, err := d.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestUpdate_ReplacesWholeRecord(t *testing.T) {
	d := newTestDB(t)

	s := sample("s1")
	if err := d.Insert(s); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	s.Title = "Chess Night"
	s.Attendees = models.AttendeeList{} // roster cleared in the same write
	if err := d.Update(s); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := d.Get("s1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != "Chess Night" {
		t.Errorf("Update() title = %q", got.Title)
	}
	if len(got.Attendees) != 0 {
		t.Errorf("Update() attendees = %+v, want empty", got.Attendees)
	}
}

func TestRemove(t *testing.T) {
	d := newTestDB(t)

	if err := d.Insert(sample("s1")); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := d.Remove("s1"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := d.Get("s1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after remove error = %v, want ErrNotFound", err)
	}
	if err := d.Remove("s1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Remove() twice error = %v, want ErrNotFound", err)
	}
}

func TestGetAll(t *testing.T) {
	d := newTestDB(t)

	if err := d.Insert(sample("s1")); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := d.Insert(sample("s2")); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	all, err := d.GetAll()
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("GetAll() = %d sessions, want 2", len(all))
	}
}

func TestMemory_MatchesContract(t *testing.T) {
	m := NewMemory()

	s := sample("s1")
	if err := m.Insert(s); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	got, err := m.Get("s1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	// mutations of the returned copy must not leak into the store
	got.Attendees = append(got.Attendees, models.Attendee{ID: "a2"})
	again, _ := m.Get("s1")
	if len(again.Attendees) != 1 {
		t.Errorf("Get() returned aliased record; roster = %d", len(again.Attendees))
	}

	if _, err := m.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
	if err := m.Remove("s1"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := m.Remove("s1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Remove() twice error = %v, want ErrNotFound", err)
	}
}
