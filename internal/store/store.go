// Package store is the persistence boundary for session records. It is a dumb
// record store: get/insert/update/remove on whole Session rows, read-your-writes
// within the process. It does NOT serialize concurrent writers to the same id;
// the service layer owns that.
package store

import (
	"errors"
	"fmt"

	"session-planner/internal/models"

	"gorm.io/gorm"
)

// ErrNotFound is returned when no session record has the requested id.
var ErrNotFound = errors.New("session not found")

// SessionStore is the narrow contract the service needs from persistence.
type SessionStore interface {
	GetAll() ([]models.Session, error)
	Get(id string) (*models.Session, error)
	Insert(s *models.Session) error
	// Update replaces the whole record, roster included.
	Update(s *models.Session) error
	Remove(id string) error
}

// DB implements SessionStore on a gorm SQLite handle.
type DB struct {
	db *gorm.DB
}

func New(db *gorm.DB) *DB {
	return &DB{db: db}
}

func (d *DB) GetAll() ([]models.Session, error) {
	var sessions []models.Session
	if err := d.db.Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

func (d *DB) Get(id string) (*models.Session, error) {
	var s models.Session
	if err := d.db.First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &s, nil
}

func (d *DB) Insert(s *models.Session) error {
	if err := d.db.Create(s).Error; err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (d *DB) Update(s *models.Session) error {
	if err := d.db.Save(s).Error; err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

func (d *DB) Remove(id string) error {
	res := d.db.Delete(&models.Session{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("remove session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
