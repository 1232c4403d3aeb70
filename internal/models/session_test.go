package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestUpcoming_Boundary(t *testing.T) {
	s := &Session{Date: "2030-06-15", Time: "18:30"}

	exact, err := s.StartsAt()
	if err != nil {
		t.Fatalf("StartsAt() error = %v", err)
	}

	// a session starting exactly now still counts as upcoming
	if !s.Upcoming(exact) {
		t.Error("Upcoming(start instant) = false, want true")
	}
	if s.Upcoming(exact.Add(time.Second)) {
		t.Error("Upcoming(start+1s) = true, want false")
	}
	if !s.Upcoming(exact.Add(-time.Second)) {
		t.Error("Upcoming(start-1s) = false, want true")
	}
}

func TestUpcoming_UnparseableNeverUpcoming(t *testing.T) {
	s := &Session{Date: "garbage", Time: "18:30"}
	if s.Upcoming(time.Now()) {
		t.Error("Upcoming() with bad date = true, want false")
	}
}

func TestHasClient(t *testing.T) {
	s := &Session{Attendees: AttendeeList{
		{ID: "a1", ClientID: "device-1"},
		{ID: "a2"},
	}}

	if !s.HasClient("device-1") {
		t.Error("HasClient(device-1) = false, want true")
	}
	if s.HasClient("device-2") {
		t.Error("HasClient(device-2) = true, want false")
	}
	// empty client ids never collide with each other
	if s.HasClient("") {
		t.Error("HasClient(\"\") = true, want false")
	}
}

func TestView_StripsSecrets(t *testing.T) {
	s := &Session{
		ID:             "s1",
		Title:          "Chess",
		ManagementCode: "mgmt-secret",
		Attendees: AttendeeList{
			{ID: "a1", Name: "Sam", AttendanceCode: "att-secret", ClientID: "device-1"},
		},
	}

	raw, err := json.Marshal(s.View())
	if err != nil {
		t.Fatalf("marshal view: %v", err)
	}
	body := string(raw)
	for _, secret := range []string{"mgmt-secret", "att-secret", "device-1"} {
		if strings.Contains(body, secret) {
			t.Errorf("view leaks %q: %s", secret, body)
		}
	}
	if !strings.Contains(body, "Sam") {
		t.Errorf("view lost attendee name: %s", body)
	}
}

func TestAttendeeList_ScanValue(t *testing.T) {
	list := AttendeeList{{ID: "a1", Name: "Sam", AttendanceCode: "c1"}}

	v, err := list.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}

	var got AttendeeList
	if err := got.Scan(v); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "a1" || got[0].AttendanceCode != "c1" {
		t.Errorf("Scan() = %+v", got)
	}

	// nil column means empty roster, not nil pointer surprises
	var empty AttendeeList
	if err := empty.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) error = %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("Scan(nil) = %v, want empty list", empty)
	}
}
