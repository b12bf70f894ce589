package clicker

import (
	"errors"
	"testing"
)

func TestMockSink_RecordsClicks(t *testing.T) {
	s := NewMockSink()

	if err := s.Click(10, 20); err != nil {
		t.Fatalf("Click() error = %v", err)
	}
	if err := s.Click(30, 40); err != nil {
		t.Fatalf("Click() error = %v", err)
	}

	clicks := s.Clicks()
	if len(clicks) != 2 {
		t.Fatalf("len(Clicks()) = %d, want 2", len(clicks))
	}
	if clicks[0] != (Click{X: 10, Y: 20}) || clicks[1] != (Click{X: 30, Y: 40}) {
		t.Errorf("Clicks() = %v, want [{10 20} {30 40}]", clicks)
	}
}

func TestMockSink_SetError(t *testing.T) {
	s := NewMockSink()

	wantErr := errors.New("mouse unplugged")
	s.SetError(wantErr)

	if err := s.Click(1, 2); !errors.Is(err, wantErr) {
		t.Errorf("Click() error = %v, want %v", err, wantErr)
	}
	if len(s.Clicks()) != 0 {
		t.Error("failed clicks must not be recorded")
	}

	s.SetError(nil)
	if err := s.Click(1, 2); err != nil {
		t.Errorf("Click() after clearing error = %v", err)
	}
}

func TestMockSink_Reset(t *testing.T) {
	s := NewMockSink()
	s.Click(1, 2)
	s.Reset()

	if len(s.Clicks()) != 0 {
		t.Error("Reset() should clear recorded clicks")
	}
}
