package entity

import (
	"errors"
	"testing"
)

func TestAppointmentMarkCompleted(t *testing.T) {
	a := &Appointment{Status: AppointmentStatusPending}
	if err := a.MarkCompleted(); err != nil {
		t.Fatalf("MarkCompleted from pending: %v", err)
	}
	if a.Status != AppointmentStatusCompleted {
		t.Errorf("status = %s, want %s", a.Status, AppointmentStatusCompleted)
	}
}

func TestAppointmentCancel(t *testing.T) {
	a := &Appointment{Status: AppointmentStatusPending}
	if err := a.Cancel(); err != nil {
		t.Fatalf("Cancel from pending: %v", err)
	}
	if a.Status != AppointmentStatusCancelled {
		t.Errorf("status = %s, want %s", a.Status, AppointmentStatusCancelled)
	}
}

func TestAppointmentInvalidTransitions(t *testing.T) {
	tests := []struct {
		name   string
		status AppointmentStatus
		apply  func(*Appointment) error
	}{
		{"complete a completed appointment", AppointmentStatusCompleted, (*Appointment).MarkCompleted},
		{"cancel a completed appointment", AppointmentStatusCompleted, (*Appointment).Cancel},
		{"complete a cancelled appointment", AppointmentStatusCancelled, (*Appointment).MarkCompleted},
		{"cancel a cancelled appointment", AppointmentStatusCancelled, (*Appointment).Cancel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Appointment{Status: tt.status}
			if err := tt.apply(a); !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("err = %v, want ErrInvalidTransition", err)
			}
			if a.Status != tt.status {
				t.Errorf("status changed to %s", a.Status)
			}
		})
	}
}
