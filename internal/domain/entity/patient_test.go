package entity

import (
	"testing"
	"time"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestPatientAgeAt(t *testing.T) {
	birth := date(2000, time.June, 15)
	patient := &Patient{BirthDate: &birth}

	tests := []struct {
		name string
		asOf time.Time
		want int
	}{
		{"day before birthday", date(2024, time.June, 14), 23},
		{"on birthday", date(2024, time.June, 15), 24},
		{"day after birthday", date(2024, time.June, 16), 24},
		{"earlier month", date(2024, time.January, 1), 23},
		{"later month", date(2024, time.December, 31), 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := patient.AgeAt(tt.asOf); got != tt.want {
				t.Errorf("AgeAt(%s) = %d, want %d", tt.asOf.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestPatientAgeAtUnknownBirthDate(t *testing.T) {
	patient := &Patient{}
	if got := patient.AgeAt(date(2024, time.June, 15)); got != -1 {
		t.Errorf("AgeAt with no birth date = %d, want -1", got)
	}
}

func TestPatientIsActive(t *testing.T) {
	active := true
	inactive := false

	if (&Patient{Active: &active}).IsActive() != true {
		t.Error("expected active patient")
	}
	if (&Patient{Active: &inactive}).IsActive() != false {
		t.Error("expected inactive patient")
	}
	if (&Patient{}).IsActive() != false {
		t.Error("expected nil Active to read as inactive")
	}
}
