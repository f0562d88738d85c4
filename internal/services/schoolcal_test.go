package services

import (
	"testing"
	"time"
)

func TestSchoolCalendarWeekend(t *testing.T) {
	svc := NewSchoolCalendarService("US")

	saturday := time.Date(2026, 9, 12, 12, 0, 0, 0, time.UTC)
	if svc.IsSchoolDay(saturday) {
		t.Error("Saturday should not be a school day")
	}

	monday := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	if !svc.IsSchoolDay(monday) {
		t.Error("a plain Monday should be a school day")
	}
}

func TestSchoolCalendarUSHoliday(t *testing.T) {
	svc := NewSchoolCalendarService("US")

	// Independence Day 2026 falls on a Saturday; July 3 is the observed day.
	observed := time.Date(2026, 7, 3, 12, 0, 0, 0, time.UTC)
	if svc.IsSchoolDay(observed) {
		t.Error("observed Independence Day should not be a school day")
	}
}

func TestSchoolCalendarUnknownRegion(t *testing.T) {
	svc := NewSchoolCalendarService("XX")

	monday := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	if !svc.IsSchoolDay(monday) {
		t.Error("weekday should be a school day in fallback calendar")
	}
	sunday := time.Date(2026, 9, 13, 12, 0, 0, 0, time.UTC)
	if svc.IsSchoolDay(sunday) {
		t.Error("Sunday should not be a school day in fallback calendar")
	}
}

func TestNextSchoolDaySkipsWeekend(t *testing.T) {
	svc := NewSchoolCalendarService("DE")

	friday := time.Date(2026, 9, 11, 12, 0, 0, 0, time.UTC)
	next := svc.NextSchoolDay(friday)
	if next.Weekday() != time.Monday {
		t.Errorf("next school day after Friday = %v, expected Monday", next.Weekday())
	}
}
