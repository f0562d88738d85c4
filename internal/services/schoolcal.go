package services

import (
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/de"
	"github.com/rickar/cal/v2/es"
	"github.com/rickar/cal/v2/fr"
	"github.com/rickar/cal/v2/gb"
	"github.com/rickar/cal/v2/it"
	"github.com/rickar/cal/v2/nl"
	"github.com/rickar/cal/v2/pl"
	"github.com/rickar/cal/v2/us"
)

// SchoolCalendarService decides which days count as school days so the
// digest scheduler stays quiet on weekends and public holidays.
type SchoolCalendarService struct {
	calendar *cal.BusinessCalendar
}

// NewSchoolCalendarService builds a business calendar for the region code.
// Unknown regions fall back to plain weekday checks with no holidays.
func NewSchoolCalendarService(region string) *SchoolCalendarService {
	c := cal.NewBusinessCalendar()

	switch region {
	case "US":
		c.AddHoliday(us.Holidays...)
	case "GB":
		c.AddHoliday(gb.Holidays...)
	case "DE":
		c.AddHoliday(de.Holidays...)
	case "FR":
		c.AddHoliday(fr.Holidays...)
	case "ES":
		c.AddHoliday(es.Holidays...)
	case "IT":
		c.AddHoliday(it.Holidays...)
	case "NL":
		c.AddHoliday(nl.Holidays...)
	case "PL":
		c.AddHoliday(pl.Holidays...)
	}

	return &SchoolCalendarService{calendar: c}
}

// IsSchoolDay reports whether date is a working day in the region.
func (s *SchoolCalendarService) IsSchoolDay(date time.Time) bool {
	return s.calendar.IsWorkday(date)
}

// NextSchoolDay returns the next working day strictly after date.
func (s *SchoolCalendarService) NextSchoolDay(date time.Time) time.Time {
	next := date.AddDate(0, 0, 1)
	for !s.calendar.IsWorkday(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
