package roster

import (
	"strings"
	"time"
)

type Period string

const (
	PeriodDay   Period = "day"
	PeriodNight Period = "night"
)

func ParsePeriod(s string) (Period, error) {
	switch Period(strings.ToLower(strings.TrimSpace(s))) {
	case PeriodDay:
		return PeriodDay, nil
	case PeriodNight:
		return PeriodNight, nil
	}
	return "", Validation("invalid period %q, expected day or night", s)
}

type Category string

const (
	CategoryDayNormal  Category = "day-normal"
	CategoryDayHoliday Category = "day-holiday"
	CategoryNight      Category = "night"
)

type DayType string

const (
	DayTypeNormal  DayType = "normal"
	DayTypeHoliday DayType = "holiday"
)

// ShiftCategory is a system-defined shift with its nominal hours.
type ShiftCategory struct {
	Code      Category `json:"code"`
	Name      string   `json:"name"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
	Period    Period   `json:"period"`
}

var shiftCategories = []ShiftCategory{
	{Code: CategoryDayNormal, Name: "Day duty (working day)", StartTime: "08:00", EndTime: "17:00", Period: PeriodDay},
	{Code: CategoryDayHoliday, Name: "Day duty (holiday)", StartTime: "08:00", EndTime: "20:00", Period: PeriodDay},
	{Code: CategoryNight, Name: "Night duty", StartTime: "20:00", EndTime: "08:00", Period: PeriodNight},
}

func Categories() []ShiftCategory {
	out := make([]ShiftCategory, len(shiftCategories))
	copy(out, shiftCategories)
	return out
}

func LookupCategory(code Category) (ShiftCategory, bool) {
	for _, c := range shiftCategories {
		if c.Code == code {
			return c, true
		}
	}
	return ShiftCategory{}, false
}

// IsNight reports whether the category belongs to the night period.
func (c Category) IsNight() bool {
	sc, ok := LookupCategory(c)
	return ok && sc.Period == PeriodNight
}

// HolidaySet holds configured holidays keyed by YYYY-MM-DD.
type HolidaySet map[string]struct{}

// NewHolidaySet builds a set from dates in any form ParseDate accepts.
// Unparseable entries are skipped.
func NewHolidaySet(dates ...string) HolidaySet {
	set := make(HolidaySet, len(dates))
	for _, d := range dates {
		if norm, err := NormalizeDate(d); err == nil {
			set[norm] = struct{}{}
		}
	}
	return set
}

func (h HolidaySet) Contains(day time.Time) bool {
	_, ok := h[day.Format(DateLayout)]
	return ok
}

func IsHoliday(day time.Time, holidays HolidaySet) bool {
	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	return holidays.Contains(day)
}

type Classification struct {
	Category Category `json:"shift_category"`
	DayType  DayType  `json:"day_type"`
}

// Classify maps a duty date and period to its shift category. Night duty has a
// single category whatever the day type.
func Classify(day time.Time, holidays HolidaySet, period Period) (Classification, error) {
	day = DayOf(day)
	dayType := DayTypeNormal
	if IsHoliday(day, holidays) {
		dayType = DayTypeHoliday
	}

	switch period {
	case PeriodDay:
		if dayType == DayTypeHoliday {
			return Classification{Category: CategoryDayHoliday, DayType: dayType}, nil
		}
		return Classification{Category: CategoryDayNormal, DayType: dayType}, nil
	case PeriodNight:
		return Classification{Category: CategoryNight, DayType: dayType}, nil
	}
	return Classification{}, Validation("invalid period %q, expected day or night", period)
}
