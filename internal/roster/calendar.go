package roster

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// AssignmentRow is one persisted duty assignment joined with the officer and
// unit names used for display.
type AssignmentRow struct {
	ScheduleID     uint
	DutyDate       string
	HeadUnitCode   string
	Category       Category
	DayType        DayType
	PositionNumber string
	OfficerName    string
	UnitCode       string
	UnitName       string
}

type CalendarFilter struct {
	UnitCode string
	Name     string
}

func (f CalendarFilter) match(r AssignmentRow) bool {
	if f.UnitCode != "" && r.UnitCode != f.UnitCode {
		return false
	}
	if f.Name != "" && !strings.Contains(strings.ToLower(r.OfficerName), strings.ToLower(f.Name)) {
		return false
	}
	return true
}

type CalendarOfficer struct {
	ScheduleID     uint   `json:"schedule_id"`
	PositionNumber string `json:"position_number"`
	Name           string `json:"name"`
	UnitCode       string `json:"unit_code"`
	UnitName       string `json:"unit_name"`
}

type ShiftGroup struct {
	Category Category          `json:"shift_category"`
	Name     string            `json:"name"`
	DayType  DayType           `json:"day_type"`
	Officers []CalendarOfficer `json:"officers"`
}

type CalendarDay struct {
	Date       string       `json:"date"`
	DayCount   int          `json:"day_count"`
	NightCount int          `json:"night_count"`
	Units      []string     `json:"units"`
	Shifts     []ShiftGroup `json:"shifts"`
}

func categoryRank(c Category) int {
	for i, sc := range shiftCategories {
		if sc.Code == c {
			return i
		}
	}
	return len(shiftCategories)
}

// BuildCalendar groups rows by calendar date and shift category. Dates may be
// bare or timestamped; both collapse onto the same day. Rows failing the filter
// are dropped before grouping.
func BuildCalendar(rows []AssignmentRow, filter CalendarFilter) ([]CalendarDay, error) {
	col := collate.New(language.Und, collate.IgnoreCase)

	type dayAcc struct {
		day    CalendarDay
		groups map[Category]*ShiftGroup
		units  map[string]bool
	}
	days := map[string]*dayAcc{}

	for _, r := range rows {
		if !filter.match(r) {
			continue
		}
		date, err := NormalizeDate(r.DutyDate)
		if err != nil {
			return nil, err
		}
		acc, ok := days[date]
		if !ok {
			acc = &dayAcc{
				day:    CalendarDay{Date: date},
				groups: map[Category]*ShiftGroup{},
				units:  map[string]bool{},
			}
			days[date] = acc
		}

		g, ok := acc.groups[r.Category]
		if !ok {
			name := string(r.Category)
			if sc, found := LookupCategory(r.Category); found {
				name = sc.Name
			}
			g = &ShiftGroup{Category: r.Category, Name: name, DayType: r.DayType}
			acc.groups[r.Category] = g
		}
		unitName := r.UnitName
		if unitName == "" {
			unitName = r.UnitCode
		}
		g.Officers = append(g.Officers, CalendarOfficer{
			ScheduleID:     r.ScheduleID,
			PositionNumber: r.PositionNumber,
			Name:           r.OfficerName,
			UnitCode:       r.UnitCode,
			UnitName:       unitName,
		})

		if r.Category.IsNight() {
			acc.day.NightCount++
		} else {
			acc.day.DayCount++
		}
		if unitName != "" && !acc.units[unitName] {
			acc.units[unitName] = true
			acc.day.Units = append(acc.day.Units, unitName)
		}
	}

	out := make([]CalendarDay, 0, len(days))
	for _, acc := range days {
		for _, g := range acc.groups {
			sort.SliceStable(g.Officers, func(i, j int) bool {
				if c := col.CompareString(g.Officers[i].Name, g.Officers[j].Name); c != 0 {
					return c < 0
				}
				return g.Officers[i].PositionNumber < g.Officers[j].PositionNumber
			})
			acc.day.Shifts = append(acc.day.Shifts, *g)
		}
		sort.Slice(acc.day.Shifts, func(i, j int) bool {
			return categoryRank(acc.day.Shifts[i].Category) < categoryRank(acc.day.Shifts[j].Category)
		})
		col.SortStrings(acc.day.Units)
		if acc.day.Units == nil {
			acc.day.Units = []string{}
		}
		out = append(out, acc.day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}
