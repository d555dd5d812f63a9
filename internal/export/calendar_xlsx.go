// Package export renders calendar views as spreadsheets.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"duty-roster-backend/internal/roster"
)

const (
	AssignmentSheet = "Duty Calendar"
	SummarySheet    = "Summary"
)

var AssignmentHeader = []string{"Date", "Shift", "Day Type", "Position Number", "Officer", "Unit"}

var SummaryHeader = []string{"Date", "Day Duty", "Night Duty", "Units"}

// CalendarWorkbook writes one row per officer per shift, plus a per-date
// summary sheet.
func CalendarWorkbook(days []roster.CalendarDay) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(AssignmentSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeRow(f, AssignmentSheet, 1, toAny(AssignmentHeader), headerStyle); err != nil {
		return nil, err
	}
	if err := writeRow(f, SummarySheet, 1, toAny(SummaryHeader), headerStyle); err != nil {
		return nil, err
	}

	row := 2
	for _, day := range days {
		for _, shift := range day.Shifts {
			for _, o := range shift.Officers {
				values := []any{day.Date, shift.Name, string(shift.DayType), o.PositionNumber, o.Name, o.UnitName}
				if err := writeRow(f, AssignmentSheet, row, values, 0); err != nil {
					return nil, err
				}
				row++
			}
		}
	}
	for i, day := range days {
		values := []any{day.Date, day.DayCount, day.NightCount, strings.Join(day.Units, ", ")}
		if err := writeRow(f, SummarySheet, i+2, values, 0); err != nil {
			return nil, err
		}
	}

	for sheet, widths := range map[string][]float64{
		AssignmentSheet: {12, 24, 10, 18, 30, 24},
		SummarySheet:    {12, 10, 10, 48},
	} {
		for i, w := range widths {
			col, err := excelize.ColumnNumberToName(i + 1)
			if err != nil {
				return nil, fmt.Errorf("failed to convert column number: %w", err)
			}
			if err := f.SetColWidth(sheet, col, col, w); err != nil {
				return nil, fmt.Errorf("failed to set column width: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any, style int) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", row, sheet, err)
	}
	if style == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(values), row)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	return f.SetCellStyle(sheet, cell, last, style)
}

func toAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
