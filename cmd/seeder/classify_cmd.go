package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"duty-roster-backend/internal/repository"
	"duty-roster-backend/internal/roster"
	"duty-roster-backend/internal/usecase"
)

type classifyOutput struct {
	Date     string `json:"date"`
	Period   string `json:"period"`
	Category string `json:"shift_category"`
	DayType  string `json:"day_type"`
	Name     string `json:"name,omitempty"`
	Hours    string `json:"hours,omitempty"`
}

func newClassifyCmd(a *app) *cobra.Command {
	var (
		date     string
		period   string
		offline  bool
		holidays []string
	)

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Print the shift category of a duty date and period",
		RunE: func(cmd *cobra.Command, args []string) error {
			if offline {
				day, err := roster.ParseDate(date)
				if err != nil {
					return err
				}
				p, err := roster.ParsePeriod(period)
				if err != nil {
					return err
				}
				c, err := roster.Classify(day, roster.NewHolidaySet(holidays...), p)
				if err != nil {
					return err
				}
				return writeClassification(cmd.OutOrStdout(), day.Format(roster.DateLayout), p, c)
			}

			db, closeDB, err := a.connect()
			if err != nil {
				return err
			}
			defer closeDB()

			duty := usecase.NewDutyUsecase(
				repository.NewDutyRepository(db),
				repository.NewMembershipRepository(db),
				repository.NewOfficerRepository(db),
				repository.NewHolidayRepository(db),
				a.logger,
			)
			day, p, c, err := duty.Classify(cmd.Context(), date, period)
			if err != nil {
				return err
			}
			return writeClassification(cmd.OutOrStdout(), day.Format(roster.DateLayout), p, c)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Duty date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&period, "period", string(roster.PeriodDay), "day or night")
	cmd.Flags().BoolVar(&offline, "offline", false, "Skip the database and use --holiday dates only")
	cmd.Flags().StringSliceVar(&holidays, "holiday", nil, "Extra holiday date for --offline (repeatable)")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func writeClassification(w io.Writer, date string, p roster.Period, c roster.Classification) error {
	out := classifyOutput{
		Date:     date,
		Period:   string(p),
		Category: string(c.Category),
		DayType:  string(c.DayType),
	}
	if sc, ok := roster.LookupCategory(c.Category); ok {
		out.Name = sc.Name
		out.Hours = sc.StartTime + "-" + sc.EndTime
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
