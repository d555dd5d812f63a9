package database

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"duty-roster-backend/internal/model"
	"duty-roster-backend/internal/roster"
)

type seedOfficer struct {
	PositionNumber string
	Name           string
	Rank           string
	UnitCode       string
}

type seedMember struct {
	PositionNumber string
	UnitCode       string
	Role           roster.Role
	SeniorityOrder int
}

var seedUnits = []model.Unit{
	{UnitCode: "OPS", UnitName: "Operations"},
	{UnitCode: "LOG", UnitName: "Logistics"},
	{UnitCode: "COM", UnitName: "Communications"},
}

var seedOfficers = []seedOfficer{
	{"100001", "Hendra Wijaya", "Commissioner", ""},
	{"200001", "Sari Lestari", "Inspector", "OPS"},
	{"200002", "Agus Pratama", "Sergeant", "OPS"},
	{"200003", "Rina Kurnia", "Constable", "OPS"},
	{"300001", "Dedi Saputra", "Inspector", "LOG"},
	{"300002", "Maya Anggraini", "Constable", "LOG"},
	{"400001", "Fajar Nugroho", "Inspector", "COM"},
	{"400002", "Lina Marlina", "Constable", "COM"},
	{"900001", "Yusuf Hakim", "Constable", ""},
}

var seedMembers = []seedMember{
	{"100001", "", roster.RoleDirector, 0},
	{"200001", "OPS", roster.RoleSupervisor, 1},
	{"200002", "OPS", roster.RoleMember, 2},
	{"200003", "OPS", roster.RoleMember, 3},
	{"300001", "LOG", roster.RoleSupervisor, 1},
	{"300002", "LOG", roster.RoleMember, 2},
	{"400001", "COM", roster.RoleSupervisor, 1},
	{"400002", "COM", roster.RoleMember, 2},
}

var seedHolidays = []model.Holiday{
	{Date: "2025-01-01", Description: "New Year's Day"},
	{Date: "2025-05-01", Description: "Labour Day"},
	{Date: "2025-05-29", Description: "Ascension Day"},
	{Date: "2025-08-17", Description: "Independence Day"},
	{Date: "2025-12-25", Description: "Christmas Day"},
}

// SeedAll is idempotent: rows are matched on their natural keys and existing
// memberships are left untouched.
func SeedAll(db *gorm.DB, logger *zap.Logger) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, u := range seedUnits {
			unit := u
			if err := tx.Where(model.Unit{UnitCode: u.UnitCode}).FirstOrCreate(&unit).Error; err != nil {
				return errors.Wrapf(err, "seed unit %s", u.UnitCode)
			}
		}

		for _, o := range seedOfficers {
			officer := model.Officer{PositionNumber: o.PositionNumber, Name: o.Name, Rank: o.Rank, IsActive: true}
			if o.UnitCode != "" {
				code := o.UnitCode
				officer.UnitCode = &code
			}
			if err := tx.Where(model.Officer{PositionNumber: o.PositionNumber}).FirstOrCreate(&officer).Error; err != nil {
				return errors.Wrapf(err, "seed officer %s", o.PositionNumber)
			}
		}

		var rows []model.UnitMembership
		if err := tx.Find(&rows).Error; err != nil {
			return errors.Wrap(err, "load memberships")
		}
		existing := make([]roster.Membership, 0, len(rows))
		seen := make(map[string]bool, len(rows))
		for _, r := range rows {
			existing = append(existing, r.ToRoster())
			seen[r.PositionNumber] = true
		}

		added := 0
		for _, m := range seedMembers {
			if seen[m.PositionNumber] {
				continue
			}
			candidate := roster.Membership{
				PositionNumber: m.PositionNumber,
				UnitCode:       m.UnitCode,
				Role:           m.Role,
				SeniorityOrder: m.SeniorityOrder,
			}.Normalize()
			if err := roster.CheckMembership(candidate, existing); err != nil {
				logger.Warn("skipping seed membership",
					zap.String("position_number", m.PositionNumber),
					zap.String("rule", string(roster.RuleOf(err))),
					zap.Error(err),
				)
				continue
			}
			var row model.UnitMembership
			row.ApplyRoster(candidate)
			if err := tx.Create(&row).Error; err != nil {
				return errors.Wrapf(err, "seed membership %s", m.PositionNumber)
			}
			candidate.ID = row.ID
			existing = append(existing, candidate)
			added++
		}

		for _, h := range seedHolidays {
			holiday := h
			if err := tx.Where(model.Holiday{Date: h.Date}).FirstOrCreate(&holiday).Error; err != nil {
				return errors.Wrapf(err, "seed holiday %s", h.Date)
			}
		}

		logger.Info("seed complete",
			zap.Int("units", len(seedUnits)),
			zap.Int("officers", len(seedOfficers)),
			zap.Int("memberships_added", added),
			zap.Int("holidays", len(seedHolidays)),
		)
		return nil
	})
}
