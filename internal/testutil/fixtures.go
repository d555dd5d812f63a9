package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"duty-roster-backend/internal/model"
)

func AddUnit(t *testing.T, db *gorm.DB, code, name string) model.Unit {
	t.Helper()
	u := model.Unit{UnitCode: code, UnitName: name}
	require.NoError(t, db.Create(&u).Error)
	return u
}

// AddOfficer registers a directory entry. An empty unitCode leaves the officer
// unaffiliated.
func AddOfficer(t *testing.T, db *gorm.DB, positionNumber, name, unitCode string) model.Officer {
	t.Helper()
	o := model.Officer{PositionNumber: positionNumber, Name: name, IsActive: true}
	if unitCode != "" {
		o.UnitCode = &unitCode
	}
	require.NoError(t, db.Create(&o).Error)
	return o
}

func AddHoliday(t *testing.T, db *gorm.DB, date, description string) model.Holiday {
	t.Helper()
	h := model.Holiday{Date: date, Description: description}
	require.NoError(t, db.Create(&h).Error)
	return h
}
