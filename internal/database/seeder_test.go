package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"duty-roster-backend/internal/database"
	"duty-roster-backend/internal/model"
	"duty-roster-backend/internal/testutil"
)

func TestSeedAll_Idempotent(t *testing.T) {
	db := testutil.NewDB(t)

	require.NoError(t, database.SeedAll(db, zap.NewNop()))
	require.NoError(t, database.SeedAll(db, zap.NewNop()))

	var units, officers, members, holidays int64
	require.NoError(t, db.Model(&model.Unit{}).Count(&units).Error)
	require.NoError(t, db.Model(&model.Officer{}).Count(&officers).Error)
	require.NoError(t, db.Model(&model.UnitMembership{}).Count(&members).Error)
	require.NoError(t, db.Model(&model.Holiday{}).Count(&holidays).Error)
	assert.EqualValues(t, 3, units)
	assert.EqualValues(t, 9, officers)
	assert.EqualValues(t, 8, members)
	assert.EqualValues(t, 5, holidays)

	var director model.UnitMembership
	require.NoError(t, db.Where("role = ?", "director").First(&director).Error)
	assert.Equal(t, "100001", director.PositionNumber)
	assert.Nil(t, director.UnitCode)
}
