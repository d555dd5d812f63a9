package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duty-roster-backend/internal/roster"
	"duty-roster-backend/internal/testutil"
)

func setupMembershipRepo(t *testing.T) MembershipRepository {
	db := testutil.NewDB(t)
	testutil.AddUnit(t, db, "U1", "Operations")
	testutil.AddUnit(t, db, "U2", "Logistics")
	for _, o := range [][2]string{
		{"P1001", "Ayu"}, {"P1002", "Bima"}, {"P2001", "Citra"},
		{"P2002", "Dewi"}, {"P2003", "Eko"}, {"P3001", "Fajar"},
	} {
		testutil.AddOfficer(t, db, o[0], o[1], "")
	}
	return NewMembershipRepository(db)
}

func TestMembershipRepository_DirectorIsUnique(t *testing.T) {
	repo := setupMembershipRepo(t)
	ctx := context.Background()

	row, err := repo.Create(ctx, roster.Membership{PositionNumber: "P1001", Role: roster.RoleDirector}.Normalize())
	require.NoError(t, err)
	assert.Nil(t, row.UnitCode)
	assert.Equal(t, 1, row.SeniorityOrder)
	require.NotNil(t, row.Officer)
	assert.Equal(t, "Ayu", row.Officer.Name)

	_, err = repo.Create(ctx, roster.Membership{PositionNumber: "P1002", Role: roster.RoleDirector}.Normalize())
	require.ErrorIs(t, err, roster.ErrConstraint)
	assert.Equal(t, roster.RuleDuplicateDirector, roster.RuleOf(err))

	all, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMembershipRepository_SupervisorRules(t *testing.T) {
	repo := setupMembershipRepo(t)
	ctx := context.Background()

	sup, err := repo.Create(ctx, roster.Membership{PositionNumber: "P2001", UnitCode: "U1", Role: roster.RoleSupervisor}.Normalize())
	require.NoError(t, err)
	assert.Equal(t, 1, sup.SeniorityOrder)

	_, err = repo.Create(ctx, roster.Membership{PositionNumber: "P2002", UnitCode: "U1", Role: roster.RoleSupervisor}.Normalize())
	assert.Equal(t, roster.RuleDuplicateSupervisor, roster.RuleOf(err))

	_, err = repo.Create(ctx, roster.Membership{PositionNumber: "P2002", UnitCode: "U1", Role: roster.RoleMember, SeniorityOrder: 1})
	assert.Equal(t, roster.RuleDuplicateSeniority, roster.RuleOf(err))

	_, err = repo.Create(ctx, roster.Membership{PositionNumber: "P2002", UnitCode: "U2", Role: roster.RoleSupervisor, SeniorityOrder: 2})
	assert.Equal(t, roster.RuleInvalidSupervisorSeniority, roster.RuleOf(err))

	_, err = repo.Create(ctx, roster.Membership{PositionNumber: "P2001", UnitCode: "U2", Role: roster.RoleMember, SeniorityOrder: 2})
	assert.Equal(t, roster.RuleOfficerAlreadyAssigned, roster.RuleOf(err))

	_, err = repo.Create(ctx, roster.Membership{PositionNumber: "P2002", UnitCode: "U1", Role: roster.RoleMember, SeniorityOrder: 2})
	require.NoError(t, err)
}

func TestMembershipRepository_UpdateExcludesItself(t *testing.T) {
	repo := setupMembershipRepo(t)
	ctx := context.Background()

	sup, err := repo.Create(ctx, roster.Membership{PositionNumber: "P2001", UnitCode: "U1", Role: roster.RoleSupervisor}.Normalize())
	require.NoError(t, err)
	member, err := repo.Create(ctx, roster.Membership{PositionNumber: "P2002", UnitCode: "U1", Role: roster.RoleMember, SeniorityOrder: 2})
	require.NoError(t, err)

	// Re-saving the supervisor unchanged must not trip over its own row.
	_, err = repo.Update(ctx, sup.ID, func(cur roster.Membership) (roster.Membership, error) { return cur, nil })
	require.NoError(t, err)

	_, err = repo.Update(ctx, member.ID, func(cur roster.Membership) (roster.Membership, error) {
		cur.SeniorityOrder = 1
		return cur, nil
	})
	assert.Equal(t, roster.RuleDuplicateSeniority, roster.RuleOf(err))

	moved, err := repo.Update(ctx, member.ID, func(cur roster.Membership) (roster.Membership, error) {
		cur.UnitCode = "U2"
		cur.Role = roster.RoleSupervisor
		cur.SeniorityOrder = 1
		return cur, nil
	})
	require.NoError(t, err)
	require.NotNil(t, moved.UnitCode)
	assert.Equal(t, "U2", *moved.UnitCode)
	assert.Equal(t, string(roster.RoleSupervisor), moved.Role)

	_, err = repo.Update(ctx, 999, func(cur roster.Membership) (roster.Membership, error) { return cur, nil })
	require.ErrorIs(t, err, roster.ErrNotFound)
}

func TestMembershipRepository_DeleteAndList(t *testing.T) {
	repo := setupMembershipRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, roster.Membership{PositionNumber: "P2001", UnitCode: "U1", Role: roster.RoleSupervisor}.Normalize())
	require.NoError(t, err)
	m, err := repo.Create(ctx, roster.Membership{PositionNumber: "P2002", UnitCode: "U1", Role: roster.RoleMember, SeniorityOrder: 2})
	require.NoError(t, err)
	_, err = repo.Create(ctx, roster.Membership{PositionNumber: "P3001", UnitCode: "U2", Role: roster.RoleMember, SeniorityOrder: 1})
	require.NoError(t, err)

	rows, err := repo.List(ctx, MembershipFilter{UnitCode: "U1"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "P2001", rows[0].PositionNumber)

	rows, err = repo.List(ctx, MembershipFilter{Search: "faj"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "P3001", rows[0].PositionNumber)

	rows, err = repo.GetByUnits(ctx, []string{"U1", "U2"})
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	require.NoError(t, repo.Delete(ctx, m.ID))
	require.ErrorIs(t, repo.Delete(ctx, m.ID), roster.ErrNotFound)

	// The freed seniority is usable again.
	_, err = repo.Create(ctx, roster.Membership{PositionNumber: "P2003", UnitCode: "U1", Role: roster.RoleMember, SeniorityOrder: 2})
	require.NoError(t, err)
}
