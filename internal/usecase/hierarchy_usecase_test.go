package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"duty-roster-backend/internal/lock"
	"duty-roster-backend/internal/repository"
	"duty-roster-backend/internal/roster"
	"duty-roster-backend/internal/testutil"
)

func setupHierarchy(t *testing.T, locker lock.Locker) (*gorm.DB, *HierarchyUsecase) {
	db := testutil.NewDB(t)
	testutil.AddUnit(t, db, "U1", "Operations")
	testutil.AddUnit(t, db, "U2", "Logistics")
	for i := 1; i <= 2; i++ {
		testutil.AddOfficer(t, db, fmt.Sprintf("P100%d", i), fmt.Sprintf("Director candidate %d", i), "")
	}
	for i := 1; i <= 9; i++ {
		testutil.AddOfficer(t, db, fmt.Sprintf("P200%d", i), fmt.Sprintf("Officer %d", i), "U1")
	}
	uc := NewHierarchyUsecase(
		repository.NewMembershipRepository(db),
		repository.NewOfficerRepository(db),
		repository.NewUnitRepository(db),
		locker,
		5*time.Second,
		zap.NewNop(),
	)
	return db, uc
}

func TestHierarchyUsecase_DirectorScenario(t *testing.T) {
	_, uc := setupHierarchy(t, lock.NewMemoryLocker())
	ctx := context.Background()

	_, err := uc.AddMember(ctx, AddMemberInput{PositionNumber: "P1001", Role: "director", UnitCode: "U1"})
	require.NoError(t, err)

	_, err = uc.AddMember(ctx, AddMemberInput{PositionNumber: "P1002", Role: "director"})
	require.ErrorIs(t, err, roster.ErrConstraint)
	assert.Equal(t, roster.RuleDuplicateDirector, roster.RuleOf(err))

	h, err := uc.GetHierarchy(ctx)
	require.NoError(t, err)
	require.NotNil(t, h.Director)
	assert.Equal(t, "P1001", h.Director.PositionNumber)
	assert.Empty(t, h.Director.UnitCode)
}

func TestHierarchyUsecase_SupervisorScenario(t *testing.T) {
	_, uc := setupHierarchy(t, lock.NewMemoryLocker())
	ctx := context.Background()

	sup, err := uc.AddMember(ctx, AddMemberInput{PositionNumber: "P2001", UnitCode: "U1", Role: "supervisor"})
	require.NoError(t, err)
	assert.Equal(t, 1, sup.SeniorityOrder)

	_, err = uc.AddMember(ctx, AddMemberInput{PositionNumber: "P2002", UnitCode: "U1", Role: "supervisor", SeniorityOrder: 1})
	assert.Equal(t, roster.RuleDuplicateSupervisor, roster.RuleOf(err))

	// Seniority omitted for a member picks the next free slot above the supervisor.
	m, err := uc.AddMember(ctx, AddMemberInput{PositionNumber: "P2002", UnitCode: "U1", Role: "member"})
	require.NoError(t, err)
	assert.Equal(t, 2, m.SeniorityOrder)

	_, err = uc.AddMember(ctx, AddMemberInput{PositionNumber: "P2003", UnitCode: "U1", Role: "member", SeniorityOrder: 2})
	assert.Equal(t, roster.RuleDuplicateSeniority, roster.RuleOf(err))

	avail, err := uc.CheckRoleAvailability(ctx, "supervisor", "U1", 0)
	require.NoError(t, err)
	assert.False(t, avail.Available)
	assert.Equal(t, roster.RuleDuplicateSupervisor, avail.Rule)
	assert.Equal(t, 3, avail.NextSeniority)

	avail, err = uc.CheckRoleAvailability(ctx, "supervisor", "U1", sup.ID)
	require.NoError(t, err)
	assert.True(t, avail.Available)

	_, err = uc.CheckRoleAvailability(ctx, "member", "", 0)
	require.ErrorIs(t, err, roster.ErrValidation)
}

func TestHierarchyUsecase_DefaultMemberLeavesSupervisorSlot(t *testing.T) {
	_, uc := setupHierarchy(t, lock.NewMemoryLocker())
	ctx := context.Background()

	m, err := uc.AddMember(ctx, AddMemberInput{PositionNumber: "P2001", UnitCode: "U1", Role: "member"})
	require.NoError(t, err)
	assert.Equal(t, 2, m.SeniorityOrder)

	sup, err := uc.AddMember(ctx, AddMemberInput{PositionNumber: "P2002", UnitCode: "U1", Role: "supervisor"})
	require.NoError(t, err)
	assert.Equal(t, 1, sup.SeniorityOrder)

	next, err := uc.AddMember(ctx, AddMemberInput{PositionNumber: "P2003", UnitCode: "U1", Role: "member"})
	require.NoError(t, err)
	assert.Equal(t, 3, next.SeniorityOrder)
}

func TestHierarchyUsecase_ReferenceChecks(t *testing.T) {
	_, uc := setupHierarchy(t, lock.NewMemoryLocker())
	ctx := context.Background()

	_, err := uc.AddMember(ctx, AddMemberInput{PositionNumber: "P9999", UnitCode: "U1", Role: "member", SeniorityOrder: 2})
	require.ErrorIs(t, err, roster.ErrNotFound)

	_, err = uc.AddMember(ctx, AddMemberInput{PositionNumber: "P2001", UnitCode: "U9", Role: "member", SeniorityOrder: 2})
	require.ErrorIs(t, err, roster.ErrValidation)

	_, err = uc.AddMember(ctx, AddMemberInput{PositionNumber: "P2001", UnitCode: "U1", Role: "captain"})
	require.ErrorIs(t, err, roster.ErrValidation)

	_, err = uc.AddMember(ctx, AddMemberInput{PositionNumber: "P2001", Role: "member"})
	require.ErrorIs(t, err, roster.ErrValidation)
}

func TestHierarchyUsecase_UpdateAndRemove(t *testing.T) {
	_, uc := setupHierarchy(t, lock.NewMemoryLocker())
	ctx := context.Background()

	_, err := uc.AddMember(ctx, AddMemberInput{PositionNumber: "P2001", UnitCode: "U1", Role: "supervisor"})
	require.NoError(t, err)
	m, err := uc.AddMember(ctx, AddMemberInput{PositionNumber: "P2002", UnitCode: "U1", Role: "member", SeniorityOrder: 4})
	require.NoError(t, err)

	role := "supervisor"
	_, err = uc.UpdateMember(ctx, m.ID, MemberPatch{Role: &role})
	assert.Equal(t, roster.RuleDuplicateSupervisor, roster.RuleOf(err))

	// Promotion in another unit forces seniority 1.
	unit := "U2"
	promoted, err := uc.UpdateMember(ctx, m.ID, MemberPatch{Role: &role, UnitCode: &unit})
	require.NoError(t, err)
	assert.Equal(t, 1, promoted.SeniorityOrder)
	require.NotNil(t, promoted.UnitCode)
	assert.Equal(t, "U2", *promoted.UnitCode)

	seniority := 3
	_, err = uc.UpdateMember(ctx, m.ID, MemberPatch{SeniorityOrder: &seniority})
	assert.Equal(t, roster.RuleInvalidSupervisorSeniority, roster.RuleOf(err))

	members, err := uc.ListMembers(ctx, repository.MembershipFilter{})
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "U1", members[0].UnitCode)

	require.NoError(t, uc.RemoveMember(ctx, m.ID))
	require.ErrorIs(t, uc.RemoveMember(ctx, m.ID), roster.ErrNotFound)
	_, err = uc.UpdateMember(ctx, m.ID, MemberPatch{SeniorityOrder: &seniority})
	require.ErrorIs(t, err, roster.ErrNotFound)
}

func TestHierarchyUsecase_ConcurrentSupervisorAdds(t *testing.T) {
	_, uc := setupHierarchy(t, lock.NewMemoryLocker())
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.AddMember(ctx, AddMemberInput{
				PositionNumber: fmt.Sprintf("P200%d", i+1),
				UnitCode:       "U1",
				Role:           "supervisor",
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.Equal(t, roster.RuleDuplicateSupervisor, roster.RuleOf(err))
	}
	assert.Equal(t, 1, succeeded)

	supervisors, err := uc.ListMembers(ctx, repository.MembershipFilter{Role: roster.RoleSupervisor})
	require.NoError(t, err)
	assert.Len(t, supervisors, 1)
}

func TestHierarchyUsecase_LockTimeoutIsConflict(t *testing.T) {
	locker := lock.NewMemoryLocker()
	_, uc := setupHierarchy(t, locker)
	uc.lockTimeout = 20 * time.Millisecond

	release, err := locker.Acquire(context.Background(), "unit:U1")
	require.NoError(t, err)
	defer release()

	_, err = uc.AddMember(context.Background(), AddMemberInput{PositionNumber: "P2001", UnitCode: "U1", Role: "supervisor"})
	require.ErrorIs(t, err, roster.ErrConflict)
}
