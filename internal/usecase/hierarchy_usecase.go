package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"duty-roster-backend/internal/lock"
	"duty-roster-backend/internal/model"
	"duty-roster-backend/internal/repository"
	"duty-roster-backend/internal/roster"
)

type AddMemberInput struct {
	PositionNumber string
	UnitCode       string
	Role           string
	SeniorityOrder int
}

// MemberPatch carries the fields of a partial update. Nil means unchanged.
type MemberPatch struct {
	UnitCode       *string
	Role           *string
	SeniorityOrder *int
}

func (p MemberPatch) apply(m roster.Membership) (roster.Membership, error) {
	if p.Role != nil {
		role, err := roster.ParseRole(*p.Role)
		if err != nil {
			return m, err
		}
		m.Role = role
		// A promotion to supervisor without an explicit seniority lands on 1.
		if role == roster.RoleSupervisor && p.SeniorityOrder == nil {
			m.SeniorityOrder = 1
		}
	}
	if p.UnitCode != nil {
		m.UnitCode = *p.UnitCode
	}
	if p.SeniorityOrder != nil {
		m.SeniorityOrder = *p.SeniorityOrder
	}
	return m.Normalize(), nil
}

type HierarchyUsecase struct {
	members     repository.MembershipRepository
	officers    repository.OfficerRepository
	units       repository.UnitRepository
	locker      lock.Locker
	lockTimeout time.Duration
	logger      *zap.Logger
}

func NewHierarchyUsecase(
	members repository.MembershipRepository,
	officers repository.OfficerRepository,
	units repository.UnitRepository,
	locker lock.Locker,
	lockTimeout time.Duration,
	logger *zap.Logger,
) *HierarchyUsecase {
	return &HierarchyUsecase{
		members:     members,
		officers:    officers,
		units:       units,
		locker:      locker,
		lockTimeout: lockTimeout,
		logger:      logger.Named("hierarchy"),
	}
}

// scopeKeys names the critical sections a change to ms touches: the director
// slot, each unit and each officer.
func scopeKeys(ms ...roster.Membership) []string {
	var keys []string
	for _, m := range ms {
		if m.Role == roster.RoleDirector {
			keys = append(keys, "director")
		}
		if m.UnitCode != "" {
			keys = append(keys, "unit:"+m.UnitCode)
		}
		if m.PositionNumber != "" {
			keys = append(keys, "officer:"+m.PositionNumber)
		}
	}
	return keys
}

func (u *HierarchyUsecase) acquire(ctx context.Context, keys []string) (lock.Release, error) {
	lctx, cancel := context.WithTimeout(ctx, u.lockTimeout)
	defer cancel()
	release, err := u.locker.Acquire(lctx, keys...)
	if err != nil {
		if errors.Is(err, lock.ErrTimeout) {
			return nil, roster.Conflict(err, "another change to %s is in progress, retry", strings.Join(keys, ", "))
		}
		return nil, err
	}
	return release, nil
}

func (u *HierarchyUsecase) logFailure(op string, m roster.Membership, err error) {
	fields := []zap.Field{
		zap.String("op", op),
		zap.String("kind", string(roster.KindOf(err))),
		zap.String("position_number", m.PositionNumber),
		zap.String("unit_code", m.UnitCode),
		zap.Error(err),
	}
	switch roster.KindOf(err) {
	case roster.KindValidation, roster.KindConstraint, roster.KindNotFound, roster.KindConflict:
		fields = append(fields, zap.String("rule", string(roster.RuleOf(err))))
		u.logger.Info("membership change rejected", fields...)
	default:
		u.logger.Error("membership change failed", fields...)
	}
}

func (u *HierarchyUsecase) checkReferences(ctx context.Context, m roster.Membership) error {
	if _, err := u.officers.FindByPositionNumber(ctx, m.PositionNumber); err != nil {
		return err
	}
	if m.UnitCode == "" {
		return nil
	}
	ok, err := u.units.Exists(ctx, m.UnitCode)
	if err != nil {
		return err
	}
	if !ok {
		return roster.Validation("unknown unit_code %s", m.UnitCode)
	}
	return nil
}

func (u *HierarchyUsecase) AddMember(ctx context.Context, in AddMemberInput) (*model.UnitMembership, error) {
	role, err := roster.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}
	candidate := roster.Membership{
		PositionNumber: in.PositionNumber,
		UnitCode:       in.UnitCode,
		Role:           role,
		SeniorityOrder: in.SeniorityOrder,
	}.Normalize()

	row, err := u.addMember(ctx, candidate)
	if err != nil {
		u.logFailure("add", candidate, err)
		return nil, err
	}
	u.logger.Info("membership added",
		zap.Uint("id", row.ID),
		zap.String("position_number", row.PositionNumber),
		zap.String("role", row.Role))
	return row, nil
}

func (u *HierarchyUsecase) addMember(ctx context.Context, candidate roster.Membership) (*model.UnitMembership, error) {
	if candidate.PositionNumber == "" {
		return nil, roster.Validation("position_number is required")
	}
	if candidate.Role != roster.RoleDirector && candidate.UnitCode == "" {
		return nil, roster.Validation("unit_code is required for role %s", candidate.Role)
	}
	if err := u.checkReferences(ctx, candidate); err != nil {
		return nil, err
	}

	release, err := u.acquire(ctx, scopeKeys(candidate))
	if err != nil {
		return nil, err
	}
	defer release()

	// A member without a seniority takes the next free one in the unit.
	if candidate.Role == roster.RoleMember && candidate.SeniorityOrder == 0 {
		all, err := u.members.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		candidate.SeniorityOrder = roster.NextSeniority(candidate.UnitCode, 0, all)
	}
	return u.members.Create(ctx, candidate)
}

func (u *HierarchyUsecase) UpdateMember(ctx context.Context, id uint, patch MemberPatch) (*model.UnitMembership, error) {
	current, err := u.members.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := current.ToRoster()

	next, err := patch.apply(before)
	if err != nil {
		u.logFailure("update", before, err)
		return nil, err
	}
	if next.UnitCode != before.UnitCode {
		if err := u.checkReferences(ctx, next); err != nil {
			u.logFailure("update", next, err)
			return nil, err
		}
	}

	release, err := u.acquire(ctx, scopeKeys(before, next))
	if err != nil {
		u.logFailure("update", next, err)
		return nil, err
	}
	defer release()

	row, err := u.members.Update(ctx, id, func(cur roster.Membership) (roster.Membership, error) {
		// The scope was chosen from the row as read before locking.
		if cur.UnitCode != before.UnitCode || cur.Role != before.Role {
			return cur, roster.Conflict(nil, "membership %d changed while waiting, retry", id)
		}
		return patch.apply(cur)
	})
	if err != nil {
		u.logFailure("update", next, err)
		return nil, err
	}
	u.logger.Info("membership updated", zap.Uint("id", id), zap.String("position_number", row.PositionNumber))
	return row, nil
}

func (u *HierarchyUsecase) RemoveMember(ctx context.Context, id uint) error {
	current, err := u.members.GetByID(ctx, id)
	if err != nil {
		return err
	}
	m := current.ToRoster()

	release, err := u.acquire(ctx, scopeKeys(m))
	if err != nil {
		return err
	}
	defer release()

	if err := u.members.Delete(ctx, id); err != nil {
		u.logFailure("remove", m, err)
		return err
	}
	u.logger.Info("membership removed", zap.Uint("id", id), zap.String("position_number", m.PositionNumber))
	return nil
}

func (u *HierarchyUsecase) ListMembers(ctx context.Context, filter repository.MembershipFilter) ([]roster.Membership, error) {
	rows, err := u.members.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]roster.Membership, len(rows))
	for i, row := range rows {
		out[i] = row.ToRoster()
	}
	roster.SortMemberships(out)
	return out, nil
}

func (u *HierarchyUsecase) GetHierarchy(ctx context.Context) (roster.Hierarchy, error) {
	all, err := u.members.Snapshot(ctx)
	if err != nil {
		return roster.Hierarchy{}, err
	}
	names, err := u.units.Names(ctx)
	if err != nil {
		return roster.Hierarchy{}, err
	}
	return roster.BuildHierarchy(all, names), nil
}

func (u *HierarchyUsecase) CheckRoleAvailability(ctx context.Context, role, unitCode string, excludingID uint) (roster.Availability, error) {
	r, err := roster.ParseRole(role)
	if err != nil {
		return roster.Availability{}, err
	}
	if r != roster.RoleDirector && strings.TrimSpace(unitCode) == "" {
		return roster.Availability{}, roster.Validation("unit_code is required for role %s", r)
	}
	all, err := u.members.Snapshot(ctx)
	if err != nil {
		return roster.Availability{}, err
	}
	return roster.CheckRoleAvailability(r, unitCode, excludingID, all), nil
}
