package repository

import (
	"context"

	"gorm.io/gorm"

	"duty-roster-backend/internal/model"
	"duty-roster-backend/internal/roster"
)

type MembershipFilter struct {
	UnitCode string
	Role     roster.Role
	Search   string
}

// MembershipRepository owns unit_membership. Create and Update run the
// hierarchy rules inside the same transaction as the write.
type MembershipRepository interface {
	Create(ctx context.Context, m roster.Membership) (*model.UnitMembership, error)
	Update(ctx context.Context, id uint, mutate func(current roster.Membership) (roster.Membership, error)) (*model.UnitMembership, error)
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*model.UnitMembership, error)
	List(ctx context.Context, filter MembershipFilter) ([]model.UnitMembership, error)
	GetByUnits(ctx context.Context, unitCodes []string) ([]model.UnitMembership, error)
	Snapshot(ctx context.Context) ([]roster.Membership, error)
}

type membershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db}
}

// scope loads every row that can collide with one of the given memberships:
// same officer, the director, or same unit.
func (r *membershipRepository) scope(tx *gorm.DB, ms ...roster.Membership) ([]roster.Membership, error) {
	positions := []string{}
	units := []string{}
	for _, m := range ms {
		positions = append(positions, m.PositionNumber)
		if m.UnitCode != "" {
			units = append(units, m.UnitCode)
		}
	}

	q := forUpdate(tx).Model(&model.UnitMembership{}).
		Where("position_number IN ?", positions).
		Or("role = ?", string(roster.RoleDirector))
	if len(units) > 0 {
		q = q.Or("unit_code IN ?", units)
	}

	var rows []model.UnitMembership
	if err := q.Find(&rows).Error; err != nil {
		return nil, translate(err, "load membership scope")
	}
	out := make([]roster.Membership, len(rows))
	for i, row := range rows {
		out[i] = row.ToRoster()
	}
	return out, nil
}

func (r *membershipRepository) Create(ctx context.Context, m roster.Membership) (*model.UnitMembership, error) {
	m.ID = 0
	var row model.UnitMembership
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := r.scope(tx, m)
		if err != nil {
			return err
		}
		if err := roster.CheckMembership(m, existing); err != nil {
			return err
		}
		row.ApplyRoster(m)
		return translate(tx.Create(&row).Error, "create membership")
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, row.ID)
}

func (r *membershipRepository) Update(ctx context.Context, id uint, mutate func(current roster.Membership) (roster.Membership, error)) (*model.UnitMembership, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row model.UnitMembership
		if err := forUpdate(tx).First(&row, id).Error; err != nil {
			return translate(err, "load membership")
		}
		current := row.ToRoster()

		next, err := mutate(current)
		if err != nil {
			return err
		}
		next.ID = row.ID

		existing, err := r.scope(tx, current, next)
		if err != nil {
			return err
		}
		if err := roster.CheckMembership(next, existing); err != nil {
			return err
		}

		row.ApplyRoster(next)
		return translate(tx.Model(&row).
			Select("position_number", "unit_code", "role", "seniority_order", "updated_at").
			Updates(&row).Error, "update membership")
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *membershipRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.UnitMembership{}, id)
	if res.Error != nil {
		return translate(res.Error, "delete membership")
	}
	if res.RowsAffected == 0 {
		return roster.NotFound("membership %d not found", id)
	}
	return nil
}

func (r *membershipRepository) GetByID(ctx context.Context, id uint) (*model.UnitMembership, error) {
	var row model.UnitMembership
	err := r.db.WithContext(ctx).Preload("Officer").First(&row, id).Error
	if err != nil {
		return nil, translate(err, "membership")
	}
	return &row, nil
}

func (r *membershipRepository) List(ctx context.Context, filter MembershipFilter) ([]model.UnitMembership, error) {
	var rows []model.UnitMembership
	query := r.db.WithContext(ctx).Preload("Officer")

	if filter.UnitCode != "" {
		query = query.Where("unit_membership.unit_code = ?", filter.UnitCode)
	}
	if filter.Role != "" {
		query = query.Where("unit_membership.role = ?", string(filter.Role))
	}
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Joins("LEFT JOIN officers ON officers.position_number = unit_membership.position_number").
			Where("officers.name LIKE ? OR unit_membership.position_number LIKE ?", searchPattern, searchPattern)
	}

	err := query.Order("unit_membership.unit_code asc").Order("unit_membership.seniority_order asc").Find(&rows).Error
	return rows, translate(err, "list memberships")
}

// GetByUnits returns the memberships of the given units, which seed the
// automatic part of a duty roster.
func (r *membershipRepository) GetByUnits(ctx context.Context, unitCodes []string) ([]model.UnitMembership, error) {
	var rows []model.UnitMembership
	if len(unitCodes) == 0 {
		return rows, nil
	}
	err := r.db.WithContext(ctx).Preload("Officer").
		Where("unit_code IN ?", unitCodes).
		Order("unit_code asc").Order("seniority_order asc").
		Find(&rows).Error
	return rows, translate(err, "memberships by unit")
}

func (r *membershipRepository) Snapshot(ctx context.Context) ([]roster.Membership, error) {
	var rows []model.UnitMembership
	if err := r.db.WithContext(ctx).Preload("Officer").Find(&rows).Error; err != nil {
		return nil, translate(err, "membership snapshot")
	}
	out := make([]roster.Membership, len(rows))
	for i, row := range rows {
		out[i] = row.ToRoster()
	}
	return out, nil
}
