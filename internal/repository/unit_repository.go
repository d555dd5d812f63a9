package repository

import (
	"context"

	"gorm.io/gorm"

	"duty-roster-backend/internal/model"
)

// UnitRepository reads the unit catalog.
type UnitRepository interface {
	GetAll(ctx context.Context) ([]model.Unit, error)
	Names(ctx context.Context) (map[string]string, error)
	Exists(ctx context.Context, unitCode string) (bool, error)
}

type unitRepository struct {
	db *gorm.DB
}

func NewUnitRepository(db *gorm.DB) UnitRepository {
	return &unitRepository{db}
}

func (r *unitRepository) GetAll(ctx context.Context) ([]model.Unit, error) {
	var units []model.Unit
	err := r.db.WithContext(ctx).Order("unit_code asc").Find(&units).Error
	return units, translate(err, "list units")
}

// Names maps unit codes to display names.
func (r *unitRepository) Names(ctx context.Context) (map[string]string, error) {
	units, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(units))
	for _, u := range units {
		names[u.UnitCode] = u.UnitName
	}
	return names, nil
}

func (r *unitRepository) Exists(ctx context.Context, unitCode string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Unit{}).Where("unit_code = ?", unitCode).Count(&count).Error
	if err != nil {
		return false, translate(err, "check unit")
	}
	return count > 0, nil
}
