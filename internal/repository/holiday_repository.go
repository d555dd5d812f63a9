package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"duty-roster-backend/internal/model"
	"duty-roster-backend/internal/roster"
)

type HolidayRepository interface {
	GetAll(ctx context.Context) ([]model.Holiday, error)
	GetInRange(ctx context.Context, from, to string) ([]model.Holiday, error)
	GetByID(ctx context.Context, id uint) (*model.Holiday, error)
	Create(ctx context.Context, holiday *model.Holiday) error
	Update(ctx context.Context, holiday *model.Holiday) error
	Delete(ctx context.Context, id uint) error
	IsHoliday(ctx context.Context, date string) (bool, error)
}

type holidayRepository struct {
	db *gorm.DB
}

func NewHolidayRepository(db *gorm.DB) HolidayRepository {
	return &holidayRepository{db}
}

func (r *holidayRepository) GetAll(ctx context.Context) ([]model.Holiday, error) {
	var holidays []model.Holiday
	err := r.db.WithContext(ctx).Order("holiday_date desc").Find(&holidays).Error
	return holidays, translate(err, "list holidays")
}

func (r *holidayRepository) GetInRange(ctx context.Context, from, to string) ([]model.Holiday, error) {
	var holidays []model.Holiday
	err := r.db.WithContext(ctx).
		Where("holiday_date >= ? AND holiday_date <= ?", from, to).
		Order("holiday_date asc").
		Find(&holidays).Error
	return holidays, translate(err, "holidays in range")
}

func (r *holidayRepository) GetByID(ctx context.Context, id uint) (*model.Holiday, error) {
	var holiday model.Holiday
	if err := r.db.WithContext(ctx).First(&holiday, id).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("holiday %d", id))
	}
	return &holiday, nil
}

func (r *holidayRepository) Create(ctx context.Context, holiday *model.Holiday) error {
	return translate(r.db.WithContext(ctx).Create(holiday).Error, "create holiday")
}

func (r *holidayRepository) Update(ctx context.Context, holiday *model.Holiday) error {
	return translate(r.db.WithContext(ctx).Save(holiday).Error, "update holiday")
}

// Delete is a hard delete so the date can be registered again.
func (r *holidayRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Unscoped().Delete(&model.Holiday{}, id)
	if res.Error != nil {
		return translate(res.Error, "delete holiday")
	}
	if res.RowsAffected == 0 {
		return roster.NotFound("holiday %d not found", id)
	}
	return nil
}

func (r *holidayRepository) IsHoliday(ctx context.Context, date string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Holiday{}).Where("holiday_date = ?", date).Count(&count).Error
	if err != nil {
		return false, translate(err, "check holiday")
	}
	return count > 0, nil
}
