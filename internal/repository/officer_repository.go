package repository

import (
	"context"

	"gorm.io/gorm"

	"duty-roster-backend/internal/model"
	"duty-roster-backend/internal/roster"
)

// OfficerRepository is a read-only view of the personnel directory.
type OfficerRepository interface {
	FindByPositionNumber(ctx context.Context, positionNumber string) (*model.Officer, error)
	FindByPositionNumbers(ctx context.Context, positionNumbers []string) ([]model.Officer, error)
	Search(ctx context.Context, search string, limit int) ([]model.Officer, error)
}

type officerRepository struct {
	db *gorm.DB
}

func NewOfficerRepository(db *gorm.DB) OfficerRepository {
	return &officerRepository{db}
}

func (r *officerRepository) FindByPositionNumber(ctx context.Context, positionNumber string) (*model.Officer, error) {
	var officer model.Officer
	// Find + Limit(1) keeps gorm from logging "record not found" for a routine lookup
	err := r.db.WithContext(ctx).Preload("Unit").Where("position_number = ?", positionNumber).Limit(1).Find(&officer).Error
	if err != nil {
		return nil, translate(err, "find officer")
	}
	if officer.ID == 0 {
		return nil, roster.NotFound("officer %s not found", positionNumber)
	}
	return &officer, nil
}

func (r *officerRepository) FindByPositionNumbers(ctx context.Context, positionNumbers []string) ([]model.Officer, error) {
	var officers []model.Officer
	if len(positionNumbers) == 0 {
		return officers, nil
	}
	err := r.db.WithContext(ctx).Preload("Unit").Where("position_number IN ?", positionNumbers).Find(&officers).Error
	return officers, translate(err, "find officers")
}

func (r *officerRepository) Search(ctx context.Context, search string, limit int) ([]model.Officer, error) {
	var officers []model.Officer
	query := r.db.WithContext(ctx).Preload("Unit").Where("is_active = ?", true)

	if search != "" {
		searchPattern := "%" + search + "%"
		query = query.Where("name LIKE ? OR position_number LIKE ?", searchPattern, searchPattern)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Order("name asc").Find(&officers).Error
	return officers, translate(err, "search officers")
}
