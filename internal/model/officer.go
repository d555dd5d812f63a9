package model

import "gorm.io/gorm"

// Officer is owned by the personnel directory. The roster only reads it.
type Officer struct {
	gorm.Model
	PositionNumber string  `json:"position_number" gorm:"size:32;uniqueIndex;not null"`
	Name           string  `json:"name" gorm:"size:128;not null"`
	Rank           string  `json:"rank" gorm:"size:64"`
	UnitCode       *string `json:"unit_code" gorm:"size:32;index"`
	Phone          string  `json:"phone" gorm:"size:32"`
	IsActive       bool    `json:"is_active" gorm:"default:true"`

	Unit *Unit `json:"unit,omitempty" gorm:"foreignKey:UnitCode;references:UnitCode"`
}

// HomeUnit returns the officer's unit code or "" when unaffiliated.
func (o Officer) HomeUnit() string {
	if o.UnitCode == nil {
		return ""
	}
	return *o.UnitCode
}

// Unit comes from the unit catalog and is never created by the roster.
type Unit struct {
	gorm.Model
	UnitCode string `json:"unit_code" gorm:"size:32;uniqueIndex;not null"`
	UnitName string `json:"unit_name" gorm:"size:128;not null"`
}
