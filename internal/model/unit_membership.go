package model

import (
	"time"

	"duty-roster-backend/internal/roster"
)

// UnitMembership is a pure join record, so it is hard deleted.
type UnitMembership struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	PositionNumber string    `json:"position_number" gorm:"size:32;uniqueIndex;not null"`
	UnitCode       *string   `json:"unit_code" gorm:"size:32;index"`
	Role           string    `json:"role" gorm:"size:16;not null;index"`
	SeniorityOrder int       `json:"seniority_order" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Officer *Officer `json:"officer,omitempty" gorm:"foreignKey:PositionNumber;references:PositionNumber"`
}

func (UnitMembership) TableName() string {
	return "unit_membership"
}

func (m UnitMembership) ToRoster() roster.Membership {
	out := roster.Membership{
		ID:             m.ID,
		PositionNumber: m.PositionNumber,
		Role:           roster.Role(m.Role),
		SeniorityOrder: m.SeniorityOrder,
	}
	if m.UnitCode != nil {
		out.UnitCode = *m.UnitCode
	}
	if m.Officer != nil {
		out.OfficerName = m.Officer.Name
	}
	return out
}

// ApplyRoster copies the engine's view back onto the row.
func (m *UnitMembership) ApplyRoster(r roster.Membership) {
	m.PositionNumber = r.PositionNumber
	m.Role = string(r.Role)
	m.SeniorityOrder = r.SeniorityOrder
	if r.UnitCode == "" {
		m.UnitCode = nil
	} else {
		code := r.UnitCode
		m.UnitCode = &code
	}
}
