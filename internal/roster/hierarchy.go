package roster

import (
	"sort"
	"strings"
)

type Role string

const (
	RoleMember     Role = "member"
	RoleSupervisor Role = "supervisor"
	RoleDirector   Role = "director"
)

func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleMember:
		return RoleMember, nil
	case RoleSupervisor:
		return RoleSupervisor, nil
	case RoleDirector:
		return RoleDirector, nil
	}
	return "", Validation("invalid role %q, expected member, supervisor or director", s)
}

// rank orders roles director, supervisor, member.
func (r Role) rank() int {
	switch r {
	case RoleDirector:
		return 0
	case RoleSupervisor:
		return 1
	}
	return 2
}

// Membership is the engine's view of one unit-structure record.
// UnitCode is empty for the director.
type Membership struct {
	ID             uint   `json:"id"`
	PositionNumber string `json:"position_number"`
	OfficerName    string `json:"officer_name,omitempty"`
	UnitCode       string `json:"unit_code,omitempty"`
	Role           Role   `json:"role"`
	SeniorityOrder int    `json:"seniority_order"`
}

// Normalize applies the role-dependent shape of a membership: the director has
// no unit, and a supervisor with no seniority given sits at 1.
func (m Membership) Normalize() Membership {
	m.PositionNumber = strings.TrimSpace(m.PositionNumber)
	m.UnitCode = strings.TrimSpace(m.UnitCode)
	switch m.Role {
	case RoleDirector:
		m.UnitCode = ""
		if m.SeniorityOrder == 0 {
			m.SeniorityOrder = 1
		}
	case RoleSupervisor:
		if m.SeniorityOrder == 0 {
			m.SeniorityOrder = 1
		}
	}
	return m
}

// CheckShape validates the record on its own, before it is compared with any
// other membership.
func (m Membership) CheckShape() error {
	if m.PositionNumber == "" {
		return Validation("position_number is required")
	}
	if _, err := ParseRole(string(m.Role)); err != nil {
		return err
	}
	if m.Role != RoleDirector && m.UnitCode == "" {
		return Validation("unit_code is required for role %s", m.Role)
	}
	if m.SeniorityOrder < 1 {
		return Validation("seniority_order must be a positive integer")
	}
	return nil
}

// CheckMembership runs the hierarchy rules for candidate against existing.
// Rows with the candidate's ID are ignored so an update is checked against the
// current state minus itself. A zero candidate ID means a new record.
func CheckMembership(candidate Membership, existing []Membership) error {
	if err := candidate.CheckShape(); err != nil {
		return err
	}

	others := make([]Membership, 0, len(existing))
	for _, m := range existing {
		if candidate.ID != 0 && m.ID == candidate.ID {
			continue
		}
		others = append(others, m)
	}

	for _, m := range others {
		if m.PositionNumber == candidate.PositionNumber {
			return Violation(RuleOfficerAlreadyAssigned,
				"officer %s already belongs to %s", candidate.PositionNumber, describeSlot(m))
		}
	}

	if candidate.Role == RoleDirector {
		for _, m := range others {
			if m.Role == RoleDirector {
				return Violation(RuleDuplicateDirector,
					"director is already held by %s", m.PositionNumber)
			}
		}
	}

	if candidate.Role == RoleSupervisor {
		for _, m := range others {
			if m.Role == RoleSupervisor && m.UnitCode == candidate.UnitCode {
				return Violation(RuleDuplicateSupervisor,
					"unit %s already has supervisor %s", candidate.UnitCode, m.PositionNumber)
			}
		}
		if candidate.SeniorityOrder != 1 {
			return Violation(RuleInvalidSupervisorSeniority,
				"supervisor seniority_order must be 1, got %d", candidate.SeniorityOrder)
		}
	}

	if candidate.UnitCode != "" {
		for _, m := range others {
			if m.UnitCode == candidate.UnitCode && m.SeniorityOrder == candidate.SeniorityOrder {
				return Violation(RuleDuplicateSeniority,
					"seniority %d in unit %s is already held by %s",
					candidate.SeniorityOrder, candidate.UnitCode, m.PositionNumber)
			}
		}
	}

	return nil
}

func describeSlot(m Membership) string {
	if m.Role == RoleDirector {
		return "the director slot"
	}
	return "unit " + m.UnitCode
}

// Availability answers whether a role slot is free without mutating anything.
type Availability struct {
	Role          Role        `json:"role"`
	UnitCode      string      `json:"unit_code,omitempty"`
	Available     bool        `json:"available"`
	Rule          Rule        `json:"rule,omitempty"`
	Holder        *Membership `json:"holder,omitempty"`
	NextSeniority int         `json:"next_seniority,omitempty"`
}

// CheckRoleAvailability reports whether role can be taken in unitCode by a
// record other than excludingID.
func CheckRoleAvailability(role Role, unitCode string, excludingID uint, existing []Membership) Availability {
	unitCode = strings.TrimSpace(unitCode)
	if role == RoleDirector {
		unitCode = ""
	}
	out := Availability{Role: role, UnitCode: unitCode, Available: true}

	for i := range existing {
		m := existing[i]
		if excludingID != 0 && m.ID == excludingID {
			continue
		}
		switch {
		case role == RoleDirector && m.Role == RoleDirector:
			out.Available, out.Rule, out.Holder = false, RuleDuplicateDirector, &m
		case role == RoleSupervisor && m.Role == RoleSupervisor && m.UnitCode == unitCode:
			out.Available, out.Rule, out.Holder = false, RuleDuplicateSupervisor, &m
		}
		if !out.Available {
			break
		}
	}

	if unitCode != "" {
		out.NextSeniority = NextSeniority(unitCode, excludingID, existing)
	}
	return out
}

// NextSeniority returns the lowest free member seniority in unitCode. Slot 1
// belongs to the supervisor, so the search starts at 2 even in an empty unit.
func NextSeniority(unitCode string, excludingID uint, existing []Membership) int {
	used := map[int]bool{}
	for _, m := range existing {
		if m.UnitCode != unitCode || (excludingID != 0 && m.ID == excludingID) {
			continue
		}
		used[m.SeniorityOrder] = true
	}
	next := 2
	for used[next] {
		next++
	}
	return next
}

// SortMemberships orders director first, then by unit code, supervisor before
// members, then by seniority.
func SortMemberships(ms []Membership) {
	sort.SliceStable(ms, func(i, j int) bool {
		a, b := ms[i], ms[j]
		if (a.Role == RoleDirector) != (b.Role == RoleDirector) {
			return a.Role == RoleDirector
		}
		if a.UnitCode != b.UnitCode {
			return a.UnitCode < b.UnitCode
		}
		if a.Role.rank() != b.Role.rank() {
			return a.Role.rank() < b.Role.rank()
		}
		return a.SeniorityOrder < b.SeniorityOrder
	})
}

type UnitBranch struct {
	UnitCode   string       `json:"unit_code"`
	UnitName   string       `json:"unit_name"`
	Supervisor *Membership  `json:"supervisor"`
	Members    []Membership `json:"members"`
}

type Hierarchy struct {
	Director *Membership  `json:"director"`
	Units    []UnitBranch `json:"units"`
}

// BuildHierarchy groups memberships into the director and per-unit branches.
// unitNames maps unit codes to display names; missing names fall back to the code.
func BuildHierarchy(ms []Membership, unitNames map[string]string) Hierarchy {
	sorted := make([]Membership, len(ms))
	copy(sorted, ms)
	SortMemberships(sorted)

	var h Hierarchy
	index := map[string]int{}
	for i := range sorted {
		m := sorted[i]
		if m.Role == RoleDirector {
			h.Director = &m
			continue
		}
		pos, ok := index[m.UnitCode]
		if !ok {
			name := unitNames[m.UnitCode]
			if name == "" {
				name = m.UnitCode
			}
			h.Units = append(h.Units, UnitBranch{UnitCode: m.UnitCode, UnitName: name, Members: []Membership{}})
			pos = len(h.Units) - 1
			index[m.UnitCode] = pos
		}
		if m.Role == RoleSupervisor {
			h.Units[pos].Supervisor = &m
			continue
		}
		h.Units[pos].Members = append(h.Units[pos].Members, m)
	}
	if h.Units == nil {
		h.Units = []UnitBranch{}
	}
	return h
}
