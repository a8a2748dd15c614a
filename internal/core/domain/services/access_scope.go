package services

import (
	"maintenance/internal/core/domain/model/personnel"
)

type ScopeKind int

const (
	// ScopeAll applies no restriction.
	ScopeAll ScopeKind = iota
	// ScopeSupervisedOrStaffed limits to orders the person supervises or works on as technician.
	ScopeSupervisedOrStaffed
	// ScopeStaffed limits to orders the person works on as technician.
	ScopeStaffed
)

// AccessScope is the restriction an actor's role imposes on order reads.
// Read queries AND it with the caller's own filters before counting or paging.
type AccessScope struct {
	kind        ScopeKind
	personnelID personnel.ID
}

func NewAccessScope(actor personnel.Actor) AccessScope {
	switch actor.Role() {
	case personnel.RoleSupervisor:
		return AccessScope{kind: ScopeSupervisedOrStaffed, personnelID: actor.ID()}
	case personnel.RoleTechnician:
		return AccessScope{kind: ScopeStaffed, personnelID: actor.ID()}
	default:
		return AccessScope{kind: ScopeAll}
	}
}

func (s AccessScope) Kind() ScopeKind {
	return s.kind
}

func (s AccessScope) PersonnelID() personnel.ID {
	return s.personnelID
}

// Admits evaluates the scope against one order's team in memory.
func (s AccessScope) Admits(supervisorID *personnel.ID, technicianIDs []personnel.ID) bool {
	staffed := false
	for _, id := range technicianIDs {
		if id == s.personnelID {
			staffed = true
			break
		}
	}
	switch s.kind {
	case ScopeSupervisedOrStaffed:
		return staffed || (supervisorID != nil && *supervisorID == s.personnelID)
	case ScopeStaffed:
		return staffed
	default:
		return true
	}
}
