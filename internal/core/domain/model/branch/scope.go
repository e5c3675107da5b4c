package branch

import (
	"tracker/internal/core/domain/model/kernel"
)

// Scope is the resolved set of branches a request may read and write.
// It is passed explicitly to every repository and query; nothing reads
// the current user from ambient state.
type Scope struct {
	unrestricted bool
	home         *kernel.UUID
	branchIDs    []kernel.UUID
}

// UnrestrictedScope grants access to every branch. home, when set, is where
// records created by the request are filed.
func UnrestrictedScope(home *kernel.UUID) Scope {
	return Scope{unrestricted: true, home: home}
}

// NewScope limits access to home plus the extra branch ids.
func NewScope(home kernel.UUID, others ...kernel.UUID) Scope {
	ids := make([]kernel.UUID, 0, len(others)+1)
	ids = append(ids, home)
	for _, id := range others {
		if !containsID(ids, id) {
			ids = append(ids, id)
		}
	}
	return Scope{home: &home, branchIDs: ids}
}

// EmptyScope matches nothing.
func EmptyScope() Scope {
	return Scope{}
}

func (s Scope) IsUnrestricted() bool { return s.unrestricted }

// IsEmpty reports whether the scope cannot match any branch.
func (s Scope) IsEmpty() bool { return !s.unrestricted && len(s.branchIDs) == 0 }

// Home returns the branch new records belong to, if any.
func (s Scope) Home() (kernel.UUID, bool) {
	if s.home == nil {
		return kernel.UUID{}, false
	}
	return *s.home, true
}

// BranchIDs lists the visible branches; it is nil for unrestricted scopes.
func (s Scope) BranchIDs() []kernel.UUID {
	if s.unrestricted {
		return nil
	}
	out := make([]kernel.UUID, len(s.branchIDs))
	copy(out, s.branchIDs)
	return out
}

// Contains reports whether a record filed under branchID is visible.
func (s Scope) Contains(branchID kernel.UUID) bool {
	if s.unrestricted {
		return true
	}
	return containsID(s.branchIDs, branchID)
}

func containsID(ids []kernel.UUID, id kernel.UUID) bool {
	for _, candidate := range ids {
		if candidate.IsEqual(id) {
			return true
		}
	}
	return false
}
