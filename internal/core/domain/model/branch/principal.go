package branch

import (
	"strings"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"
)

// Principal is the authenticated caller as far as branch rules care.
// Authentication itself happens outside the core.
type Principal struct {
	userID    string
	branchID  *kernel.UUID
	superuser bool
}

// NewPrincipal describes a regular user. branchID may be nil for users not yet
// attached to a branch; such users see nothing.
func NewPrincipal(userID string, branchID *kernel.UUID) (Principal, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Principal{}, errs.NewValueIsRequiredError("user_id")
	}
	if branchID != nil {
		if err := branchID.Validate(); err != nil {
			return Principal{}, err
		}
	}
	return Principal{userID: userID, branchID: branchID}, nil
}

// NewSuperuser describes an unscoped administrator. branchID is optional and
// only used as the home branch for records the administrator creates.
func NewSuperuser(userID string, branchID *kernel.UUID) (Principal, error) {
	p, err := NewPrincipal(userID, branchID)
	if err != nil {
		return Principal{}, err
	}
	p.superuser = true
	return p, nil
}

func (p Principal) UserID() string { return p.userID }

func (p Principal) BranchID() *kernel.UUID { return p.branchID }

func (p Principal) IsSuperuser() bool { return p.superuser }
