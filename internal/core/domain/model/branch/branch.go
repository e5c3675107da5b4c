package branch

import (
	"errors"
	"strings"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"
)

var (
	ErrBranchIsNotConstructed = errors.New("Branch must be created via NewBranch constructor")

	// ErrHierarchyTooDeep is returned when the requested parent is itself a sub-branch.
	ErrHierarchyTooDeep = errs.NewValueIsInvalidErrorWithCause(
		"parent", errors.New("a sub-branch cannot have sub-branches"),
	)
)

// Branch is a shop location. Its parent link is fixed at creation.
type Branch struct {
	id       kernel.UUID
	name     string
	code     string
	parentID *kernel.UUID
	isActive bool

	isConstructed bool
}

// NewBranch creates an active branch. A nil parent makes it a main branch;
// otherwise the parent must be a main branch.
func NewBranch(id kernel.UUID, name, code string, parent *Branch) (*Branch, error) {
	b := &Branch{
		isActive:      true,
		isConstructed: true,
	}

	if err := errors.Join(
		b.setID(id),
		b.setName(name),
		b.setCode(code),
		b.setParent(parent),
	); err != nil {
		return nil, err
	}

	return b, nil
}

// RestoreBranch rebuilds a persisted branch without re-checking the parent's depth.
func RestoreBranch(id kernel.UUID, name, code string, parentID *kernel.UUID, isActive bool) (*Branch, error) {
	b := &Branch{
		parentID:      parentID,
		isActive:      isActive,
		isConstructed: true,
	}

	if err := errors.Join(
		b.setID(id),
		b.setName(name),
		b.setCode(code),
	); err != nil {
		return nil, err
	}

	return b, nil
}

func (b *Branch) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBranchIsNotConstructed
	}
	return nil
}

func (b *Branch) ID() kernel.UUID { return b.id }

func (b *Branch) Name() string { return b.name }

func (b *Branch) Code() string { return b.code }

// ParentID is nil for main branches.
func (b *Branch) ParentID() *kernel.UUID { return b.parentID }

func (b *Branch) IsActive() bool { return b.isActive }

// IsMain reports whether the branch sits at the top of the hierarchy.
func (b *Branch) IsMain() bool { return b.parentID == nil }

// IsChildOf reports whether parentID is this branch's direct parent.
func (b *Branch) IsChildOf(parentID kernel.UUID) bool {
	return b.parentID != nil && b.parentID.IsEqual(parentID)
}

// Deactivate hides the branch from pickers; existing records keep their link.
func (b *Branch) Deactivate() {
	b.isActive = false
}

func (b *Branch) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Branch) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	b.name = name
	return nil
}

func (b *Branch) setCode(code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	b.code = code
	return nil
}

func (b *Branch) setParent(parent *Branch) error {
	if parent == nil {
		return nil
	}
	if err := parent.Validate(); err != nil {
		return err
	}
	if !parent.IsMain() {
		return ErrHierarchyTooDeep
	}
	parentID := parent.ID()
	b.parentID = &parentID
	return nil
}
