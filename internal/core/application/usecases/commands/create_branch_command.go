package commands

import (
	"errors"
	"strings"

	"tracker/internal/core/domain/model/branch"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

var (
	ErrCreateBranchCommandIsNotConstructed = errors.New(
		"CreateBranchCommand must be created via NewCreateBranchCommand constructor",
	)
	ErrDeleteBranchCommandIsNotConstructed = errors.New(
		"DeleteBranchCommand must be created via NewDeleteBranchCommand constructor",
	)

	// ErrBranchManagementDenied is returned when the principal may not create
	// or delete the requested branch.
	ErrBranchManagementDenied = errors.New("branch management denied")

	// ErrBranchHasChildren is returned when deleting a main branch that still has sub-branches.
	ErrBranchHasChildren = errs.NewValueIsInvalidErrorWithCause(
		"branch", errors.New("branch still has sub-branches"),
	)
)

type CreateBranchCommand struct { //nolint:recvcheck //using for validation
	principal branch.Principal
	name      string
	code      string
	parentID  *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateBranchCommand builds the command. A nil parentID asks for a main
// branch when the principal is a superuser, and for a sub-branch of the
// principal's own branch otherwise.
func NewCreateBranchCommand(
	principal branch.Principal, name, code string, parentID *kernel.UUID,
) (CreateBranchCommand, error) {
	cmd := CreateBranchCommand{
		principal: principal,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setName(name),
		cmd.setCode(code),
		cmd.setParentID(parentID),
	); err != nil {
		return CreateBranchCommand{}, err
	}
	return cmd, nil
}

func (c CreateBranchCommand) Validate() error {
	return c.guard.Validate(ErrCreateBranchCommandIsNotConstructed)
}

func (c CreateBranchCommand) Principal() branch.Principal { return c.principal }

func (c CreateBranchCommand) Name() string { return c.name }

func (c CreateBranchCommand) Code() string { return c.code }

// ParentID returns the parent branch to attach to, resolving the default for
// non-superusers.
func (c CreateBranchCommand) ParentID() *kernel.UUID {
	if c.parentID == nil && !c.principal.IsSuperuser() {
		return c.principal.BranchID()
	}
	return c.parentID
}

func (c *CreateBranchCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *CreateBranchCommand) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	c.code = code
	return nil
}

func (c *CreateBranchCommand) setParentID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("parent_id", err)
	}
	c.parentID = id
	return nil
}

type DeleteBranchCommand struct { //nolint:recvcheck //using for validation
	principal branch.Principal
	branchID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteBranchCommand(principal branch.Principal, branchID kernel.UUID) (DeleteBranchCommand, error) {
	if err := branchID.Validate(); err != nil {
		return DeleteBranchCommand{}, errs.NewValueIsRequiredErrorWithCause("branch_id", err)
	}
	return DeleteBranchCommand{
		principal: principal,
		branchID:  branchID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteBranchCommand) Validate() error {
	return c.guard.Validate(ErrDeleteBranchCommandIsNotConstructed)
}

func (c DeleteBranchCommand) Principal() branch.Principal { return c.principal }

func (c DeleteBranchCommand) BranchID() kernel.UUID { return c.branchID }
