package branch

import (
	"context"
	"errors"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"
)

// Directory is the read access the resolver needs to the branch hierarchy.
type Directory interface {
	Get(ctx context.Context, id kernel.UUID) (*Branch, error)
	ListChildren(ctx context.Context, parentID kernel.UUID) ([]*Branch, error)
}

// Resolver turns a Principal into a Scope and answers branch management questions.
type Resolver struct {
	directory Directory
}

func NewResolver(directory Directory) Resolver {
	return Resolver{directory: directory}
}

// VisibleBranchIDs computes the principal's scope. A principal whose branch no
// longer exists gets an empty scope rather than an error.
func (r Resolver) VisibleBranchIDs(ctx context.Context, principal Principal) (Scope, error) {
	if principal.IsSuperuser() {
		return UnrestrictedScope(principal.BranchID()), nil
	}

	home, err := r.homeBranch(ctx, principal)
	if err != nil || home == nil {
		return EmptyScope(), err
	}

	if !home.IsMain() {
		return NewScope(home.ID()), nil
	}

	children, err := r.directory.ListChildren(ctx, home.ID())
	if err != nil {
		return EmptyScope(), err
	}

	ids := make([]kernel.UUID, 0, len(children))
	for _, child := range children {
		ids = append(ids, child.ID())
	}
	return NewScope(home.ID(), ids...), nil
}

// CanManage reports whether the principal may modify records of branchID.
func (r Resolver) CanManage(ctx context.Context, principal Principal, branchID kernel.UUID) (bool, error) {
	scope, err := r.VisibleBranchIDs(ctx, principal)
	if err != nil {
		return false, err
	}
	return scope.Contains(branchID), nil
}

// CanCreateBranch is true for superusers and main-branch principals.
func (r Resolver) CanCreateBranch(ctx context.Context, principal Principal) (bool, error) {
	if principal.IsSuperuser() {
		return true, nil
	}

	home, err := r.homeBranch(ctx, principal)
	if err != nil || home == nil {
		return false, err
	}
	return home.IsMain(), nil
}

// CanDeleteBranch allows deleting the principal's own branch or one of its
// direct sub-branches.
func (r Resolver) CanDeleteBranch(_ context.Context, principal Principal, target *Branch) (bool, error) {
	if err := target.Validate(); err != nil {
		return false, err
	}
	if principal.IsSuperuser() {
		return true, nil
	}

	homeID := principal.BranchID()
	if homeID == nil {
		return false, nil
	}
	return target.ID().IsEqual(*homeID) || target.IsChildOf(*homeID), nil
}

func (r Resolver) homeBranch(ctx context.Context, principal Principal) (*Branch, error) {
	branchID := principal.BranchID()
	if branchID == nil {
		return nil, nil
	}

	home, err := r.directory.Get(ctx, *branchID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return home, nil
}
