package ports

import (
	"context"

	"tracker/internal/core/domain/model/branch"
	"tracker/internal/core/domain/model/kernel"
)

// BranchRepository stores the branch hierarchy. It also serves as the
// branch.Directory the scope resolver reads from.
type BranchRepository interface {
	branch.Directory

	Add(ctx context.Context, aggregate *branch.Branch) error
	Delete(ctx context.Context, id kernel.UUID) error
}
