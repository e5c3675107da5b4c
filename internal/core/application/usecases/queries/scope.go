package queries

import (
	"tracker/internal/core/domain/model/branch"
	"tracker/internal/core/domain/model/kernel"

	"github.com/lib/pq"
)

// scopeFilter renders scope as a SQL condition on column for raw read queries.
func scopeFilter(scope branch.Scope, column string) (string, []any) {
	switch {
	case scope.IsUnrestricted():
		return "TRUE", nil
	case scope.IsEmpty():
		return "FALSE", nil
	default:
		return column + " = ANY(?::uuid[])", []any{pq.Array(kernel.Strings(scope.BranchIDs()))}
	}
}
