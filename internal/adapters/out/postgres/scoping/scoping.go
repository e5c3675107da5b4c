// Package scoping turns a resolved branch.Scope into GORM query scopes.
package scoping

import (
	"tracker/internal/core/domain/model/branch"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Branches restricts a query to rows whose branch column is inside scope.
// An unrestricted scope adds no condition; an empty scope matches nothing.
//
// Example:
//
//	db.Scopes(scoping.Branches(scope, "branch_id")).First(&dto, "id = ?", id)
func Branches(scope branch.Scope, column string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if scope.IsUnrestricted() {
			return db
		}
		if scope.IsEmpty() {
			return db.Where("1 = 0")
		}
		return db.Where(column+" IN ?", IDs(scope))
	}
}

// IDs returns the scope's branch ids in database form, or nil when unrestricted.
func IDs(scope branch.Scope) []uuid.UUID {
	ids := scope.BranchIDs()
	if ids == nil {
		return nil
	}
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Bytes())
	}
	return out
}
