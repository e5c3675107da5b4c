// Package branch models the two-level tenant hierarchy of the shop and the
// rules that decide what a principal may see and manage.
//
// A branch either has no parent (a main branch) or has a main branch as its
// parent (a sub-branch). Grandchildren are rejected at construction.
//
// Visibility is computed once per request by Resolver and carried as a Scope
// value into every repository and query call:
//   - superuser: unrestricted
//   - main-branch principal: own branch plus direct sub-branches
//   - sub-branch principal: own branch only
//   - principal without a branch: nothing
package branch
