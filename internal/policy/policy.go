// Package policy centralizes every role and ownership decision. Handlers and
// services never compare role names inline; they go through Allow.
package policy

import "fmt"

// Role is the enumerated privilege level of a user.
type Role string

const (
	RoleReader Role = "reader"
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"
)

var ranks = map[Role]int{
	RoleReader: 1,
	RoleEditor: 2,
	RoleAdmin:  3,
}

// Parse returns the Role for a stored role name.
func Parse(name string) (Role, error) {
	role := Role(name)
	if _, ok := ranks[role]; !ok {
		return "", fmt.Errorf("unknown role %q", name)
	}
	return role, nil
}

// Rank returns the privilege rank of r (reader=1 < editor=2 < admin=3).
// Unknown roles rank below reader.
func (r Role) Rank() int {
	return ranks[r]
}

// AtLeast reports whether r has at least the privilege of min.
func (r Role) AtLeast(min Role) bool {
	return r.Rank() >= min.Rank()
}

// Operation describes the requirements of a protected operation.
type Operation struct {
	MinRole           Role
	RequiresOwnership bool
}

var (
	CreatePost     = Operation{MinRole: RoleEditor}
	MutatePost     = Operation{MinRole: RoleEditor, RequiresOwnership: true}
	CreateComment  = Operation{MinRole: RoleReader}
	MutateComment  = Operation{MinRole: RoleReader, RequiresOwnership: true}
	MutateCategory = Operation{MinRole: RoleAdmin}
	ManageUsers    = Operation{MinRole: RoleAdmin}
)

// Allow applies the two-tier check: the caller's role must meet the
// operation's floor, and ownership-gated operations additionally require the
// caller to own the resource or be an admin.
func Allow(role Role, userID uint, op Operation, ownerID uint) bool {
	if !role.AtLeast(op.MinRole) {
		return false
	}
	if !op.RequiresOwnership {
		return true
	}
	return userID == ownerID || role == RoleAdmin
}

// CanSeeUnpublished reports whether a caller may see non-published posts and
// hidden comments they do not own.
func CanSeeUnpublished(role Role) bool {
	return role.AtLeast(RoleEditor)
}
