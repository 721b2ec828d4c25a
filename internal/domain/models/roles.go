// internal/domain/models/roles.go
package models

// Roles within an organization. Admin outranks manager outranks member for
// role-assignment purposes only; everything else is checked per-operation.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleMember  = "member"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleMember:
		return true
	}
	return false
}
