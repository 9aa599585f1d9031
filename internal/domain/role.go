package domain

// RoleName identifies a role by its exact, case-sensitive name.
type RoleName string

// Roles distinguished by the policy engine. The role set itself is open;
// anything else is subject to default-deny.
const (
	RoleAdministrator RoleName = "Administrator"
	RoleClient        RoleName = "Client"
	RoleTechnician    RoleName = "Technician"
)

// Role is a named role assignable through Access records.
type Role struct {
	ID   int64
	Name RoleName
}
