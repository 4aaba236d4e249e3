package service

import "go-clinic-scheduling/internal/domain/entity"

// Scope limits how far an authenticated user reaches inside their clinic.
// ScopeOwn confines professionals to calendars they own or co-attend,
// ScopeClinic grants clinic-wide access.
type Scope string

const (
	ScopeOwn    Scope = "own"
	ScopeClinic Scope = "clinic"
)

// Resource names the permission boundary distinguishes.
const (
	ResourceAppointments  = "appointments"
	ResourceRecurrences   = "recurrences"
	ResourceAvailability  = "availability"
	ResourceGroups        = "groups"
	ResourceProfessionals = "professionals"
)

// Actions over a resource.
const (
	ActionRead  = "read"
	ActionWrite = "write"
)

// ResolveScope maps a role and a (resource, action) pair onto an access
// scope. Admins and receptionists operate clinic-wide; professionals are
// confined to their own calendars for every scheduling resource.
func ResolveScope(roleID int, resource string, action string) Scope {
	if roleID == entity.RoleIDProfessional {
		switch resource {
		case ResourceAppointments, ResourceRecurrences, ResourceAvailability,
			ResourceGroups, ResourceProfessionals:
			return ScopeOwn
		}
	}
	return ScopeClinic
}
