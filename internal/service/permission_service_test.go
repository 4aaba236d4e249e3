package service

import (
	"testing"

	"go-clinic-scheduling/internal/domain/entity"
)

func TestResolveScope(t *testing.T) {
	tests := []struct {
		name     string
		roleID   int
		resource string
		action   string
		want     Scope
	}{
		{"admin is clinic wide", entity.RoleIDAdmin, ResourceAppointments, ActionWrite, ScopeClinic},
		{"receptionist is clinic wide", entity.RoleIDReceptionist, ResourceAppointments, ActionRead, ScopeClinic},
		{"professional owns appointments", entity.RoleIDProfessional, ResourceAppointments, ActionWrite, ScopeOwn},
		{"professional owns availability", entity.RoleIDProfessional, ResourceAvailability, ActionWrite, ScopeOwn},
		{"professional owns groups", entity.RoleIDProfessional, ResourceGroups, ActionRead, ScopeOwn},
		{"professional owns recurrences", entity.RoleIDProfessional, ResourceRecurrences, ActionWrite, ScopeOwn},
		{"unknown resource defaults to clinic", entity.RoleIDProfessional, "reports", ActionRead, ScopeClinic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveScope(tt.roleID, tt.resource, tt.action); got != tt.want {
				t.Errorf("ResolveScope(%d, %q, %q) = %q, want %q", tt.roleID, tt.resource, tt.action, got, tt.want)
			}
		})
	}
}
