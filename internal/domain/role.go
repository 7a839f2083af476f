package domain

// Role is a team-scoped role. Roles mean nothing outside a membership; the
// same user can hold different roles in different teams.
type Role string

const (
	RoleOwner   Role = "owner"
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleMember  Role = "member"
	RoleViewer  Role = "viewer"
)

// ParseRole validates a wire-level role string
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleOwner, RoleAdmin, RoleManager, RoleMember, RoleViewer:
		return Role(s), nil
	default:
		return "", ErrInvalidRole
	}
}

// Permission is a named capability checked against the permission table.
type Permission string

const (
	PermViewInvoices     Permission = "view_invoices"
	PermUploadInvoices   Permission = "upload_invoices"
	PermManageCategories Permission = "manage_categories"
	PermManageTeam       Permission = "manage_team"
	PermBillingAccess    Permission = "billing_access"
	PermSettingsAccess   Permission = "settings_access"
)

// AllPermissions returns every permission in stable order
func AllPermissions() []Permission {
	return []Permission{
		PermViewInvoices,
		PermUploadInvoices,
		PermManageCategories,
		PermManageTeam,
		PermBillingAccess,
		PermSettingsAccess,
	}
}
