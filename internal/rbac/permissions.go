package rbac

import "github.com/nazmulhasanDEV/invoice/internal/domain"

// Table maps roles to their permission sets. It is built once at startup and
// never mutated afterwards; unknown roles resolve to an empty set, so every
// lookup against them denies.
type Table struct {
	grants map[domain.Role]map[domain.Permission]struct{}
}

// DefaultTable returns the platform's fixed role-permission mapping.
func DefaultTable() *Table {
	t := &Table{grants: make(map[domain.Role]map[domain.Permission]struct{})}

	t.grant(domain.RoleOwner, domain.AllPermissions()...)
	t.grant(domain.RoleAdmin, domain.AllPermissions()...)
	t.grant(domain.RoleManager,
		domain.PermViewInvoices,
		domain.PermUploadInvoices,
		domain.PermManageCategories,
	)
	t.grant(domain.RoleMember,
		domain.PermViewInvoices,
		domain.PermUploadInvoices,
	)
	t.grant(domain.RoleViewer, domain.PermViewInvoices)

	return t
}

func (t *Table) grant(role domain.Role, perms ...domain.Permission) {
	set, ok := t.grants[role]
	if !ok {
		set = make(map[domain.Permission]struct{}, len(perms))
		t.grants[role] = set
	}
	for _, p := range perms {
		set[p] = struct{}{}
	}
}

// Has reports whether role grants permission. Fail closed: an unknown role
// grants nothing.
func (t *Table) Has(role domain.Role, perm domain.Permission) bool {
	set, ok := t.grants[role]
	if !ok {
		return false
	}
	_, ok = set[perm]
	return ok
}

// Permissions returns the permission set of a role, nil for unknown roles.
func (t *Table) Permissions(role domain.Role) []domain.Permission {
	set, ok := t.grants[role]
	if !ok {
		return nil
	}
	perms := make([]domain.Permission, 0, len(set))
	for _, p := range domain.AllPermissions() {
		if _, ok := set[p]; ok {
			perms = append(perms, p)
		}
	}
	return perms
}
