// Package permission maps roles to the capabilities they hold, independent of
// any workflow state.
package permission

import "github.com/fusex/medevac-api/schema"

// Capability is a named permission such as "requests:create".
type Capability string

const (
	RequestsCreate Capability = "requests:create"
	RequestsRead   Capability = "requests:read"
	RequestsUpdate Capability = "requests:update"
	RequestsDelete Capability = "requests:delete"

	ResponsesRead   Capability = "responses:read"
	ResponsesSelect Capability = "responses:select"

	UsersCreate Capability = "users:create"
	UsersRead   Capability = "users:read"
	UsersUpdate Capability = "users:update"
	UsersDelete Capability = "users:delete"

	OrganizationsRead   Capability = "organizations:read"
	OrganizationsUpdate Capability = "organizations:update"

	FilesRead   Capability = "files:read"
	FilesCreate Capability = "files:create"

	StatsRead Capability = "stats:read"
)

var reviewer = []Capability{RequestsRead, RequestsUpdate, ResponsesRead, FilesRead, FilesCreate}

// DefaultGrants is the capability table of the evacuation service.
func DefaultGrants() map[schema.Role][]Capability {
	return map[schema.Role][]Capability{
		schema.RoleOperadorFusex: {
			RequestsCreate, RequestsRead, RequestsDelete, ResponsesRead,
			FilesRead, FilesCreate, OrganizationsRead,
		},
		schema.RoleChefeFusex:     append([]Capability{RequestsDelete, StatsRead}, reviewer...),
		schema.RoleAuditor:        reviewer,
		schema.RoleChefeAuditoria: append([]Capability{StatsRead}, reviewer...),
		schema.RoleHomologador:    append([]Capability{ResponsesSelect, OrganizationsRead}, reviewer...),

		schema.RoleEspecialista:     reviewer,
		schema.RoleChefeDivMedicina: reviewer,
		schema.RoleCotador:          reviewer,

		schema.RoleChem:                  append([]Capability{StatsRead}, reviewer...),
		schema.RoleChefeSecaoRegional:    reviewer,
		schema.RoleOperadorSecaoRegional: reviewer,

		schema.RoleDras:            append([]Capability{StatsRead}, reviewer...),
		schema.RoleSubdiretorSaude: append([]Capability{StatsRead}, reviewer...),

		schema.RoleAdmin: {
			RequestsCreate, RequestsRead, RequestsUpdate, RequestsDelete,
			ResponsesRead, ResponsesSelect,
			UsersCreate, UsersRead, UsersUpdate, UsersDelete,
			OrganizationsRead, OrganizationsUpdate,
			FilesRead, FilesCreate, StatsRead,
		},
	}
}

// Authority answers whether a role holds a capability. It is immutable once
// built.
type Authority struct {
	grants map[schema.Role]map[Capability]struct{}
}

// NewAuthority copies grants into a lookup table.
func NewAuthority(grants map[schema.Role][]Capability) *Authority {
	a := &Authority{grants: make(map[schema.Role]map[Capability]struct{}, len(grants))}
	for role, capabilities := range grants {
		set := make(map[Capability]struct{}, len(capabilities))
		for _, c := range capabilities {
			set[c] = struct{}{}
		}
		a.grants[role] = set
	}
	return a
}

// Authorize reports whether role holds capability.
func (a *Authority) Authorize(role schema.Role, capability Capability) bool {
	if a == nil {
		return false
	}
	_, ok := a.grants[role][capability]
	return ok
}
