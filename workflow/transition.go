package workflow

import (
	"github.com/fusex/medevac-api/schema"
)

// Edge is the single way out of a status.
type Edge struct {
	Next schema.Status
	Role schema.Role
}

// Transitions is an immutable status graph. Statuses without an edge are
// terminal or left only through custom handling.
type Transitions struct {
	edges map[schema.Status]Edge
}

// NewTransitions copies edges into a new graph.
func NewTransitions(edges map[schema.Status]Edge) *Transitions {
	t := &Transitions{edges: make(map[schema.Status]Edge, len(edges))}
	for from, e := range edges {
		t.edges[from] = e
	}
	return t
}

// RequestTransitions is the request approval chain.
func RequestTransitions() *Transitions {
	return NewTransitions(map[schema.Status]Edge{
		schema.StatusAwaitingResponse: {
			Next: schema.StatusAwaitingRequesterHomologation1,
			Role: schema.RoleAuditor,
		},
		schema.StatusAwaitingRequesterHomologation1: {
			Next: schema.StatusAwaitingRequestedOrganizationResponse,
			Role: schema.RoleHomologador,
		},
		// the requester may stop waiting for organizations that never answer
		schema.StatusAwaitingRequestedOrganizationResponse: {
			Next: schema.StatusAwaitingRequesterHomologation2,
			Role: schema.RoleHomologador,
		},
		schema.StatusAwaitingRequesterHomologation2: {
			Next: schema.StatusAwaitingRegionalHealthCommand1,
			Role: schema.RoleHomologador,
		},
		schema.StatusAwaitingRegionalHealthCommand1: {
			Next: schema.StatusAwaitingRegionalHealthCommand2,
			Role: schema.RoleChefeSecaoRegional,
		},
		schema.StatusAwaitingRegionalHealthCommand2: {
			Next: schema.StatusAwaitingDirectorateReview,
			Role: schema.RoleChem,
		},
		schema.StatusAwaitingDirectorateReview: {
			Next: schema.StatusAwaitingTravelTicketCosting,
			Role: schema.RoleSubdiretorSaude,
		},
		schema.StatusAwaitingTravelTicketCosting: {
			Next: schema.StatusApproved,
			Role: schema.RoleDras,
		},
		schema.StatusRejectedByDirectorate: {
			Next: schema.StatusAwaitingRequesterHomologation2,
			Role: schema.RoleSubdiretorSaude,
		},
	})
}

// ResponseTransitions is the approval chain inside a receiving organization.
func ResponseTransitions() *Transitions {
	return NewTransitions(map[schema.Status]Edge{
		schema.StatusPending: {
			Next: schema.StatusAwaitingDivisionChiefMedicine3,
			Role: schema.RoleEspecialista,
		},
		schema.StatusAwaitingDivisionChiefMedicine3: {
			Next: schema.StatusApproved,
			Role: schema.RoleChefeDivMedicina,
		},
	})
}

// Resolve returns the status role moves current to. A missing edge or a
// role mismatch is ErrUnauthorized.
func (t *Transitions) Resolve(current schema.Status, role schema.Role) (schema.Status, error) {
	e, ok := t.edges[current]
	if !ok {
		return "", unauthorizedf("no transition out of %s", current)
	}
	if e.Role != role {
		return "", unauthorizedf("%s cannot decide on %s", role, current)
	}
	return e.Next, nil
}

// Awaits reports whether current waits on a decision taken by role.
func (t *Transitions) Awaits(current schema.Status, role schema.Role) bool {
	e, ok := t.edges[current]
	return ok && e.Role == role
}

// Target returns where current leads regardless of the acting role.
func (t *Transitions) Target(current schema.Status) (schema.Status, bool) {
	e, ok := t.edges[current]
	return e.Next, ok
}
