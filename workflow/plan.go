package workflow

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/fusex/medevac-api/audit"
	"github.com/fusex/medevac-api/schema"
	"github.com/fusex/medevac-api/store"
)

// mutation is one entity write of a workflow step.
type mutation func(tx store.Tx) error

// plan is everything a workflow step writes. It is computed from the loaded
// aggregate before anything is written, then applied in one transaction.
type plan struct {
	mutations []mutation
	entries   []audit.Intent
}

func (p *plan) do(m mutation) {
	p.mutations = append(p.mutations, m)
}

func (p *plan) record(in audit.Intent) {
	p.entries = append(p.entries, in)
}

// apply writes the mutations then the audit entries. A plan without any
// entry is refused so no status change commits undocumented.
func (p *plan) apply(tx store.Tx) error {
	if len(p.entries) == 0 {
		return fmt.Errorf("%w: workflow step without audit entry", ErrTransaction)
	}
	for _, m := range p.mutations {
		if err := m(tx); err != nil {
			return err
		}
	}
	for _, in := range p.entries {
		if _, err := audit.Record(tx, in); err != nil {
			return err
		}
	}
	return nil
}

func setRequestStatus(id uuid.UUID, status schema.Status) mutation {
	return func(tx store.Tx) error {
		return tx.UpdateRequestStatus(id, status)
	}
}

func touchRequest(id uuid.UUID) mutation {
	return func(tx store.Tx) error {
		return tx.TouchRequest(id)
	}
}

func createRequest(r *schema.Request) mutation {
	return func(tx store.Tx) error {
		return tx.CreateRequest(r)
	}
}

func createResponse(r *schema.Response) mutation {
	return func(tx store.Tx) error {
		return tx.CreateResponse(r)
	}
}

func setResponseStatus(ids []uuid.UUID, status schema.Status) mutation {
	return func(tx store.Tx) error {
		return tx.UpdateResponseStatus(ids, status)
	}
}

func setResponseSelection(id uuid.UUID, selected bool) mutation {
	return func(tx store.Tx) error {
		return tx.UpdateResponseSelection(id, selected)
	}
}

func setTicketCost(id uuid.UUID, cost int64) mutation {
	return func(tx store.Tx) error {
		return tx.UpdateResponseTicketCost(id, cost)
	}
}
