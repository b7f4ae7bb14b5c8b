package workflow

import (
	"context"

	"github.com/google/uuid"

	"github.com/fusex/medevac-api/audit"
	"github.com/fusex/medevac-api/permission"
	"github.com/fusex/medevac-api/schema"
	"github.com/fusex/medevac-api/store"
)

// RequestOrchestrator creates, cancels and advances requests.
type RequestOrchestrator struct {
	base
	transitions *Transitions
}

var _ RequestService = (*RequestOrchestrator)(nil)

func NewRequestOrchestrator(uow store.UnitOfWork, authority *permission.Authority, transitions *Transitions, files FileStore) *RequestOrchestrator {
	return &RequestOrchestrator{
		base: base{
			uow:       uow,
			authority: authority,
			files:     files,
		},
		transitions: transitions,
	}
}

// Create opens a request in its initial status with a creation entry.
func (o *RequestOrchestrator) Create(ctx context.Context, actor Actor, cmd CreateRequest) (*schema.Request, error) {
	if err := o.admit(actor, permission.RequestsCreate, cmd); err != nil {
		return nil, err
	}

	r := &schema.Request{
		ID:                       uuid.New(),
		Status:                   schema.StatusAwaitingResponse,
		SenderID:                 cmd.SenderID,
		PatientCPF:               cmd.PatientCPF,
		RequestedOrganizationIDs: append([]string{}, cmd.RequestedOrganizationIDs...),
		NeedsCompanion:           cmd.NeedsCompanion,
		CBHPMCode:                cmd.CBHPMCode,
		OPMECost:                 cmd.OPMECost,
		PSACost:                  cmd.PSACost,
	}

	err := trace(ctx, "CreateRequest", map[string]string{"request_id": r.ID.String()}, func(ctx context.Context) error {
		return o.commit(ctx, func(tx store.Tx) (*plan, error) {
			if _, err := tx.GetOrganization(cmd.SenderID); err != nil {
				return nil, lookup(err, "organization", cmd.SenderID)
			}
			for _, id := range cmd.RequestedOrganizationIDs {
				if _, err := tx.GetOrganization(id); err != nil {
					if err := lookup(err, "organization", id); !isNotFound(err) {
						return nil, err
					}
					return nil, validationf("unknown requested organization %q", id)
				}
			}

			p := &plan{}
			p.do(createRequest(r))
			p.record(audit.Intent{
				Actor:       actor.UserID,
				Target:      audit.RequestTarget(r.ID),
				Kind:        schema.ActionCreation,
				Observation: cmd.Observation,
				Files:       o.refs(r.ID, cmd.Files),
			})
			return p, nil
		})
	})
	if err != nil {
		return nil, err
	}

	return r, o.place(ctx, r.ID, cmd.Files)
}

// Cancel closes a non-terminal request.
func (o *RequestOrchestrator) Cancel(ctx context.Context, actor Actor, cmd CancelRequest) error {
	if err := o.admit(actor, permission.RequestsDelete, cmd); err != nil {
		return err
	}

	return trace(ctx, "CancelRequest", map[string]string{"request_id": cmd.RequestID.String()}, func(ctx context.Context) error {
		return o.commit(ctx, func(tx store.Tx) (*plan, error) {
			r, err := tx.GetRequest(cmd.RequestID)
			if err != nil {
				return nil, lookup(err, "request", cmd.RequestID)
			}
			if r.Status.IsTerminal() {
				return nil, validationf("request %s is already %s", r.ID, r.Status)
			}

			p := &plan{}
			p.do(setRequestStatus(r.ID, schema.StatusCancelled))
			p.record(audit.Intent{
				Actor:       actor.UserID,
				Target:      audit.RequestTarget(r.ID),
				Kind:        schema.ActionCancellation,
				Observation: cmd.Observation,
			})
			return p, nil
		})
	})
}

// Advance applies a decision on the current stage of a request.
func (o *RequestOrchestrator) Advance(ctx context.Context, actor Actor, cmd AdvanceRequest) error {
	if err := o.admit(actor, permission.RequestsUpdate, cmd); err != nil {
		return err
	}

	err := trace(ctx, "AdvanceRequest", map[string]string{"request_id": cmd.RequestID.String()}, func(ctx context.Context) error {
		return o.commit(ctx, func(tx store.Tx) (*plan, error) {
			r, err := tx.GetRequest(cmd.RequestID)
			if err != nil {
				return nil, lookup(err, "request", cmd.RequestID)
			}
			next, err := o.transitions.Resolve(r.Status, actor.Role)
			if err != nil {
				return nil, err
			}
			if cmd.Favorable {
				return o.approve(tx, actor, r, next, cmd)
			}
			return o.reject(actor, r, cmd)
		})
	})
	if err != nil {
		return err
	}

	return o.place(ctx, cmd.RequestID, cmd.Files)
}

func (o *RequestOrchestrator) reject(actor Actor, r *schema.Request, cmd AdvanceRequest) (*plan, error) {
	p := &plan{}

	if actor.Role.IsHighLevelReviewer() {
		selected := r.SelectedResponse()
		if selected == nil {
			return nil, validationf("request %s has no selected response", r.ID)
		}
		next, ok := o.transitions.Target(schema.StatusRejectedByDirectorate)
		if !ok {
			return nil, validationf("no transition out of %s", schema.StatusRejectedByDirectorate)
		}
		p.do(setResponseSelection(selected.ID, false))
		p.do(setResponseStatus([]uuid.UUID{selected.ID}, schema.StatusRejectedByDirectorate))
		p.do(setRequestStatus(r.ID, next))
	} else {
		p.do(setRequestStatus(r.ID, schema.StatusRejected))
	}

	p.record(audit.Intent{
		Actor:       actor.UserID,
		Target:      audit.RequestTarget(r.ID),
		Kind:        schema.ActionRejection,
		Observation: cmd.Observation,
		Files:       o.refs(r.ID, cmd.Files),
	})
	return p, nil
}

func (o *RequestOrchestrator) approve(tx store.Reader, actor Actor, r *schema.Request, next schema.Status, cmd AdvanceRequest) (*plan, error) {
	p := &plan{}

	switch r.Status {
	case schema.StatusAwaitingRegionalHealthCommand2:
		same, err := sameRegion(tx, r)
		if err != nil {
			return nil, err
		}
		if same {
			next = schema.StatusApproved
		}

	case schema.StatusAwaitingRequesterHomologation2:
		// the way forward from here is Select
		if r.SelectedResponse() == nil {
			return nil, validationf("request %s has no selected response", r.ID)
		}

	case schema.StatusAwaitingRequesterHomologation1:
		for _, id := range r.RequestedOrganizationIDs {
			p.do(createResponse(&schema.Response{
				ID:         uuid.New(),
				RequestID:  r.ID,
				ReceiverID: id,
				Status:     schema.StatusPending,
			}))
		}
	}

	if cmd.CancelUnfinishedResponses {
		var unfinished []uuid.UUID
		for _, resp := range r.Responses {
			if !resp.Status.IsTerminalResponse() {
				unfinished = append(unfinished, resp.ID)
			}
		}
		if len(unfinished) > 0 {
			p.do(setResponseStatus(unfinished, schema.StatusCancelled))
		}
	}

	if r.Status == schema.StatusAwaitingTravelTicketCosting {
		if len(cmd.TicketCosts) == 0 {
			return nil, validationf("ticket costs are required to approve request %s", r.ID)
		}
		for _, tc := range cmd.TicketCosts {
			if r.Response(tc.ResponseID) == nil {
				return nil, validationf("response %s does not belong to request %s", tc.ResponseID, r.ID)
			}
			p.do(setTicketCost(tc.ResponseID, tc.Cost))
			p.record(audit.Intent{
				Actor:       actor.UserID,
				Target:      audit.ResponseTarget(tc.ResponseID),
				Kind:        schema.ActionBudgeting,
				Observation: cmd.Observation,
				Files:       o.refs(r.ID, cmd.Files),
			})
		}
	} else {
		p.record(audit.Intent{
			Actor:       actor.UserID,
			Target:      audit.RequestTarget(r.ID),
			Kind:        schema.ActionApproval,
			Observation: cmd.Observation,
			Files:       o.refs(r.ID, cmd.Files),
		})
	}

	p.do(setRequestStatus(r.ID, next))
	return p, nil
}

// sameRegion reports whether the selected response's receiver sits in the
// sender's region.
func sameRegion(tx store.Reader, r *schema.Request) (bool, error) {
	selected := r.SelectedResponse()
	if selected == nil {
		return false, validationf("request %s has no selected response", r.ID)
	}
	receiver, err := tx.GetOrganization(selected.ReceiverID)
	if err != nil {
		return false, lookup(err, "organization", selected.ReceiverID)
	}
	sender, err := tx.GetOrganization(r.SenderID)
	if err != nil {
		return false, lookup(err, "organization", r.SenderID)
	}
	return receiver.RegionID == sender.RegionID, nil
}
