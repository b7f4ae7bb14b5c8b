package workflow

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fusex/medevac-api/audit"
	"github.com/fusex/medevac-api/permission"
	"github.com/fusex/medevac-api/schema"
	"github.com/fusex/medevac-api/store"
)

// ResponseOrchestrator selects, advances and overrides responses, and moves
// the parent request once every response is finished.
type ResponseOrchestrator struct {
	base
	requests  *Transitions
	responses *Transitions
}

var _ ResponseService = (*ResponseOrchestrator)(nil)

func NewResponseOrchestrator(uow store.UnitOfWork, authority *permission.Authority, requests, responses *Transitions, files FileStore) *ResponseOrchestrator {
	return &ResponseOrchestrator{
		base: base{
			uow:       uow,
			authority: authority,
			files:     files,
		},
		requests:  requests,
		responses: responses,
	}
}

// load returns a response together with its request and siblings.
func load(tx store.Reader, id uuid.UUID) (*schema.Response, *schema.Request, error) {
	resp, err := tx.GetResponse(id)
	if err != nil {
		return nil, nil, lookup(err, "response", id)
	}
	r, err := tx.GetRequest(resp.RequestID)
	if err != nil {
		return nil, nil, lookup(err, "request", resp.RequestID)
	}
	return resp, r, nil
}

// Select marks an approved response as the destination of its request and
// moves the request on. The response's updated_at is left alone.
func (o *ResponseOrchestrator) Select(ctx context.Context, actor Actor, cmd SelectResponse) error {
	if err := o.admit(actor, permission.ResponsesSelect, cmd); err != nil {
		return err
	}

	return trace(ctx, "SelectResponse", map[string]string{"response_id": cmd.ResponseID.String()}, func(ctx context.Context) error {
		return o.commit(ctx, func(tx store.Tx) (*plan, error) {
			resp, r, err := load(tx, cmd.ResponseID)
			if err != nil {
				return nil, err
			}

			next, err := o.requests.Resolve(r.Status, actor.Role)
			if err != nil {
				return nil, err
			}
			if r.Status != schema.StatusAwaitingRequesterHomologation2 {
				return nil, validationf("request %s is %s, not awaiting a selection", r.ID, r.Status)
			}
			if resp.Status != schema.StatusApproved {
				return nil, validationf("response %s is %s, not approved", resp.ID, resp.Status)
			}
			if selected := r.SelectedResponse(); selected != nil {
				return nil, validationf("request %s already selected response %s", r.ID, selected.ID)
			}

			p := &plan{}
			p.do(setResponseSelection(resp.ID, true))
			p.do(setRequestStatus(r.ID, next))
			p.record(audit.Intent{
				Actor:       actor.UserID,
				Target:      audit.RequestTarget(r.ID),
				Kind:        schema.ActionSelection,
				Observation: cmd.Observation,
			})
			return p, nil
		})
	})
}

// Advance applies a decision on the current stage of a response. The last
// response to finish moves the request to the second homologation.
func (o *ResponseOrchestrator) Advance(ctx context.Context, actor Actor, cmd AdvanceResponse) error {
	if err := o.admit(actor, permission.RequestsUpdate, cmd); err != nil {
		return err
	}

	err := trace(ctx, "AdvanceResponse", map[string]string{"response_id": cmd.ResponseID.String()}, func(ctx context.Context) error {
		return o.commit(ctx, func(tx store.Tx) (*plan, error) {
			resp, r, err := load(tx, cmd.ResponseID)
			if err != nil {
				return nil, err
			}
			if resp.Status.IsTerminalResponse() {
				return nil, validationf("response %s is already %s", resp.ID, resp.Status)
			}

			// counted before this response is written: it is the last one
			// when every other sibling is already terminal
			terminal := 0
			for _, sibling := range r.Responses {
				if sibling.Status.IsTerminalResponse() {
					terminal++
				}
			}
			finished := terminal == len(r.Responses)-1

			p := &plan{}
			kind := schema.ActionRejection
			next := schema.StatusRejected
			if cmd.Favorable {
				next, err = o.responses.Resolve(resp.Status, actor.Role)
				if err != nil {
					return nil, err
				}
				kind = schema.ActionApproval
			}

			p.do(setResponseStatus([]uuid.UUID{resp.ID}, next))
			p.record(audit.Intent{
				Actor:       actor.UserID,
				Target:      audit.ResponseTarget(resp.ID),
				Kind:        kind,
				Observation: cmd.Observation,
				Files:       o.refs(resp.ID, cmd.Files),
			})

			// a request the requester already moved on, or cancelled, stays put
			if next.IsTerminal() && finished && r.Status == schema.StatusAwaitingRequestedOrganizationResponse {
				p.do(setRequestStatus(r.ID, schema.StatusAwaitingRequesterHomologation2))
			} else {
				p.do(touchRequest(r.ID))
			}
			return p, nil
		})
	})
	if err != nil {
		return err
	}

	return o.place(ctx, cmd.ResponseID, cmd.Files)
}

// OverrideStatus sets a response's status without a transition check and
// without an audit entry.
func (o *ResponseOrchestrator) OverrideStatus(ctx context.Context, actor Actor, cmd OverrideResponseStatus) error {
	if err := o.admit(actor, permission.RequestsUpdate, cmd); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"user_id":     actor.UserID,
		"response_id": cmd.ResponseID,
		"status":      cmd.Status,
	}).Warn("response status overridden")

	return trace(ctx, "OverrideResponseStatus", map[string]string{"response_id": cmd.ResponseID.String()}, func(ctx context.Context) error {
		err := o.uow.RunInTransaction(ctx, func(tx store.Tx) error {
			if _, err := tx.GetResponse(cmd.ResponseID); err != nil {
				return lookup(err, "response", cmd.ResponseID)
			}
			return tx.UpdateResponseStatus([]uuid.UUID{cmd.ResponseID}, cmd.Status)
		})
		return classify(err)
	})
}
