// Package workflow decides and commits every status change of requests and
// responses. Each operation checks the actor's capability, loads the
// aggregate inside a unit of work, plans its writes together with their
// audit entries and applies them atomically. Attachments are placed only
// after the commit.
package workflow

import (
	"context"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fusex/medevac-api/permission"
	"github.com/fusex/medevac-api/schema"
	"github.com/fusex/medevac-api/store"
	"github.com/fusex/medevac-api/tracing"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "workflow")
}

// RequestService runs the decisions taken on a request.
type RequestService interface {
	Create(ctx context.Context, actor Actor, cmd CreateRequest) (*schema.Request, error)
	Cancel(ctx context.Context, actor Actor, cmd CancelRequest) error
	Advance(ctx context.Context, actor Actor, cmd AdvanceRequest) error
}

// ResponseService runs the decisions taken on a response.
type ResponseService interface {
	Select(ctx context.Context, actor Actor, cmd SelectResponse) error
	Advance(ctx context.Context, actor Actor, cmd AdvanceResponse) error
	OverrideStatus(ctx context.Context, actor Actor, cmd OverrideResponseStatus) error
}

// base carries what both orchestrators share.
type base struct {
	uow       store.UnitOfWork
	authority *permission.Authority
	files     FileStore
}

// admit checks the principal, the capability and the payload, in that
// order, before anything is read.
func (b *base) admit(actor Actor, capability permission.Capability, cmd interface{ Validate() error }) error {
	if err := actor.validate(); err != nil {
		return err
	}
	if !b.authority.Authorize(actor.Role, capability) {
		return unauthorizedf("%s lacks %s", actor.Role, capability)
	}
	return cmd.Validate()
}

// trace runs fn inside a span named after the operation.
func trace(ctx context.Context, operation string, attrs map[string]string, fn func(ctx context.Context) error) error {
	ctx, span := tracing.StartSpan(ctx, "workflow."+operation)
	span.WithAttributes(attrs)

	err := fn(ctx)
	tracing.EndSpan(span, err)
	return err
}

// commit runs p in one unit of work once build has planned it.
func (b *base) commit(ctx context.Context, build func(tx store.Tx) (*plan, error)) error {
	err := b.uow.RunInTransaction(ctx, func(tx store.Tx) error {
		p, err := build(tx)
		if err != nil {
			return err
		}
		return p.apply(tx)
	})
	return classify(err)
}

// refs are the audit references of files kept under owner.
func (b *base) refs(owner uuid.UUID, files []Attachment) []string {
	if len(files) == 0 || b.files == nil {
		return []string{}
	}
	refs := make([]string, 0, len(files))
	for _, f := range files {
		refs = append(refs, b.files.Ref(owner, f.Name))
	}
	return refs
}

// place moves committed attachments. The step is already visible when this
// fails, so the failure is reported, never rolled back.
func (b *base) place(ctx context.Context, owner uuid.UUID, files []Attachment) error {
	if len(files) == 0 || b.files == nil {
		return nil
	}
	if err := b.files.Place(ctx, owner, files); err != nil {
		log.WithFields(logrus.Fields{
			"owner": owner,
			"files": len(files),
			"error": err,
		}).Error("place attachments after commit")
		sentry.CaptureException(err)
		return &PlacementError{Owner: owner, Err: err}
	}
	return nil
}
