package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/fusex/medevac-api/schema"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record conflicts with an existing one")
)

// Reader loads the aggregates the workflow decides on.
type Reader interface {
	// GetRequest returns the request with its responses ordered by creation.
	GetRequest(id uuid.UUID) (*schema.Request, error)
	GetResponse(id uuid.UUID) (*schema.Response, error)
	GetOrganization(id string) (*schema.Organization, error)
	// GetUser returns the user with organization and region loaded.
	GetUser(id uuid.UUID) (*schema.User, error)
}

// Tx is the transaction-scoped handle handed to a unit of work. Nothing
// written through it is visible before the unit of work commits.
type Tx interface {
	Reader

	CreateRequest(r *schema.Request) error
	UpdateRequestStatus(id uuid.UUID, status schema.Status) error
	TouchRequest(id uuid.UUID) error

	CreateResponse(r *schema.Response) error
	UpdateResponseStatus(ids []uuid.UUID, status schema.Status) error
	// UpdateResponseSelection flags a response without touching updated_at.
	UpdateResponseSelection(id uuid.UUID, selected bool) error
	UpdateResponseTicketCost(id uuid.UUID, cost int64) error

	CreateActionLog(l *schema.ActionLog) error
}

// UnitOfWork runs fn in one transaction: every write made through the Tx
// commits together when fn returns nil, none of them otherwise.
type UnitOfWork interface {
	RunInTransaction(ctx context.Context, fn func(tx Tx) error) error
}

// RequestFilter narrows ListRequests. Empty fields do not filter.
type RequestFilter struct {
	SenderID       string
	SenderRegionID string
	ActedBy        uuid.UUID
}

// ActionFilter selects entries scoped to RequestID or to ResponseID.
type ActionFilter struct {
	RequestID  *uuid.UUID
	ResponseID *uuid.UUID
}

// EvacuationCore is the evacuation datastore
type EvacuationCore interface {
	Ping() error

	Reader
	UnitOfWork

	ListRequests(filter RequestFilter) ([]schema.Request, error)
	ListReceivedResponses(receiverID string) ([]schema.Response, error)
	ListActions(filter ActionFilter) ([]schema.ActionLog, error)
	ListOrganizations(ids []string) ([]schema.Organization, error)
}
