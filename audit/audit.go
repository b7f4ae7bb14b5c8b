// Package audit writes and reads the append-only trail of actions taken
// against requests and responses.
package audit

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/fusex/medevac-api/schema"
	"github.com/fusex/medevac-api/store"
)

const logPrefix = "audit"

var ErrEmptyTarget = errors.New("audit entry without target")

type TargetKind int

const (
	TargetRequest TargetKind = iota + 1
	TargetResponse
)

// Target is the single request or response an entry documents.
type Target struct {
	Kind TargetKind
	ID   uuid.UUID
}

func RequestTarget(id uuid.UUID) Target {
	return Target{Kind: TargetRequest, ID: id}
}

func ResponseTarget(id uuid.UUID) Target {
	return Target{Kind: TargetResponse, ID: id}
}

// Intent is an entry waiting to be written in the same transaction as the
// change it documents.
type Intent struct {
	Actor       uuid.UUID
	Target      Target
	Kind        schema.ActionKind
	Observation string
	Files       []string
}

// Writer is the part of a store transaction the trail needs.
type Writer interface {
	CreateActionLog(l *schema.ActionLog) error
}

// Record writes one entry through w, which must be a transaction handle.
func Record(w Writer, in Intent) (*schema.ActionLog, error) {
	entry := &schema.ActionLog{
		ID:          uuid.New(),
		UserID:      in.Actor,
		Action:      in.Kind,
		Observation: in.Observation,
		Files:       append([]string{}, in.Files...),
	}

	id := in.Target.ID
	switch in.Target.Kind {
	case TargetRequest:
		entry.RequestID = &id
	case TargetResponse:
		entry.ResponseID = &id
	default:
		return nil, ErrEmptyTarget
	}
	if id == uuid.Nil {
		return nil, ErrEmptyTarget
	}

	if err := w.CreateActionLog(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Entry is an action log enriched with who took it.
type Entry struct {
	schema.ActionLog
	UserName         string `json:"user_name"`
	UserRole         string `json:"user_role"`
	UserOrganization string `json:"user_organization"`
}

// Source is where the history is read from.
type Source interface {
	ListActions(filter store.ActionFilter) ([]schema.ActionLog, error)
	GetUser(id uuid.UUID) (*schema.User, error)
}

// RoleLabeler renders a role for display.
type RoleLabeler func(schema.Role) string

// PlainRoleLabel spells a role with spaces instead of underscores.
func PlainRoleLabel(r schema.Role) string {
	return strings.ReplaceAll(string(r), "_", " ")
}

// Historian reconstructs the history of a request or a response.
type Historian struct {
	source Source
	label  RoleLabeler
}

func NewHistorian(source Source, label RoleLabeler) *Historian {
	if label == nil {
		label = PlainRoleLabel
	}
	return &Historian{
		source: source,
		label:  label,
	}
}

// History returns the entries matching filter, newest first, each with the
// actor's name, role label and organization or region name.
func (h *Historian) History(filter store.ActionFilter) ([]Entry, error) {
	actions, err := h.source.ListActions(filter)
	if err != nil {
		return nil, err
	}

	users := map[uuid.UUID]*schema.User{}
	entries := make([]Entry, 0, len(actions))
	for _, a := range actions {
		u, ok := users[a.UserID]
		if !ok {
			u, err = h.source.GetUser(a.UserID)
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				return nil, err
			}
			if u == nil {
				log.WithFields(log.Fields{
					"prefix":  logPrefix,
					"user_id": a.UserID,
				}).Warn("action log refers to an unknown user")
			}
			users[a.UserID] = u
		}

		e := Entry{ActionLog: a}
		if u != nil {
			e.UserName = u.Name
			e.UserRole = h.label(u.Role)
			e.UserOrganization = u.Affiliation()
		}
		entries = append(entries, e)
	}

	return entries, nil
}
