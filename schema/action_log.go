package schema

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ActionKind is what an audit entry documents.
type ActionKind string

const (
	ActionCreation     ActionKind = "CREATION"
	ActionApproval     ActionKind = "APPROVAL"
	ActionRejection    ActionKind = "REJECTION"
	ActionCancellation ActionKind = "CANCELLATION"
	ActionSelection    ActionKind = "SELECTION"
	ActionBudgeting    ActionKind = "BUDGETING"
)

// ActionLog is an append-only audit entry. Exactly one of RequestID and
// ResponseID is set.
type ActionLog struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key" sql:"default:uuid_generate_v4()"`
	UserID      uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	RequestID   *uuid.UUID     `json:"request_id,omitempty" gorm:"type:uuid;index"`
	ResponseID  *uuid.UUID     `json:"response_id,omitempty" gorm:"type:uuid;index"`
	Action      ActionKind     `json:"action" gorm:"type:text;not null"`
	Observation string         `json:"observation"`
	Files       pq.StringArray `json:"files" gorm:"type:text[]"`
	CreatedAt   time.Time      `json:"created_at"`
}
