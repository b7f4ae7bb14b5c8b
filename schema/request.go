package schema

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Request is one evacuation case submitted by a requesting organization.
type Request struct {
	ID                       uuid.UUID      `json:"id" gorm:"type:uuid;primary_key" sql:"default:uuid_generate_v4()"`
	Status                   Status         `json:"status" gorm:"type:text;not null;index"`
	SenderID                 string         `json:"sender_id" gorm:"not null;index"`
	PatientCPF               string         `json:"patient_cpf" gorm:"not null"`
	RequestedOrganizationIDs pq.StringArray `json:"requested_organization_ids" gorm:"type:text[];not null"`
	NeedsCompanion           bool           `json:"needs_companion"`
	CBHPMCode                string         `json:"cbhpm_code"`
	OPMECost                 int64          `json:"opme_cost"`
	PSACost                  int64          `json:"psa_cost"`
	Responses                []Response     `json:"responses,omitempty" gorm:"foreignkey:RequestID"`
	CreatedAt                time.Time      `json:"created_at"`
	UpdatedAt                time.Time      `json:"updated_at"`
}

// SelectedResponse returns the response chosen as destination, if any.
func (r *Request) SelectedResponse() *Response {
	for i := range r.Responses {
		if r.Responses[i].Selected {
			return &r.Responses[i]
		}
	}
	return nil
}

// Response returns the response with the given id when it belongs to r.
func (r *Request) Response(id uuid.UUID) *Response {
	for i := range r.Responses {
		if r.Responses[i].ID == id {
			return &r.Responses[i]
		}
	}
	return nil
}
