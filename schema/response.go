package schema

import (
	"time"

	"github.com/google/uuid"
)

// Response is one receiving organization's reply to a request.
type Response struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key" sql:"default:uuid_generate_v4()"`
	RequestID     uuid.UUID `json:"request_id" gorm:"type:uuid;not null;index"`
	ReceiverID    string    `json:"receiver_id" gorm:"not null;index"`
	Status        Status    `json:"status" gorm:"type:text;not null"`
	Selected      bool      `json:"selected" gorm:"not null;default:false"`
	OPMECost      int64     `json:"opme_cost"`
	ProcedureCost int64     `json:"procedure_cost"`
	TicketCost    int64     `json:"ticket_cost"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
