package workflow

import (
	"context"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/fusex/medevac-api/schema"
)

// Actor is the acting principal as supplied by the identity provider.
type Actor struct {
	UserID uuid.UUID
	Role   schema.Role
}

func (a Actor) validate() error {
	if a.UserID == uuid.Nil || a.Role == "" {
		return ErrUnauthenticated
	}
	return nil
}

// Attachment is an uploaded file waiting in a temporary location.
type Attachment struct {
	TempPath string
	Name     string
}

// FileStore keeps attachments under the id of the request or response they
// were sent with.
type FileStore interface {
	// Ref is the reference recorded in the audit trail for name under owner.
	Ref(owner uuid.UUID, name string) string
	// Place moves files to their permanent location under owner.
	Place(ctx context.Context, owner uuid.UUID, files []Attachment) error
}

func validateFiles(files []Attachment) error {
	for _, f := range files {
		if f.TempPath == "" || f.Name == "" {
			return validationf("attachment without path or name")
		}
		if f.Name != filepath.Base(f.Name) || f.Name == "." || f.Name == ".." {
			return validationf("attachment name %q", f.Name)
		}
	}
	return nil
}

// CreateRequest opens an evacuation case.
type CreateRequest struct {
	SenderID                 string
	PatientCPF               string
	RequestedOrganizationIDs []string
	NeedsCompanion           bool
	CBHPMCode                string
	OPMECost                 int64
	PSACost                  int64
	Observation              string
	Files                    []Attachment
}

func (c CreateRequest) Validate() error {
	if c.SenderID == "" {
		return validationf("sender organization is required")
	}
	if c.PatientCPF == "" {
		return validationf("patient is required")
	}
	if len(c.RequestedOrganizationIDs) == 0 {
		return validationf("at least one requested organization is required")
	}
	seen := map[string]bool{}
	for _, id := range c.RequestedOrganizationIDs {
		if id == "" || seen[id] {
			return validationf("requested organization %q is empty or repeated", id)
		}
		seen[id] = true
	}
	if c.OPMECost < 0 || c.PSACost < 0 {
		return validationf("costs cannot be negative")
	}
	return validateFiles(c.Files)
}

// CancelRequest closes a case from any non-terminal status.
type CancelRequest struct {
	RequestID   uuid.UUID
	Observation string
}

func (c CancelRequest) Validate() error {
	if c.RequestID == uuid.Nil {
		return validationf("request id is required")
	}
	return nil
}

// TicketCost is the travel cost of one response.
type TicketCost struct {
	ResponseID uuid.UUID
	Cost       int64
}

// AdvanceRequest is a decision on the current stage of a request.
type AdvanceRequest struct {
	RequestID                 uuid.UUID
	Favorable                 bool
	Observation               string
	Files                     []Attachment
	TicketCosts               []TicketCost
	CancelUnfinishedResponses bool
}

func (c AdvanceRequest) Validate() error {
	if c.RequestID == uuid.Nil {
		return validationf("request id is required")
	}
	seen := map[uuid.UUID]bool{}
	for _, tc := range c.TicketCosts {
		if tc.ResponseID == uuid.Nil || seen[tc.ResponseID] {
			return validationf("ticket cost response %s is empty or repeated", tc.ResponseID)
		}
		if tc.Cost < 0 {
			return validationf("ticket cost cannot be negative")
		}
		seen[tc.ResponseID] = true
	}
	return validateFiles(c.Files)
}

// SelectResponse picks the destination of a request among its responses.
type SelectResponse struct {
	ResponseID  uuid.UUID
	Observation string
}

func (c SelectResponse) Validate() error {
	if c.ResponseID == uuid.Nil {
		return validationf("response id is required")
	}
	return nil
}

// AdvanceResponse is a decision on the current stage of a response.
type AdvanceResponse struct {
	ResponseID  uuid.UUID
	Favorable   bool
	Observation string
	Files       []Attachment
}

func (c AdvanceResponse) Validate() error {
	if c.ResponseID == uuid.Nil {
		return validationf("response id is required")
	}
	return validateFiles(c.Files)
}

// OverrideResponseStatus forces a response into Status.
type OverrideResponseStatus struct {
	ResponseID uuid.UUID
	Status     schema.Status
}

func (c OverrideResponseStatus) Validate() error {
	if c.ResponseID == uuid.Nil {
		return validationf("response id is required")
	}
	if !c.Status.IsResponseStatus() {
		return validationf("unknown response status %q", c.Status)
	}
	return nil
}
