package schema

// Status is the workflow state shared by requests and responses.
type Status string

const (
	StatusAwaitingResponse                      Status = "AWAITING_RESPONSE"
	StatusAwaitingRequesterHomologation1        Status = "AWAITING_REQUESTER_HOMOLOGATION_1"
	StatusAwaitingRequestedOrganizationResponse Status = "AWAITING_REQUESTED_ORGANIZATION_RESPONSE"
	StatusAwaitingRegionalHealthCommand1        Status = "AWAITING_REGIONAL_HEALTH_COMMAND_1"
	StatusAwaitingRegionalHealthCommand2        Status = "AWAITING_REGIONAL_HEALTH_COMMAND_2"
	StatusAwaitingDirectorateReview             Status = "AWAITING_DIRECTORATE_REVIEW"
	StatusAwaitingTravelTicketCosting           Status = "AWAITING_TRAVEL_TICKET_COSTING"
	StatusAwaitingRequesterHomologation2        Status = "AWAITING_REQUESTER_HOMOLOGATION_2"
	StatusRejectedByDirectorate                 Status = "REJECTED_BY_DIRECTORATE"

	StatusPending                         Status = "PENDING"
	StatusAwaitingDivisionChiefMedicine3 Status = "AWAITING_DIVISION_CHIEF_MEDICINE_3"

	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

// RequestStatuses lists every status a request can hold.
var RequestStatuses = []Status{
	StatusAwaitingResponse,
	StatusAwaitingRequesterHomologation1,
	StatusAwaitingRequestedOrganizationResponse,
	StatusAwaitingRegionalHealthCommand1,
	StatusAwaitingRegionalHealthCommand2,
	StatusAwaitingDirectorateReview,
	StatusAwaitingTravelTicketCosting,
	StatusAwaitingRequesterHomologation2,
	StatusRejectedByDirectorate,
	StatusApproved,
	StatusRejected,
	StatusCancelled,
}

// ResponseStatuses lists every status a response can hold. A response
// unselected by the directorate keeps REJECTED_BY_DIRECTORATE.
var ResponseStatuses = []Status{
	StatusPending,
	StatusAwaitingDivisionChiefMedicine3,
	StatusApproved,
	StatusRejected,
	StatusRejectedByDirectorate,
	StatusCancelled,
}

// IsTerminal reports whether no further transition leaves the status.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// IsTerminalResponse is IsTerminal for responses, where a directorate
// rejection also closes the response.
func (s Status) IsTerminalResponse() bool {
	return s.IsTerminal() || s == StatusRejectedByDirectorate
}

// IsResponseStatus reports whether s belongs to ResponseStatuses.
func (s Status) IsResponseStatus() bool {
	for _, r := range ResponseStatuses {
		if r == s {
			return true
		}
	}
	return false
}
