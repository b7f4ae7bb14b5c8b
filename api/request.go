package api

import (
	"io"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fusex/medevac-api/audit"
	"github.com/fusex/medevac-api/schema"
	"github.com/fusex/medevac-api/store"
	"github.com/fusex/medevac-api/utils"
	"github.com/fusex/medevac-api/workflow"
)

type responseDetail struct {
	schema.Response
	StatusLabel string        `json:"status_label"`
	Actions     []audit.Entry `json:"actions"`
}

type requestDetail struct {
	schema.Request
	StatusLabel            string                `json:"status_label"`
	RequestedOrganizations []schema.Organization `json:"requested_organizations"`
	Responses              []responseDetail      `json:"responses"`
	Actions                []audit.Entry         `json:"actions"`
}

// workQueue keeps the requests waiting on a decision of role. Requests still
// awaiting the first response are left to the detail view.
func (s *Server) workQueue(role schema.Role, requests []schema.Request) []schema.Request {
	queue := make([]schema.Request, 0, len(requests))
	for _, r := range requests {
		if r.Status == schema.StatusAwaitingResponse {
			continue
		}
		if s.transitions.Awaits(r.Status, role) {
			queue = append(queue, r)
		}
	}
	return queue
}

// listRequests is the API to list requests visible to the user: those of
// the user's region when the user sits in a region, every request for the
// directorate, and those sent by the user's organization otherwise. By
// default only the requests awaiting the user's role are listed; with
// mine=true, every visible request the user acted on.
func (s *Server) listRequests(c *gin.Context) {
	user := currentUser(c)

	var params struct {
		Mine bool `form:"mine"`
	}
	if err := c.BindQuery(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	filter := store.RequestFilter{}
	switch {
	case user.RegionID != nil && *user.RegionID == schema.DirectorateRegionID:
	case user.RegionID != nil:
		filter.SenderRegionID = *user.RegionID
	case user.OrganizationID != nil:
		filter.SenderID = *user.OrganizationID
	default:
		c.JSON(http.StatusOK, gin.H{"result": []schema.Request{}})
		return
	}
	if params.Mine {
		filter.ActedBy = user.ID
	}

	requests, err := s.store.ListRequests(filter)
	if shouldInterupt(err, c) {
		return
	}
	if !params.Mine {
		requests = s.workQueue(user.Role, requests)
	}

	c.JSON(http.StatusOK, gin.H{
		"result": requests,
	})
}

// createRequest is the API to open an evacuation request
func (s *Server) createRequest(c *gin.Context) {
	logger := log.WithField("api", "createRequest")

	var params struct {
		PatientCPF               string   `form:"patient_cpf" json:"patient_cpf" binding:"required"`
		RequestedOrganizationIDs []string `form:"requested_organization_ids" json:"requested_organization_ids" binding:"required"`
		NeedsCompanion           bool     `form:"needs_companion" json:"needs_companion"`
		CBHPMCode                string   `form:"cbhpm_code" json:"cbhpm_code"`
		OPMECost                 int64    `form:"opme_cost" json:"opme_cost"`
		PSACost                  int64    `form:"psa_cost" json:"psa_cost"`
		Observation              string   `form:"observation" json:"observation"`
	}

	if err := c.ShouldBind(&params); err != nil {
		logger.WithError(err).Error(errorInvalidParameters.Message)
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	user := currentUser(c)
	if user == nil || user.OrganizationID == nil {
		abortWithEncoding(c, http.StatusForbidden, errorForbidden)
		return
	}

	files, err := receiveFiles(c)
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	r, err := s.requests.Create(c, actor(c), workflow.CreateRequest{
		SenderID:                 *user.OrganizationID,
		PatientCPF:               params.PatientCPF,
		RequestedOrganizationIDs: params.RequestedOrganizationIDs,
		NeedsCompanion:           params.NeedsCompanion,
		CBHPMCode:                params.CBHPMCode,
		OPMECost:                 params.OPMECost,
		PSACost:                  params.PSACost,
		Observation:              params.Observation,
		Files:                    files,
	})
	ok, attachmentsError := committed(c, err, errorRequestNotFound)
	if !ok {
		discard(files)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"result":            r,
		"attachments_error": attachmentsError,
	})
}

// detailScope tells which requests a user may open and whether only
// approved responses are shown. Region users see every request; outside the
// directorate only approved responses. Organization users see the requests
// their organization sent.
func detailScope(user *schema.User) (senderID string, approvedOnly bool, ok bool) {
	switch {
	case user == nil:
		return "", false, false
	case user.RegionID != nil:
		return "", *user.RegionID != schema.DirectorateRegionID, true
	case user.OrganizationID != nil:
		return *user.OrganizationID, false, true
	}
	return "", false, false
}

// requestDetail is the API to query a request with its responses and
// the history of both
func (s *Server) requestDetail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("requestID"))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	senderID, approvedOnly, ok := detailScope(currentUser(c))
	if !ok {
		abortWithEncoding(c, http.StatusNotFound, errorRequestNotFound)
		return
	}

	r, err := s.store.GetRequest(id)
	if err == store.ErrNotFound {
		abortWithEncoding(c, http.StatusNotFound, errorRequestNotFound)
		return
	} else if shouldInterupt(err, c) {
		return
	}
	if senderID != "" && r.SenderID != senderID {
		abortWithEncoding(c, http.StatusNotFound, errorRequestNotFound)
		return
	}

	requested, err := s.store.ListOrganizations([]string(r.RequestedOrganizationIDs))
	if shouldInterupt(err, c) {
		return
	}

	detail := requestDetail{
		Request:                *r,
		StatusLabel:            utils.StatusLabel(utils.DefaultLanguage, r.Status),
		RequestedOrganizations: requested,
		Responses:              make([]responseDetail, 0, len(r.Responses)),
	}
	detail.Request.Responses = nil

	sort.SliceStable(r.Responses, func(i, j int) bool {
		return r.Responses[i].Selected && !r.Responses[j].Selected
	})
	for _, resp := range r.Responses {
		if approvedOnly && resp.Status != schema.StatusApproved {
			continue
		}
		responseID := resp.ID
		actions, err := s.historian.History(store.ActionFilter{ResponseID: &responseID})
		if shouldInterupt(err, c) {
			return
		}
		detail.Responses = append(detail.Responses, responseDetail{
			Response:    resp,
			StatusLabel: utils.StatusLabel(utils.DefaultLanguage, resp.Status),
			Actions:     actions,
		})
	}

	detail.Actions, err = s.historian.History(store.ActionFilter{RequestID: &r.ID})
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": detail,
	})
}

// cancelRequest is the API to cancel a request
func (s *Server) cancelRequest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("requestID"))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	var params struct {
		Observation string `form:"observation" json:"observation"`
	}
	if err := c.ShouldBind(&params); err != nil && err != io.EOF {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	err = s.requests.Cancel(c, actor(c), workflow.CancelRequest{
		RequestID:   id,
		Observation: params.Observation,
	})
	if ok, _ := committed(c, err, errorRequestNotFound); !ok {
		return
	}

	s.respondRequest(c, id, "")
}

// advanceRequest is the API to approve or reject the current stage of a
// request
func (s *Server) advanceRequest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("requestID"))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	params, err := bindDecision(c)
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	files, err := receiveFiles(c)
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	err = s.requests.Advance(c, actor(c), workflow.AdvanceRequest{
		RequestID:                 id,
		Favorable:                 params.Favorable,
		Observation:               params.Observation,
		Files:                     files,
		TicketCosts:               params.ticketCosts(),
		CancelUnfinishedResponses: params.CancelUnfinishedResponses,
	})
	ok, attachmentsError := committed(c, err, errorRequestNotFound)
	if !ok {
		discard(files)
		return
	}

	s.respondRequest(c, id, attachmentsError)
}

// selectResponse is the API to choose the destination of a request
func (s *Server) selectResponse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("requestID"))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	var params struct {
		ResponseID  uuid.UUID `json:"response_id" binding:"required"`
		Observation string    `json:"observation"`
	}
	if err := c.ShouldBindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	resp, err := s.store.GetResponse(params.ResponseID)
	if err == store.ErrNotFound {
		abortWithEncoding(c, http.StatusNotFound, errorResponseNotFound)
		return
	} else if shouldInterupt(err, c) {
		return
	}
	if resp.RequestID != id {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidDecision.withDetail("response belongs to another request"))
		return
	}

	err = s.responses.Select(c, actor(c), workflow.SelectResponse{
		ResponseID:  params.ResponseID,
		Observation: params.Observation,
	})
	if ok, _ := committed(c, err, errorResponseNotFound); !ok {
		return
	}

	s.respondRequest(c, id, "")
}

func (s *Server) respondRequest(c *gin.Context, id uuid.UUID, attachmentsError string) {
	r, err := s.store.GetRequest(id)
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":            r,
		"attachments_error": attachmentsError,
	})
}
