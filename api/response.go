package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fusex/medevac-api/schema"
	"github.com/fusex/medevac-api/store"
	"github.com/fusex/medevac-api/utils"
	"github.com/fusex/medevac-api/workflow"
)

// listResponses is the API to list the responses addressed to the user's
// organization
func (s *Server) listResponses(c *gin.Context) {
	user := currentUser(c)
	if user.OrganizationID == nil {
		c.JSON(http.StatusOK, gin.H{"result": []schema.Response{}})
		return
	}

	responses, err := s.store.ListReceivedResponses(*user.OrganizationID)
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": responses,
	})
}

// responseDetail is the API to query a response with the history of the
// response and of its request
func (s *Server) responseDetail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("responseID"))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	resp, err := s.store.GetResponse(id)
	if err == store.ErrNotFound {
		abortWithEncoding(c, http.StatusNotFound, errorResponseNotFound)
		return
	} else if shouldInterupt(err, c) {
		return
	}

	actions, err := s.historian.History(store.ActionFilter{
		RequestID:  &resp.RequestID,
		ResponseID: &resp.ID,
	})
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": responseDetail{
			Response:    *resp,
			StatusLabel: utils.StatusLabel(utils.DefaultLanguage, resp.Status),
			Actions:     actions,
		},
	})
}

// advanceResponse is the API to approve or reject the current stage of a
// response
func (s *Server) advanceResponse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("responseID"))
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

	err = s.responses.Advance(c, actor(c), workflow.AdvanceResponse{
		ResponseID:  id,
		Favorable:   params.Favorable,
		Observation: params.Observation,
		Files:       files,
	})
	ok, attachmentsError := committed(c, err, errorResponseNotFound)
	if !ok {
		discard(files)
		return
	}

	s.respondResponse(c, id, attachmentsError)
}

// overrideResponseStatus is the API to force the status of a response. It
// leaves no trace in the audit trail.
func (s *Server) overrideResponseStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("responseID"))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	var params struct {
		Status schema.Status `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	err = s.responses.OverrideStatus(c, actor(c), workflow.OverrideResponseStatus{
		ResponseID: id,
		Status:     params.Status,
	})
	if ok, _ := committed(c, err, errorResponseNotFound); !ok {
		return
	}

	s.respondResponse(c, id, "")
}

func (s *Server) respondResponse(c *gin.Context, id uuid.UUID, attachmentsError string) {
	resp, err := s.store.GetResponse(id)
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":            resp,
		"attachments_error": attachmentsError,
	})
}
