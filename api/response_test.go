package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fusex/medevac-api/schema"
	"github.com/fusex/medevac-api/store"
	"github.com/fusex/medevac-api/workflow"
)

func TestListResponses(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	f := newFixture(ctl)
	f.core.EXPECT().ListReceivedResponses("hce").Return([]schema.Response{{ID: uuid.New()}, {ID: uuid.New()}}, nil).Times(1)

	w := serveJSON(f.router(newUser(schema.RoleEspecialista, "hce", "")), "GET", "/responses", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["result"], 2)

	w = serveJSON(f.router(newUser(schema.RoleChem, "", "cmo")), "GET", "/responses", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["result"], 0)
}

func TestResponseDetail(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	f := newFixture(ctl)
	requestID, id := uuid.New(), uuid.New()
	f.core.EXPECT().GetResponse(id).Return(&schema.Response{ID: id, RequestID: requestID, Status: schema.StatusPending}, nil).Times(1)
	f.core.EXPECT().ListActions(store.ActionFilter{RequestID: &requestID, ResponseID: &id}).Return([]schema.ActionLog{}, nil).Times(1)

	w := serveJSON(f.router(newUser(schema.RoleEspecialista, "hce", "")), "GET", "/responses/"+id.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	result := decode(t, w)["result"].(map[string]interface{})
	assert.Equal(t, id.String(), result["id"])
	assert.Equal(t, "PENDING", result["status"])
	assert.Equal(t, "PENDING", result["status_label"])
	assert.Len(t, result["actions"], 0)
}

func TestAdvanceResponse(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	f := newFixture(ctl)
	id := uuid.New()
	user := newUser(schema.RoleEspecialista, "hce", "")

	f.responses.EXPECT().Advance(gomock.Any(), workflow.Actor{UserID: user.ID, Role: user.Role}, workflow.AdvanceResponse{
		ResponseID:  id,
		Favorable:   false,
		Observation: "sem vaga",
		Files:       nil,
	}).Return(nil).Times(1)
	f.core.EXPECT().GetResponse(id).Return(&schema.Response{ID: id, Status: schema.StatusRejected}, nil).Times(1)

	w := serveJSON(f.router(user), "PATCH", "/responses/"+id.String()+"/status",
		map[string]interface{}{"favorable": false, "observation": "sem vaga"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "REJECTED", decode(t, w)["result"].(map[string]interface{})["status"])
}

func TestOverrideResponseStatus(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	f := newFixture(ctl)
	id := uuid.New()

	f.responses.EXPECT().OverrideStatus(gomock.Any(), gomock.Any(), workflow.OverrideResponseStatus{
		ResponseID: id,
		Status:     schema.StatusApproved,
	}).Return(nil).Times(1)
	f.core.EXPECT().GetResponse(id).Return(&schema.Response{ID: id, Status: schema.StatusApproved}, nil).Times(1)

	router := f.router(newUser(schema.RoleAdmin, "", schema.DirectorateRegionID))
	w := serveJSON(router, "PUT", "/responses/"+id.String()+"/status", map[string]interface{}{"status": "APPROVED"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = serveJSON(router, "PUT", "/responses/"+id.String()+"/status", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOverrideResponseStatusUnknown(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	f := newFixture(ctl)
	id := uuid.New()
	f.responses.EXPECT().OverrideStatus(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("%w: response %s", workflow.ErrNotFound, id)).Times(1)

	w := serveJSON(f.router(newUser(schema.RoleAdmin, "", "")), "PUT", "/responses/"+id.String()+"/status",
		map[string]interface{}{"status": "CANCELLED"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, float64(1201), decode(t, w)["code"])
}
