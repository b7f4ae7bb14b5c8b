package schema

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTerminalStatuses(t *testing.T) {
	for _, s := range []Status{StatusApproved, StatusRejected, StatusCancelled} {
		assert.True(t, s.IsTerminal(), s)
		assert.True(t, s.IsTerminalResponse(), s)
	}

	assert.False(t, StatusRejectedByDirectorate.IsTerminal())
	assert.True(t, StatusRejectedByDirectorate.IsTerminalResponse())
	assert.False(t, StatusPending.IsTerminalResponse())
	assert.False(t, StatusAwaitingRequestedOrganizationResponse.IsTerminal())
}

func TestIsResponseStatus(t *testing.T) {
	assert.True(t, StatusPending.IsResponseStatus())
	assert.True(t, StatusRejectedByDirectorate.IsResponseStatus())
	assert.False(t, StatusAwaitingDirectorateReview.IsResponseStatus())
	assert.False(t, Status("").IsResponseStatus())
}

func TestHighLevelReviewer(t *testing.T) {
	assert.True(t, RoleDras.IsHighLevelReviewer())
	assert.True(t, RoleSubdiretorSaude.IsHighLevelReviewer())
	assert.False(t, RoleChem.IsHighLevelReviewer())
}

func TestSelectedResponse(t *testing.T) {
	chosen := uuid.New()
	r := Request{Responses: []Response{
		{ID: uuid.New()},
		{ID: chosen, Selected: true},
	}}
	assert.Equal(t, chosen, r.SelectedResponse().ID)
	assert.Equal(t, chosen, r.Response(chosen).ID)

	r.Responses[1].Selected = false
	assert.Nil(t, r.SelectedResponse())
}

func TestAffiliation(t *testing.T) {
	u := User{}
	assert.Equal(t, "", u.Affiliation())

	u.Organization = &Organization{Name: "HCE"}
	assert.Equal(t, "HCE", u.Affiliation())

	u.Region = &Region{Name: "Diretoria de Saúde"}
	assert.Equal(t, "Diretoria de Saúde", u.Affiliation())
}
