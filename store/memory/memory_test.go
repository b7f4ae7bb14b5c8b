package memory

import (
	"context"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/fusex/medevac-api/schema"
	"github.com/fusex/medevac-api/store"
)

type MemoryStoreTestSuite struct {
	suite.Suite
	store *Store
	clock time.Time

	auditorID uuid.UUID
}

func (s *MemoryStoreTestSuite) now() time.Time {
	s.clock = s.clock.Add(time.Minute)
	return s.clock
}

func (s *MemoryStoreTestSuite) SetupTest() {
	s.clock = time.Date(2020, 5, 1, 8, 0, 0, 0, time.UTC)
	s.store = New(WithClock(s.now))

	s.store.AddRegion(schema.Region{ID: "cmo", Name: "Comando Militar do Oeste"})
	s.store.AddRegion(schema.Region{ID: "cms", Name: "Comando Militar do Sul"})
	s.store.AddOrganization(schema.Organization{ID: "hmacg", Name: "HMilACG", RegionID: "cmo"})
	s.store.AddOrganization(schema.Organization{ID: "hce", Name: "HCE", RegionID: "cmo"})
	s.store.AddOrganization(schema.Organization{ID: "pmpv", Name: "PMPV", RegionID: "cms"})

	org := "hmacg"
	s.auditorID = uuid.New()
	s.store.AddUser(schema.User{ID: s.auditorID, Name: "Auditor", Role: schema.RoleAuditor, OrganizationID: &org})
}

func (s *MemoryStoreTestSuite) createRequest(sender string, receivers ...string) *schema.Request {
	r := &schema.Request{
		Status:                   schema.StatusAwaitingResponse,
		SenderID:                 sender,
		PatientCPF:               "12345678909",
		RequestedOrganizationIDs: receivers,
	}
	s.Require().NoError(s.store.RunInTransaction(context.Background(), func(tx store.Tx) error {
		return tx.CreateRequest(r)
	}))
	return r
}

func (s *MemoryStoreTestSuite) createResponse(requestID uuid.UUID, receiver string) *schema.Response {
	r := &schema.Response{RequestID: requestID, ReceiverID: receiver, Status: schema.StatusPending}
	s.Require().NoError(s.store.RunInTransaction(context.Background(), func(tx store.Tx) error {
		return tx.CreateResponse(r)
	}))
	return r
}

func (s *MemoryStoreTestSuite) TestFailedUnitOfWorkLeavesNothing() {
	r := s.createRequest("hmacg", "hce")

	failure := errors.New("boom")
	err := s.store.RunInTransaction(context.Background(), func(tx store.Tx) error {
		s.Require().NoError(tx.UpdateRequestStatus(r.ID, schema.StatusCancelled))
		s.Require().NoError(tx.CreateActionLog(&schema.ActionLog{
			UserID:    s.auditorID,
			RequestID: &r.ID,
			Action:    schema.ActionCancellation,
		}))

		// writes are visible inside the unit of work
		inside, err := tx.GetRequest(r.ID)
		s.Require().NoError(err)
		s.Equal(schema.StatusCancelled, inside.Status)
		return failure
	})
	s.Equal(failure, err)

	stored, err := s.store.GetRequest(r.ID)
	s.Require().NoError(err)
	s.Equal(schema.StatusAwaitingResponse, stored.Status)

	actions, err := s.store.ListActions(store.ActionFilter{RequestID: &r.ID})
	s.NoError(err)
	s.Empty(actions)
}

func (s *MemoryStoreTestSuite) TestCancelledContextRunsNothing() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.store.RunInTransaction(ctx, func(tx store.Tx) error {
		called = true
		return nil
	})
	s.Equal(context.Canceled, err)
	s.False(called)
}

func (s *MemoryStoreTestSuite) TestOneSelectedResponsePerRequest() {
	r := s.createRequest("hmacg", "hce", "pmpv")
	first := s.createResponse(r.ID, "hce")
	second := s.createResponse(r.ID, "pmpv")

	s.NoError(s.store.RunInTransaction(context.Background(), func(tx store.Tx) error {
		return tx.UpdateResponseSelection(first.ID, true)
	}))

	err := s.store.RunInTransaction(context.Background(), func(tx store.Tx) error {
		return tx.UpdateResponseSelection(second.ID, true)
	})
	s.True(errors.Is(err, store.ErrConflict))

	// unselecting the first frees the slot
	s.NoError(s.store.RunInTransaction(context.Background(), func(tx store.Tx) error {
		if err := tx.UpdateResponseSelection(first.ID, false); err != nil {
			return err
		}
		return tx.UpdateResponseSelection(second.ID, true)
	}))

	stored, err := s.store.GetRequest(r.ID)
	s.Require().NoError(err)
	s.Require().NotNil(stored.SelectedResponse())
	s.Equal(second.ID, stored.SelectedResponse().ID)
}

func (s *MemoryStoreTestSuite) TestSelectionKeepsUpdatedAt() {
	r := s.createRequest("hmacg", "hce")
	resp := s.createResponse(r.ID, "hce")

	s.NoError(s.store.RunInTransaction(context.Background(), func(tx store.Tx) error {
		return tx.UpdateResponseSelection(resp.ID, true)
	}))

	stored, err := s.store.GetResponse(resp.ID)
	s.Require().NoError(err)
	s.True(stored.Selected)
	s.Equal(resp.UpdatedAt, stored.UpdatedAt)
}

func (s *MemoryStoreTestSuite) TestGetRequestOrdersResponses() {
	r := s.createRequest("hmacg", "hce", "pmpv")
	first := s.createResponse(r.ID, "pmpv")
	second := s.createResponse(r.ID, "hce")

	stored, err := s.store.GetRequest(r.ID)
	s.Require().NoError(err)
	s.Require().Len(stored.Responses, 2)
	s.Equal(first.ID, stored.Responses[0].ID)
	s.Equal(second.ID, stored.Responses[1].ID)
	s.NotNil(stored.Response(second.ID))
	s.Nil(stored.Response(uuid.New()))
}

func (s *MemoryStoreTestSuite) TestNotFound() {
	_, err := s.store.GetRequest(uuid.New())
	s.Equal(store.ErrNotFound, err)

	_, err = s.store.GetResponse(uuid.New())
	s.Equal(store.ErrNotFound, err)

	_, err = s.store.GetOrganization("nowhere")
	s.Equal(store.ErrNotFound, err)

	_, err = s.store.GetUser(uuid.New())
	s.Equal(store.ErrNotFound, err)

	err = s.store.RunInTransaction(context.Background(), func(tx store.Tx) error {
		return tx.UpdateRequestStatus(uuid.New(), schema.StatusApproved)
	})
	s.Equal(store.ErrNotFound, err)
}

func (s *MemoryStoreTestSuite) TestGetUserLoadsAffiliation() {
	u, err := s.store.GetUser(s.auditorID)
	s.Require().NoError(err)
	s.Require().NotNil(u.Organization)
	s.Equal("HMilACG", u.Affiliation())
	s.Nil(u.Region)
}

func (s *MemoryStoreTestSuite) TestListRequestsFilters() {
	fromHmacg := s.createRequest("hmacg", "pmpv")
	fromHce := s.createRequest("hce", "pmpv")
	fromPmpv := s.createRequest("pmpv", "hce")

	s.NoError(s.store.RunInTransaction(context.Background(), func(tx store.Tx) error {
		return tx.CreateActionLog(&schema.ActionLog{UserID: s.auditorID, RequestID: &fromHce.ID, Action: schema.ActionApproval})
	}))

	all, err := s.store.ListRequests(store.RequestFilter{})
	s.NoError(err)
	s.Require().Len(all, 3)
	s.Equal(fromPmpv.ID, all[0].ID, "most recently updated first")
	s.Equal(fromHmacg.ID, all[2].ID)

	bySender, err := s.store.ListRequests(store.RequestFilter{SenderID: "hce"})
	s.NoError(err)
	s.Require().Len(bySender, 1)
	s.Equal(fromHce.ID, bySender[0].ID)

	byRegion, err := s.store.ListRequests(store.RequestFilter{SenderRegionID: "cmo"})
	s.NoError(err)
	s.Len(byRegion, 2)

	acted, err := s.store.ListRequests(store.RequestFilter{ActedBy: s.auditorID})
	s.NoError(err)
	s.Require().Len(acted, 1)
	s.Equal(fromHce.ID, acted[0].ID)
}

func (s *MemoryStoreTestSuite) TestListReceivedResponses() {
	r := s.createRequest("hmacg", "hce", "pmpv")
	older := s.createResponse(r.ID, "hce")
	s.createResponse(r.ID, "pmpv")
	other := s.createRequest("pmpv", "hce")
	newer := s.createResponse(other.ID, "hce")

	responses, err := s.store.ListReceivedResponses("hce")
	s.NoError(err)
	s.Require().Len(responses, 2)
	s.Equal(older.ID, responses[0].ID)
	s.Equal(newer.ID, responses[1].ID)
}

func (s *MemoryStoreTestSuite) TestListActionsByRequestOrResponse() {
	r := s.createRequest("hmacg", "hce")
	resp := s.createResponse(r.ID, "hce")

	var ids []uuid.UUID
	s.NoError(s.store.RunInTransaction(context.Background(), func(tx store.Tx) error {
		for _, l := range []*schema.ActionLog{
			{UserID: s.auditorID, RequestID: &r.ID, Action: schema.ActionCreation},
			{UserID: s.auditorID, ResponseID: &resp.ID, Action: schema.ActionApproval},
			{UserID: s.auditorID, RequestID: &r.ID, Action: schema.ActionSelection},
		} {
			if err := tx.CreateActionLog(l); err != nil {
				return err
			}
			ids = append(ids, l.ID)
		}
		return nil
	}))

	both, err := s.store.ListActions(store.ActionFilter{RequestID: &r.ID, ResponseID: &resp.ID})
	s.NoError(err)
	s.Require().Len(both, 3)
	s.Equal(ids[2], both[0].ID, "newest first")
	s.Equal(ids[0], both[2].ID)

	onlyResponse, err := s.store.ListActions(store.ActionFilter{ResponseID: &resp.ID})
	s.NoError(err)
	s.Require().Len(onlyResponse, 1)
	s.Equal(schema.ActionApproval, onlyResponse[0].Action)

	none, err := s.store.ListActions(store.ActionFilter{})
	s.NoError(err)
	s.Empty(none)
}

func (s *MemoryStoreTestSuite) TestActionLogNeedsExactlyOneTarget() {
	r := s.createRequest("hmacg", "hce")
	resp := s.createResponse(r.ID, "hce")

	err := s.store.RunInTransaction(context.Background(), func(tx store.Tx) error {
		return tx.CreateActionLog(&schema.ActionLog{UserID: s.auditorID, RequestID: &r.ID, ResponseID: &resp.ID})
	})
	s.Error(err)

	err = s.store.RunInTransaction(context.Background(), func(tx store.Tx) error {
		return tx.CreateActionLog(&schema.ActionLog{UserID: s.auditorID})
	})
	s.Error(err)
}

func (s *MemoryStoreTestSuite) TestListOrganizations() {
	organizations, err := s.store.ListOrganizations([]string{"pmpv", "hce", "unknown"})
	s.NoError(err)
	s.Require().Len(organizations, 2)
	s.Equal("HCE", organizations[0].Name)
	s.Equal("PMPV", organizations[1].Name)
}

func (s *MemoryStoreTestSuite) TestLoadSeed() {
	dir, err := ioutil.TempDir("", "medevac-seed")
	s.Require().NoError(err)
	defer os.RemoveAll(dir)

	userID := uuid.New()
	file := filepath.Join(dir, "seed.yaml")
	s.Require().NoError(ioutil.WriteFile(file, []byte(`
regions:
  - id: dsau
    name: Diretoria de Saúde
organizations:
  - id: hgeb
    name: HGeB
    region_id: cmo
users:
  - id: `+userID.String()+`
    name: Subdiretor
    role: SUBDIRETOR_SAUDE
    region_id: dsau
`), 0600))

	s.Require().NoError(s.store.LoadSeed(file))

	org, err := s.store.GetOrganization("hgeb")
	s.NoError(err)
	s.Equal("cmo", org.RegionID)

	u, err := s.store.GetUser(userID)
	s.Require().NoError(err)
	s.Equal(schema.RoleSubdiretorSaude, u.Role)
	s.Nil(u.OrganizationID)
	s.Equal("Diretoria de Saúde", u.Affiliation())
}

func (s *MemoryStoreTestSuite) TestLoadSeedRejectsBadUserID() {
	dir, err := ioutil.TempDir("", "medevac-seed")
	s.Require().NoError(err)
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "seed.yaml")
	s.Require().NoError(ioutil.WriteFile(file, []byte("users:\n  - id: not-a-uuid\n"), 0600))
	s.Error(s.store.LoadSeed(file))
}

func TestMemoryStore(t *testing.T) {
	suite.Run(t, new(MemoryStoreTestSuite))
}
