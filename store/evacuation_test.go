package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/stretchr/testify/suite"

	"github.com/fusex/medevac-api/schema"
)

type EvacuationStoreTestSuite struct {
	suite.Suite
	connString string
	db         *gorm.DB
	store      *EvacuationStore

	userID uuid.UUID
}

func NewEvacuationStoreTestSuite(connString string) *EvacuationStoreTestSuite {
	return &EvacuationStoreTestSuite{
		connString: connString,
	}
}

func (s *EvacuationStoreTestSuite) SetupSuite() {
	db, err := gorm.Open("postgres", s.connString)
	if err != nil {
		s.T().Fatalf("open postgres with error: %s", err)
	}
	s.db = db
	// search_path is per connection
	db.DB().SetMaxOpenConns(1)

	for _, stmt := range []string{
		`DROP SCHEMA IF EXISTS medevac_test CASCADE`,
		`CREATE SCHEMA medevac_test`,
		`SET search_path TO medevac_test`,
	} {
		if err := db.Exec(stmt).Error; err != nil {
			s.T().Fatal(err)
		}
	}

	if err := db.AutoMigrate(
		&schema.Region{},
		&schema.Organization{},
		&schema.User{},
		&schema.Request{},
		&schema.Response{},
		&schema.ActionLog{},
	).Error; err != nil {
		s.T().Fatal(err)
	}
	if err := db.Model(schema.Response{}).Where("selected = true").
		AddUniqueIndex("response_unique_selected_per_request", "request_id").Error; err != nil {
		s.T().Fatal(err)
	}

	s.store = NewEvacuationStore(db)
	if err := s.LoadFixtures(); err != nil {
		s.T().Fatal(err)
	}
}

// LoadFixtures preloads the directory the tests rely on
func (s *EvacuationStoreTestSuite) LoadFixtures() error {
	for _, r := range []schema.Region{
		{ID: "cmo", Name: "Comando Militar do Oeste"},
		{ID: "cms", Name: "Comando Militar do Sul"},
	} {
		if err := s.db.Create(&r).Error; err != nil {
			return err
		}
	}
	for _, o := range []schema.Organization{
		{ID: "hmacg", Name: "HMilACG", RegionID: "cmo"},
		{ID: "hce", Name: "HCE", RegionID: "cmo"},
		{ID: "pmpv", Name: "PMPV", RegionID: "cms"},
	} {
		if err := s.db.Create(&o).Error; err != nil {
			return err
		}
	}

	org := "hmacg"
	s.userID = uuid.New()
	return s.db.Create(&schema.User{
		ID:             s.userID,
		Name:           "Auditor",
		Email:          "auditor@fusex.test",
		Role:           schema.RoleAuditor,
		OrganizationID: &org,
	}).Error
}

func (s *EvacuationStoreTestSuite) TearDownSuite() {
	if s.db == nil {
		return
	}
	s.db.Exec(`DROP SCHEMA IF EXISTS medevac_test CASCADE`)
	s.db.Close()
}

func (s *EvacuationStoreTestSuite) createRequest(sender string, receivers ...string) (*schema.Request, []schema.Response) {
	r := &schema.Request{
		ID:                       uuid.New(),
		Status:                   schema.StatusAwaitingRequestedOrganizationResponse,
		SenderID:                 sender,
		PatientCPF:               "12345678909",
		RequestedOrganizationIDs: receivers,
	}
	var responses []schema.Response
	s.Require().NoError(s.store.RunInTransaction(context.Background(), func(tx Tx) error {
		if err := tx.CreateRequest(r); err != nil {
			return err
		}
		for _, receiver := range receivers {
			resp := schema.Response{ID: uuid.New(), RequestID: r.ID, ReceiverID: receiver, Status: schema.StatusPending}
			if err := tx.CreateResponse(&resp); err != nil {
				return err
			}
			responses = append(responses, resp)
		}
		return nil
	}))
	return r, responses
}

func (s *EvacuationStoreTestSuite) TestPing() {
	s.NoError(s.store.Ping())
}

func (s *EvacuationStoreTestSuite) TestGetRequestWithResponses() {
	r, responses := s.createRequest("hmacg", "hce", "pmpv")

	stored, err := s.store.GetRequest(r.ID)
	s.Require().NoError(err)
	s.Equal([]string{"hce", "pmpv"}, []string(stored.RequestedOrganizationIDs))
	s.Len(stored.Responses, len(responses))

	_, err = s.store.GetRequest(uuid.New())
	s.Equal(ErrNotFound, err)
}

func (s *EvacuationStoreTestSuite) TestRollback() {
	r, _ := s.createRequest("hmacg", "hce")

	failure := errors.New("boom")
	err := s.store.RunInTransaction(context.Background(), func(tx Tx) error {
		if err := tx.UpdateRequestStatus(r.ID, schema.StatusCancelled); err != nil {
			return err
		}
		if err := tx.CreateActionLog(&schema.ActionLog{
			ID:        uuid.New(),
			UserID:    s.userID,
			RequestID: &r.ID,
			Action:    schema.ActionCancellation,
		}); err != nil {
			return err
		}
		return failure
	})
	s.Equal(failure, err)

	stored, err := s.store.GetRequest(r.ID)
	s.Require().NoError(err)
	s.Equal(schema.StatusAwaitingRequestedOrganizationResponse, stored.Status)

	actions, err := s.store.ListActions(ActionFilter{RequestID: &r.ID})
	s.NoError(err)
	s.Empty(actions)
}

func (s *EvacuationStoreTestSuite) TestSelectionConflict() {
	_, responses := s.createRequest("hmacg", "hce", "pmpv")

	s.NoError(s.store.RunInTransaction(context.Background(), func(tx Tx) error {
		return tx.UpdateResponseSelection(responses[0].ID, true)
	}))

	err := s.store.RunInTransaction(context.Background(), func(tx Tx) error {
		return tx.UpdateResponseSelection(responses[1].ID, true)
	})
	s.True(errors.Is(err, ErrConflict), "unexpected error %v", err)
}

func (s *EvacuationStoreTestSuite) TestTouchRequest() {
	r, _ := s.createRequest("hmacg", "hce")
	before, err := s.store.GetRequest(r.ID)
	s.Require().NoError(err)

	time.Sleep(10 * time.Millisecond)
	s.NoError(s.store.RunInTransaction(context.Background(), func(tx Tx) error {
		return tx.TouchRequest(r.ID)
	}))

	after, err := s.store.GetRequest(r.ID)
	s.Require().NoError(err)
	s.True(after.UpdatedAt.After(before.UpdatedAt))
	s.Equal(before.Status, after.Status)

	err = s.store.RunInTransaction(context.Background(), func(tx Tx) error {
		return tx.TouchRequest(uuid.New())
	})
	s.Equal(ErrNotFound, err)
}

func (s *EvacuationStoreTestSuite) TestListRequestsByRegion() {
	fromCMO, _ := s.createRequest("hce", "pmpv")
	fromCMS, _ := s.createRequest("pmpv", "hce")

	requests, err := s.store.ListRequests(RequestFilter{SenderRegionID: "cms"})
	s.NoError(err)

	ids := map[uuid.UUID]bool{}
	for _, r := range requests {
		ids[r.ID] = true
	}
	s.True(ids[fromCMS.ID])
	s.False(ids[fromCMO.ID])
}

func (s *EvacuationStoreTestSuite) TestGetUserLoadsAffiliation() {
	u, err := s.store.GetUser(s.userID)
	s.Require().NoError(err)
	s.Equal("HMilACG", u.Affiliation())
}

func TestEvacuationStore(t *testing.T) {
	connString := os.Getenv("MEDEVAC_TEST_ORM_CONN")
	if connString == "" {
		t.Skip("MEDEVAC_TEST_ORM_CONN is not set")
	}
	suite.Run(t, NewEvacuationStoreTestSuite(connString))
}
