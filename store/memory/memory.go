// Package memory keeps the evacuation datastore in process memory. A unit of
// work runs against a private copy of the data which replaces the live copy
// only on success, so a failed unit of work leaves nothing behind.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fusex/medevac-api/schema"
	"github.com/fusex/medevac-api/store"
)

type dataset struct {
	regions       map[string]schema.Region
	organizations map[string]schema.Organization
	users         map[uuid.UUID]schema.User
	requests      map[uuid.UUID]schema.Request
	responses     map[uuid.UUID]schema.Response
	actions       []schema.ActionLog
}

func newDataset() *dataset {
	return &dataset{
		regions:       map[string]schema.Region{},
		organizations: map[string]schema.Organization{},
		users:         map[uuid.UUID]schema.User{},
		requests:      map[uuid.UUID]schema.Request{},
		responses:     map[uuid.UUID]schema.Response{},
	}
}

func (d *dataset) clone() *dataset {
	c := newDataset()
	for k, v := range d.regions {
		c.regions[k] = v
	}
	for k, v := range d.organizations {
		c.organizations[k] = v
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.requests {
		v.RequestedOrganizationIDs = append([]string(nil), v.RequestedOrganizationIDs...)
		c.requests[k] = v
	}
	for k, v := range d.responses {
		c.responses[k] = v
	}
	c.actions = make([]schema.ActionLog, len(d.actions))
	copy(c.actions, d.actions)
	return c
}

// Store is an in-memory store.EvacuationCore.
type Store struct {
	mu   sync.Mutex
	data *dataset
	now  func() time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithClock replaces time.Now for created_at/updated_at stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func New(options ...Option) *Store {
	s := &Store{
		data: newDataset(),
		now:  time.Now,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

var _ store.EvacuationCore = (*Store)(nil)

func (s *Store) Ping() error {
	return nil
}

// RunInTransaction serializes units of work; readers wait for the running one.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx store.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	if err := fn(&tx{view: view{d: work}, now: s.now}); err != nil {
		return err
	}
	s.data = work
	return nil
}

// AddRegion, AddOrganization and AddUser load the directory data the
// workflow reads but never writes.
func (s *Store) AddRegion(r schema.Region) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.regions[r.ID] = r
}

func (s *Store) AddOrganization(o schema.Organization) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.organizations[o.ID] = o
}

func (s *Store) AddUser(u schema.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.Organization, u.Region = nil, nil
	s.data.users[u.ID] = u
}

func (s *Store) GetRequest(id uuid.UUID) (*schema.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return view{d: s.data}.GetRequest(id)
}

func (s *Store) GetResponse(id uuid.UUID) (*schema.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return view{d: s.data}.GetResponse(id)
}

func (s *Store) GetOrganization(id string) (*schema.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return view{d: s.data}.GetOrganization(id)
}

func (s *Store) GetUser(id uuid.UUID) (*schema.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return view{d: s.data}.GetUser(id)
}

// ListRequests returns requests matching filter, most recently updated first.
func (s *Store) ListRequests(filter store.RequestFilter) ([]schema.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acted := map[uuid.UUID]bool{}
	if filter.ActedBy != uuid.Nil {
		for _, a := range s.data.actions {
			if a.UserID == filter.ActedBy && a.RequestID != nil {
				acted[*a.RequestID] = true
			}
		}
	}

	requests := []schema.Request{}
	for _, r := range s.data.requests {
		if filter.SenderID != "" && r.SenderID != filter.SenderID {
			continue
		}
		if filter.SenderRegionID != "" && s.data.organizations[r.SenderID].RegionID != filter.SenderRegionID {
			continue
		}
		if filter.ActedBy != uuid.Nil && !acted[r.ID] {
			continue
		}
		requests = append(requests, r)
	}

	sort.Slice(requests, func(i, j int) bool {
		return requests[i].UpdatedAt.After(requests[j].UpdatedAt)
	})
	return requests, nil
}

// ListReceivedResponses returns the responses addressed to an organization,
// oldest update first.
func (s *Store) ListReceivedResponses(receiverID string) ([]schema.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	responses := []schema.Response{}
	for _, r := range s.data.responses {
		if r.ReceiverID == receiverID {
			responses = append(responses, r)
		}
	}
	sort.Slice(responses, func(i, j int) bool {
		return responses[i].UpdatedAt.Before(responses[j].UpdatedAt)
	})
	return responses, nil
}

// ListActions returns the entries scoped to either id of filter, newest first.
func (s *Store) ListActions(filter store.ActionFilter) ([]schema.ActionLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	actions := []schema.ActionLog{}
	if filter.RequestID == nil && filter.ResponseID == nil {
		return actions, nil
	}

	for _, a := range s.data.actions {
		byRequest := filter.RequestID != nil && a.RequestID != nil && *a.RequestID == *filter.RequestID
		byResponse := filter.ResponseID != nil && a.ResponseID != nil && *a.ResponseID == *filter.ResponseID
		if byRequest || byResponse {
			actions = append(actions, a)
		}
	}

	// entries are appended in commit order, newest last
	for i, j := 0, len(actions)-1; i < j; i, j = i+1, j-1 {
		actions[i], actions[j] = actions[j], actions[i]
	}
	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].CreatedAt.After(actions[j].CreatedAt)
	})
	return actions, nil
}

func (s *Store) ListOrganizations(ids []string) ([]schema.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	organizations := []schema.Organization{}
	for _, id := range ids {
		if o, ok := s.data.organizations[id]; ok {
			organizations = append(organizations, o)
		}
	}
	sort.Slice(organizations, func(i, j int) bool {
		return organizations[i].Name < organizations[j].Name
	})
	return organizations, nil
}

// view implements store.Reader over a dataset. Callers hold the lock.
type view struct {
	d *dataset
}

func (v view) GetRequest(id uuid.UUID) (*schema.Request, error) {
	r, ok := v.d.requests[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	r.RequestedOrganizationIDs = append([]string(nil), r.RequestedOrganizationIDs...)

	r.Responses = []schema.Response{}
	for _, resp := range v.d.responses {
		if resp.RequestID == id {
			r.Responses = append(r.Responses, resp)
		}
	}
	sort.Slice(r.Responses, func(i, j int) bool {
		a, b := r.Responses[i], r.Responses[j]
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.ID.String() < b.ID.String()
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return &r, nil
}

func (v view) GetResponse(id uuid.UUID) (*schema.Response, error) {
	r, ok := v.d.responses[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &r, nil
}

func (v view) GetOrganization(id string) (*schema.Organization, error) {
	o, ok := v.d.organizations[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &o, nil
}

func (v view) GetUser(id uuid.UUID) (*schema.User, error) {
	u, ok := v.d.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if u.OrganizationID != nil {
		if o, ok := v.d.organizations[*u.OrganizationID]; ok {
			u.Organization = &o
		}
	}
	if u.RegionID != nil {
		if r, ok := v.d.regions[*u.RegionID]; ok {
			u.Region = &r
		}
	}
	return &u, nil
}

// tx writes into the private dataset of one unit of work.
type tx struct {
	view
	now func() time.Time
}

func (t *tx) CreateRequest(r *schema.Request) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if _, ok := t.d.requests[r.ID]; ok {
		return fmt.Errorf("%w: request %s", store.ErrConflict, r.ID)
	}
	if _, ok := t.d.organizations[r.SenderID]; !ok {
		return fmt.Errorf("unknown sender organization %q", r.SenderID)
	}

	now := t.now()
	r.CreatedAt, r.UpdatedAt = now, now

	stored := *r
	stored.Responses = nil
	stored.RequestedOrganizationIDs = append([]string(nil), r.RequestedOrganizationIDs...)
	t.d.requests[r.ID] = stored
	return nil
}

func (t *tx) UpdateRequestStatus(id uuid.UUID, status schema.Status) error {
	r, ok := t.d.requests[id]
	if !ok {
		return store.ErrNotFound
	}
	r.Status = status
	r.UpdatedAt = t.now()
	t.d.requests[id] = r
	return nil
}

func (t *tx) TouchRequest(id uuid.UUID) error {
	r, ok := t.d.requests[id]
	if !ok {
		return store.ErrNotFound
	}
	r.UpdatedAt = t.now()
	t.d.requests[id] = r
	return nil
}

func (t *tx) CreateResponse(r *schema.Response) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if _, ok := t.d.responses[r.ID]; ok {
		return fmt.Errorf("%w: response %s", store.ErrConflict, r.ID)
	}
	if _, ok := t.d.requests[r.RequestID]; !ok {
		return fmt.Errorf("response %s references unknown request %s", r.ID, r.RequestID)
	}

	now := t.now()
	r.CreatedAt, r.UpdatedAt = now, now
	t.d.responses[r.ID] = *r
	return nil
}

func (t *tx) UpdateResponseStatus(ids []uuid.UUID, status schema.Status) error {
	now := t.now()
	for _, id := range ids {
		r, ok := t.d.responses[id]
		if !ok {
			continue
		}
		r.Status = status
		r.UpdatedAt = now
		t.d.responses[id] = r
	}
	return nil
}

// UpdateResponseSelection mirrors the partial unique index of the postgres
// schema: one selected response per request.
func (t *tx) UpdateResponseSelection(id uuid.UUID, selected bool) error {
	r, ok := t.d.responses[id]
	if !ok {
		return store.ErrNotFound
	}
	if selected {
		for _, other := range t.d.responses {
			if other.ID != id && other.RequestID == r.RequestID && other.Selected {
				return fmt.Errorf("%w: request %s already has a selected response", store.ErrConflict, r.RequestID)
			}
		}
	}
	r.Selected = selected
	t.d.responses[id] = r
	return nil
}

func (t *tx) UpdateResponseTicketCost(id uuid.UUID, cost int64) error {
	r, ok := t.d.responses[id]
	if !ok {
		return store.ErrNotFound
	}
	r.TicketCost = cost
	r.UpdatedAt = t.now()
	t.d.responses[id] = r
	return nil
}

func (t *tx) CreateActionLog(l *schema.ActionLog) error {
	if (l.RequestID == nil) == (l.ResponseID == nil) {
		return fmt.Errorf("action log %s must target exactly one of request or response", l.ID)
	}
	if l.RequestID != nil {
		if _, ok := t.d.requests[*l.RequestID]; !ok {
			return fmt.Errorf("action log references unknown request %s", *l.RequestID)
		}
	}
	if l.ResponseID != nil {
		if _, ok := t.d.responses[*l.ResponseID]; !ok {
			return fmt.Errorf("action log references unknown response %s", *l.ResponseID)
		}
	}
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	l.CreatedAt = t.now()

	stored := *l
	stored.Files = append([]string(nil), l.Files...)
	t.d.actions = append(t.d.actions, stored)
	return nil
}
