package store

import (
	"github.com/google/uuid"
	"github.com/jinzhu/gorm"

	"github.com/fusex/medevac-api/schema"
)

// ormReader serves reads for both the store and its transactions.
type ormReader struct {
	db *gorm.DB
}

func (r ormReader) GetRequest(id uuid.UUID) (*schema.Request, error) {
	var req schema.Request
	if err := r.db.
		Preload("Responses", func(db *gorm.DB) *gorm.DB {
			return db.Order("responses.created_at ASC, responses.id ASC")
		}).
		Where("id = ?", id).
		First(&req).Error; err != nil {
		return nil, translate(err)
	}
	return &req, nil
}

func (r ormReader) GetResponse(id uuid.UUID) (*schema.Response, error) {
	var resp schema.Response
	if err := r.db.Where("id = ?", id).First(&resp).Error; err != nil {
		return nil, translate(err)
	}
	return &resp, nil
}

func (r ormReader) GetOrganization(id string) (*schema.Organization, error) {
	var org schema.Organization
	if err := r.db.Where("id = ?", id).First(&org).Error; err != nil {
		return nil, translate(err)
	}
	return &org, nil
}

func (r ormReader) GetUser(id uuid.UUID) (*schema.User, error) {
	var u schema.User
	if err := r.db.Preload("Organization").Preload("Region").Where("id = ?", id).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// ListRequests returns requests matching filter, most recently updated first.
func (r ormReader) ListRequests(filter RequestFilter) ([]schema.Request, error) {
	requests := []schema.Request{}

	q := r.db.Model(&schema.Request{})
	if filter.SenderID != "" {
		q = q.Where("requests.sender_id = ?", filter.SenderID)
	}
	if filter.SenderRegionID != "" {
		q = q.Joins("JOIN organizations ON organizations.id = requests.sender_id").
			Where("organizations.region_id = ?", filter.SenderRegionID)
	}
	if filter.ActedBy != uuid.Nil {
		q = q.Where("EXISTS (SELECT 1 FROM action_logs WHERE action_logs.request_id = requests.id AND action_logs.user_id = ?)", filter.ActedBy)
	}

	if err := q.Select("requests.*").Order("requests.updated_at DESC").Find(&requests).Error; err != nil {
		return nil, translate(err)
	}
	return requests, nil
}

// ListReceivedResponses returns the responses addressed to an organization,
// oldest update first.
func (r ormReader) ListReceivedResponses(receiverID string) ([]schema.Response, error) {
	responses := []schema.Response{}
	if err := r.db.Where("receiver_id = ?", receiverID).Order("updated_at ASC").Find(&responses).Error; err != nil {
		return nil, translate(err)
	}
	return responses, nil
}

// ListActions returns the entries scoped to either id of filter, newest first.
func (r ormReader) ListActions(filter ActionFilter) ([]schema.ActionLog, error) {
	actions := []schema.ActionLog{}

	var q *gorm.DB
	switch {
	case filter.RequestID != nil && filter.ResponseID != nil:
		q = r.db.Where("request_id = ? OR response_id = ?", *filter.RequestID, *filter.ResponseID)
	case filter.RequestID != nil:
		q = r.db.Where("request_id = ?", *filter.RequestID)
	case filter.ResponseID != nil:
		q = r.db.Where("response_id = ?", *filter.ResponseID)
	default:
		return actions, nil
	}

	if err := q.Order("created_at DESC").Find(&actions).Error; err != nil {
		return nil, translate(err)
	}
	return actions, nil
}

func (r ormReader) ListOrganizations(ids []string) ([]schema.Organization, error) {
	organizations := []schema.Organization{}
	if len(ids) == 0 {
		return organizations, nil
	}
	if err := r.db.Where("id IN (?)", ids).Order("name").Find(&organizations).Error; err != nil {
		return nil, translate(err)
	}
	return organizations, nil
}
