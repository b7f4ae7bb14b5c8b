package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"

	"github.com/fusex/medevac-api/schema"
)

// ormTx is a Tx bound to an open gorm transaction.
type ormTx struct {
	ormReader
}

func (t *ormTx) CreateRequest(r *schema.Request) error {
	return translate(t.db.Create(r).Error)
}

func (t *ormTx) UpdateRequestStatus(id uuid.UUID, status schema.Status) error {
	return affectedOne(t.db.Model(&schema.Request{}).Where("id = ?", id).Update("status", status))
}

func (t *ormTx) TouchRequest(id uuid.UUID) error {
	return affectedOne(t.db.Model(&schema.Request{}).Where("id = ?", id).UpdateColumn("updated_at", time.Now()))
}

func (t *ormTx) CreateResponse(r *schema.Response) error {
	return translate(t.db.Create(r).Error)
}

func (t *ormTx) UpdateResponseStatus(ids []uuid.UUID, status schema.Status) error {
	if len(ids) == 0 {
		return nil
	}
	return translate(t.db.Model(&schema.Response{}).Where("id IN (?)", ids).Update("status", status).Error)
}

// UpdateResponseSelection uses UpdateColumn so gorm leaves updated_at alone.
func (t *ormTx) UpdateResponseSelection(id uuid.UUID, selected bool) error {
	return affectedOne(t.db.Model(&schema.Response{}).Where("id = ?", id).UpdateColumn("selected", selected))
}

func (t *ormTx) UpdateResponseTicketCost(id uuid.UUID, cost int64) error {
	return affectedOne(t.db.Model(&schema.Response{}).Where("id = ?", id).Update("ticket_cost", cost))
}

func (t *ormTx) CreateActionLog(l *schema.ActionLog) error {
	return translate(t.db.Create(l).Error)
}

func affectedOne(result *gorm.DB) error {
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
