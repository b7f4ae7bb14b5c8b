package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jinzhu/gorm"
	"github.com/lib/pq"
	log "github.com/sirupsen/logrus"
)

const (
	ormLogPrefix = "orm"

	uniqueViolationCode = "23505"
)

// EvacuationStore is an implementation of EvacuationCore on top of postgres
type EvacuationStore struct {
	ormReader
}

func NewEvacuationStore(ormDB *gorm.DB) *EvacuationStore {
	return &EvacuationStore{
		ormReader: ormReader{db: ormDB},
	}
}

// Ping is to check the storage health status
func (s *EvacuationStore) Ping() error {
	return s.db.DB().Ping()
}

// RunInTransaction opens a transaction, hands it to fn and commits only when
// fn succeeds. A panic inside fn rolls back and re-panics.
func (s *EvacuationStore) RunInTransaction(ctx context.Context, fn func(tx Tx) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return translate(tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(&ormTx{ormReader: ormReader{db: tx}}); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			log.WithFields(log.Fields{
				"prefix": ormLogPrefix,
				"error":  rbErr,
			}).Error("rollback transaction")
		}
		return err
	}

	return translate(tx.Commit().Error)
}

// translate maps driver errors onto the store's sentinel errors.
func translate(err error) error {
	if err == nil {
		return nil
	}

	if gorm.IsRecordNotFoundError(err) {
		return ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
		return fmt.Errorf("%w: %s", ErrConflict, pqErr.Constraint)
	}

	return err
}
