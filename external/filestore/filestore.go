// Package filestore keeps decision attachments on disk, one directory per
// request or response id.
package filestore

import (
	"context"
	"fmt"
	"path"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"

	"github.com/fusex/medevac-api/workflow"
)

// RefPrefix is how references recorded in the audit trail start.
const RefPrefix = "/arquivos"

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "filestore")
}

type Store struct {
	fs      afs.Service
	baseURL string
}

var _ workflow.FileStore = (*Store)(nil)

// New keeps files below baseURL, a local directory or any afs URL.
func New(baseURL string) *Store {
	return &Store{
		fs:      afs.New(),
		baseURL: baseURL,
	}
}

func (s *Store) Ref(owner uuid.UUID, name string) string {
	return path.Join(RefPrefix, owner.String(), name)
}

// Location is where name is kept under owner.
func (s *Store) Location(owner uuid.UUID, name string) string {
	return url.Join(s.baseURL, owner.String(), path.Base(name))
}

// Place moves every file into the owner's directory. It stops at the first
// failure; files moved before it stay in place.
func (s *Store) Place(ctx context.Context, owner uuid.UUID, files []workflow.Attachment) error {
	dir := url.Join(s.baseURL, owner.String())
	exists, err := s.fs.Exists(ctx, dir)
	if err != nil {
		return err
	}
	if !exists {
		if err := s.fs.Create(ctx, dir, file.DefaultDirOsMode, true); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	for _, f := range files {
		dest := s.Location(owner, f.Name)
		if err := s.fs.Move(ctx, f.TempPath, dest); err != nil {
			return fmt.Errorf("move %s: %w", f.Name, err)
		}
		log.WithFields(logrus.Fields{
			"owner": owner,
			"file":  f.Name,
		}).Debug("attachment placed")
	}
	return nil
}
