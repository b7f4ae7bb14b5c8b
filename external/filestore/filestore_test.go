package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fusex/medevac-api/workflow"
)

func TestRef(t *testing.T) {
	owner := uuid.MustParse("5b1e2c8a-3a4d-4d3e-9a51-0c2f7f1d9e10")
	s := New(t.TempDir())
	assert.Equal(t, "/arquivos/5b1e2c8a-3a4d-4d3e-9a51-0c2f7f1d9e10/laudo.pdf", s.Ref(owner, "laudo.pdf"))
}

func TestPlace(t *testing.T) {
	base := t.TempDir()
	tmp := t.TempDir()

	upload := filepath.Join(tmp, "upload-1")
	require.NoError(t, os.WriteFile(upload, []byte("laudo"), 0644))

	owner := uuid.New()
	s := New(base)
	require.NoError(t, s.Place(context.Background(), owner, []workflow.Attachment{
		{TempPath: upload, Name: "laudo.pdf"},
	}))

	data, err := os.ReadFile(filepath.Join(base, owner.String(), "laudo.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "laudo", string(data))

	_, err = os.Stat(upload)
	assert.True(t, os.IsNotExist(err))
}

func TestPlaceMissingUpload(t *testing.T) {
	s := New(t.TempDir())
	err := s.Place(context.Background(), uuid.New(), []workflow.Attachment{
		{TempPath: filepath.Join(t.TempDir(), "gone"), Name: "gone.pdf"},
	})
	assert.Error(t, err)
}
