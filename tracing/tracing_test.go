package tracing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndSpanNil(t *testing.T) {
	assert.NotPanics(t, func() {
		EndSpan(nil, errors.New("boom"))
	})
	var s *Span
	assert.Nil(t, s.WithAttributes(map[string]string{"k": "v"}))
}

func TestTracingFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "spans.txt")
	require.NoError(t, Init("medevac", "0.0.1", fname))

	_, span := StartSpan(context.Background(), "test")
	span.WithAttributes(map[string]string{"request_id": "r1"})
	EndSpan(span, nil)

	data, err := os.ReadFile(fname)
	require.NoError(t, err)
	assert.Contains(t, string(data), "request_id")
}
