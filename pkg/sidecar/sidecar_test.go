package sidecar

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBytesDecodesQualifiedNameMap(t *testing.T) {
	data := []byte(`{"P::Vehicle": {"element_id": "abc-123"}, "P::Engine": {"element_id": "def-456"}}`)
	f, err := LoadBytes(data)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", f["P::Vehicle"].ElementID)
	assert.Equal(t, "def-456", f["P::Engine"].ElementID)
}

func TestLoadBytesRejectsInvalidJSON(t *testing.T) {
	_, err := LoadBytes([]byte("not json"))
	assert.Error(t, err)
}

func TestElementIDsSkipsEmptyIDs(t *testing.T) {
	f := File{
		"P::A": {ElementID: "has-id"},
		"P::B": {ElementID: ""},
	}
	ids := f.ElementIDs()
	assert.Equal(t, map[string]string{"P::A": "has-id"}, ids)
}

func TestPathForSourceAppendsMetadataSuffix(t *testing.T) {
	assert.Equal(t, "model.sysml.metadata", PathForSource("model.sysml"))
}

func TestLoadFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.sysml.metadata")
	require.NoError(t, os.WriteFile(path, []byte(`{"P::A": {"element_id": "xyz"}}`), 0o644))

	f, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "xyz", f["P::A"].ElementID)
}

func TestLoadFileMissingPathErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.metadata"))
	assert.Error(t, err)
}
