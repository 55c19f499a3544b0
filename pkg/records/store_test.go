package records

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, path string, data []byte, compress bool) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	if compress {
		gz := gzip.NewWriter(f)
		_, err = gz.Write(data)
		require.NoError(t, err)
		require.NoError(t, gz.Close())
		return
	}
	_, err = f.Write(data)
	require.NoError(t, err)
}

func TestLoadPlainJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors.json")
	writeTestFile(t, path, []byte(`[{"id": 1, "state": "error"}, {"id": 2, "state": "error"}]`), false)

	collection, err := Load(path)
	require.NoError(t, err)
	require.Len(t, collection, 2)

	rec, ok := AsRecord(collection[0])
	require.True(t, ok)
	assert.Equal(t, float64(1), rec["id"])
	assert.Equal(t, "error", rec["state"])
}

func TestLoadGzipJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors.json.gz")
	writeTestFile(t, path, []byte(`[{"id": 1}]`), true)

	collection, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, collection, 1)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	writeTestFile(t, path, []byte(`{not json`), false)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedInput))
}

func TestLoadNonArrayRoot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "object.json")
	writeTestFile(t, path, []byte(`{"records": []}`), false)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedInput))
	assert.Contains(t, err.Error(), "array")
}

func TestSaveAppendsGzipSuffix(t *testing.T) {
	dir := t.TempDir()
	collection := Collection{map[string]any{"id": float64(1)}}

	actual, err := Save(collection, filepath.Join(dir, "out.json"), true)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(actual, ".json.gz"))

	reloaded, err := Load(actual)
	require.NoError(t, err)
	assert.Len(t, reloaded, 1)
}

func TestSaveUncompressed(t *testing.T) {
	dir := t.TempDir()
	collection := Collection{map[string]any{"id": float64(7)}}

	actual, err := Save(collection, filepath.Join(dir, "out.json"), false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out.json"), actual)

	data, err := os.ReadFile(actual)
	require.NoError(t, err)

	var root []any
	require.NoError(t, json.Unmarshal(data, &root))
	assert.Len(t, root, 1)
}

func TestSaveGzipSuffixForcesCompression(t *testing.T) {
	dir := t.TempDir()
	collection := Collection{map[string]any{"id": float64(3)}}

	// Compression off, but the suffix wins
	actual, err := Save(collection, filepath.Join(dir, "out.json.gz"), false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out.json.gz"), actual)

	reloaded, err := Load(actual)
	require.NoError(t, err)
	assert.Len(t, reloaded, 1)
}

func TestSaveCreatesIntermediateDirectories(t *testing.T) {
	dir := t.TempDir()
	collection := Collection{}

	actual, err := Save(collection, filepath.Join(dir, "a", "b", "out.json"), true)
	require.NoError(t, err)
	assert.FileExists(t, actual)
}

func TestRoundTripPreservesOrderAndValues(t *testing.T) {
	dir := t.TempDir()
	collection := Collection{
		map[string]any{"id": float64(1), "tool_id": "alpha"},
		map[string]any{"id": float64(2), "tool_id": "beta"},
		map[string]any{"id": float64(3), "tool_id": "gamma"},
	}

	actual, err := Save(collection, filepath.Join(dir, "round.json.gz"), true)
	require.NoError(t, err)

	reloaded, err := Load(actual)
	require.NoError(t, err)
	require.Len(t, reloaded, 3)

	for i, want := range []string{"alpha", "beta", "gamma"} {
		rec, ok := AsRecord(reloaded[i])
		require.True(t, ok)
		assert.Equal(t, want, rec["tool_id"])
		assert.Equal(t, float64(i+1), rec["id"])
	}
}
