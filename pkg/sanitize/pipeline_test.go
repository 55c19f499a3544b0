package sanitize

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/nekrut/error-reports/pkg/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFileEndToEnd(t *testing.T) {
	dir := t.TempDir()

	input := records.Collection{
		map[string]any{
			"id":          float64(1),
			"user_id":     float64(42),
			"session_id":  float64(9),
			"tool_id":     "toolshed/repos/devteam/bwa/bwa/0.7",
			"tool_stderr": "error: contact a.b@example.com under /home/alice",
			"state":       "error",
		},
		map[string]any{
			"id":      float64(2),
			"user_id": nil,
			"state":   "error",
		},
	}
	inputPath, err := records.Save(input, filepath.Join(dir, "raw.json"), false)
	require.NoError(t, err)

	handler, err := NewHandler(&Config{ProgressEvery: 1}, nil, nil)
	require.NoError(t, err)

	outPath, err := handler.SanitizeFile(inputPath, filepath.Join(dir, "clean.json"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "clean.json.gz"), outPath, "compression suffix is normalized")

	reloaded, err := records.Load(outPath)
	require.NoError(t, err)
	require.Len(t, reloaded, 2)

	first, ok := records.AsRecord(reloaded[0])
	require.True(t, ok)
	assert.NotContains(t, first, "session_id")
	assert.NotContains(t, first["tool_stderr"], "a.b@example.com")
	assert.Contains(t, first["tool_stderr"], "[EMAIL]")
	assert.Contains(t, first["tool_stderr"], "/home/[USER]")
	assert.Equal(t, "toolshed/repos/devteam/bwa/bwa/0.7", first["tool_id"], "non-redacted values survive")
	assert.Equal(t, "error", first["state"])
	assert.NotEqual(t, float64(42), first["user_id"])

	second, ok := records.AsRecord(reloaded[1])
	require.True(t, ok)
	assert.Nil(t, second["user_id"])
	assert.Equal(t, float64(2), second["id"])
}

func TestSanitizeFileMissingInput(t *testing.T) {
	handler, err := NewHandler(&Config{}, nil, nil)
	require.NoError(t, err)

	_, err = handler.SanitizeFile(filepath.Join(t.TempDir(), "absent.json"), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, records.ErrNotFound))
}

func TestSanitizeFilePreservesOrder(t *testing.T) {
	dir := t.TempDir()

	input := records.Collection{}
	for i := 0; i < 50; i++ {
		input = append(input, map[string]any{"id": float64(i)})
	}
	inputPath, err := records.Save(input, filepath.Join(dir, "raw.json.gz"), true)
	require.NoError(t, err)

	handler, err := NewHandler(&Config{}, nil, nil)
	require.NoError(t, err)

	outPath, err := handler.SanitizeFile(inputPath, filepath.Join(dir, "clean.json.gz"))
	require.NoError(t, err)

	reloaded, err := records.Load(outPath)
	require.NoError(t, err)
	require.Len(t, reloaded, 50)
	for i, entry := range reloaded {
		rec, ok := records.AsRecord(entry)
		require.True(t, ok)
		assert.Equal(t, float64(i), rec["id"])
	}
}
