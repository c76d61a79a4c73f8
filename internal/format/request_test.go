package format

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avivsinai/threadlabel/internal/thread"
)

func TestParseRequest(t *testing.T) {
	raw, err := ParseRequest([]byte(`{"thread": {"subject": "Chào anh", "messages": []}}`))
	require.NoError(t, err)
	obj, ok := raw.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Chào anh", obj["subject"])
}

func TestParseRequestEmpty(t *testing.T) {
	for _, doc := range []string{`null`, `{}`, `{"thread": null}`} {
		raw, err := ParseRequest([]byte(doc))
		require.NoError(t, err, doc)
		assert.Nil(t, raw, doc)
	}
}

func TestParseRequestBOM(t *testing.T) {
	raw, err := ParseRequest(append([]byte{0xEF, 0xBB, 0xBF}, `{"thread": {}}`...))
	require.NoError(t, err)
	assert.NotNil(t, raw)
}

func TestParseRequestMalformed(t *testing.T) {
	for _, doc := range []string{``, `{`, `{"thread": }`, `{} {}`} {
		_, err := ParseRequest([]byte(doc))
		require.Error(t, err, doc)
		assert.True(t, errors.Is(err, ErrMalformedJSON), doc)
	}
}

func TestParseRequestNotObject(t *testing.T) {
	_, err := ParseRequest([]byte(`[1, 2]`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, thread.ErrInputShape))
	assert.False(t, errors.Is(err, ErrMalformedJSON))
}

func TestReadRequestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"thread": {"subject": "x"}}`), 0o644))

	raw, err := ReadRequestFile(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"subject": "x"}, raw)

	_, err = ReadRequestFile(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{`), 0o644))
	_, err = ReadRequestFile(bad)
	assert.True(t, errors.Is(err, ErrMalformedJSON))
	assert.True(t, strings.HasPrefix(err.Error(), bad))
}
