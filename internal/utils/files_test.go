package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeWriteFileCreatesDirsAndReplaces(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "out", "dashboard.md")

	require.NoError(t, SafeWriteFile(p, []byte("uno")))
	require.NoError(t, SafeWriteFile(p, []byte("dos")))

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "dos", string(b))
	_, err = os.Stat(p + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestPrettyJSON(t *testing.T) {
	b, err := PrettyJSON(map[string]int{"n": 1})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"n\": 1\n}", string(b))

	_, err = PrettyJSON(func() {})
	assert.Error(t, err)
}
