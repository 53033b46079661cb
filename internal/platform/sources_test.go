package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSources(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logs", "nested"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logs", "b.txt"), []byte("fix: b :2"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logs", "a.txt"), []byte("feat: a :1\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logs", "nested", "c.txt"), []byte("docs: c :3\n"), 0644))

	text, err := ReadSources(filepath.Join(dir, "logs", "**", "*.txt"))
	require.NoError(t, err)
	assert.Equal(t, "feat: a :1\nfix: b :2\ndocs: c :3\n", text)

	// Overlapping patterns read each file once.
	text, err = ReadSources(filepath.Join(dir, "logs", "b.txt"), filepath.Join(dir, "logs", "*.txt"))
	require.NoError(t, err)
	assert.Equal(t, "fix: b :2\nfeat: a :1\n", text)
}

func TestReadSources_NoMatch(t *testing.T) {
	_, err := ReadSources(filepath.Join(t.TempDir(), "*.txt"))
	assert.Error(t, err)
}
