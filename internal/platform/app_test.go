package platform

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/dedma/pkg/core"
	"github.com/aretw0/dedma/pkg/git"
	"github.com/aretw0/dedma/pkg/notes"
)

const sample = `feat (Reward): Added one more reward :13883a1
update: Added more balance to the game :9f0b662
fix: Disabled the middleware :a1b2c33
`

func newApp(t *testing.T, root string, opts ...Option) *App {
	t.Helper()
	app, err := New(root, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })
	return app
}

func TestGenerate_FromFile(t *testing.T) {
	t.Setenv(EnvLanguage, "")
	root := t.TempDir()
	source := filepath.Join(root, "commits.txt")
	require.NoError(t, os.WriteFile(source, []byte(sample), 0644))

	var out bytes.Buffer
	var progressed int
	app := newApp(t, root, WithReporter(&out), WithProgress(func(core.Commit) { progressed++ }))

	rep, err := app.Generate(context.Background(), Request{Sources: []string{source}})
	require.NoError(t, err)
	assert.Equal(t, Report{Tag: DefaultFileTag, Found: 3, Recorded: 3, Output: filepath.Join(root, DefaultOutput)}, rep)
	assert.Equal(t, 3, progressed)
	assert.Contains(t, out.String(), "3 commits found")

	doc, err := os.ReadFile(rep.Output)
	require.NoError(t, err)
	assert.Equal(t, "# New features\n\n## Reward\n\n- Added one more reward\n\n# Bug fix\n\n- Disabled the middleware\n\n# Updates\n\n- Added more balance to the game\n", string(doc))

	_, err = os.Stat(filepath.Join(root, DefaultSystemDir, "dedma.db"))
	assert.NoError(t, err)

	// A second run records nothing new and renders the same note.
	rep, err = app.Generate(context.Background(), Request{Sources: []string{source}, Output: "again.md"})
	require.NoError(t, err)
	assert.Equal(t, 0, rep.Recorded)
	again, err := os.ReadFile(filepath.Join(root, "again.md"))
	require.NoError(t, err)
	assert.Equal(t, string(doc), string(again))
}

func TestGenerate_MalformedSource(t *testing.T) {
	root := t.TempDir()
	source := filepath.Join(root, "commits.txt")
	require.NoError(t, os.WriteFile(source, []byte("feat: ok :1\nbroken line\n"), 0644))

	app := newApp(t, root)
	_, err := app.Generate(context.Background(), Request{Sources: []string{source}, Tag: "v1"})
	assert.ErrorIs(t, err, core.ErrMalformedLine)

	n, err := app.Service.Count(context.Background(), "v1")
	require.NoError(t, err)
	assert.Zero(t, n, "nothing is recorded when classification fails")
}

func TestNew_Language(t *testing.T) {
	t.Setenv(EnvLanguage, "fr")
	app := newApp(t, t.TempDir())
	assert.Equal(t, notes.French, app.Language)
	assert.Equal(t, "Analyse des commits", app.Messages().Parsing)

	forced := newApp(t, t.TempDir(), WithLanguage(notes.English))
	assert.Equal(t, notes.English, forced.Language)

	t.Setenv(EnvLanguage, "klingon")
	_, err := New(t.TempDir())
	assert.Error(t, err)
}

func TestNew_ReadOnlyWithoutStore(t *testing.T) {
	_, err := New(t.TempDir(), WithReadOnly(true))
	assert.ErrorIs(t, err, core.ErrStoreUnavailable)
}

func TestGenerate_FromGit(t *testing.T) {
	if !git.IsInstalled() {
		t.Skip("git not installed")
	}
	t.Setenv(EnvLanguage, "")
	root := t.TempDir()
	ctx := context.Background()

	client := git.NewClient(root, nil)
	require.NoError(t, client.Init(ctx))
	require.NoError(t, client.Commit(ctx, "feat (ci): Add pipeline"))
	require.NoError(t, client.Commit(ctx, "fix: Crash on start"))
	require.NoError(t, client.Tag(ctx, "v1.0.0"))

	app := newApp(t, root)
	rep, err := app.Generate(ctx, Request{})
	require.NoError(t, err)
	assert.Equal(t, "v1.0.0", rep.Tag)
	assert.Equal(t, 2, rep.Recorded)

	doc, err := os.ReadFile(rep.Output)
	require.NoError(t, err)
	assert.Equal(t, "# New features\n\n## CI\n\n- Add pipeline\n\n# Bug fix\n\n- Crash on start\n", string(doc))
}

func TestGenerate_FromGitExplicitTag(t *testing.T) {
	if !git.IsInstalled() {
		t.Skip("git not installed")
	}
	t.Setenv(EnvLanguage, "")
	root := t.TempDir()
	ctx := context.Background()

	client := git.NewClient(root, nil)
	require.NoError(t, client.Init(ctx))
	require.NoError(t, client.Commit(ctx, "feat: Old feature"))
	require.NoError(t, client.Tag(ctx, "v1"))
	require.NoError(t, client.Commit(ctx, "fix: New fix"))
	require.NoError(t, client.Tag(ctx, "v2"))

	app := newApp(t, root)
	rep, err := app.Generate(ctx, Request{Tag: "v2"})
	require.NoError(t, err)
	assert.Equal(t, "v2", rep.Tag)
	assert.Equal(t, 1, rep.Recorded, "commits before v1 belong to v1")

	doc, err := os.ReadFile(rep.Output)
	require.NoError(t, err)
	assert.Equal(t, "# Bug fix\n\n- New fix\n", string(doc))
}

func TestGenerate_FileSystemAdapter(t *testing.T) {
	t.Setenv(EnvLanguage, "")
	root := t.TempDir()
	source := filepath.Join(root, "commits.txt")
	require.NoError(t, os.WriteFile(source, []byte(sample), 0644))

	app := newApp(t, root, WithAdapter("fs"))
	rep, err := app.Generate(context.Background(), Request{Sources: []string{source}, Tag: "v1"})
	require.NoError(t, err)
	assert.Equal(t, 3, rep.Recorded)

	doc, err := os.ReadFile(rep.Output)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "# New features\n\n## Reward\n\n- Added one more reward\n")

	_, err = New(t.TempDir(), WithAdapter("s3"))
	assert.Error(t, err)
}
