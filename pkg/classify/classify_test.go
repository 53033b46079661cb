package classify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/dedma/pkg/core"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		line string
		want core.Commit
	}{
		{
			name: "kind and title",
			line: "feat (Reward): Added one more reward :13883a7c",
			want: core.Commit{Kind: "feat", Title: "reward", Content: "Added one more reward", Hash: "13883a7c"},
		},
		{
			name: "kind only",
			line: "update: Added more balance to the game :9f0b66e1",
			want: core.Commit{Kind: "update", Title: "other", Content: "Added more balance to the game", Hash: "9f0b66e1"},
		},
		{
			name: "title without space",
			line: "Fix(Audio):fmod plugin not working:ab12",
			want: core.Commit{Kind: "fix", Title: "audio", Content: "fmod plugin not working", Hash: "ab12"},
		},
		{
			name: "legacy two segments",
			line: "Update export_game.yml :cafe01",
			want: core.Commit{Kind: "other", Title: "other", Content: "Update export_game.yml", Hash: "cafe01"},
		},
		{
			name: "extra segments ignored",
			line: "docs: see http://example.com :deadbeef",
			want: core.Commit{Kind: "docs", Title: "other", Content: "see http", Hash: "//example.com"},
		},
		{
			name: "empty title",
			line: "chore (): tidy :77",
			want: core.Commit{Kind: "chore", Title: "other", Content: "tidy", Hash: "77"},
		},
		{
			name: "content case preserved",
			line: "CI (GitHub): Bump Action :A1B2",
			want: core.Commit{Kind: "ci", Title: "github", Content: "Bump Action", Hash: "A1B2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			again, err := Classify(tt.line)
			require.NoError(t, err)
			assert.Equal(t, got, again, "classify must be deterministic")
		})
	}
}

func TestClassify_Malformed(t *testing.T) {
	for _, line := range []string{"no delimiter here", ""} {
		_, err := Classify(line)
		assert.True(t, errors.Is(err, core.ErrMalformedLine), "line %q: got %v", line, err)
	}
}

func TestLines(t *testing.T) {
	text := `
	fix:Disabled the middleware :h1
	update (ci):Update export_game.yml :h2

	update:Updated github build action :h3
	Fix (Opponents): blackboard for AI drops its content :h4
	`

	want := []core.Commit{
		{Kind: "fix", Title: "other", Content: "Disabled the middleware", Hash: "h1"},
		{Kind: "update", Title: "ci", Content: "Update export_game.yml", Hash: "h2"},
		{Kind: "update", Title: "other", Content: "Updated github build action", Hash: "h3"},
		{Kind: "fix", Title: "opponents", Content: "blackboard for AI drops its content", Hash: "h4"},
	}

	got, err := All(text)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// The sequence is restartable.
	var second []core.Commit
	for c, err := range Lines(text) {
		require.NoError(t, err)
		second = append(second, c)
	}
	assert.Equal(t, want, second)
}

func TestLines_Malformed(t *testing.T) {
	text := "feat: ok :h1\nbroken\nfix: ok :h2\n"

	var good int
	var errs []error
	for _, err := range Lines(text) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		good++
	}
	assert.Equal(t, 2, good)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], core.ErrMalformedLine)
	assert.Contains(t, errs[0].Error(), "line 2")

	_, err := All(text)
	assert.ErrorIs(t, err, core.ErrMalformedLine)
}

func TestLines_StopEarly(t *testing.T) {
	n := 0
	for range Lines("a :1\nb :2\nc :3\n") {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}
