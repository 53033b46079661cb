package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindRoot(t *testing.T) {
	// baseDir/
	//   project/ (.dedma)
	//     cmd/
	//       tool/
	//   empty/
	baseDir := t.TempDir()
	projectDir := filepath.Join(baseDir, "project")
	cmdDir := filepath.Join(projectDir, "cmd")
	toolDir := filepath.Join(cmdDir, "tool")
	emptyDir := filepath.Join(baseDir, "empty")

	for _, dir := range []string{toolDir, emptyDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(projectDir, DefaultSystemDir), 0755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		startPath string
		wantRoot  string
		wantErr   bool
	}{
		{name: "at root", startPath: projectDir, wantRoot: projectDir},
		{name: "in subdir", startPath: cmdDir, wantRoot: projectDir},
		{name: "nested", startPath: toolDir, wantRoot: projectDir},
		{name: "no root", startPath: emptyDir, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindRoot(tt.startPath, "")
			if (err != nil) != tt.wantErr {
				t.Fatalf("FindRoot() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != "" && filepath.Clean(got) != filepath.Clean(tt.wantRoot) {
				t.Errorf("FindRoot() = %v, want %v", got, tt.wantRoot)
			}
		})
	}
}

func TestFindRoot_GitMarker(t *testing.T) {
	repo := t.TempDir()
	nested := filepath.Join(repo, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(repo, ".git"), 0755); err != nil {
		t.Fatal(err)
	}

	got, err := FindRoot(nested, "")
	if err != nil {
		t.Fatalf("FindRoot() error = %v", err)
	}
	if filepath.Clean(got) != filepath.Clean(repo) {
		t.Errorf("FindRoot() = %v, want %v", got, repo)
	}
}

func TestResolveRoot_Explicit(t *testing.T) {
	dir := t.TempDir()
	got, err := ResolveRoot(dir, "")
	if err != nil {
		t.Fatal(err)
	}
	if got != dir {
		t.Errorf("ResolveRoot() = %v, want %v", got, dir)
	}
}
