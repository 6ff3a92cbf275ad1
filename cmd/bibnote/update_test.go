package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zejiany/bibnote/internal/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRunUpdateReadsFolderFromDotenv(t *testing.T) {
	config.ResetGlobalConfigCache()
	defer config.ResetGlobalConfigCache()

	origEnv := os.Getenv(config.EnvFolder)
	origXDG := os.Getenv("XDG_CONFIG_HOME")
	defer func() {
		os.Setenv(config.EnvFolder, origEnv)
		os.Setenv("XDG_CONFIG_HOME", origXDG)
	}()
	os.Unsetenv(config.EnvFolder)
	os.Setenv("XDG_CONFIG_HOME", t.TempDir())

	notesDir := t.TempDir()
	writeFile(t, filepath.Join(notesDir, "refs.bib"), "@article{a, title = {A Title}}\n")
	notePath := filepath.Join(notesDir, "note.md")
	writeFile(t, notePath, "---\nbibfile: refs.bib\ncitekeys: [a]\n---\nBody\n")

	// The .env lives in the working directory, not the notes folder.
	workDir := t.TempDir()
	writeFile(t, filepath.Join(workDir, ".env"), config.EnvFolder+"="+notesDir+"\n")

	oldDir, _ := os.Getwd()
	defer os.Chdir(oldDir)
	os.Chdir(workDir)

	if err := runUpdate(rootCmd, nil); err != nil {
		t.Fatalf("runUpdate() error = %v", err)
	}

	got, err := os.ReadFile(notePath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), `id="a"`) {
		t.Errorf("note not updated from the .env-configured folder:\n%s", got)
	}
	if _, err := os.Stat(filepath.Join(notesDir, "tmp-note.bak")); err != nil {
		t.Errorf("backup missing after .env-driven run: %v", err)
	}
}
