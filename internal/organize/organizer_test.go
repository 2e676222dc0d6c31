package organize

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/keep-cli/keep/internal/logging"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
}

func TestOrganizeBasic(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "notes.txt"), "notes")
	writeTestFile(t, filepath.Join(dir, "photo.png"), "png-bytes")
	writeTestFile(t, filepath.Join(dir, "script.py"), "print('hi')")

	result, err := Organize(dir, Options{})
	assert.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "Documents", "notes.txt"))
	assert.FileExists(t, filepath.Join(dir, "Images", "photo.png"))
	assert.FileExists(t, filepath.Join(dir, "Python_Code", "script.py"))
	assert.NoFileExists(t, filepath.Join(dir, "notes.txt"))

	assert.Equal(t, 3, result.Summary.Scanned)
	assert.Equal(t, 3, result.Summary.Moved)
	assert.Equal(t, 0, result.Summary.Errors)
}

func TestOrganizePreservesContent(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "data.json"), `{"k":"v"}`)

	_, err := Organize(dir, Options{})
	assert.NoError(t, err)

	moved, err := os.ReadFile(filepath.Join(dir, "Data", "data.json"))
	assert.NoError(t, err)
	assert.Equal(t, `{"k":"v"}`, string(moved))
}

func TestOrganizeUnknownExtensionGoesToOther(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "blob.xyz"), "blob")
	writeTestFile(t, filepath.Join(dir, "README"), "no extension")

	_, err := Organize(dir, Options{})
	assert.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "Other", "blob.xyz"))
	assert.FileExists(t, filepath.Join(dir, "Other", "README"))
}

func TestOrganizeExtensionCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "photo.PNG"), "png")
	writeTestFile(t, filepath.Join(dir, "doc.Txt"), "txt")

	_, err := Organize(dir, Options{})
	assert.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "Images", "photo.PNG"))
	assert.FileExists(t, filepath.Join(dir, "Documents", "doc.Txt"))
}

func TestOrganizeDryRunMovesNothing(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "notes.txt"), "notes")

	result, err := Organize(dir, Options{DryRun: true})
	assert.NoError(t, err)

	// Planned but not executed
	assert.Len(t, result.Moves, 1)
	assert.Equal(t, 1, result.Summary.Moved)
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
	assert.NoDirExists(t, filepath.Join(dir, "Documents"))
}

func TestOrganizeConflictRename(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "Documents", "notes.txt"), "old")
	writeTestFile(t, filepath.Join(dir, "notes.txt"), "new")

	result, err := Organize(dir, Options{})
	assert.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "Documents", "notes.txt"))
	assert.FileExists(t, filepath.Join(dir, "Documents", "notes (1).txt"))

	old, _ := os.ReadFile(filepath.Join(dir, "Documents", "notes.txt"))
	renamed, _ := os.ReadFile(filepath.Join(dir, "Documents", "notes (1).txt"))
	assert.Equal(t, "old", string(old))
	assert.Equal(t, "new", string(renamed))
	assert.Equal(t, 1, result.Summary.Moved)
}

func TestOrganizeConflictCounterIncrements(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "Documents", "notes.txt"), "a")
	writeTestFile(t, filepath.Join(dir, "Documents", "notes (1).txt"), "b")
	writeTestFile(t, filepath.Join(dir, "notes.txt"), "c")

	_, err := Organize(dir, Options{})
	assert.NoError(t, err)

	got, readErr := os.ReadFile(filepath.Join(dir, "Documents", "notes (2).txt"))
	assert.NoError(t, readErr)
	assert.Equal(t, "c", string(got))
}

func TestOrganizeSkipsHidden(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, ".secrets.txt"), "dotfile")
	writeTestFile(t, filepath.Join(dir, ".git", "config"), "[core]")
	writeTestFile(t, filepath.Join(dir, "visible.txt"), "visible")

	result, err := Organize(dir, Options{})
	assert.NoError(t, err)

	// Dotfiles stay put and dot-directories are never entered
	assert.FileExists(t, filepath.Join(dir, ".secrets.txt"))
	assert.FileExists(t, filepath.Join(dir, ".git", "config"))
	assert.FileExists(t, filepath.Join(dir, "Documents", "visible.txt"))
	assert.Equal(t, 1, result.Summary.Moved)
	assert.Equal(t, 2, result.Summary.Skipped)
}

func TestOrganizeIncludeHidden(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, ".secrets.txt"), "dotfile")

	result, err := Organize(dir, Options{IncludeHidden: true})
	assert.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "Documents", ".secrets.txt"))
	assert.Equal(t, 1, result.Summary.Moved)
	assert.Equal(t, 0, result.Summary.Skipped)
}

func TestOrganizeAlreadyPlacedFilesUntouched(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "Documents", "placed.txt"), "placed")

	result, err := Organize(dir, Options{})
	assert.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "Documents", "placed.txt"))
	assert.Equal(t, 1, result.Summary.Scanned)
	assert.Equal(t, 0, result.Summary.Moved)
}

func TestOrganizeNestedFiles(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "deep", "nested", "song.mp3"), "audio")

	_, err := Organize(dir, Options{})
	assert.NoError(t, err)

	// Category folders sit at the source root regardless of depth
	assert.FileExists(t, filepath.Join(dir, "Audio", "song.mp3"))
	assert.NoFileExists(t, filepath.Join(dir, "deep", "nested", "song.mp3"))
}

func TestOrganizeSkipPaths(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "organize.log")
	writeTestFile(t, logPath, "log line")
	writeTestFile(t, filepath.Join(dir, "notes.txt"), "notes")

	result, err := Organize(dir, Options{SkipPaths: []string{logPath}})
	assert.NoError(t, err)

	assert.FileExists(t, logPath)
	assert.FileExists(t, filepath.Join(dir, "Documents", "notes.txt"))
	assert.Equal(t, 1, result.Summary.Scanned)
}

func TestOrganizeCustomCategories(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "main.go"), "package main")

	_, err := Organize(dir, Options{
		Categories: map[string]string{".go": "Go_Code"},
	})
	assert.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "Go_Code", "main.go"))
}

func TestOrganizeMissingSource(t *testing.T) {
	_, err := Organize(filepath.Join(t.TempDir(), "nope"), Options{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestOrganizeSourceIsFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	writeTestFile(t, file, "plain")

	_, err := Organize(file, Options{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestOrganizeEmptySource(t *testing.T) {
	result, err := Organize(t.TempDir(), Options{})
	assert.NoError(t, err)
	assert.Equal(t, Summary{}, result.Summary)
}

func TestOrganizeLogsEvents(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "notes.txt"), "notes")

	var buf bytes.Buffer
	logger := logging.NewWriterLogger(logging.LevelInfo, &buf)

	_, err := Organize(dir, Options{Logger: logger})
	assert.NoError(t, err)

	var types []string
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var event struct {
			Type string `json:"type"`
		}
		assert.NoError(t, json.Unmarshal(line, &event))
		types = append(types, event.Type)
	}
	assert.Contains(t, types, "organize.mkdir")
	assert.Contains(t, types, "organize.move")
	assert.Contains(t, types, "organize.summary")
}

func TestCategoryFor(t *testing.T) {
	categories := DefaultCategories()

	tests := []struct {
		name string
		ext  string
		want string
	}{
		{"Known extension", ".pdf", "Documents"},
		{"Uppercase extension", ".PDF", "Documents"},
		{"Unknown extension", ".xyz", FallbackCategory},
		{"Empty extension", "", FallbackCategory},
		{"Code extension", ".py", "Python_Code"},
		{"Archive extension", ".gz", "Archives"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryFor(tt.ext, categories))
		})
	}
}

func TestDefaultCategoriesIsACopy(t *testing.T) {
	first := DefaultCategories()
	first[".txt"] = "Mutated"

	second := DefaultCategories()
	assert.Equal(t, "Documents", second[".txt"])
}

func TestResolveConflict(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "file.txt")
	writeTestFile(t, target, "existing")

	got := resolveConflict(target)
	assert.Equal(t, filepath.Join(dir, "file (1).txt"), got)

	writeTestFile(t, got, "also existing")
	assert.Equal(t, filepath.Join(dir, "file (2).txt"), resolveConflict(target))
}

func TestResolveConflictNoExtension(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "README")
	writeTestFile(t, target, "existing")

	assert.Equal(t, filepath.Join(dir, "README (1)"), resolveConflict(target))
}
