package source_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/seclens/auditdash/pkg/service/source"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	gt.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestDirEntries(t *testing.T) {
	ctx := context.Background()

	t.Run("matches pattern in directory", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "b.md", "# B")
		writeFile(t, dir, "a.md", "# A")
		writeFile(t, dir, "notes.txt", "not a report")

		entries, err := source.NewDir(dir, "*.md", false).Entries(ctx)
		gt.NoError(t, err)
		gt.Equal(t, len(entries), 2)
		gt.Equal(t, entries[0].Name, "a.md")
		gt.Equal(t, entries[0].Text, "# A")
		gt.Equal(t, entries[1].Name, "b.md")
	})

	t.Run("non-recursive ignores subdirectories", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "top.md", "# Top")
		sub := filepath.Join(dir, "sub")
		gt.NoError(t, os.Mkdir(sub, 0o700))
		writeFile(t, sub, "nested.md", "# Nested")

		entries, err := source.NewDir(dir, "*.md", false).Entries(ctx)
		gt.NoError(t, err)
		gt.Equal(t, len(entries), 1)
		gt.Equal(t, entries[0].Name, "top.md")
	})

	t.Run("recursive includes subdirectories", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "top.md", "# Top")
		sub := filepath.Join(dir, "sub")
		gt.NoError(t, os.Mkdir(sub, 0o700))
		writeFile(t, sub, "nested.md", "# Nested")

		entries, err := source.NewDir(dir, "*.md", true).Entries(ctx)
		gt.NoError(t, err)
		gt.Equal(t, len(entries), 2)
	})

	t.Run("empty pattern defaults to markdown files", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.md", "# A")
		writeFile(t, dir, "a.txt", "text")

		entries, err := source.NewDir(dir, "", false).Entries(ctx)
		gt.NoError(t, err)
		gt.Equal(t, len(entries), 1)
	})

	t.Run("empty directory yields no entries", func(t *testing.T) {
		entries, err := source.NewDir(t.TempDir(), "*.md", false).Entries(ctx)
		gt.NoError(t, err)
		gt.Equal(t, len(entries), 0)
	})

	t.Run("modification time is captured", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.md", "# A")

		entries, err := source.NewDir(dir, "*.md", false).Entries(ctx)
		gt.NoError(t, err)
		gt.Equal(t, len(entries), 1)
		gt.False(t, entries[0].ModifiedAt.IsZero())
	})
}
