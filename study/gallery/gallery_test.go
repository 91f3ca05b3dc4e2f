package gallery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestCreate_IndexesEveryDirectory(t *testing.T) {
	// GIVEN a plot tree with one sub-directory
	root := t.TempDir()
	touch(t, filepath.Join(root, "1leptonPt.png"))
	touch(t, filepath.Join(root, "1leptonPt.pdf"))
	touch(t, filepath.Join(root, "sub", "4ST.eps"))

	// WHEN the gallery is created
	require.NoError(t, Create(root))

	// THEN every directory has an index linking its content
	top, err := os.ReadFile(filepath.Join(root, IndexFile))
	require.NoError(t, err)
	assert.Contains(t, string(top), `<img src="1leptonPt.png"`)
	assert.Contains(t, string(top), `href="1leptonPt.pdf"`)
	assert.Contains(t, string(top), `href="sub/index.html"`)
	assert.NotContains(t, string(top), `href="../index.html"`)

	sub, err := os.ReadFile(filepath.Join(root, "sub", IndexFile))
	require.NoError(t, err)
	assert.Contains(t, string(sub), `href="4ST.eps"`)
	assert.NotContains(t, string(sub), "<img")
	assert.Contains(t, string(sub), `href="../index.html"`)
}

func TestCreate_Rerun(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.png"))
	require.NoError(t, Create(root))

	require.NoError(t, Create(root))

	data, err := os.ReadFile(filepath.Join(root, IndexFile))
	require.NoError(t, err)
	assert.NotContains(t, string(data), `href="index.html"`, "the index does not list itself")
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "a.png", preview([]string{"a.eps", "a.png", "a.svg"}))
	assert.Equal(t, "a.svg", preview([]string{"a.eps", "a.svg"}))
	assert.Equal(t, "", preview([]string{"a.eps", "a.pdf"}))
}

func TestPublish_ReplacesTarget(t *testing.T) {
	// GIVEN a published copy with a stale file
	src := filepath.Join(t.TempDir(), "VLQTrig")
	touch(t, filepath.Join(src, "new.png"))
	dst := t.TempDir()
	touch(t, filepath.Join(dst, "VLQTrig", "stale.png"))

	// WHEN published again
	target, err := Publish(src, dst)

	// THEN the target mirrors the source
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dst, "VLQTrig"), target)
	assert.FileExists(t, filepath.Join(target, "new.png"))
	assert.NoFileExists(t, filepath.Join(target, "stale.png"))
}
