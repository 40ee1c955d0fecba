package cmd

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recordsJSON = `{"vectors": [
	{"token": 42, "text": "hello", "vector": [0, 0, 0]},
	{"token": 7, "text": "world", "vector": [10, 5, -3]},
	{"token": 402, "text": "", "vector": [-20, 1, 2]},
	{"token": 42, "text": "hello", "vector": [3, 3, 3]}
]}`

func writeRecords(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	path := filepath.Join(dir, "records.json")
	require.NoError(t, os.WriteFile(path, []byte(recordsJSON), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRenderWritesPNG(t *testing.T) {
	file := writeRecords(t)
	output := filepath.Join(filepath.Dir(file), "out.png")

	out, err := execute(t, "render", file, "-o", output,
		"--width", "320", "--height", "200", "--ticks", "3",
		"--highlight", "7", "--pointer", "160,100")
	require.NoError(t, err)
	assert.Contains(t, out, "320x200, 4 tokens")

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestRenderRejectsBadFlags(t *testing.T) {
	file := writeRecords(t)

	_, err := execute(t, "render", file, "--ticks", "0")
	assert.Error(t, err)

	_, err = execute(t, "render", file, "--pointer", "1,2,3")
	assert.Error(t, err)

	_, err = execute(t, "render", file, "--highlight", "999")
	assert.Error(t, err)
}

func TestRenderMissingFile(t *testing.T) {
	writeRecords(t)
	_, err := execute(t, "render", "does-not-exist.json")
	assert.Error(t, err)
}

func TestTableSearch(t *testing.T) {
	file := writeRecords(t)

	out, err := execute(t, "table", file, "--search", "WOR")
	require.NoError(t, err)
	assert.Contains(t, out, "world")
	assert.NotContains(t, out, "hello")
	assert.Contains(t, out, "1 of 4 records")

	out, err = execute(t, "table", file)
	require.NoError(t, err)
	assert.Contains(t, out, "[Symbol]")
	assert.Contains(t, out, "4 of 4 records")
}

func TestInfo(t *testing.T) {
	file := writeRecords(t)

	out, err := execute(t, "info", file, "--top", "2")
	require.NoError(t, err)
	for _, want := range []string{"Count", "4", "Unique IDs", "3", "Most Frequent IDs", "x2"} {
		assert.True(t, strings.Contains(out, want), "missing %q in\n%s", want, out)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "tokenviz dev\n", out)
}
