package tokens

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/tokenviz/pkg/geometry"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParse_JSONEnvelope(t *testing.T) {
	path := writeFile(t, "vectors.json", `{
		"vectors": [
			{"token": 9906, "text": "Hello", "vector": [1.5, -2, 0.25]},
			{"token": 11, "text": ",", "vector": [0, 0, 0]}
		]
	}`)

	set, err := Parse(path)
	require.NoError(t, err)

	assert.Equal(t, "vectors.json", set.Name)
	require.Equal(t, 2, set.Len())
	assert.Equal(t, Record{ID: 9906, Text: "Hello", Vector: geometry.NewVector3(1.5, -2, 0.25)}, set.Records[0])
	assert.Equal(t, 11, set.Records[1].ID)
}

func TestParse_JSONArray(t *testing.T) {
	path := writeFile(t, "vectors.json", `[{"token": 1, "text": "a", "vector": [1, 2, 3]}]`)

	set, err := Parse(path)
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())
	assert.Equal(t, geometry.NewVector3(1, 2, 3), set.Records[0].Vector)
}

func TestParse_YAML(t *testing.T) {
	path := writeFile(t, "vectors.yaml", `
vectors:
  - token: 10
    text: "x"
    vector: [1, 0, 0]
  - token: 370
    text: ""
    vector: [0, 1, 0]
`)

	set, err := Parse(path)
	require.NoError(t, err)
	require.Equal(t, 2, set.Len())
	assert.Equal(t, 370, set.Records[1].ID)
	assert.Equal(t, "", set.Records[1].Text)
}

func TestParse_YAMLList(t *testing.T) {
	path := writeFile(t, "vectors.yml", `
- token: 5
  text: "five"
  vector: [0.5, 0.5, 0.5]
`)

	set, err := Parse(path)
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())
	assert.Equal(t, "five", set.Records[0].Text)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		noData  bool
	}{
		{"empty envelope", "a.json", `{"vectors": []}`, true},
		{"empty array", "a.json", `[]`, true},
		{"empty yaml", "a.yaml", ``, true},
		{"backend error", "a.json", `{"error": "No tokens provided"}`, false},
		{"short vector", "a.json", `[{"token": 1, "vector": [1, 2]}]`, false},
		{"bad json", "a.json", `{`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(writeFile(t, tt.file, tt.content))
			require.Error(t, err)
			assert.Equal(t, tt.noData, errorsIsNoData(err))
		})
	}
}

func TestParse_MissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestParseJSON(t *testing.T) {
	set, err := ParseJSON("inline", []byte(`[{"token": 3, "text": "c", "vector": [0, 0, 1]}]`))
	require.NoError(t, err)
	assert.Equal(t, "inline", set.Name)
	assert.Equal(t, 0, set.IndexOf(3))
	assert.Equal(t, -1, set.IndexOf(4))
}
