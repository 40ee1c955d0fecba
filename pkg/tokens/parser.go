package tokens

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/philipparndt/tokenviz/pkg/geometry"
)

// wireRecord mirrors the /api/tokens_to_vectors response entries
type wireRecord struct {
	Token  int       `json:"token" yaml:"token"`
	Text   string    `json:"text" yaml:"text"`
	Vector []float64 `json:"vector" yaml:"vector"`
}

type wireEnvelope struct {
	Vectors []wireRecord `json:"vectors" yaml:"vectors"`
	Error   string       `json:"error,omitempty" yaml:"error,omitempty"`
}

// Parse reads a records file. JSON and YAML are accepted, either as a bare
// list or wrapped in a {"vectors": [...]} envelope.
func Parse(filename string) (*Set, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var records []wireRecord
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		records, err = decodeYAML(data)
	default:
		records, err = decodeJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(filename), err)
	}

	set, err := fromWire(filepath.Base(filename), records)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(filename), err)
	}
	return set, nil
}

// ParseJSON decodes records from raw JSON
func ParseJSON(name string, data []byte) (*Set, error) {
	records, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}
	return fromWire(name, records)
}

func decodeJSON(data []byte) ([]wireRecord, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var records []wireRecord
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, err
		}
		return records, nil
	}

	var env wireEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	if env.Error != "" {
		return nil, fmt.Errorf("backend error: %s", env.Error)
	}
	return env.Vectors, nil
}

func decodeYAML(data []byte) ([]wireRecord, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var records []wireRecord
		if err := root.Decode(&records); err != nil {
			return nil, err
		}
		return records, nil
	}

	var env wireEnvelope
	if err := root.Decode(&env); err != nil {
		return nil, err
	}
	if env.Error != "" {
		return nil, fmt.Errorf("backend error: %s", env.Error)
	}
	return env.Vectors, nil
}

func fromWire(name string, records []wireRecord) (*Set, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}

	set := NewSet(name)
	for i, w := range records {
		v, ok := geometry.FromSlice(w.Vector)
		if !ok {
			return nil, fmt.Errorf("record %d: vector has %d components, expected 3", i, len(w.Vector))
		}
		set.Add(Record{ID: w.Token, Text: w.Text, Vector: v})
	}
	return set, nil
}
