// Package apidocs loads the OpenAPI/Swagger YAML document served under /api/docs.
package apidocs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrNotAPIDocument is returned when the YAML has neither an openapi nor a swagger key
var ErrNotAPIDocument = errors.New("document has no openapi or swagger version key")

// Document is a parsed API description, pre-rendered to JSON for the UI
type Document struct {
	spec map[string]interface{}
	json []byte
}

// Load reads and parses the YAML document at path
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read api document %q: %w", path, err)
	}

	return Parse(data)
}

// Parse parses a YAML (or JSON) API document
func Parse(data []byte) (*Document, error) {
	var raw map[string]interface{}
	err := yaml.Unmarshal(data, &raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse api document: %w", err)
	}

	_, hasOpenAPI := raw["openapi"]
	_, hasSwagger := raw["swagger"]
	if !hasOpenAPI && !hasSwagger {
		return nil, ErrNotAPIDocument
	}

	spec, ok := normalize(raw).(map[string]interface{})
	if !ok {
		return nil, ErrNotAPIDocument
	}

	rendered, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to render api document: %w", err)
	}

	return &Document{
		spec: spec,
		json: rendered,
	}, nil
}

// JSON returns the document rendered as JSON
func (d *Document) JSON() []byte {
	return d.json
}

// Title returns info.title, or an empty string when absent
func (d *Document) Title() string {
	info, ok := d.spec["info"].(map[string]interface{})
	if !ok {
		return ""
	}
	title, _ := info["title"].(string)
	return title
}

// normalize converts YAML maps with non-string keys (such as unquoted
// response codes) into string keyed maps so they can be encoded as JSON
func normalize(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, item := range v {
			out[key] = normalize(item)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = normalize(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = normalize(item)
		}
		return out
	default:
		return v
	}
}
