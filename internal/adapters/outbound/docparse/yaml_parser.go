// Package docparse is the document-parser collaborator: it turns a raw
// response body into the generic tree the core resolves paths against.
package docparse

import (
	"fmt"

	"github.com/yifangd/check-json/internal/domain"
	"gopkg.in/yaml.v3"
)

// YAMLParser implements domain.DocumentParser with gopkg.in/yaml.v3.
// YAML is a superset of JSON, so JSON bodies decode losslessly; mappings
// come back as map[string]any, sequences as []any.
type YAMLParser struct{}

// New creates a YAMLParser.
func New() *YAMLParser { return &YAMLParser{} }

// Parse decodes body into a generic document tree. A malformed body is a
// KindParse error; an empty body decodes to a nil tree, which later path
// resolution reports as missing values.
func (p *YAMLParser) Parse(body []byte) (any, error) {
	var doc any
	if err := yaml.Unmarshal(body, &doc); err != nil {
		return nil, domain.NewParseError(err)
	}
	return normalize(doc), nil
}

// normalize rewrites nested containers so every mapping is map[string]any.
// yaml.v3 already decodes mappings with string keys that way; non-string
// keys (legal YAML, impossible JSON) are stringified so path resolution
// stays uniform.
func normalize(v any) any {
	switch node := v.(type) {
	case map[string]any:
		for k, child := range node {
			node[k] = normalize(child)
		}
		return node
	case map[any]any:
		m := make(map[string]any, len(node))
		for k, child := range node {
			m[fmt.Sprint(k)] = normalize(child)
		}
		return m
	case []any:
		for i, child := range node {
			node[i] = normalize(child)
		}
		return node
	default:
		return v
	}
}
