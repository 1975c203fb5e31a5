package annotation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// Relations maps a source entity name to the names it references. Keys keep
// the order in which they were first set; setting an existing key replaces
// its targets in place. The zero value is an empty, ready to use collection.
type Relations struct {
	keys    []string
	targets map[string][]string
}

// NewRelations builds a collection from a plain map. Keys are sorted so the
// result does not depend on map iteration order.
func NewRelations(m map[string][]string) Relations {
	var r Relations
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		r.Set(k, m[k])
	}
	return r
}

// Set stores targets for source. An empty target list is ignored: a source
// without references has no entry at all.
func (r *Relations) Set(source string, targets []string) {
	if len(targets) == 0 {
		return
	}
	if r.targets == nil {
		r.targets = make(map[string][]string)
	}
	if _, exists := r.targets[source]; !exists {
		r.keys = append(r.keys, source)
	}
	r.targets[source] = slices.Clone(targets)
}

// Get returns the targets recorded for source.
func (r Relations) Get(source string) ([]string, bool) {
	targets, ok := r.targets[source]
	if !ok {
		return nil, false
	}
	return slices.Clone(targets), true
}

// Has reports whether source has any recorded targets.
func (r Relations) Has(source string) bool {
	_, ok := r.targets[source]
	return ok
}

// Keys returns the source names in insertion order.
func (r Relations) Keys() []string {
	return slices.Clone(r.keys)
}

// Len returns the number of sources with at least one target.
func (r Relations) Len() int {
	return len(r.keys)
}

// Edges returns the total number of source to target links.
func (r Relations) Edges() int {
	n := 0
	for _, k := range r.keys {
		n += len(r.targets[k])
	}
	return n
}

// Map flattens the collection into a plain map.
func (r Relations) Map() map[string][]string {
	m := make(map[string][]string, len(r.keys))
	for _, k := range r.keys {
		m[k] = slices.Clone(r.targets[k])
	}
	return m
}

// MarshalJSON writes the collection as a plain object of string arrays,
// keeping key order.
func (r Relations) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.targets[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a plain object of string arrays, keeping key order.
func (r *Relations) UnmarshalJSON(data []byte) error {
	*r = Relations{}
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("relations: expected object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("relations: expected string key, got %v", keyTok)
		}
		var targets []string
		if err := dec.Decode(&targets); err != nil {
			return fmt.Errorf("relations: targets of %q: %w", key, err)
		}
		r.Set(key, targets)
	}
	_, err = dec.Token()
	return err
}

// MarshalYAML writes the collection as an ordered mapping.
func (r Relations) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range r.keys {
		valNode := &yaml.Node{}
		if err := valNode.Encode(r.targets[k]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			valNode,
		)
	}
	return node, nil
}

// RelationshipMap holds the three independent relationship collections.
type RelationshipMap struct {
	ToolToPrompt     Relations `json:"toolToPrompt" yaml:"tool_to_prompt"`
	PromptToResource Relations `json:"promptToResource" yaml:"prompt_to_resource"`
	ToolToResource   Relations `json:"toolToResource" yaml:"tool_to_resource"`
}

// Edges counts every link across the three collections.
func (m RelationshipMap) Edges() int {
	return m.ToolToPrompt.Edges() + m.PromptToResource.Edges() + m.ToolToResource.Edges()
}
