package report

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// TreeSink collects entries into an ordered YAML mapping.
//
// A key repeated within one group is suffixed with " #2", " #3" and so on,
// so the document stays a valid mapping.
type TreeSink struct {
	node  *yaml.Node
	seen  map[string]int
	state *treeState
}

type treeState struct {
	root *yaml.Node
	err  error
}

// NewTreeSink creates an empty document.
func NewTreeSink() *TreeSink {
	root := &yaml.Node{Kind: yaml.MappingNode}

	return &TreeSink{
		node:  root,
		seen:  make(map[string]int),
		state: &treeState{root: root},
	}
}

// Put adds a scalar entry. Values are encoded with their YAML type.
func (s *TreeSink) Put(key string, value any) {
	var v yaml.Node
	switch value.(type) {
	case float32, float64:
		v = yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: FormatValue(value)}
	default:
		if err := v.Encode(value); err != nil {
			if s.state.err == nil {
				s.state.err = fmt.Errorf("encode %q: %w", key, err)
			}

			return
		}
	}

	s.node.Content = append(s.node.Content, s.key(key), &v)
}

// Child adds a nested mapping.
func (s *TreeSink) Child(name string) Sink {
	child := &yaml.Node{Kind: yaml.MappingNode}
	s.node.Content = append(s.node.Content, s.key(name), child)

	return &TreeSink{
		node:  child,
		seen:  make(map[string]int),
		state: s.state,
	}
}

func (s *TreeSink) key(name string) *yaml.Node {
	s.seen[name]++
	if n := s.seen[name]; n > 1 {
		name = fmt.Sprintf("%s #%d", name, n)
	}

	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}
}

// Marshal renders the document with two-space indentation.
func (s *TreeSink) Marshal() ([]byte, error) {
	if s.state.err != nil {
		return nil, s.state.err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s.state.root); err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}

	return buf.Bytes(), nil
}
