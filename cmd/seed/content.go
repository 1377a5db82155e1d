package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/portfolio-content-api/internal/models"
	"gopkg.in/yaml.v3"
)

// Document is one store path and the snapshot to write there
type Document struct {
	Path     string
	Snapshot models.Snapshot
}

// ParseContent reads a content file whose top level maps store paths to
// documents. JSON files are valid YAML and go through the same parser.
// Key order is kept all the way down.
func ParseContent(data []byte) ([]Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	if root.Kind == 0 {
		return nil, nil
	}

	top := &root
	if top.Kind == yaml.DocumentNode {
		if len(top.Content) == 0 {
			return nil, nil
		}
		top = top.Content[0]
	}
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("content file must map store paths to documents (line %d)", top.Line)
	}

	docs := make([]Document, 0, len(top.Content)/2)
	for i := 0; i+1 < len(top.Content); i += 2 {
		key, value := top.Content[i], top.Content[i+1]
		if key.Value == "" {
			return nil, fmt.Errorf("empty store path at line %d", key.Line)
		}

		var buf bytes.Buffer
		if err := writeJSON(&buf, value); err != nil {
			return nil, fmt.Errorf("path %q: %w", key.Value, err)
		}
		snap, err := models.ParseSnapshot(key.Value, buf.Bytes())
		if err != nil {
			return nil, fmt.Errorf("path %q: %w", key.Value, err)
		}
		docs = append(docs, Document{Path: key.Value, Snapshot: snap})
	}
	return docs, nil
}

// writeJSON renders a YAML node as JSON in document order
func writeJSON(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return writeJSON(buf, n.Content[0])
	case yaml.AliasNode:
		return writeJSON(buf, n.Alias)
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(n.Content[i].Value)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeJSON(buf, n.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		out, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		buf.Write(out)
	default:
		return fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
	}
	return nil
}
