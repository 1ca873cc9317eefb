package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/mlv/internal/log"
)

// SaveTheme records the highlight theme in the config file.
// Comments and formatting in other sections are preserved.
func SaveTheme(configPath, theme string) error {
	return SaveValue(configPath, "highlight.theme", theme)
}

// SaveValue sets the scalar at a dotted key path ("highlight.theme"),
// creating intermediate mappings as needed. The file is parsed as a
// yaml.Node so unrelated keys keep their comments and order.
func SaveValue(configPath, keyPath, value string) error {
	keys := strings.Split(keyPath, ".")
	for _, k := range keys {
		if k == "" {
			return fmt.Errorf("invalid key path %q", keyPath)
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	if doc.Kind == 0 {
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode}},
		}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return fmt.Errorf("parsing config: unexpected document")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("config root must be a mapping")
	}

	if err := setScalar(root, keys, value); err != nil {
		return fmt.Errorf("setting %s: %w", keyPath, err)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	if err := writeAtomic(configPath, buf.Bytes()); err != nil {
		return err
	}

	log.Debug(log.CatConfig, "saved config value", "path", configPath, "key", keyPath, "value", value)
	return nil
}

// setScalar walks (and extends) mapping nodes along keys and replaces the
// final value with a scalar.
func setScalar(node *yaml.Node, keys []string, value string) error {
	key := keys[0]

	var child *yaml.Node
	for i := 0; i < len(node.Content)-1; i += 2 {
		if node.Content[i].Value == key {
			child = node.Content[i+1]
			if len(keys) == 1 {
				// Mutate in place so comments attached to the node survive.
				child.Kind = yaml.ScalarNode
				child.Tag = "!!str"
				child.Value = value
				child.Style = 0
				child.Content = nil
				return nil
			}
			break
		}
	}

	if len(keys) == 1 {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value},
		)
		return nil
	}

	if child == nil {
		child = &yaml.Node{Kind: yaml.MappingNode}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			child,
		)
	}

	// A null placeholder ("highlight:" with nothing under it) becomes a mapping.
	if child.Kind == yaml.ScalarNode && (child.Tag == "!!null" || child.Value == "") {
		child.Kind = yaml.MappingNode
		child.Tag = ""
		child.Value = ""
	}
	if child.Kind != yaml.MappingNode {
		return fmt.Errorf("%q is not a mapping", key)
	}
	return setScalar(child, keys[1:], value)
}

// writeAtomic writes data to a temp file next to path and renames it over.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".mlv.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
