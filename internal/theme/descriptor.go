package theme

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Descriptor holds the fields of blocklet.yml the monitor cares about.
type Descriptor struct {
	Title       string
	Description string
	DID         string
}

var (
	// The key may be indented and its value may start on the next line.
	titleLine       = regexp.MustCompile(`(?m)title:\s*(.+?)\r?$`)
	descriptionLine = regexp.MustCompile(`(?m)description:\s*(.+?)\r?$`)
	didLine         = regexp.MustCompile(`(?m)did:\s*(.+?)\r?$`)
)

// ReadDescriptor reads blocklet.yml from dir.
// A missing or unreadable file yields an empty Descriptor and the error.
func ReadDescriptor(dir string) (Descriptor, error) {
	data, err := os.ReadFile(filepath.Join(dir, DescriptorFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Descriptor{}, ErrNoDescriptor
		}
		return Descriptor{}, err
	}
	return ParseDescriptor(data), nil
}

// ParseDescriptor extracts title, description and did from descriptor
// content. Content that is not valid YAML is matched line by line.
func ParseDescriptor(data []byte) Descriptor {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return matchDescriptor(data)
	}

	root := documentRoot(&doc)
	if root == nil || root.Kind != yaml.MappingNode {
		return Descriptor{}
	}

	var d Descriptor
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if val.Kind != yaml.ScalarNode || val.Tag == "!!null" {
			continue
		}
		switch key.Value {
		case "title":
			d.Title = strings.TrimSpace(val.Value)
		case "description":
			d.Description = strings.TrimSpace(val.Value)
		case "did":
			d.DID = strings.TrimSpace(val.Value)
		}
	}
	return d
}

func matchDescriptor(data []byte) Descriptor {
	first := func(re *regexp.Regexp) string {
		if m := re.FindSubmatch(data); m != nil {
			return strings.TrimSpace(string(m[1]))
		}
		return ""
	}
	return Descriptor{
		Title:       first(titleLine),
		Description: first(descriptionLine),
		DID:         first(didLine),
	}
}

func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil
		}
		return doc.Content[0]
	}
	return doc
}

// SetDID writes did into blocklet.yml, replacing an existing did key or
// appending one. Key order and comments of the file are kept.
func SetDID(dir, did string) error {
	did = strings.TrimSpace(did)
	if did == "" {
		return errors.New("did must not be empty")
	}

	path := filepath.Join(dir, DescriptorFile)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNoDescriptor
		}
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse %s: %w", DescriptorFile, err)
	}

	if doc.Kind == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}}
	}
	root := documentRoot(&doc)
	if root == nil || root.Kind != yaml.MappingNode {
		return fmt.Errorf("parse %s: top level is not a mapping", DescriptorFile)
	}

	value := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: did}
	replaced := false
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == "did" {
			value.LineComment = root.Content[i+1].LineComment
			root.Content[i+1] = value
			replaced = true
			break
		}
	}
	if !replaced {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "did"},
			value)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("encode %s: %w", DescriptorFile, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode %s: %w", DescriptorFile, err)
	}

	return os.WriteFile(path, buf.Bytes(), info.Mode().Perm())
}
