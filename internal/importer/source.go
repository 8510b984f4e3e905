// Package importer reads zone seed lists and feeds them to the bulk import.
package importer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Tocard/DiscordDofusBotLGB/internal/app"
	"gopkg.in/yaml.v3"
)

// seedEntry accepts either a bare scalar ("Bastion") or a mapping with name/actor.
type seedEntry struct {
	Name  string `yaml:"name"`
	Actor string `yaml:"actor"`
}

func (e *seedEntry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		e.Name = node.Value
		return nil
	}
	type plain seedEntry
	return node.Decode((*plain)(e))
}

type seedFile struct {
	Zones []seedEntry `yaml:"zones"`
}

// ParseYAML reads either a top-level list of zones or a document with a zones key.
func ParseYAML(r io.Reader, defaultActor string) ([]app.ImportEntry, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}

	var entries []seedEntry
	doc := root.Content[0]
	switch doc.Kind {
	case yaml.SequenceNode:
		if err := doc.Decode(&entries); err != nil {
			return nil, fmt.Errorf("decode zone list: %w", err)
		}
	case yaml.MappingNode:
		var f seedFile
		if err := doc.Decode(&f); err != nil {
			return nil, fmt.Errorf("decode zone file: %w", err)
		}
		entries = f.Zones
	default:
		return nil, fmt.Errorf("unsupported yaml document at line %d", doc.Line)
	}

	out := make([]app.ImportEntry, 0, len(entries))
	for _, e := range entries {
		actor := e.Actor
		if actor == "" {
			actor = defaultActor
		}
		out = append(out, app.ImportEntry{Name: e.Name, Actor: actor})
	}
	return out, nil
}

// ParseLines reads one zone name per line. Blank lines and # comments are ignored.
func ParseLines(r io.Reader, defaultActor string) ([]app.ImportEntry, error) {
	var out []app.ImportEntry
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, app.ImportEntry{Name: line, Actor: defaultActor})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	return out, nil
}

// LoadFile parses path as YAML for .yaml/.yml and as a line list otherwise.
func LoadFile(path, defaultActor string) ([]app.ImportEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(f, defaultActor)
	default:
		return ParseLines(f, defaultActor)
	}
}
