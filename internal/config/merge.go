package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Sections a project overlay may replace. Anything else in the overlay, version included, is
// ignored.
const (
	sectionSource  = "source"
	sectionDisplay = "display"
	sectionLogging = "logging"
)

var errNilConfig = errors.New("overlay target config is nil")

// ShallowMergeYAML applies the overlay file at overlayPath to target one section at a time.
// A section present in the overlay replaces the whole section in target, starting from the
// defaults, so a partial section does not inherit values from the global file.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errNilConfig
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading project config %s: %w", overlayPath, err)
	}

	var sections map[string]yaml.Node
	if err = yaml.Unmarshal(data, &sections); err != nil {
		return fmt.Errorf("parsing project config %s: %w", overlayPath, err)
	}

	defaults := New()
	for name, node := range sections {
		switch name {
		case sectionSource:
			err = decodeSection(&node, defaults.Source, &target.Source)
		case sectionDisplay:
			err = decodeSection(&node, defaults.Display, &target.Display)
		case sectionLogging:
			err = decodeSection(&node, defaults.Logging, &target.Logging)
		default:
			continue
		}
		if err != nil {
			return fmt.Errorf("project config section %q: %w", name, err)
		}
	}
	return nil
}

// decodeSection decodes node over a copy of base and stores the result in dst.
func decodeSection[T any](node *yaml.Node, base T, dst *T) error {
	if err := node.Decode(&base); err != nil {
		return err
	}
	*dst = base
	return nil
}
