// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package effect

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/gogpu/glass/geom"
	"gopkg.in/yaml.v3"
)

// LoadPresets reads named parameter sets from YAML:
//
//	frosted:
//	  blur: 12
//	  corner_radius: 16
//	pill:
//	  corner_radius: [24, 24, 8, 8]
//	  tint: "#FFFFFF40"
//
// Fields that are not set keep their DefaultParameters value. The
// corner_radius field accepts a number, a list of four numbers in
// top-left, top-right, bottom-right, bottom-left order, or a mapping with
// top_left, top_right, bottom_right and bottom_left keys.
func LoadPresets(r io.Reader) (map[string]Parameters, error) {
	var doc map[string]yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]Parameters{}, nil
		}
		return nil, fmt.Errorf("effect: presets: %w", err)
	}

	out := make(map[string]Parameters, len(doc))
	for name, node := range doc {
		p := DefaultParameters()
		if err := node.Decode(&p); err != nil {
			return nil, fmt.Errorf("effect: presets: %s: %w", name, err)
		}
		var extra struct {
			CornerRadius *cornerRadius `yaml:"corner_radius"`
		}
		if err := node.Decode(&extra); err != nil {
			return nil, fmt.Errorf("effect: presets: %s: %w", name, err)
		}
		if extra.CornerRadius != nil {
			p.CornerRadius = geom.CornerRadius(*extra.CornerRadius)
		}
		out[name] = p
	}
	return out, nil
}

// PresetNames returns the preset names in sorted order.
func PresetNames(presets map[string]Parameters) []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

type cornerRadius geom.CornerRadius

func (c *cornerRadius) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		var r float64
		if err := n.Decode(&r); err != nil {
			return err
		}
		*c = cornerRadius(geom.UniformRadius(r))
	case yaml.SequenceNode:
		var v []float64
		if err := n.Decode(&v); err != nil {
			return err
		}
		if len(v) != 4 {
			return fmt.Errorf("line %d: corner_radius: want 4 values, got %d", n.Line, len(v))
		}
		*c = cornerRadius{TopLeft: v[0], TopRight: v[1], BottomRight: v[2], BottomLeft: v[3]}
	case yaml.MappingNode:
		var m struct {
			TopLeft     float64 `yaml:"top_left"`
			TopRight    float64 `yaml:"top_right"`
			BottomRight float64 `yaml:"bottom_right"`
			BottomLeft  float64 `yaml:"bottom_left"`
		}
		if err := n.Decode(&m); err != nil {
			return err
		}
		*c = cornerRadius(m)
	default:
		return fmt.Errorf("line %d: corner_radius: unsupported value", n.Line)
	}
	return nil
}
