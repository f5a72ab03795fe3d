// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package effect

import (
	"fmt"
	"strings"

	"github.com/gogpu/gg"
	"gopkg.in/yaml.v3"
)

// Color is a straight-alpha color. In YAML it is written as a hex string,
// "#RRGGBB" or "#RRGGBBAA".
type Color gg.RGBA

// Transparent is the zero color.
var Transparent = Color{}

// ARGB returns a color from 8-bit channels.
func ARGB(a, r, g, b uint8) Color {
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255, A: float64(a) / 255}
}

// RGBA converts to a gg color.
func (c Color) RGBA() gg.RGBA { return gg.RGBA(c) }

// Opaque returns c with full alpha.
func (c Color) Opaque() Color {
	c.A = 1
	return c
}

// WithAlpha returns c with alpha a.
func (c Color) WithAlpha(a float64) Color {
	c.A = clamp(a, 0, 1)
	return c
}

// IsTransparent reports whether the color has no alpha.
func (c Color) IsTransparent() bool { return c.A <= 0 }

// String formats the color as #RRGGBBAA.
func (c Color) String() string {
	b := func(v float64) uint8 { return uint8(clamp(v, 0, 1)*255 + 0.5) }
	return fmt.Sprintf("#%02X%02X%02X%02X", b(c.R), b(c.G), b(c.B), b(c.A))
}

// MarshalYAML implements yaml.Marshaler.
func (c Color) MarshalYAML() (any, error) { return c.String(), nil }

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return fmt.Errorf("effect: line %d: color %q: want #RRGGBB or #RRGGBBAA", n.Line, s)
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return fmt.Errorf("effect: line %d: color %q: invalid hex digit %q", n.Line, s, r)
		}
	}
	*c = Color(gg.Hex(hex))
	return nil
}
