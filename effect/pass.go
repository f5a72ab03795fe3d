// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package effect

// PassKind identifies a drawing pass of a plan.
type PassKind uint8

const (
	// PassShadow draws the drop shadow outside the shape.
	PassShadow PassKind = iota

	// PassFilteredBackdrop samples the color-adjusted, blurred backdrop.
	PassFilteredBackdrop

	// PassBackdropTransform zooms and offsets the backdrop.
	PassBackdropTransform

	// PassLens refracts the backdrop near the edges.
	PassLens

	// PassProgressive fades the backdrop into a tint towards the bottom.
	PassProgressive

	// PassGamma applies a gamma curve.
	PassGamma

	// PassTint colors the backdrop with the tint hue and a translucent fill.
	PassTint

	// PassSurfaceColor draws a flat fill over the backdrop.
	PassSurfaceColor

	// PassHighlight strokes the lit rim.
	PassHighlight

	// PassInnerShadow darkens the inside of the shape.
	PassInnerShadow

	// PassInteractiveHighlight draws the press glow.
	PassInteractiveHighlight

	// PassErrorHint replaces the backdrop when a program failed to load.
	PassErrorHint

	// PassNotReady replaces the backdrop while no snapshot is available.
	PassNotReady
)

// String returns the pass name.
func (k PassKind) String() string {
	switch k {
	case PassShadow:
		return "Shadow"
	case PassFilteredBackdrop:
		return "FilteredBackdrop"
	case PassBackdropTransform:
		return "BackdropTransform"
	case PassLens:
		return "Lens"
	case PassProgressive:
		return "Progressive"
	case PassGamma:
		return "Gamma"
	case PassTint:
		return "Tint"
	case PassSurfaceColor:
		return "SurfaceColor"
	case PassHighlight:
		return "Highlight"
	case PassInnerShadow:
		return "InnerShadow"
	case PassInteractiveHighlight:
		return "InteractiveHighlight"
	case PassErrorHint:
		return "ErrorHint"
	case PassNotReady:
		return "NotReady"
	default:
		return "Unknown"
	}
}

// Stage groups passes by the layer of a surface that draws them.
type Stage uint8

const (
	// StageBack is drawn by the surface itself, under its content:
	// shadow and backdrop.
	StageBack Stage = 1 << iota

	// StageFront is drawn above the content: highlight and inner shadow.
	StageFront

	// StageInteractive is the press glow, under the content.
	StageInteractive

	// StageAll selects every stage.
	StageAll = StageBack | StageFront | StageInteractive
)

func stageOf(k PassKind) Stage {
	switch k {
	case PassHighlight, PassInnerShadow:
		return StageFront
	case PassInteractiveHighlight:
		return StageInteractive
	default:
		return StageBack
	}
}
