// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package effect

import (
	"math"
	"sync/atomic"

	"github.com/gogpu/gg"
	"github.com/gogpu/glass/backdrop"
	"github.com/gogpu/glass/canvas"
	"github.com/gogpu/glass/filter"
	"github.com/gogpu/glass/geom"
	"github.com/gogpu/glass/shader"
)

// Geometry is the size of the surface in local units.
type Geometry struct {
	Width  float64
	Height float64
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithLibrary sets the shader library programs are loaded from.
func WithLibrary(l *shader.Library) PipelineOption {
	return func(p *Pipeline) {
		if l != nil {
			p.lib = l
		}
	}
}

// Pipeline builds drawing plans for glass surfaces.
type Pipeline struct {
	lib *shader.Library
}

// NewPipeline creates a pipeline. Programs come from shader.Default unless
// WithLibrary is given.
func NewPipeline(opts ...PipelineOption) *Pipeline {
	p := &Pipeline{}
	for _, opt := range opts {
		opt(p)
	}
	if p.lib == nil {
		p.lib = shader.Default()
	}
	return p
}

// step is one drawing operation of a plan. A step may realize several
// passes, as the backdrop chain does.
type step struct {
	stage Stage
	draw  func(c canvas.Canvas)
}

// Plan is the resolved set of passes for one surface and one snapshot.
// It holds a lease on the snapshot until Release.
type Plan struct {
	params   Parameters
	width    float64
	height   float64
	radii    geom.CornerRadius
	snap     *backdrop.Snapshot
	filtered backdrop.Filtered
	passes   []PassKind
	steps    []step
	released atomic.Bool
}

// Build resolves a plan for a surface of geometry g drawing snap with
// params. snap may be nil; the plan then draws the not-ready placeholder.
func (p *Pipeline) Build(snap *backdrop.Snapshot, params Parameters, g Geometry) *Plan {
	pl := &Plan{
		params: params,
		width:  finite(g.Width, 0),
		height: finite(g.Height, 0),
	}
	if pl.width <= 0 || pl.height <= 0 {
		return pl
	}
	pl.radii = params.CornerRadius.Clamp(math.Min(pl.width, pl.height) / 2)

	if snap != nil && snap.TryAcquireLease() {
		pl.snap = snap
	}

	pl.addShadow()
	p.addBackdrop(pl)
	p.addHighlight(pl)
	pl.addInnerShadow()
	p.addInteractive(pl)
	return pl
}

// Passes returns the passes of the plan in drawing order.
func (pl *Plan) Passes() []PassKind { return append([]PassKind(nil), pl.passes...) }

// Count returns how many passes of kind k the plan has.
func (pl *Plan) Count(k PassKind) int {
	n := 0
	for _, pk := range pl.passes {
		if pk == k {
			n++
		}
	}
	return n
}

// Snapshot returns the leased snapshot, or nil.
func (pl *Plan) Snapshot() *backdrop.Snapshot { return pl.snap }

// Backdrop returns the filtered backdrop the plan samples.
func (pl *Plan) Backdrop() backdrop.Filtered { return pl.filtered }

// Draw draws every stage. The canvas transform must map the surface's
// local coordinates to window pixels.
func (pl *Plan) Draw(c canvas.Canvas) { pl.DrawStage(c, StageAll) }

// DrawStage draws the passes of the selected stages. Drawing a released
// plan does nothing.
func (pl *Plan) DrawStage(c canvas.Canvas, s Stage) {
	if pl.released.Load() {
		return
	}
	for _, st := range pl.steps {
		if st.stage&s != 0 {
			st.draw(c)
		}
	}
}

// Release returns the snapshot lease. It is safe to call more than once.
func (pl *Plan) Release() {
	if pl.released.Swap(true) {
		return
	}
	if pl.snap != nil {
		pl.snap.ReleaseLease()
	}
}

func (pl *Plan) add(draw func(c canvas.Canvas), kinds ...PassKind) {
	pl.passes = append(pl.passes, kinds...)
	pl.steps = append(pl.steps, step{stage: stageOf(kinds[0]), draw: draw})
}

func (pl *Plan) rect() geom.Rect { return geom.SizeRect(pl.width, pl.height) }

func (pl *Plan) roundRect() geom.RoundRect { return geom.NewRoundRect(pl.rect(), pl.radii) }

func (pl *Plan) sizeUniform() []float32 { return []float32{float32(pl.width), float32(pl.height)} }

func (pl *Plan) radiiUniform() []float32 {
	v := pl.radii.Vec4()
	return []float32{float32(v[0]), float32(v[1]), float32(v[2]), float32(v[3])}
}

// deviceScale returns the uniform scale of m.
func deviceScale(m gg.Matrix) float64 {
	return math.Sqrt(math.Abs(m.A*m.E - m.B*m.D))
}

func (pl *Plan) addShadow() {
	p := pl.params
	if !p.ShadowEnabled {
		return
	}
	radius := clampOr(p.ShadowRadius, 0, 512, 0)
	opacity := clampOr(p.ShadowOpacity, 0, 1, 0)
	color := p.ShadowColor.WithAlpha(p.ShadowColor.A * opacity)
	if radius <= 0.001 || opacity <= 0.001 || color.A <= 0 {
		return
	}
	ox, oy := finite(p.ShadowOffset.X, 0), finite(p.ShadowOffset.Y, 0)

	pl.add(func(c canvas.Canvas) {
		rr := pl.roundRect()
		pad := radius * 2
		bounds := geom.NewRect(-pad, -pad, pl.width+pad*2, pl.height+pad*2)
		c.SaveLayer(canvas.OpaqueLayer(&bounds))
		c.Save()
		c.Concat(gg.Translate(ox, oy))
		c.DrawRoundRect(rr, canvas.Paint{Color: color.RGBA(), MaskBlur: radius})
		c.Restore()
		c.DrawRoundRect(rr, canvas.Paint{Blend: canvas.BlendClear})
		c.Restore()
	}, PassShadow)
}

func (pl *Plan) addInnerShadow() {
	p := pl.params
	if !p.InnerShadowEnabled {
		return
	}
	radius := clampOr(p.InnerShadowRadius, 0, 512, 0)
	opacity := clampOr(p.InnerShadowOpacity, 0, 1, 0)
	color := p.InnerShadowColor.WithAlpha(p.InnerShadowColor.A * opacity)
	if radius <= 0.001 || opacity <= 0.001 || color.A <= 0 {
		return
	}
	ox, oy := finite(p.InnerShadowOffset.X, 0), finite(p.InnerShadowOffset.Y, 0)

	pl.add(func(c canvas.Canvas) {
		rr := pl.roundRect()
		rect := pl.rect()
		sigma := radius * deviceScale(c.Matrix())
		c.Save()
		c.ClipRoundRect(rr)
		c.SaveLayer(canvas.Layer{
			Bounds:  &rect,
			Opacity: 1,
			Filter:  filter.NewBlur(sigma, filter.EdgeDecal),
		})
		c.DrawRoundRect(rr, canvas.Fill(color.RGBA()))
		c.Save()
		c.Concat(gg.Translate(ox, oy))
		c.DrawRoundRect(rr, canvas.Paint{Blend: canvas.BlendClear})
		c.Restore()
		c.Restore()
		c.Restore()
	}, PassInnerShadow)
}

func (p *Pipeline) addBackdrop(pl *Plan) {
	lens, err := p.lib.Load(shader.Lens)
	if err != nil {
		pl.add(pl.drawErrorHint, PassErrorHint)
		return
	}
	if pl.snap == nil {
		pl.add(pl.drawNotReady, PassNotReady)
		return
	}

	params := pl.params
	pl.filtered = filteredBackdrop(pl.snap, params)
	kinds := []PassKind{PassFilteredBackdrop}
	var chain []link

	zoom := params.ZoomFactor()
	ox, oy := finite(params.Offset.X, 0), finite(params.Offset.Y, 0)
	if math.Abs(zoom-1) > tolerance || math.Abs(ox) > tolerance || math.Abs(oy) > tolerance {
		if prog, err := p.lib.Load(shader.BackdropTransform); err == nil {
			u := shader.Uniforms{}.
				Set("size", pl.sizeUniform()...).
				Set("zoom", float32(zoom)).
				Set("offset", float32(ox), float32(oy))
			chain = append(chain, link{prog, u})
			kinds = append(kinds, PassBackdropTransform)
		}
	}

	height := clampOr(params.RefractionHeight, 0, math.Min(pl.width, pl.height)/2, 0)
	amount := finite(params.RefractionAmount, 0)
	if height > 0.001 && math.Abs(amount) > 0.001 {
		u := shader.Uniforms{}.
			Set("size", pl.sizeUniform()...).
			Set("cornerRadii", pl.radiiUniform()...).
			Set("refractionHeight", float32(height)).
			Set("refractionAmount", float32(-amount)).
			Set("depthEffect", flag(params.DepthEffect)).
			Set("chromaticAberration", flag(params.ChromaticAberration))
		chain = append(chain, link{lens, u})
		kinds = append(kinds, PassLens)
	}

	if params.ProgressiveEnabled {
		start := clampOr(params.ProgressiveStart, 0, 1, 0.5)
		end := clampOr(params.ProgressiveEnd, 0, 1, 1)
		tint := params.ProgressiveTint
		intensity := 0.0
		if tint.A > 0 {
			intensity = clampOr(params.ProgressiveIntensity, 0, 1, 0)
		}
		if prog, err := p.lib.Load(shader.Progressive); err == nil {
			u := shader.Uniforms{}.
				Set("size", pl.sizeUniform()...).
				Set("start", float32(start)).
				Set("end", float32(end)).
				Set("tint", float32(tint.R), float32(tint.G), float32(tint.B), float32(clamp(tint.A, 0, 1))).
				Set("tintIntensity", float32(intensity))
			chain = append(chain, link{prog, u})
			kinds = append(kinds, PassProgressive)
		}
	}

	power := clampOr(params.Gamma, 0, 10, 1)
	if math.Abs(power-1) > tolerance {
		if prog, err := p.lib.Load(shader.Gamma); err == nil {
			chain = append(chain, link{prog, shader.Uniforms{}.Set("power", float32(power))})
			kinds = append(kinds, PassGamma)
		}
	}

	tint := params.Tint
	if tint.A > 0 {
		kinds = append(kinds, PassTint)
	}
	surface := params.SurfaceColor
	if surface.A > 0 {
		kinds = append(kinds, PassSurfaceColor)
	}

	filtered := pl.filtered
	pl.add(func(c canvas.Canvas) {
		m := c.Matrix()
		if deviceScale(m) == 0 {
			return
		}
		toLocal := m.Invert().Multiply(gg.Translate(float64(filtered.Origin.X), float64(filtered.Origin.Y)))
		var sh canvas.Shader = canvas.NewImageShader(filtered.Image, toLocal, canvas.TileClamp)
		for _, l := range chain {
			next, err := l.prog.Shader(l.uniforms, shader.Children{"content": sh})
			if err != nil {
				continue
			}
			sh = next
		}

		rect := pl.rect()
		c.Save()
		c.ClipRoundRect(pl.roundRect())
		c.DrawRect(rect, canvas.Paint{Shader: sh})
		if tint.A > 0 {
			c.DrawRect(rect, canvas.Paint{Color: tint.Opaque().RGBA(), Blend: canvas.BlendHue})
			c.DrawRect(rect, canvas.Fill(tint.WithAlpha(tint.A*0.75).RGBA()))
		}
		if surface.A > 0 {
			c.DrawRect(rect, canvas.Fill(surface.RGBA()))
		}
		c.Restore()
	}, kinds...)
}

// link is one runtime program of the backdrop chain.
type link struct {
	prog     *shader.Program
	uniforms shader.Uniforms
}

func flag(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

func (p *Pipeline) addHighlight(pl *Plan) {
	params := pl.params
	if !params.HighlightEnabled {
		return
	}
	opacity := clampOr(params.HighlightOpacity, 0, 1, 0)
	width := clampOr(params.HighlightWidth, 0, 100, 0)
	if opacity <= 0.001 || width <= 0.001 {
		return
	}
	prog, err := p.lib.Load(shader.Highlight)
	if err != nil {
		return
	}
	angle := finite(params.HighlightAngle, 0) * math.Pi / 180
	u := shader.Uniforms{}.
		Set("size", pl.sizeUniform()...).
		Set("cornerRadii", pl.radiiUniform()...).
		Set("color", 1, 1, 1, float32(opacity)).
		Set("angle", float32(angle)).
		Set("falloff", float32(clampOr(params.HighlightFalloff, 0, 8, 1)))
	sh, err := prog.Shader(u, nil)
	if err != nil {
		return
	}
	var blur float64
	if b := clampOr(params.HighlightBlur, 0, 20, 0); b > 0.001 {
		blur = b
	}
	stroke := &canvas.Stroke{
		Width: math.Max(0.5, math.Ceil(width)*2),
		Join:  gg.LineJoinRound,
		Cap:   gg.LineCapRound,
	}

	const pad = 1.0
	pl.add(func(c canvas.Canvas) {
		path := pl.roundRect().Path()
		c.Save()
		c.Concat(gg.Translate(-pad, -pad))
		bounds := geom.NewRect(0, 0, pl.width+pad*2, pl.height+pad*2)
		c.SaveLayer(canvas.OpaqueLayer(&bounds))
		c.Concat(gg.Translate(pad, pad))
		c.ClipPath(path)
		c.DrawPath(path, canvas.Paint{Shader: sh, Blend: canvas.BlendPlus, Stroke: stroke, MaskBlur: blur})
		c.Restore()
		c.Restore()
	}, PassHighlight)
}

func (p *Pipeline) addInteractive(pl *Plan) {
	params := pl.params
	progress := clampOr(params.InteractiveProgress, 0, 1, 0)
	if progress <= 0.001 {
		return
	}
	prog, err := p.lib.Load(shader.InteractiveHighlight)
	if err != nil {
		return
	}
	pos := gg.Pt(
		clampOr(params.InteractivePosition.X, 0, pl.width, pl.width/2),
		clampOr(params.InteractivePosition.Y, 0, pl.height, pl.height/2),
	)
	u := shader.Uniforms{}.
		Set("size", pl.sizeUniform()...).
		Set("color", 1, 1, 1, float32(clamp(0.15*progress, 0, 1))).
		Set("radius", float32(math.Min(pl.width, pl.height)*1.5)).
		Set("position", float32(pos.X), float32(pos.Y))
	sh, err := prog.Shader(u, nil)
	if err != nil {
		return
	}
	wash := gg.RGBA{R: 1, G: 1, B: 1, A: clamp(0.08*progress, 0, 1)}

	pl.add(func(c canvas.Canvas) {
		rect := pl.rect()
		c.Save()
		c.ClipRoundRect(pl.roundRect())
		c.DrawRect(rect, canvas.Paint{Color: wash, Blend: canvas.BlendPlus})
		c.DrawRect(rect, canvas.Paint{Shader: sh, Blend: canvas.BlendPlus})
		c.Restore()
	}, PassInteractiveHighlight)
}

var (
	errorHintColor = gg.RGBA{R: 1, A: 120.0 / 255}
	notReadyColor  = gg.RGBA{R: 1, G: 1, B: 1, A: 32.0 / 255}
)

func (pl *Plan) drawErrorHint(c canvas.Canvas) {
	c.DrawRoundRect(pl.roundRect(), canvas.Fill(errorHintColor))
}

func (pl *Plan) drawNotReady(c canvas.Canvas) {
	c.Save()
	c.ClipRoundRect(pl.roundRect())
	c.DrawRect(pl.rect(), canvas.Fill(notReadyColor))
	c.Restore()
}
