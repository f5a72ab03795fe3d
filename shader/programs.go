// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"github.com/chewxy/math32"
	"github.com/gogpu/gg"
	"github.com/gogpu/glass/canvas"
)

func sample(s canvas.Shader, x, y float32) gg.RGBA {
	return s.Sample(float64(x), float64(y))
}

func bindBackdropTransform(u Uniforms, ch Children) func(x, y float32) gg.RGBA {
	sx, sy := u.Vec2("size")
	ox, oy := u.Vec2("offset")
	zoom := u.Float("zoom")
	if zoom <= 0 {
		zoom = 1
	}
	content := ch["content"]
	hx, hy := sx*0.5, sy*0.5
	return func(x, y float32) gg.RGBA {
		return sample(content, (x-hx)/zoom+hx+ox, (y-hy)/zoom+hy+oy)
	}
}

func bindLens(u Uniforms, ch Children) func(x, y float32) gg.RGBA {
	sx, sy := u.Vec2("size")
	radii := u.Vec4("cornerRadii")
	height := u.Float("refractionHeight")
	amount := u.Float("refractionAmount")
	depth := u.Float("depthEffect") > 0.5
	chroma := u.Float("chromaticAberration") > 0.5
	content := ch["content"]
	hx, hy := sx*0.5, sy*0.5

	return func(x, y float32) gg.RGBA {
		px, py := x-hx, y-hy
		r := cornerRadius(px, py, radii)
		sd := sdRoundRect(px, py, hx, hy, r)
		inside := -sd
		if height <= 0 || inside >= height || sd > 0 {
			return sample(content, x, y)
		}

		t := 1 - inside/height
		w := 1 - math32.Sqrt(math32.Max(1-t*t, 0))
		if depth {
			w *= 1 + 0.5*t
		}
		nx, ny := sdGradient(px, py, hx, hy, r)
		dx, dy := nx*amount*w, ny*amount*w

		if !chroma {
			return sample(content, x+dx, y+dy)
		}
		cr := sample(content, x+dx*2, y+dy*2)
		cg := sample(content, x+dx, y+dy)
		cb := sample(content, x+dx*0.5, y+dy*0.5)
		return gg.RGBA{R: cr.R, G: cg.G, B: cb.B, A: cg.A}
	}
}

func bindProgressive(u Uniforms, ch Children) func(x, y float32) gg.RGBA {
	_, sy := u.Vec2("size")
	start := u.Float("start")
	end := u.Float("end")
	tint := u.Vec4("tint")
	intensity := u.Float("tintIntensity")
	content := ch["content"]

	return func(x, y float32) gg.RGBA {
		c := sample(content, x, y)
		var v float32
		if sy > 0 {
			v = y / sy
		}
		m := smoothstep(start, end, v)
		k := tint[3] * intensity * m
		keep := float64(1 - m)
		return gg.RGBA{
			R: c.R*keep + float64(tint[0]*k),
			G: c.G*keep + float64(tint[1]*k),
			B: c.B*keep + float64(tint[2]*k),
			A: c.A*keep + float64(k),
		}
	}
}

func bindGamma(u Uniforms, ch Children) func(x, y float32) gg.RGBA {
	power := u.Float("power")
	content := ch["content"]
	return func(x, y float32) gg.RGBA {
		c := sample(content, x, y)
		if c.A <= 0 {
			return gg.Transparent
		}
		a := float32(c.A)
		f := func(v float64) float64 {
			s := clamp01(float32(v) / a)
			return float64(math32.Pow(s, power) * a)
		}
		return gg.RGBA{R: f(c.R), G: f(c.G), B: f(c.B), A: c.A}
	}
}

func bindHighlight(u Uniforms, _ Children) func(x, y float32) gg.RGBA {
	sx, sy := u.Vec2("size")
	radii := u.Vec4("cornerRadii")
	color := u.Vec4("color")
	angle := u.Float("angle")
	falloff := u.Float("falloff")
	lx, ly := math32.Cos(angle), math32.Sin(angle)
	hx, hy := sx*0.5, sy*0.5

	return func(x, y float32) gg.RGBA {
		px, py := x-hx, y-hy
		nx, ny := edgeNormal(px, py, hx, hy, cornerRadius(px, py, radii))
		k := math32.Pow(math32.Abs(nx*lx+ny*ly), falloff)
		a := color[3] * k
		return gg.RGBA{
			R: float64(color[0] * a),
			G: float64(color[1] * a),
			B: float64(color[2] * a),
			A: float64(a),
		}
	}
}

func bindInteractiveHighlight(u Uniforms, _ Children) func(x, y float32) gg.RGBA {
	cx, cy := u.Vec2("position")
	color := u.Vec4("color")
	radius := math32.Max(u.Float("radius"), 1e-3)

	return func(x, y float32) gg.RGBA {
		d := math32.Hypot(x-cx, y-cy)
		f := clamp01(1 - d/radius)
		a := color[3] * f * f
		return gg.RGBA{
			R: float64(color[0] * a),
			G: float64(color[1] * a),
			B: float64(color[2] * a),
			A: float64(a),
		}
	}
}
