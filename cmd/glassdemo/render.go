// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"github.com/gogpu/gg"
	"github.com/gogpu/glass/backdrop"
	"github.com/gogpu/glass/canvas"
	"github.com/gogpu/glass/geom"
	"github.com/gogpu/glass/surface"
	"github.com/gogpu/glass/visual"
)

const defaultSize = 800

// renderer owns the demo scene: a background node and one glass surface.
type renderer struct {
	cfg   config
	w, h  int
	win   *visual.HostWindow
	sched *backdrop.Scheduler
	glass *surface.Surface
}

func newRenderer(cfg config, opts ...surface.Option) (*renderer, error) {
	bg, err := loadBackground(cfg.in, cfg.size)
	if err != nil {
		return nil, err
	}
	w, h := bg.Width(), bg.Height()

	root := visual.NewNode("background", geom.SizeRect(float64(w), float64(h))).
		SetPainter(visual.ImagePainter(bg))
	win := visual.NewHostWindow(float64(w), float64(h), 1, root)
	sched := backdrop.NewScheduler(win)

	bounds := geom.NewRect(float64(w)/6, float64(h)/3, float64(w)*2/3, float64(h)/3)
	if cfg.rect != nil {
		bounds = *cfg.rect
	}
	params, err := loadParameters(cfg.presetPath, cfg.preset)
	if err != nil {
		return nil, err
	}
	opts = append([]surface.Option{surface.WithParameters(params)}, opts...)
	g := surface.NewSurface(sched, "glass", bounds, opts...)
	root.Add(g.Node)

	return &renderer{cfg: cfg, w: w, h: h, win: win, sched: sched, glass: g}, nil
}

// renderOnce reloads the preset, paints the window and writes the output.
func (r *renderer) renderOnce() error {
	params, err := loadParameters(r.cfg.presetPath, r.cfg.preset)
	if err != nil {
		return err
	}
	r.glass.SetParameters(params)

	// The first frame requests a capture; the second draws through it.
	if _, err := r.frame(); err != nil {
		return err
	}
	r.sched.Pump()
	pix, err := r.frame()
	if err != nil {
		return err
	}
	if err := imgio.Save(r.cfg.out, pix.ToImage(), imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("glassdemo: save %s: %w", r.cfg.out, err)
	}
	fmt.Printf("wrote %s (%dx%d, passes %v)\n", r.cfg.out, r.w, r.h, r.glass.LastPasses())
	return nil
}

func (r *renderer) frame() (*gg.Pixmap, error) {
	target, err := canvas.NewRaster(r.w, r.h)
	if err != nil {
		return nil, err
	}
	visual.Walker{}.Render(target, r.win.Root(), geom.SizeRect(float64(r.w), float64(r.h)), nil)
	return target.Pixmap(), nil
}

func (r *renderer) close() { r.glass.Close() }

// loadBackground opens path, resized to size when given, or draws a
// placeholder scene.
func loadBackground(path string, size image.Point) (*gg.Pixmap, error) {
	if path == "" {
		if size == (image.Point{}) {
			size = image.Pt(defaultSize, defaultSize*3/4)
		}
		return drawBackground(size.X, size.Y), nil
	}
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("glassdemo: open %s: %w", path, err)
	}
	b := img.Bounds()
	if size != (image.Point{}) && (b.Dx() != size.X || b.Dy() != size.Y) {
		img = transform.Resize(img, size.X, size.Y, transform.Linear)
	}
	return gg.FromImage(img), nil
}

// drawBackground paints a gradient with a few shapes for the glass to
// refract.
func drawBackground(w, h int) *gg.Pixmap {
	dc := gg.NewContext(w, h)
	defer dc.Close()

	const bands = 64
	for i := range bands {
		t := float64(i) / bands
		dc.SetRGB(0.1+t*0.5, 0.2+t*0.3, 0.5-t*0.2)
		dc.DrawRectangle(0, float64(h)*t, float64(w), float64(h)/bands+1)
		_ = dc.Fill()
	}

	for i := range 7 {
		a := float64(i) / 7 * 2 * math.Pi
		x := float64(w)/2 + math.Cos(a)*float64(w)/4
		y := float64(h)/2 + math.Sin(a)*float64(h)/4
		dc.SetRGBA(0.5+0.5*math.Cos(a), 0.5+0.5*math.Sin(a), 0.8, 0.9)
		dc.DrawCircle(x, y, float64(min(w, h))/10)
		_ = dc.Fill()
	}
	return gg.FromImage(dc.Image())
}
