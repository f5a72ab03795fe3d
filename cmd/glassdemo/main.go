// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command glassdemo composites a glass surface over a background image.
//
//	glassdemo -in photo.jpg -out glass.png -presets presets.yaml -preset frosted
//
// With -watch it re-renders whenever the presets file changes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/gogpu/glass"
	"github.com/gogpu/glass/effect"
	"github.com/gogpu/glass/geom"
)

func main() {
	if err := run(os.Args[1:]); err != nil && !errors.Is(err, flag.ErrHelp) {
		log.Fatal(err)
	}
}

// run parses args and renders. Deferred cleanup runs on every return.
func run(args []string) error {
	fs := flag.NewFlagSet("glassdemo", flag.ContinueOnError)
	var (
		in      = fs.String("in", "", "background image (PNG or JPEG); a gradient when empty")
		out     = fs.String("out", "glass.png", "output PNG file")
		size    = fs.String("size", "", "output size WxH; the background size when empty")
		preset  = fs.String("preset", "", "preset name from -presets")
		presets = fs.String("presets", "", "YAML presets file")
		rect    = fs.String("rect", "", "glass rectangle x,y,w,h; centered when empty")
		watch   = fs.Bool("watch", false, "re-render when the presets file changes")
		verbose = fs.Bool("v", false, "log capture and shader activity")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *verbose {
		glass.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg := config{
		in:         *in,
		out:        *out,
		preset:     *preset,
		presetPath: *presets,
	}
	var err error
	if cfg.size, err = parseSize(*size); err != nil {
		return err
	}
	if cfg.rect, err = parseRect(*rect); err != nil {
		return err
	}
	if *watch && cfg.presetPath == "" {
		return errors.New("glassdemo: -watch needs -presets")
	}

	r, err := newRenderer(cfg)
	if err != nil {
		return err
	}
	defer r.close()

	if err := r.renderOnce(); err != nil {
		return err
	}
	if !*watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return watchPresets(ctx, cfg.presetPath, r.renderOnce)
}

// config holds the parsed command line.
type config struct {
	in         string
	out        string
	size       image.Point
	preset     string
	presetPath string
	rect       *geom.Rect
}

// parseSize parses "WxH". An empty string yields the zero point.
func parseSize(s string) (image.Point, error) {
	if s == "" {
		return image.Point{}, nil
	}
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return image.Point{}, fmt.Errorf("glassdemo: size %q: want WxH", s)
	}
	w, err := strconv.Atoi(strings.TrimSpace(ws))
	if err != nil {
		return image.Point{}, fmt.Errorf("glassdemo: size %q: %w", s, err)
	}
	h, err := strconv.Atoi(strings.TrimSpace(hs))
	if err != nil {
		return image.Point{}, fmt.Errorf("glassdemo: size %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return image.Point{}, fmt.Errorf("glassdemo: size %q: must be positive", s)
	}
	return image.Pt(w, h), nil
}

// parseRect parses "x,y,w,h". An empty string yields nil.
func parseRect(s string) (*geom.Rect, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("glassdemo: rect %q: want x,y,w,h", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("glassdemo: rect %q: %w", s, err)
		}
		v[i] = f
	}
	if v[2] <= 0 || v[3] <= 0 {
		return nil, fmt.Errorf("glassdemo: rect %q: empty", s)
	}
	r := geom.NewRect(v[0], v[1], v[2], v[3])
	return &r, nil
}

// loadParameters returns the named preset, or the defaults when no presets
// file is given.
func loadParameters(path, name string) (effect.Parameters, error) {
	if path == "" {
		return effect.DefaultParameters(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return effect.Parameters{}, err
	}
	defer f.Close()

	presets, err := effect.LoadPresets(f)
	if err != nil {
		return effect.Parameters{}, fmt.Errorf("glassdemo: %s: %w", path, err)
	}
	if name == "" {
		names := effect.PresetNames(presets)
		if len(names) == 0 {
			return effect.DefaultParameters(), nil
		}
		name = names[0]
	}
	p, ok := presets[name]
	if !ok {
		return effect.Parameters{}, fmt.Errorf("glassdemo: %s: no preset %q (have %s)",
			path, name, strings.Join(effect.PresetNames(presets), ", "))
	}
	return p, nil
}
