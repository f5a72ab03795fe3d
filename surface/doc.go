// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the glass visuals that sit in a host scene.
//
// A Surface subscribes to a backdrop.Scheduler, draws its shadow and the
// refracted backdrop under its own content, and carries two overlay
// children: a FrontOverlay for the rim highlight and inner shadow above the
// content, and an InteractiveOverlay for the press glow below it.
//
//	sched := backdrop.NewScheduler(window)
//	card := surface.NewSurface(sched, "card", geom.NewRect(40, 40, 320, 200),
//		surface.WithParameters(frosted),
//		surface.WithAdaptiveLuminance(true),
//	)
//	root.Add(card.Node)
//	defer card.Close()
//
// InteractiveSurface adds press and drag deformation driven by springs.
//
// All methods must be called from the UI goroutine that drains the
// scheduler's dispatcher. Background work (luminance sampling, animation
// ticks) posts its results to that dispatcher.
package surface
