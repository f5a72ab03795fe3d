// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package backdrop captures what lies behind glass surfaces and shares the
// result with them.
//
// A [Scheduler] is created per window. Surfaces subscribe to it, call
// [Scheduler.EnsureSnapshot] while painting and draw from
// [Scheduler.TryGetSnapshot]. The scheduler re-renders the window's visual
// tree, with every subscriber excluded, into an off-screen target that
// covers the union of the subscribers' sampling areas.
//
// # Snapshots
//
// A [Snapshot] is an immutable capture plus a small cache of filtered
// derivatives. Readers must hold a lease while touching its pixels:
//
//	if snap.TryAcquireLease() {
//		defer snap.ReleaseLease()
//		// draw from snap.Image
//	}
//
// When a newer snapshot is published the old one is asked to dispose; the
// actual release happens once the last lease is returned.
package backdrop
