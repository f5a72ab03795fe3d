// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backdrop

import "sync/atomic"

// captureDepth counts captures in flight across every scheduler. Surfaces
// painted during a capture must not schedule another one.
var captureDepth atomic.Int32

// IsCapturing reports whether any backdrop capture is running.
func IsCapturing() bool { return captureDepth.Load() > 0 }

func enterCapture() { captureDepth.Add(1) }
func exitCapture()  { captureDepth.Add(-1) }
