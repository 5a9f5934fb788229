package normalize

import (
	"github.com/dshills/wmevent/internal/dispatcher/execctx"
	"github.com/dshills/wmevent/internal/input/event"
	"github.com/dshills/wmevent/internal/platform"
)

// ndofMotion builds the motion payload. Raw axes are clamped to [-1, 1].
// Axes inside the deadzone read as zero, the rest are scaled by the pan and
// orbit sensitivities.
func ndofMotion(ctx *execctx.Context, r *platform.NDOFMotion) *event.NDOFMotion {
	prefs := ctx.Prefs.NDOF
	dz := float32(prefs.Deadzone)
	ts := float32(prefs.Sensitivity)
	rs := float32(prefs.OrbitSensitivity)

	m := &event.NDOFMotion{Delta: r.Delta, Progress: r.Progress}
	for i := range 3 {
		m.Translation[i] = deadzone(clampAxis(r.Translation[i]), dz) * ts
		m.Rotation[i] = deadzone(clampAxis(r.Rotation[i]), dz) * rs
	}
	return m
}

func clampAxis(v float32) float32 {
	return max(-1, min(1, v))
}

func deadzone(v, dz float32) float32 {
	if v > -dz && v < dz {
		return 0
	}
	return v
}
