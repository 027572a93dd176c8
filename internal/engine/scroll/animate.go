package scroll

import "time"

// DefaultScrollDuration is the animation length used for smooth scrolls.
const DefaultScrollDuration = 150 * time.Millisecond

type animation struct {
	from     float64
	target   float64
	duration time.Duration
	elapsed  time.Duration
}

// easeOutCubic maps normalized time t in [0,1] onto an out-cubic curve:
// fast start, gentle stop.
func easeOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// ScrollTo starts an animated scroll toward target over the given
// duration. The target is clamped into the valid range. Retargeting a
// running animation restarts it from the current offset, so the view never
// jumps. A non-positive duration scrolls immediately.
func (w *Window) ScrollTo(target float64, duration time.Duration) {
	target = w.clamp(target)
	if duration <= 0 {
		w.anim = nil
		w.offset = target
		return
	}
	if target == w.offset {
		w.anim = nil
		return
	}
	w.anim = &animation{
		from:     w.offset,
		target:   target,
		duration: duration,
	}
}

// Animating reports whether a scroll animation is in flight.
func (w *Window) Animating() bool {
	return w.anim != nil
}

// TargetOffset returns the animation's destination, or the current offset
// when nothing is animating.
func (w *Window) TargetOffset() float64 {
	if w.anim != nil {
		return w.anim.target
	}
	return w.offset
}

// StopAnimation cancels any running animation, leaving the offset where
// the last Tick put it.
func (w *Window) StopAnimation() {
	w.anim = nil
}

// Tick advances a running animation by dt and reports whether the offset
// changed. The final tick lands exactly on the target.
func (w *Window) Tick(dt time.Duration) bool {
	a := w.anim
	if a == nil {
		return false
	}
	a.elapsed += dt
	if a.elapsed >= a.duration {
		w.anim = nil
		w.offset = w.clamp(a.target)
		return true
	}
	t := float64(a.elapsed) / float64(a.duration)
	w.offset = w.clamp(a.from + (a.target-a.from)*easeOutCubic(t))
	return true
}
