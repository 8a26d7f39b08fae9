package object

import "github.com/tomz197/invaders/internal/asset"

// Playback tracks the position within an animation. Completion is polled
// with Done rather than reported through callbacks.
type Playback struct {
	Anim    *asset.Animation
	Index   int
	elapsed float64
	loop    bool
	done    bool
}

// Play starts anim from its first frame.
func (p *Playback) Play(anim *asset.Animation, loop bool) {
	p.Anim = anim
	p.Index = 0
	p.elapsed = 0
	p.loop = loop
	p.done = false
}

// Advance moves the animation forward by dt seconds. Animations with no
// frame time only change frames through Toggle; a non-looping one of those
// completes on its first advance.
func (p *Playback) Advance(dt float64) {
	if p.Anim == nil || p.done {
		return
	}
	n := len(p.Anim.Frames)
	if n == 0 {
		p.done = !p.loop
		return
	}
	if p.Anim.FrameTime <= 0 {
		if !p.loop {
			p.done = true
		}
		return
	}

	p.elapsed += dt
	idx := int(p.elapsed / p.Anim.FrameTime)
	if idx >= n {
		if !p.loop {
			p.Index = n - 1
			p.done = true
			return
		}
		idx %= n
		p.elapsed -= float64(int(p.elapsed/p.Anim.Duration())) * p.Anim.Duration()
	}
	p.Index = idx
}

// Done reports whether a non-looping animation has played through.
func (p *Playback) Done() bool {
	return p.done
}

// Toggle steps to the next frame, wrapping around.
func (p *Playback) Toggle() {
	if p.Anim == nil || len(p.Anim.Frames) == 0 {
		return
	}
	p.Index = (p.Index + 1) % len(p.Anim.Frames)
}

// Frame returns the frame currently shown, or nil without an animation.
func (p *Playback) Frame() *asset.Frame {
	if p.Anim == nil || len(p.Anim.Frames) == 0 {
		return nil
	}
	return p.Anim.Frames[min(p.Index, len(p.Anim.Frames)-1)]
}
