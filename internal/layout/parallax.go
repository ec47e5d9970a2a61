package layout

// ParallaxOpts configures a [Parallax].
type ParallaxOpts struct {
	FPS     int
	SpringX SpringParams
	SpringY SpringParams
	Clamp   bool
}

// Parallax turns pointer moves into a smoothed grid translation.
//
// The zero pointer state is "not tracking": [Parallax.Offset] is the origin until the first
// move after construction or a resize.
type Parallax struct {
	x, y     *Spring
	clamp    bool
	viewport Viewport
	pointer  PointerOffset
	tracking bool
}

// NewParallax creates a parallax with zero-valued spring params replaced by the defaults.
func NewParallax(opts ParallaxOpts) *Parallax {
	if opts.SpringX == (SpringParams{}) {
		opts.SpringX = DefaultSpringX
	}
	if opts.SpringY == (SpringParams{}) {
		opts.SpringY = DefaultSpringY
	}
	return &Parallax{
		x:     NewSpring(opts.FPS, opts.SpringX),
		y:     NewSpring(opts.FPS, opts.SpringY),
		clamp: opts.Clamp,
	}
}

// Viewport returns the last viewport passed to [Parallax.Resize].
func (p *Parallax) Viewport() Viewport { return p.viewport }

// Pointer returns the last recorded pointer offset.
func (p *Parallax) Pointer() PointerOffset { return p.pointer }

// Tracking reports whether a pointer move has been seen since the last reset.
func (p *Parallax) Tracking() bool { return p.tracking }

// Resize records the new viewport and resets the offset to the origin.
func (p *Parallax) Resize(vp Viewport) {
	p.viewport = vp
	p.Reset()
}

// Reset stops pointer tracking and puts both springs at rest.
func (p *Parallax) Reset() {
	p.tracking = false
	p.pointer = PointerOffset{}
	p.x.Snap(0)
	p.y.Snap(0)
}

// Move records a pointer move and retargets the springs.
//
// The first move after a reset seeds the springs at the start of the remap domain so the
// pan eases out of the origin instead of jumping.
func (p *Parallax) Move(po PointerOffset) {
	if !p.tracking {
		xlo, _ := XDomain(float64(p.viewport.Width))
		ylo, _ := YDomain(float64(p.viewport.Height))
		p.x.Snap(xlo)
		p.y.Snap(ylo)
		p.tracking = true
	}
	p.pointer = po
	p.x.SetTarget(po.Left)
	p.y.SetTarget(po.Top)
}

// Step advances both springs one frame. It returns true while either is still moving.
func (p *Parallax) Step() bool {
	if !p.tracking {
		return false
	}
	p.x.Step()
	p.y.Step()
	return !p.Settled()
}

// Settled reports whether both springs are at rest.
func (p *Parallax) Settled() bool {
	return p.x.Settled() && p.y.Settled()
}

// Smoothed returns the current smoothed pointer position.
func (p *Parallax) Smoothed() (left, top float64) {
	return p.x.Value(), p.y.Value()
}

// Offset returns the current grid translation.
func (p *Parallax) Offset() RenderOffset {
	if !p.tracking {
		return RenderOffset{}
	}
	return Translate(p.x.Value(), p.y.Value(), p.viewport, p.pointer.Width, p.pointer.Height, p.clamp)
}

// Target returns the translation the springs are settling toward.
func (p *Parallax) Target() RenderOffset {
	if !p.tracking {
		return RenderOffset{}
	}
	return Translate(p.x.Target(), p.y.Target(), p.viewport, p.pointer.Width, p.pointer.Height, p.clamp)
}
