package display

// Frame is a single RGBA image, row-major, four bytes per pixel.
type Frame struct {
	Width, Height int
	Pix           []byte
}

// NewFrame allocates a zeroed frame of the given dimensions.
func NewFrame(w, h int) *Frame {
	return &Frame{Width: w, Height: h, Pix: make([]byte, w*h*4)}
}

// SetRGBA writes one pixel. Out-of-bounds coordinates are ignored, matching
// hardware's tolerance of a beam position that briefly excurses past the
// nominal visible area during blanking edge cases.
func (f *Frame) SetRGBA(x, y int, r, g, b, a byte) {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return
	}
	i := (y*f.Width + x) * 4
	f.Pix[i+0] = r
	f.Pix[i+1] = g
	f.Pix[i+2] = b
	f.Pix[i+3] = a
}

// field selects which of the two interlace fields a frame buffer belongs
// to.
type field int

const (
	long field = iota
	short
)

// Buffers holds the four RGBA buffers of spec.md §3: long/short frame ×
// working/stable. Only the working buffer is ever written by the pixel
// pipeline; the stable buffer is what a host renders. The swap at end of
// frame is a pointer exchange guarded by mu, giving the "stable buffer
// pointer never points at a buffer currently being written" property
// (spec.md §8.8) for free -- a reader always observes either the old or the
// new stable pointer, never a half-written one.
type Buffers struct {
	spec Spec

	working [2]*Frame // indexed by field
	stable  [2]*Frame

	interlaced bool
	mu         chan struct{} // binary semaphore; see Lock/Unlock
}

// Spec returns the display geometry the buffers were allocated for.
func (b *Buffers) Spec() Spec { return b.spec }

// NewBuffers allocates all four buffers for the given spec.
func NewBuffers(spec Spec) *Buffers {
	b := &Buffers{
		spec: spec,
		mu:   make(chan struct{}, 1),
	}
	b.mu <- struct{}{}
	for f := 0; f < 2; f++ {
		b.working[f] = NewFrame(spec.LongFrameWidth, spec.LongFrameHeight)
		b.stable[f] = NewFrame(spec.LongFrameWidth, spec.LongFrameHeight)
	}
	return b
}

// SetInterlaced switches between progressive (long field only) and
// interlaced (long/short alternate) output.
func (b *Buffers) SetInterlaced(v bool) {
	b.interlaced = v
}

// Working returns the buffer the pixel pipeline should currently write
// into. isShort selects the short field in interlaced mode; it is ignored
// in progressive mode.
func (b *Buffers) Working(isShort bool) *Frame {
	if b.interlaced && isShort {
		return b.working[short]
	}
	return b.working[long]
}

// Swap exchanges working and stable for the current field, called by the
// orchestrator at end-of-frame (spec.md §4.j step 4). The exchange is
// atomic with respect to Stable(): a concurrent reader always sees a fully
// written frame.
func (b *Buffers) Swap(isShort bool) {
	f := long
	if b.interlaced && isShort {
		f = short
	}

	<-b.mu
	b.working[f], b.stable[f] = b.stable[f], b.working[f]
	b.mu <- struct{}{}
}

// Stable returns the buffer a host should render, for the requested field.
func (b *Buffers) Stable(isShort bool) *Frame {
	<-b.mu
	defer func() { b.mu <- struct{}{} }()

	if b.interlaced && isShort {
		return b.stable[short]
	}
	return b.stable[long]
}
