package reveal

import "github.com/soochol/ralphflow/internal/chart"

// Surface receives every frame the controller produces.
type Surface interface {
	Render(Frame)
}

// SurfaceFunc adapts a plain function to Surface.
type SurfaceFunc func(Frame)

func (f SurfaceFunc) Render(fr Frame) { f(fr) }

// Controller owns one viewer's ViewState over a fixed chart. It is not safe
// for concurrent use; callers serialize events the way a UI loop does.
type Controller struct {
	chart   *chart.Chart
	state   ViewState
	surface Surface
}

// NewController starts at step 0. surface may be nil.
func NewController(c *chart.Chart, surface Surface) *Controller {
	return &Controller{chart: c, surface: surface}
}

func (c *Controller) Chart() *chart.Chart { return c.chart }
func (c *Controller) State() ViewState    { return c.state }
func (c *Controller) Frame() Frame        { return Project(c.chart, c.state) }

func (c *Controller) Advance() Frame { return c.set(Advance(c.state, c.chart.Len())) }
func (c *Controller) Retreat() Frame { return c.set(Retreat(c.state)) }
func (c *Controller) Reset() Frame   { return c.set(Reset()) }
func (c *Controller) ShowAll() Frame { return c.set(ShowAll(c.chart.Len())) }

// Restore replaces the state, clamped into range, and emits its frame.
func (c *Controller) Restore(s ViewState) Frame {
	return c.set(s.Clamp(c.chart.Len()))
}

// AnnotationFor is a direct table lookup on the controller's chart.
func (c *Controller) AnnotationFor(step int) (chart.Annotation, bool) {
	return c.chart.AnnotationFor(step)
}

func (c *Controller) set(s ViewState) Frame {
	c.state = s
	f := Project(c.chart, s)
	if c.surface != nil {
		c.surface.Render(f)
	}
	return f
}
