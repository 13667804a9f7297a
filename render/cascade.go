package render

import (
	"github.com/gdamore/tcell/v2"
)

// CascadeRenderer draws the layered network: dormant nodes as dim
// anchors, firing nodes flaring toward white, and traveling signals
// interpolated along their edges
type CascadeRenderer struct{}

func NewCascadeRenderer() *CascadeRenderer {
	return &CascadeRenderer{}
}

func (r *CascadeRenderer) Name() string { return "cascade" }

func (r *CascadeRenderer) Render(ctx *Context) {
	levels := ctx.Snapshot.Cascade.NodeFiringLevels
	if len(ctx.Layout) == 0 {
		return
	}

	// Signals first so an arriving pulse draws under its hot target
	for _, sig := range ctx.Snapshot.Cascade.ActiveSignals {
		if sig.From >= len(ctx.Layout) || sig.To >= len(ctx.Layout) {
			continue
		}
		from := ctx.Layout[sig.From]
		to := ctx.Layout[sig.To]
		x := from.X + (to.X-from.X)*sig.Progress
		y := from.Y + (to.Y-from.Y)*sig.Progress

		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 210, 120))
		ctx.Screen.SetContent(ctx.cellX(x), ctx.cellY(y), '✦', nil, style)
	}

	for i, node := range ctx.Layout {
		level := 0.0
		if i < len(levels) {
			level = levels[i]
		}

		glyph := '○'
		if level > 0.5 {
			glyph = '◉'
		} else if level > 0.05 {
			glyph = '●'
		}

		// Dormant nodes sit deep blue; firing pushes toward white
		rr := int32(40 + 215*level)
		gg := int32(60 + 195*level)
		bb := int32(120 + 135*level)
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(rr, gg, bb))
		ctx.Screen.SetContent(ctx.cellX(node.X), ctx.cellY(node.Y), glyph, nil, style)
	}
}
