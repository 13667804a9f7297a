package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
)

// particleGlyphs from dense to faint; picked by fade level
var particleGlyphs = []rune{'•', '∙', '·'}

// ParticlesRenderer draws the live particle slots as drifting dots
// Motion integration lives here: each record carries only origin,
// seed, speed, and a bounded age, and the renderer derives an upward
// spiral from them so the same records could drive any other backend
type ParticlesRenderer struct{}

func NewParticlesRenderer() *ParticlesRenderer {
	return &ParticlesRenderer{}
}

func (r *ParticlesRenderer) Name() string { return "particles" }

func (r *ParticlesRenderer) Render(ctx *Context) {
	for _, p := range ctx.Snapshot.Particles {
		age := p.NormalizedAge

		// Upward drift with a seed-phased horizontal spiral
		drift := age * p.Speed * 0.6
		wobble := 0.04 * math.Sin(2*math.Pi*(age*2+p.Seed))
		x := p.Origin[0] + wobble
		y := p.Origin[1] - drift

		if x < 0 || x > 1 || y < 0 || y > 1 {
			continue
		}

		// Fade in fast, fade out over the back half of the lifetime
		fade := 1.0
		if age < 0.1 {
			fade = age / 0.1
		} else if age > 0.5 {
			fade = 1 - (age-0.5)/0.5
		}

		glyph := particleGlyphs[0]
		switch {
		case fade < 0.33:
			glyph = particleGlyphs[2]
		case fade < 0.66:
			glyph = particleGlyphs[1]
		}

		v := int32(90 + 165*fade)
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(v/2, v, v))
		ctx.Screen.SetContent(ctx.cellX(x), ctx.cellY(y), glyph, nil, style)
	}
}
