package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// HUDRenderer draws the stage header, the input echo line, and the
// drive bars that make the decaying state visible
type HUDRenderer struct{}

func NewHUDRenderer() *HUDRenderer {
	return &HUDRenderer{}
}

func (r *HUDRenderer) Name() string { return "hud" }

func (r *HUDRenderer) Render(ctx *Context) {
	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	promptStyle := tcell.StyleDefault.Foreground(tcell.NewRGBColor(180, 180, 200))
	dimStyle := tcell.StyleDefault.Foreground(tcell.NewRGBColor(110, 110, 130))

	state := ctx.Snapshot.Activity
	current := ctx.Script.At(state.QuestionIndex)

	header := fmt.Sprintf("[%d/%d] %s", state.QuestionIndex+1, ctx.Script.Count(), current.Title)
	ctx.drawText(1, 0, header, titleStyle)
	ctx.drawText(1, 1, current.Prompt, promptStyle)

	if ctx.Paused {
		ctx.drawText(ctx.Width-10, 0, "PAUSED", titleStyle)
	}

	// Input echo with a block cursor
	inputRow := ctx.Height - footerRows
	ctx.drawText(1, inputRow, "> "+ctx.InputText+"█", promptStyle)

	// Drive bars along the bottom row
	bars := []struct {
		label string
		value float64
	}{
		{"typ", state.TypingSpeed / 3},
		{"act", state.ActivityLevel},
		{"mse", state.MouseSpeed},
		{"scr", state.ScrollVelocity},
		{"clk", state.ClickPulse},
		{"sub", state.SubmissionPulse},
	}

	x := 1
	barRow := ctx.Height - 1
	for _, b := range bars {
		x = r.drawBar(ctx, x, barRow, b.label, b.value, dimStyle)
	}

	status := "idle"
	if state.IsTyping {
		status = "typing"
	}
	ctx.drawText(x+1, barRow, status, dimStyle)
}

// drawBar renders one labelled five-segment bar, returning the next
// free column
func (r *HUDRenderer) drawBar(ctx *Context, x, y int, label string, value float64, labelStyle tcell.Style) int {
	ctx.drawText(x, y, label+" ", labelStyle)
	x += len(label) + 1

	const segments = 5
	filled := int(value*segments + 0.5)
	for i := 0; i < segments; i++ {
		glyph := '▱'
		style := labelStyle
		if i < filled {
			glyph = '▰'
			v := int32(120 + 135*value)
			style = tcell.StyleDefault.Foreground(tcell.NewRGBColor(v, v, 80))
		}
		if x < ctx.Width {
			ctx.Screen.SetContent(x, y, glyph, nil, style)
		}
		x++
	}
	return x + 2
}
