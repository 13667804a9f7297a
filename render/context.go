package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/emberlit/afterglow/engine"
	"github.com/emberlit/afterglow/stage"
)

// Context carries everything a renderer needs for one frame
// Snapshot and layout are value copies; renderers never touch live
// simulation storage
type Context struct {
	Screen tcell.Screen
	Width  int
	Height int

	Snapshot engine.FrameSnapshot
	Layout   []engine.CascadeNodeLayout

	Script    *stage.Script
	InputText string
	Paused    bool
}

// cellX maps a normalized [0,1] x coordinate onto the screen
func (c *Context) cellX(x float64) int {
	return int(x * float64(c.Width-1))
}

// cellY maps a normalized [0,1] y coordinate onto the screen,
// reserving rows for the header and status bar
func (c *Context) cellY(y float64) int {
	usable := c.Height - headerRows - footerRows
	if usable < 1 {
		usable = 1
	}
	return headerRows + int(y*float64(usable-1))
}

// drawText writes a string with clipping at the right edge
func (c *Context) drawText(x, y int, text string, style tcell.Style) {
	if y < 0 || y >= c.Height {
		return
	}
	for _, r := range text {
		if x >= c.Width {
			return
		}
		if x >= 0 {
			c.Screen.SetContent(x, y, r, nil, style)
		}
		x++
	}
}
