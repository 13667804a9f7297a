package main

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/emberlit/afterglow/engine"
	"github.com/emberlit/afterglow/event"
	"github.com/emberlit/afterglow/stage"
)

// inputState maps terminal input onto the interaction event taxonomy
// It owns the response buffer and stage position; the simulation only
// sees the seven inbound event kinds
type inputState struct {
	sim    *engine.SimContext
	script *stage.Script
	log    *zap.Logger

	buffer     []rune
	stageIndex int

	mouseValid  bool
	lastMouseX  int
	lastMouseY  int
	lastButtons tcell.ButtonMask
}

func newInputState(sim *engine.SimContext, script *stage.Script, log *zap.Logger) *inputState {
	return &inputState{
		sim:    sim,
		script: script,
		log:    log,
	}
}

func (in *inputState) text() string {
	return string(in.buffer)
}

func (in *inputState) queue() *event.EventQueue {
	return in.sim.World.Resource.Event.Queue
}

func (in *inputState) frame() int64 {
	return in.sim.World.FrameNumber()
}

// handle processes one terminal event; returns false to quit
func (in *inputState) handle(ev tcell.Event, screen tcell.Screen) bool {
	switch tev := ev.(type) {
	case *tcell.EventResize:
		screen.Sync()

	case *tcell.EventKey:
		return in.handleKey(tev)

	case *tcell.EventMouse:
		in.handleMouse(tev, screen)
	}
	return true
}

func (in *inputState) handleKey(ev *tcell.EventKey) bool {
	now := time.Now().UnixMilli()

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false

	case tcell.KeyCtrlP:
		if in.sim.IsPaused.Load() {
			in.sim.Resume()
		} else {
			in.sim.Pause()
		}

	case tcell.KeyCtrlR:
		in.buffer = in.buffer[:0]
		in.stageIndex = 0
		event.EmitSessionReset(in.queue(), in.frame())

	case tcell.KeyEnter:
		event.EmitSubmission(in.queue(), in.stageIndex, len(in.buffer), now, in.frame())
		next := (in.stageIndex + 1) % in.script.Count()
		event.EmitQuestionChange(in.queue(), in.stageIndex, next, in.frame())
		in.stageIndex = next
		in.buffer = in.buffer[:0]

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(in.buffer) > 0 {
			in.buffer = in.buffer[:len(in.buffer)-1]
		}
		event.EmitKeystroke(in.queue(), '\b', len(in.buffer), now, in.frame())

	case tcell.KeyRune:
		in.buffer = append(in.buffer, ev.Rune())
		event.EmitKeystroke(in.queue(), ev.Rune(), len(in.buffer), now, in.frame())
	}
	return true
}

func (in *inputState) handleMouse(ev *tcell.EventMouse, screen tcell.Screen) {
	now := time.Now().UnixMilli()
	x, y := ev.Position()
	width, height := screen.Size()

	if !in.mouseValid || x != in.lastMouseX || y != in.lastMouseY {
		nx, ny := 0.5, 0.5
		if width > 1 {
			nx = float64(x) / float64(width-1)
		}
		if height > 1 {
			ny = float64(y) / float64(height-1)
		}
		event.EmitPointerMove(in.queue(), nx, ny, in.frame())
		in.lastMouseX, in.lastMouseY = x, y
		in.mouseValid = true
	}

	buttons := ev.Buttons()
	if buttons&tcell.WheelUp != 0 {
		event.EmitScroll(in.queue(), -120, in.frame())
	}
	if buttons&tcell.WheelDown != 0 {
		event.EmitScroll(in.queue(), 120, in.frame())
	}
	if buttons&tcell.Button1 != 0 && in.lastButtons&tcell.Button1 == 0 {
		event.EmitClick(in.queue(), now, in.frame())
	}
	in.lastButtons = buttons
}
