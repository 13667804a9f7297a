package render

import "sort"

// Renderer draws one visual layer of the frame
type Renderer interface {
	Name() string
	Render(ctx *Context)
}

// Layer priorities; lower draws first (further back)
const (
	PriorityParticles = 100
	PriorityCascade   = 200
	PriorityHUD       = 400
)

const (
	headerRows = 3 // Stage title and prompt
	footerRows = 2 // Input echo and drive bars
)

type registered struct {
	renderer Renderer
	priority int
	order    int
}

// Orchestrator runs renderers back to front over a shared context
type Orchestrator struct {
	renderers []registered
}

func NewOrchestrator() *Orchestrator {
	return &Orchestrator{}
}

// Register adds a renderer at the given layer priority
// Equal priorities keep registration order
func (o *Orchestrator) Register(r Renderer, priority int) {
	o.renderers = append(o.renderers, registered{r, priority, len(o.renderers)})
	sort.SliceStable(o.renderers, func(i, j int) bool {
		if o.renderers[i].priority != o.renderers[j].priority {
			return o.renderers[i].priority < o.renderers[j].priority
		}
		return o.renderers[i].order < o.renderers[j].order
	})
}

// RenderFrame clears the screen, draws every layer, and shows
func (o *Orchestrator) RenderFrame(ctx *Context) {
	ctx.Screen.Clear()
	for _, reg := range o.renderers {
		reg.renderer.Render(ctx)
	}
	ctx.Screen.Show()
}
