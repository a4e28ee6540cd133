package game

import (
	"github.com/ahtohbi4/nature-simulator/renderer"
)

// Frame snapshots the planet for drawing.
func (p *Planet) Frame() renderer.Frame {
	agents := p.field.Agents()
	sprites := make([]renderer.Sprite, 0, len(agents))
	for _, a := range agents {
		pos := a.Position()
		sprites = append(sprites, renderer.Sprite{
			X:            pos.X,
			Y:            pos.Y,
			ViewRadius:   a.ViewRadius(),
			ActionRadius: a.ActionRadius(),
			Alive:        a.IsAlive(),
			Color:        p.colors[a.Kind()],
			Label:        renderer.Label(a.FullName(), a.Gender().String()),
		})
	}
	items := p.notes.Items()
	notes := make([]string, len(items))
	for i, n := range items {
		notes[i] = n.String()
	}
	return renderer.Frame{
		Width:   p.width,
		Height:  p.height,
		Day:     p.clock.Day,
		Sprites: sprites,
		Notes:   notes,
	}
}

// Draw renders the current state onto c.
func (p *Planet) Draw(c renderer.Canvas) {
	renderer.DrawFrame(c, p.Frame())
}

// render draws onto the configured canvas, if any.
func (p *Planet) render() {
	if p.canvas == nil {
		return
	}
	p.Draw(p.canvas)
	if p.present != nil {
		p.present()
	}
}
