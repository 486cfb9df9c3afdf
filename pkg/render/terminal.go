// pkg/render/terminal.go
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/opd-ai/go-shipforge/pkg/engine"
	"github.com/opd-ai/go-shipforge/pkg/physics"
)

// TerminalRenderer draws an ASCII top-down view of the battle. Ships
// show as their team digit (capitalized hulks), projectiles as dots.
type TerminalRenderer struct {
	width  int
	height int
	buffer [][]rune
	scale  float64
	center physics.Vec
	out    io.Writer
}

// NewTerminalRenderer creates a renderer with the given view size. Scale
// is world units per character cell.
func NewTerminalRenderer(out io.Writer, width, height int, scale float64) *TerminalRenderer {
	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
	}
	return &TerminalRenderer{
		width:  width,
		height: height,
		buffer: buffer,
		scale:  scale,
		out:    out,
	}
}

// SetCenter moves the view center in world coordinates.
func (r *TerminalRenderer) SetCenter(pos physics.Vec) {
	r.center = pos
}

// Render implements Renderer.
func (r *TerminalRenderer) Render(state engine.BattleState) {
	r.clear()
	for _, p := range state.Projectiles {
		r.plot(p.Position, '.')
	}
	for _, s := range state.Ships {
		r.plot(s.Position, shipGlyph(s))
	}
	r.present(state)
}

func shipGlyph(s engine.ShipState) rune {
	if !s.Alive {
		return 'x'
	}
	glyph := rune('0' + s.TeamID%10)
	if s.Derelict {
		return '~'
	}
	return glyph
}

func (r *TerminalRenderer) clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = ' '
		}
	}
}

// plot converts world coordinates to a buffer cell, dropping anything
// outside the view.
func (r *TerminalRenderer) plot(pos physics.Vec, glyph rune) {
	x := int((pos.X-r.center.X)/r.scale + float64(r.width)/2)
	y := int((pos.Y-r.center.Y)/r.scale + float64(r.height)/2)
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return
	}
	r.buffer[y][x] = glyph
}

func (r *TerminalRenderer) present(state engine.BattleState) {
	border := "+" + strings.Repeat("-", r.width) + "+"

	fmt.Fprintf(r.out, "tick %d  ships %d  projectiles %d\n",
		state.Tick, len(state.Ships), len(state.Projectiles))
	fmt.Fprintln(r.out, border)
	for y := range r.buffer {
		fmt.Fprintf(r.out, "|%s|\n", string(r.buffer[y]))
	}
	fmt.Fprintln(r.out, border)
}
