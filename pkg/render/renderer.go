// Package render draws battle snapshots for hosts that want to watch a
// simulation. The engine itself never renders; it hands out immutable
// BattleState values and these renderers consume them.
package render

import (
	"context"

	"github.com/opd-ai/go-shipforge/pkg/engine"
	"github.com/opd-ai/go-shipforge/pkg/logging"
)

// Renderer consumes one battle snapshot per frame.
type Renderer interface {
	Render(state engine.BattleState)
}

// NullRenderer discards frames, logging them at debug level. Headless
// runs use it so the host loop has a renderer either way.
type NullRenderer struct {
	logger *logging.Logger
}

// NewNullRenderer creates a NullRenderer with structured logging.
func NewNullRenderer() *NullRenderer {
	return &NullRenderer{logger: logging.NewLogger()}
}

// Render implements Renderer.
func (r *NullRenderer) Render(state engine.BattleState) {
	r.logger.Debug(context.Background(), "frame discarded",
		"tick", state.Tick,
		"ships", len(state.Ships),
		"projectiles", len(state.Projectiles),
	)
}
