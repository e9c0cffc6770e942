package engine

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-scene/internal/scene"
	"github.com/Faultbox/midgard-scene/internal/scene/component"
	"github.com/Faultbox/midgard-scene/internal/scene/transform"
)

// Event is work posted to the frame loop.
type Event interface {
	apply(e *Engine)
}

// CommandLine runs a console line through Exec and logs the outcome.
type CommandLine string

func (c CommandLine) apply(e *Engine) {
	out, err := e.Exec(string(c))
	if err != nil {
		e.log.Warn("command failed", zap.String("line", string(c)), zap.Error(err))
		return
	}
	if out != "" {
		e.log.Info(out)
	}
}

// AssetLoaded registers an asset whose data was prepared on another
// goroutine.
type AssetLoaded struct {
	Name     string
	Mesh     component.Mesh
	Material *component.Material // nil for the default material
}

func (a AssetLoaded) apply(e *Engine) {
	id, name := e.RegisterAsset(a.Name)
	scene.AddComponent[transform.Transform](e.assets, id)
	e.assets.SetComponent(id, a.Mesh)
	if a.Material != nil {
		e.assets.SetComponent(id, *a.Material)
	} else {
		scene.AddComponent[component.Material](e.assets, id)
	}
	e.log.Info("asset loaded", zap.String("asset", name), zap.Int("vertices", a.Mesh.VertexCount))
}

// Func runs arbitrary code on the frame loop.
type Func func(e *Engine)

func (f Func) apply(e *Engine) { f(e) }
