package main

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-scene/internal/engine"
	"github.com/Faultbox/midgard-scene/internal/logger"
	"github.com/Faultbox/midgard-scene/internal/scene"
	"github.com/Faultbox/midgard-scene/internal/scene/component"
	"github.com/Faultbox/midgard-scene/internal/scene/transform"
	"github.com/Faultbox/midgard-scene/pkg/math"
)

func box(halfX, halfY, halfZ float32) math.BoundingBox {
	return math.BoundingBox{Min: math.V3(-halfX, -halfY, -halfZ), Max: math.V3(halfX, halfY, halfZ)}
}

// seedDemo registers a few assets to spawn from the console and places a
// camera looking at the origin.
func seedDemo(eng *engine.Engine) {
	assets := eng.Assets()

	rock, _ := eng.RegisterAsset("Rock")
	scene.AddComponent[transform.Transform](assets, rock)
	assets.SetComponent(rock, component.Mesh{Bounds: box(0.5, 0.4, 0.5), VertexCount: 512, IndexCount: 1536})
	scene.AddComponent[component.Material](assets, rock).Roughness = 0.9
	rockTex, _ := assets.Create("RockTexture")
	assets.SetComponent(rockTex, component.Texture{Path: "textures/rock.png", Width: 256, Height: 256})
	scene.GetComponent[component.Material](assets, rock).AlbedoMap = rockTex

	tree, _ := eng.RegisterAsset("Tree")
	scene.AddComponent[transform.Transform](assets, tree)
	assets.SetComponent(tree, component.Mesh{Bounds: box(0.2, 1.5, 0.2), VertexCount: 96, IndexCount: 180})
	leaves, _ := assets.Create("Leaves")
	assets.SetComponent(leaves, transform.FromTRS(math.V3(0, 2, 0), math.QuatIdentity(), math.V3(1, 1, 1)))
	assets.SetComponent(leaves, component.Mesh{Bounds: box(1.2, 1, 1.2), VertexCount: 1024, IndexCount: 3072})
	if err := assets.AddChild(tree, leaves); err != nil {
		logger.Error("building tree asset", zap.Error(err))
	}

	eng.Post(engine.AssetLoaded{Name: "Crate", Mesh: component.Mesh{Bounds: box(0.5, 0.5, 0.5), VertexCount: 24, IndexCount: 36}})

	entities := eng.Entities()
	cam, _ := entities.Create("Camera")
	scene.AddComponent[component.Camera](entities, cam).Primary = true
	eye := transform.FromTRS(math.V3(0, 5, 30), math.QuatFromAxisAngle(math.V3(1, 0, 0), -0.165), math.V3(1, 1, 1))
	entities.SetComponent(cam, eye)

	sun, _ := entities.Create("Sun")
	light := scene.AddComponent[component.Light](entities, sun)
	light.Type = component.LightDirectional
	light.Intensity = 3
	entities.SetComponent(sun, transform.FromTRS(math.V3(0, 50, 0), math.QuatFromAxisAngle(math.V3(1, 0, 0), -1.2), math.V3(1, 1, 1)))
}
