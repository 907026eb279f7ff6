// Package shapefield turns text and SVG documents into fields of
// instanced 3D shapes.
//
// # Overview
//
// shapefield is a pure Go sampling and placement pipeline. A text
// string is rasterized into a coverage mask and scanned on a grid; an
// SVG document is parsed into path descriptors whose outlines and fill
// regions are sampled at a fixed spacing. The resulting points are
// normalized into a canvas-centered, y-up coordinate system and become
// particles, one per retained sample. Every animation tick the pipeline
// produces one 4x4 transform per particle, ready for a positionally
// addressed GPU instance buffer.
//
// # Quick Start
//
//	import "github.com/gogpu/shapefield"
//
//	scene := shapefield.NewScene(800, 600)
//	scene.SetText("GO")
//
//	// Per frame:
//	scene.Step(nowMillis)
//	transforms := scene.Instances()
//
// # Pipeline
//
//	text  --> TextRasterizer --> grid scan ----\
//	                                            +--> Normalize --> ParticleField
//	SVG   --> svg.Parse --> SampleDocument ----/
//
//	each tick: AutoMotion --> HoverField --> UpdateInstances --> Renderer
//
// # Rendering
//
// shapefield does not draw. A renderer backend implements the Renderer
// interface and consumes geometry, material, and per-instance transform
// writes. cmd/fieldview ships a small software viewer used for
// development.
//
// # Coordinate Systems
//
// Raw sampling happens in pixel or SVG user space (origin top-left,
// y down). Normalized output is scene space: origin at canvas center,
// x right, y up, z toward the viewer.
package shapefield
