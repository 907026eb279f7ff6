package shapefield

import "image"

// PrimitiveType selects the base shape instanced across the field.
type PrimitiveType int

const (
	PrimitiveSphere PrimitiveType = iota
	PrimitiveCube
	// PrimitiveCustom uses the geometry supplied in GeometryParams.
	PrimitiveCustom
)

// GeometryParams describes the geometry the renderer should instantiate.
type GeometryParams struct {
	Primitive PrimitiveType

	// Custom carries imported model geometry when Primitive is
	// PrimitiveCustom. Ignored otherwise.
	Custom *Geometry
}

// MaterialMode selects the shading model.
type MaterialMode int

const (
	// MaterialReflective samples an environment reflection map.
	MaterialReflective MaterialMode = iota

	// MaterialSolid shades a flat color with metalness/roughness.
	MaterialSolid
)

// MaterialParams describes the instanced material.
type MaterialParams struct {
	Mode      MaterialMode
	Color     [3]float64
	Metalness float64
	Roughness float64
}

// Renderer is the consumed drawing boundary. The pipeline never
// allocates or frees GPU resources itself; it requests geometry and
// material creation with explicit parameters, writes per-instance
// transforms, and asks for draws. Implementations own all resource
// lifetime.
//
// Implementations return ErrRendererUnavailable when the backend is not
// ready.
type Renderer interface {
	CreateGeometry(params GeometryParams) error
	CreateMaterial(params MaterialParams) error

	// SetInstances writes the transform array. The buffer is
	// positionally addressed: transform i belongs to particle i.
	SetInstances(transforms []Mat4) error

	Render() error
	Resize(width, height int) error

	// ReadPixels copies the current framebuffer out.
	ReadPixels() (image.Image, error)
}
