package scene

import "image"

// Material shades a mesh by looking up its view-space normal in a matcap
// image, multiplied by Color.
type Material struct {
	Name  string
	Color [3]float32

	matcap  image.Image
	version int
}

// NewMatcapMaterial creates a white-tinted material for matcap.
func NewMatcapMaterial(name string, matcap image.Image) *Material {
	return &Material{Name: name, Color: [3]float32{1, 1, 1}, matcap: matcap, version: 1}
}

// Matcap returns the current matcap image.
func (m *Material) Matcap() image.Image {
	return m.matcap
}

// SetMatcap swaps the matcap image. Meshes sharing the material pick up
// the change on the next frame.
func (m *Material) SetMatcap(img image.Image) {
	m.matcap = img
	m.version++
}

// Version changes every time the matcap image is replaced.
func (m *Material) Version() int {
	return m.version
}
