// Package renderer draws scene graphs with OpenGL matcap shading.
package renderer

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/textscene/internal/engine/camera"
	"github.com/Faultbox/textscene/internal/engine/renderer/shaders"
	"github.com/Faultbox/textscene/internal/engine/scene"
	"github.com/Faultbox/textscene/internal/engine/shader"
	"github.com/Faultbox/textscene/internal/engine/texture"
	"github.com/Faultbox/textscene/internal/logger"
	"github.com/Faultbox/textscene/pkg/geometry"
)

// Config holds renderer configuration.
type Config struct {
	Width         int // logical size in window coordinates
	Height        int
	MaxPixelRatio float32
	ClearColor    [3]float32
}

// Stats describes the last rendered frame.
type Stats struct {
	DrawCalls int
	Triangles int
	Buffers   int // geometries resident on the GPU
	Textures  int
}

// Renderer draws meshes. It must be created and used on the thread that
// owns the GL context, after gl.Init.
type Renderer struct {
	config     Config
	pixelRatio float32
	log        *zap.Logger

	program     *shader.Program
	meshes      map[*geometry.Geometry]*gpuMesh
	textures    map[*scene.Material]*gpuTexture
	fallbackTex uint32

	stats Stats
}

type gpuMesh struct {
	vao, vbo, nbo, ebo uint32
	count              int32
	indexed            bool
}

type gpuTexture struct {
	id      uint32
	version int
}

// New creates a renderer. fallback is drawn for materials without a matcap.
func New(cfg Config, fallback *image.RGBA) (*Renderer, error) {
	r := &Renderer{
		config:     cfg,
		pixelRatio: 1,
		log:        logger.Named("renderer"),
		meshes:     make(map[*geometry.Geometry]*gpuMesh),
		textures:   make(map[*scene.Material]*gpuTexture),
	}

	r.log.Info("OpenGL ready",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	var err error
	r.program, err = shader.New("matcap", shaders.MatcapVertexShader, shaders.MatcapFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	r.fallbackTex = uploadTexture(fallback, true)
	return r, nil
}

// SetPixelRatio sets the device pixel ratio, capped at Config.MaxPixelRatio.
func (r *Renderer) SetPixelRatio(dpr float32) {
	r.pixelRatio = camera.ClampPixelRatio(dpr, r.config.MaxPixelRatio)
}

// PixelRatio returns the effective pixel ratio.
func (r *Renderer) PixelRatio() float32 {
	return r.pixelRatio
}

// Resize sets the logical size of the drawing area.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	w, h := r.DrawingBufferSize()
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int32("buffer_width", w),
		zap.Int32("buffer_height", h),
	)
}

// DrawingBufferSize returns the size in device pixels.
func (r *Renderer) DrawingBufferSize() (int32, int32) {
	return r.Viewport().BufferSize()
}

// Viewport returns the logical size and pixel ratio.
func (r *Renderer) Viewport() camera.Viewport {
	return camera.Viewport{Width: r.config.Width, Height: r.config.Height, PixelRatio: r.pixelRatio}
}

// Render clears the bound target and draws every visible mesh under root.
// The caller binds the target framebuffer and sets its viewport.
func (r *Renderer) Render(root *scene.Object, cam *camera.PerspectiveCamera) {
	c := r.config.ClearColor
	gl.ClearColor(c[0], c[1], c[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	r.program.Use()
	r.program.SetMat4("uProjection", cam.Projection())
	r.program.SetInt("uMatcap", 0)
	gl.ActiveTexture(gl.TEXTURE0)

	view := cam.View()
	stats := Stats{}
	var draw func(o *scene.Object)
	draw = func(o *scene.Object) {
		if !o.Visible {
			return
		}
		if o.IsMesh() && !o.Geometry.Disposed() && o.Geometry.VertexCount() > 0 {
			modelView := view.Mul(o.WorldMatrix())
			r.program.SetMat4("uModelView", modelView)
			r.program.SetMat3("uNormalMatrix", modelView.NormalMatrix())
			r.program.SetVec3("uColor", o.Material.Color)
			gl.BindTexture(gl.TEXTURE_2D, r.materialTexture(o.Material))

			m := r.mesh(o.Geometry)
			gl.BindVertexArray(m.vao)
			if m.indexed {
				gl.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, nil)
			} else {
				gl.DrawArrays(gl.TRIANGLES, 0, m.count)
			}
			stats.DrawCalls++
			stats.Triangles += o.Geometry.TriangleCount()
		}
		for _, c := range o.Children() {
			draw(c)
		}
	}
	draw(root)

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.Disable(gl.CULL_FACE)

	stats.Buffers = len(r.meshes)
	stats.Textures = len(r.textures)
	r.stats = stats
}

// Stats returns counters from the last Render.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// mesh returns the GPU buffers for g, uploading on first use. The buffers
// are freed when g is disposed.
func (r *Renderer) mesh(g *geometry.Geometry) *gpuMesh {
	if m, ok := r.meshes[g]; ok {
		return m
	}

	m := &gpuMesh{}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	uploadFloats(g.Positions)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.GenBuffers(1, &m.nbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.nbo)
	uploadFloats(g.Normals)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(1)

	if g.Indices != nil {
		m.indexed = true
		m.count = int32(len(g.Indices))
		gl.GenBuffers(1, &m.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		if len(g.Indices) > 0 {
			gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, unsafe.Pointer(&g.Indices[0]), gl.STATIC_DRAW)
		}
	} else {
		m.count = int32(g.VertexCount())
	}
	gl.BindVertexArray(0)

	r.meshes[g] = m
	g.OnDispose(r.release)
	return m
}

func uploadFloats(data []float32) {
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
}

// release frees the GPU buffers of a disposed geometry.
func (r *Renderer) release(g *geometry.Geometry) {
	m, ok := r.meshes[g]
	if !ok {
		return
	}
	delete(r.meshes, g)
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.nbo)
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
}

// materialTexture returns the matcap texture of mat, re-uploading after
// SetMatcap.
func (r *Renderer) materialTexture(mat *scene.Material) uint32 {
	img := mat.Matcap()
	if img == nil {
		return r.fallbackTex
	}
	t, ok := r.textures[mat]
	if ok && t.version == mat.Version() {
		return t.id
	}

	rgba := texture.ToRGBA(img)
	if !ok {
		t = &gpuTexture{id: uploadTexture(rgba, true)}
		r.textures[mat] = t
	} else {
		replaceTexture(t.id, rgba, true)
	}
	t.version = mat.Version()
	r.log.Debug("matcap uploaded",
		zap.String("material", mat.Name),
		zap.Int("width", rgba.Rect.Dx()),
		zap.Int("height", rgba.Rect.Dy()),
	)
	return t.id
}

// Close frees every GPU resource owned by the renderer.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for g := range r.meshes {
		r.release(g)
	}
	for mat, t := range r.textures {
		deleteTexture(&t.id)
		delete(r.textures, mat)
	}
	deleteTexture(&r.fallbackTex)
	if r.program != nil {
		r.program.Delete()
	}
}
