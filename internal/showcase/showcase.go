// Package showcase assembles the text scene: three lines of extruded
// lettering over a field of donuts, viewed through an orbiting camera.
package showcase

import (
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/textscene/internal/config"
	"github.com/Faultbox/textscene/internal/engine/camera"
	"github.com/Faultbox/textscene/internal/engine/scene"
	"github.com/Faultbox/textscene/internal/logger"
	"github.com/Faultbox/textscene/pkg/geometry"
	"github.com/Faultbox/textscene/pkg/math"
	"github.com/Faultbox/textscene/pkg/typeface"
)

// Options configures a Showcase.
type Options struct {
	Params      TextParams
	Text        geometry.TextOptions
	LineSpacing float32

	Donuts ScatterOptions
	Seed   int64 // 0 picks a time-based seed

	FOV            float32
	Near, Far      float32
	CameraPosition math.Vec3
	EnableDamping  bool
	DampingFactor  float32

	MaxPixelRatio float32
}

// DefaultOptions returns the stock scene.
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default())
}

// OptionsFromConfig maps the loaded configuration onto scene options.
func OptionsFromConfig(cfg *config.Config) Options {
	t := cfg.Text
	d := cfg.Donuts
	c := cfg.Camera
	return Options{
		Params: TextParams{FirstLine: t.FirstLine, SecondLine: t.SecondLine, ThirdLine: t.ThirdLine},
		Text: geometry.TextOptions{
			Size:           t.Size,
			Depth:          t.Depth,
			CurveSegments:  t.CurveSegments,
			BevelEnabled:   t.BevelEnabled,
			BevelThickness: t.BevelThickness,
			BevelSize:      t.BevelSize,
			BevelOffset:    t.BevelOffset,
			BevelSegments:  t.BevelSegments,
		},
		LineSpacing: t.LineSpacing,
		Donuts: ScatterOptions{
			Count:           d.Count,
			Spread:          d.Spread,
			Radius:          d.Radius,
			Tube:            d.Tube,
			RadialSegments:  d.RadialSegments,
			TubularSegments: d.TubularSegments,
		},
		Seed:           d.Seed,
		FOV:            c.FOV,
		Near:           c.Near,
		Far:            c.Far,
		CameraPosition: math.Vec3{X: c.Position[0], Y: c.Position[1], Z: c.Position[2]},
		EnableDamping:  c.EnableDamping,
		DampingFactor:  c.DampingFactor,
		MaxPixelRatio:  cfg.Graphics.MaxPixelRatio,
	}
}

// Showcase is the whole scene and the state driving it.
type Showcase struct {
	Scene    *scene.Object
	Camera   *camera.PerspectiveCamera
	Controls *camera.OrbitControls
	Text     *TextBlock
	Donuts   *scene.Object
	Material *scene.Material

	params        TextParams
	maxPixelRatio float32
	viewport      camera.Viewport
}

// New builds the scene. The text is built immediately, so font must not be nil.
func New(font *typeface.Font, matcap image.Image, opts Options) (*Showcase, error) {
	material := scene.NewMatcapMaterial("matcap", matcap)

	text := NewTextBlock(font, material, opts.Text, opts.LineSpacing)
	if err := text.Rebuild(opts.Params); err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Debug("scatter seed", zap.Int64("seed", seed))
	donuts := Scatter(NewRand(seed), material, opts.Donuts)

	root := scene.NewGroup("scene")
	root.Add(text.Group, donuts)

	cam := camera.NewPerspective(opts.FOV, 1, opts.Near, opts.Far)
	cam.Position = opts.CameraPosition
	controls := camera.NewOrbitControls(cam)
	controls.EnableDamping = opts.EnableDamping
	if opts.DampingFactor > 0 {
		controls.DampingFactor = opts.DampingFactor
	}
	controls.Update()
	controls.SaveState()

	return &Showcase{
		Scene:         root,
		Camera:        cam,
		Controls:      controls,
		Text:          text,
		Donuts:        donuts,
		Material:      material,
		params:        opts.Params,
		maxPixelRatio: opts.MaxPixelRatio,
	}, nil
}

// Params returns the current text lines.
func (s *Showcase) Params() TextParams {
	return s.params
}

// SetLine edits line i and rebuilds the text.
func (s *Showcase) SetLine(i int, text string) error {
	params := s.params
	if err := params.SetLine(i, text); err != nil {
		return err
	}
	return s.SetParams(params)
}

// SetParams replaces all lines and rebuilds the text.
func (s *Showcase) SetParams(params TextParams) error {
	if err := s.Text.Rebuild(params); err != nil {
		return err
	}
	s.params = params
	return nil
}

// Resize adapts the camera to a window of width x height at the given
// device pixel ratio and returns the resulting viewport. An empty
// viewport leaves the camera untouched.
func (s *Showcase) Resize(width, height int, dpr float32) camera.Viewport {
	v := camera.NewViewport(width, height, dpr, s.maxPixelRatio)
	if !v.Empty() {
		s.Camera.SetAspect(v.Aspect())
	}
	s.viewport = v
	return v
}

// Viewport returns the size passed to the last Resize.
func (s *Showcase) Viewport() camera.Viewport {
	return s.viewport
}

// Tick advances the orbit controls by one frame and reports whether the
// camera moved.
func (s *Showcase) Tick() bool {
	return s.Controls.Update()
}

// SetMatcap swaps the matcap on every mesh.
func (s *Showcase) SetMatcap(img image.Image) {
	s.Material.SetMatcap(img)
}

// ResetCamera returns the camera to its starting point.
func (s *Showcase) ResetCamera() {
	s.Controls.Reset()
}

// Dispose releases all geometry.
func (s *Showcase) Dispose() {
	s.Text.Dispose()
	for _, d := range s.Donuts.Children() {
		d.Geometry.Dispose()
	}
	s.Donuts.Clear()
}

// Export returns the text meshes, and the donuts when withDonuts is set,
// placed in world space for geometry.WriteOBJ.
func (s *Showcase) Export(withDonuts bool) []geometry.OBJObject {
	var objects []geometry.OBJObject
	add := func(o *scene.Object) {
		if o.Geometry == nil || o.Geometry.VertexCount() == 0 {
			return
		}
		objects = append(objects, geometry.OBJObject{
			Name:      o.Name,
			Geometry:  o.Geometry,
			Transform: o.WorldMatrix(),
		})
	}
	for _, l := range s.Text.Meshes() {
		add(l.Object)
	}
	if withDonuts {
		for _, d := range s.Donuts.Children() {
			add(d)
		}
	}
	return objects
}
