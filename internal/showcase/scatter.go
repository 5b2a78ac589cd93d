package showcase

import (
	"fmt"
	"math/rand/v2"

	"github.com/chewxy/math32"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/textscene/internal/engine/scene"
	"github.com/Faultbox/textscene/internal/logger"
	"github.com/Faultbox/textscene/pkg/geometry"
	"github.com/Faultbox/textscene/pkg/math"
)

// ScatterOptions controls the donut field.
type ScatterOptions struct {
	Count  int
	Spread float32 // positions fall in [-Spread/2, Spread/2) on each axis

	Radius          float32
	Tube            float32
	RadialSegments  int
	TubularSegments int
}

// DefaultScatterOptions returns one hundred donuts in an 11 unit cube.
func DefaultScatterOptions() ScatterOptions {
	return ScatterOptions{
		Count:           100,
		Spread:          11,
		Radius:          0.3,
		Tube:            0.2,
		RadialSegments:  30,
		TubularSegments: 45,
	}
}

// NewRand returns a deterministic generator for seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// Scatter builds a group of Count torus meshes sharing one geometry and
// material. Each gets a random position, a random X and Y rotation in
// [0, π) and a random uniform scale in [0, 1).
func Scatter(rng *rand.Rand, material *scene.Material, opts ScatterOptions) *scene.Object {
	defer logger.Time(zapcore.InfoLevel, "donuts", zap.Int("count", opts.Count))()

	group := scene.NewGroup("donuts")
	torus := geometry.Torus(opts.Radius, opts.Tube, opts.RadialSegments, opts.TubularSegments, 2*math32.Pi)

	for i := 0; i < opts.Count; i++ {
		donut := scene.NewMesh(fmt.Sprintf("donut-%d", i), torus, material)
		donut.Position = math.Vec3{
			X: (rng.Float32() - 0.5) * opts.Spread,
			Y: (rng.Float32() - 0.5) * opts.Spread,
			Z: (rng.Float32() - 0.5) * opts.Spread,
		}
		donut.Rotation.X = rng.Float32() * math32.Pi
		donut.Rotation.Y = rng.Float32() * math32.Pi
		donut.Scale = math.Splat(rng.Float32())
		group.Add(donut)
	}
	return group
}
