package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/textscene/pkg/math"
)

// polarEpsilon keeps the camera off the poles where LookAt degenerates.
const polarEpsilon = 1e-6

// OrbitControls orbits a camera around a target point. Input methods
// accumulate deltas; Update applies them once per frame. With damping
// enabled only DampingFactor of the pending rotation and pan is applied
// each frame, so the camera glides to a stop.
type OrbitControls struct {
	Camera *PerspectiveCamera
	Target math.Vec3

	EnableDamping bool
	DampingFactor float32

	RotateSpeed float32
	ZoomSpeed   float32
	PanSpeed    float32

	MinDistance   float32
	MaxDistance   float32
	MinPolarAngle float32
	MaxPolarAngle float32

	deltaTheta float32
	deltaPhi   float32
	scale      float32
	pan        math.Vec3

	saved struct {
		position, target math.Vec3
	}
	pointer struct {
		x, y float32
		down bool
	}
}

// NewOrbitControls creates controls that orbit cam around the origin.
// The camera's current position is saved for Reset.
func NewOrbitControls(cam *PerspectiveCamera) *OrbitControls {
	o := &OrbitControls{
		Camera:        cam,
		DampingFactor: 0.05,
		RotateSpeed:   1,
		ZoomSpeed:     1,
		PanSpeed:      1,
		MinDistance:   0,
		MaxDistance:   math32.Inf(1),
		MinPolarAngle: 0,
		MaxPolarAngle: math32.Pi,
		scale:         1,
	}
	cam.Target = o.Target
	o.SaveState()
	return o
}

// SaveState records the current camera position and target for Reset.
func (o *OrbitControls) SaveState() {
	o.saved.position = o.Camera.Position
	o.saved.target = o.Target
}

// Reset restores the saved state and drops pending motion.
func (o *OrbitControls) Reset() {
	o.Camera.Position = o.saved.position
	o.Target = o.saved.target
	o.Camera.Target = o.Target
	o.deltaTheta, o.deltaPhi = 0, 0
	o.pan = math.Vec3{}
	o.scale = 1
}

// Rotate orbits by a pointer drag of (dx, dy) pixels in a viewport
// height pixels tall. A drag across the full height turns a full circle.
func (o *OrbitControls) Rotate(dx, dy, height float32) {
	if height <= 0 {
		return
	}
	o.deltaTheta -= 2 * math32.Pi * dx / height * o.RotateSpeed
	o.deltaPhi -= 2 * math32.Pi * dy / height * o.RotateSpeed
}

// Zoom dollies towards the target for positive wheel steps and away for
// negative ones.
func (o *OrbitControls) Zoom(steps float32) {
	factor := math32.Pow(0.95, o.ZoomSpeed*math32.Abs(steps))
	if steps > 0 {
		o.scale *= factor
	} else if steps < 0 {
		o.scale /= factor
	}
}

// Pan shifts the target in the view plane by a pointer drag of (dx, dy)
// pixels so the point under the pointer follows it.
func (o *OrbitControls) Pan(dx, dy, height float32) {
	if height <= 0 {
		return
	}
	distance := o.Camera.Position.Sub(o.Target).Length()
	distance *= math32.Tan(o.Camera.FOV / 2 * math32.Pi / 180)

	right, up := o.Camera.Basis()
	o.pan = o.pan.
		Add(right.Scale(-2 * dx * distance / height * o.PanSpeed)).
		Add(up.Scale(2 * dy * distance / height * o.PanSpeed))
}

// Update applies pending input to the camera and reports whether it moved.
func (o *OrbitControls) Update() bool {
	offset := o.Camera.Position.Sub(o.Target)
	radius := offset.Length()
	theta := math32.Atan2(offset.X, offset.Z)
	var phi float32
	if radius > 0 {
		phi = math32.Acos(clamp(offset.Y/radius, -1, 1))
	}

	factor := float32(1)
	if o.EnableDamping {
		factor = o.DampingFactor
	}
	theta += o.deltaTheta * factor
	phi += o.deltaPhi * factor
	phi = clamp(phi, o.MinPolarAngle, o.MaxPolarAngle)
	phi = clamp(phi, polarEpsilon, math32.Pi-polarEpsilon)

	target := o.Target.Add(o.pan.Scale(factor))
	radius = clamp(radius*o.scale, o.MinDistance, o.MaxDistance)

	sinPhi := math32.Sin(phi)
	offset = math.Vec3{
		X: radius * sinPhi * math32.Sin(theta),
		Y: radius * math32.Cos(phi),
		Z: radius * sinPhi * math32.Cos(theta),
	}
	position := target.Add(offset)

	if o.EnableDamping {
		o.deltaTheta *= 1 - o.DampingFactor
		o.deltaPhi *= 1 - o.DampingFactor
		o.pan = o.pan.Scale(1 - o.DampingFactor)
	} else {
		o.deltaTheta, o.deltaPhi = 0, 0
		o.pan = math.Vec3{}
	}
	o.scale = 1

	moved := position.Distance(o.Camera.Position) > 1e-6 || target.Distance(o.Target) > 1e-6
	o.Target = target
	o.Camera.Position = position
	o.Camera.Target = target
	return moved
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}
