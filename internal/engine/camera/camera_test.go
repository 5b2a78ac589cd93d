package camera

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/textscene/pkg/math"
)

func near(a, b, eps float32) bool {
	return math32.Abs(a-b) <= eps
}

func nearVec(a, b math.Vec3, eps float32) bool {
	return near(a.X, b.X, eps) && near(a.Y, b.Y, eps) && near(a.Z, b.Z, eps)
}

func newTestRig(damping bool) (*PerspectiveCamera, *OrbitControls) {
	cam := NewPerspective(75, 16.0/9.0, 0.1, 100)
	cam.Position = math.Vec3{X: 1, Y: 1, Z: 2}
	controls := NewOrbitControls(cam)
	controls.EnableDamping = damping
	return cam, controls
}

func TestSetAspect(t *testing.T) {
	fov := float32(75)
	cam := NewPerspective(fov, 1, 0.1, 100)

	tests := []struct {
		name   string
		aspect float32
		want   float32
	}{
		{"widescreen", 1920.0 / 1080.0, 1920.0 / 1080.0},
		{"portrait", 600.0 / 800.0, 600.0 / 800.0},
		{"zero height ignored", float32(math32.Inf(1)), 600.0 / 800.0},
		{"zero ignored", 0, 600.0 / 800.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam.SetAspect(tt.aspect)
			if cam.Aspect != tt.want {
				t.Errorf("expected aspect %f, got %f", tt.want, cam.Aspect)
			}
			want := math.Perspective(fov*math32.Pi/180, tt.want, 0.1, 100)
			if cam.Projection() != want {
				t.Error("projection not recomputed for the new aspect")
			}
		})
	}
}

func TestViewLooksAtTarget(t *testing.T) {
	cam, _ := newTestRig(false)
	p := cam.View().TransformVec3(cam.Target)
	if !near(p.X, 0, 1e-5) || !near(p.Y, 0, 1e-5) || p.Z >= 0 {
		t.Errorf("target should be straight ahead in view space, got %v", p)
	}

	right, up := cam.Basis()
	if !near(right.Dot(up), 0, 1e-5) || !near(right.Length(), 1, 1e-5) || !near(up.Length(), 1, 1e-5) {
		t.Errorf("basis not orthonormal: right %v up %v", right, up)
	}
}

func TestUpdateWithoutInput(t *testing.T) {
	cam, controls := newTestRig(true)
	start := cam.Position
	for i := 0; i < 10; i++ {
		controls.Update()
	}
	if !nearVec(cam.Position, start, 1e-4) {
		t.Errorf("expected position %v, got %v", start, cam.Position)
	}
}

func TestRotatePreservesDistance(t *testing.T) {
	cam, controls := newTestRig(false)
	dist := cam.Position.Length()

	controls.Rotate(120, 40, 800)
	if !controls.Update() {
		t.Error("expected the camera to move")
	}
	if !near(cam.Position.Length(), dist, 1e-4) {
		t.Errorf("orbit changed distance: %f -> %f", dist, cam.Position.Length())
	}
	if cam.Target != (math.Vec3{}) {
		t.Errorf("camera should keep looking at the origin, target %v", cam.Target)
	}
}

func TestDamping(t *testing.T) {
	cam, controls := newTestRig(true)
	startTheta := math32.Atan2(cam.Position.X, cam.Position.Z)

	// A quarter-height drag turns a quarter circle.
	controls.Rotate(200, 0, 800)
	want := startTheta - math32.Pi/2

	controls.Update()
	first := math32.Atan2(cam.Position.X, cam.Position.Z)
	if !near(first-startTheta, -math32.Pi/2*controls.DampingFactor, 1e-4) {
		t.Errorf("first damped step should apply %f of the delta, turned %f", controls.DampingFactor, first-startTheta)
	}

	for i := 0; i < 400; i++ {
		controls.Update()
	}
	got := math32.Atan2(cam.Position.X, cam.Position.Z)
	if !near(got, want, 1e-3) {
		t.Errorf("damped rotation should settle at %f, got %f", want, got)
	}
}

func TestPolarClamp(t *testing.T) {
	cam, controls := newTestRig(false)
	dist := cam.Position.Length()

	controls.Rotate(0, 5000, 100)
	controls.Update()
	if cam.Position.Y > dist+1e-4 || cam.Position.Y < -dist-1e-4 {
		t.Fatalf("camera left its sphere: %v", cam.Position)
	}
	if math32.IsNaN(cam.View()[0]) {
		t.Error("view matrix degenerated at the pole")
	}

	controls.MaxPolarAngle = math32.Pi / 2
	controls.Rotate(0, -5000, 100)
	controls.Update()
	if cam.Position.Y < -1e-4 {
		t.Errorf("MaxPolarAngle should keep the camera above the target, y=%f", cam.Position.Y)
	}
}

func TestZoom(t *testing.T) {
	cam, controls := newTestRig(false)
	dist := cam.Position.Length()

	controls.Zoom(1)
	controls.Update()
	if !near(cam.Position.Length(), dist*0.95, 1e-4) {
		t.Errorf("expected distance %f, got %f", dist*0.95, cam.Position.Length())
	}

	controls.Zoom(-1)
	controls.Update()
	if !near(cam.Position.Length(), dist, 1e-4) {
		t.Errorf("zooming out should undo zooming in, got %f", cam.Position.Length())
	}

	controls.MinDistance = 2
	controls.Zoom(100)
	controls.Update()
	if !near(cam.Position.Length(), 2, 1e-4) {
		t.Errorf("expected distance clamped to 2, got %f", cam.Position.Length())
	}
}

func TestPanAndReset(t *testing.T) {
	cam, controls := newTestRig(false)
	start := cam.Position
	offset := cam.Position.Sub(controls.Target)

	controls.Pan(100, 0, 800)
	controls.Update()
	if controls.Target == (math.Vec3{}) {
		t.Fatal("pan did not move the target")
	}
	right, _ := cam.Basis()
	if controls.Target.Dot(right) >= 0 {
		t.Errorf("dragging right should move the target left, target %v", controls.Target)
	}
	if !nearVec(cam.Position.Sub(controls.Target), offset, 1e-4) {
		t.Error("pan should translate the camera with its target")
	}

	controls.Rotate(50, 50, 800)
	controls.Reset()
	controls.Update()
	if !nearVec(cam.Position, start, 1e-5) || controls.Target != (math.Vec3{}) {
		t.Errorf("reset should restore the start pose, got %v target %v", cam.Position, controls.Target)
	}
}
