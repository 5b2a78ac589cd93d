package scene

import (
	"image"
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/textscene/pkg/geometry"
	"github.com/Faultbox/textscene/pkg/math"
)

func TestAddRemove(t *testing.T) {
	root := NewGroup("root")
	a := NewGroup("a")
	b := NewGroup("b")

	root.Add(a, b, nil, root)
	if got := len(root.Children()); got != 2 {
		t.Fatalf("expected 2 children, got %d", got)
	}
	if a.Parent() != root {
		t.Error("expected root as parent of a")
	}

	// Re-adding under another parent moves the node.
	a.Add(b)
	if got := len(root.Children()); got != 1 {
		t.Errorf("expected b detached from root, root has %d children", got)
	}
	if b.Parent() != a {
		t.Error("expected a as parent of b")
	}

	if root.Remove(b) {
		t.Error("removing a grandchild should fail")
	}
	if !a.Remove(b) || b.Parent() != nil {
		t.Error("expected b removed from a")
	}

	root.Add(NewGroup("c"), NewGroup("d"))
	removed := root.Clear()
	if len(removed) != 3 || len(root.Children()) != 0 {
		t.Errorf("Clear returned %d nodes, %d left", len(removed), len(root.Children()))
	}
	for _, n := range removed {
		if n.Parent() != nil {
			t.Errorf("%s still has a parent", n.Name)
		}
	}
}

func TestChildrenIsCopy(t *testing.T) {
	root := NewGroup("root")
	root.Add(NewGroup("a"))
	kids := root.Children()
	kids[0] = nil
	if root.Children()[0] == nil {
		t.Error("mutating the returned slice changed the graph")
	}
}

func TestTraverseAndFind(t *testing.T) {
	root := NewGroup("root")
	text := NewGroup("text")
	root.Add(text, NewGroup("donuts"))
	text.Add(NewGroup("line0"), NewGroup("line1"))

	var order []string
	root.Traverse(func(o *Object) { order = append(order, o.Name) })
	want := []string{"root", "text", "line0", "line1", "donuts"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}

	if root.FindByName("line1") == nil {
		t.Error("expected to find line1")
	}
	if root.FindByName("missing") != nil {
		t.Error("found a node that does not exist")
	}
}

func TestWorldMatrix(t *testing.T) {
	parent := NewGroup("parent")
	parent.Position = math.Vec3{X: 10}
	parent.Rotation = math.Vec3{Y: math32.Pi / 2}

	child := NewGroup("child")
	child.Position = math.Vec3{X: 1}
	child.Scale = math.Splat(2)
	parent.Add(child)

	// child origin: rotate (1,0,0) by 90 degrees about Y -> (0,0,-1), then +10 on X
	p := child.WorldMatrix().TransformVec3(math.Vec3{})
	if math32.Abs(p.X-10) > 1e-5 || math32.Abs(p.Y) > 1e-5 || math32.Abs(p.Z+1) > 1e-5 {
		t.Errorf("unexpected child origin %v", p)
	}

	// a unit offset in child space is scaled by 2
	q := child.WorldMatrix().TransformVec3(math.Vec3{Y: 1})
	if math32.Abs(q.Y-2) > 1e-5 {
		t.Errorf("expected child scale applied, got %v", q)
	}

	if parent.WorldMatrix() != parent.LocalMatrix() {
		t.Error("root world matrix should equal its local matrix")
	}
}

func TestMeshAndMaterial(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	mat := NewMatcapMaterial("matcap", img)
	mesh := NewMesh("donut", geometry.Torus(0.3, 0.2, 8, 8, 2*math32.Pi), mat)

	if !mesh.IsMesh() || NewGroup("g").IsMesh() {
		t.Error("IsMesh mismatch")
	}
	if mesh.Scale != math.Splat(1) || !mesh.Visible {
		t.Error("new nodes should be visible with unit scale")
	}

	v := mat.Version()
	mat.SetMatcap(image.NewRGBA(image.Rect(0, 0, 8, 8)))
	if mat.Version() == v {
		t.Error("expected version bump on SetMatcap")
	}
	if mat.Matcap().Bounds().Dx() != 8 {
		t.Error("expected new matcap image")
	}
}
