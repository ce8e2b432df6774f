package willowxr

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenPositionReachesTarget(t *testing.T) {
	node := NewNode("pos").Move(1, 2, 3)

	g := TweenPosition(node, Vec3{4, -2, 0}, 1.0, ease.Linear)

	// Run for full duration using exact halves to avoid float32 accumulation drift.
	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	p := node.WorldPosition()
	want := Vec3{4, -2, 0}
	for i := range p {
		if math.Abs(p[i]-want[i]) > 1e-4 {
			t.Errorf("pos[%d] = %f, want ~%f", i, p[i], want[i])
		}
	}
}

func TestTweenPositionMidway(t *testing.T) {
	node := NewNode("pos")
	g := TweenPosition(node, Vec3{2, 0, 0}, 1.0, ease.Linear)
	g.Update(0.5)
	if g.Done {
		t.Error("should not be done halfway")
	}
	if x := node.WorldPosition()[0]; math.Abs(x-1) > 1e-4 {
		t.Errorf("x = %f, want ~1", x)
	}
}

func TestTweenKeepsRotation(t *testing.T) {
	node := NewNode("prop").Turn(AxisY, 0.7)
	rot := node.LocalTransform()

	g := TweenPosition(node, Vec3{0, 1, 0}, 0.5, ease.Linear)
	g.Update(0.25)
	g.Update(0.25)

	m := node.LocalTransform()
	for _, i := range []int{0, 1, 2, 4, 5, 6, 8, 9, 10} {
		if math.Abs(m[i]-rot[i]) > 1e-12 {
			t.Errorf("m[%d] = %v, want %v", i, m[i], rot[i])
		}
	}
}

func TestTweenHome(t *testing.T) {
	root := NewNode("root")
	prop := root.Add("prop").Move(0.5, 0, 0)
	home := prop.LocalTransform()
	prop.SetLocalTransform(Compose(Translate(Vec3{1, 1, 1}), home))

	g := TweenHome(prop, home, 0.2, ease.OutCubic)
	g.Update(0.1)
	g.Update(0.1)
	if !g.Done {
		t.Fatal("expected Done")
	}
	if d := prop.WorldPosition().Sub(Vec3{0.5, 0, 0}).Len(); d > 1e-4 {
		t.Errorf("distance from home = %v", d)
	}
}

func TestTweenDisposedNodeStops(t *testing.T) {
	node := NewNode("gone")
	g := TweenPosition(node, Vec3{10, 0, 0}, 1.0, ease.Linear)
	node.Dispose()

	g.Update(0.5)
	if !g.Done {
		t.Error("expected Done after node disposed")
	}
	if node.local[12] != 0 {
		t.Errorf("disposed node should not be written, x = %f", node.local[12])
	}
}

func TestTweenUpdateAfterDoneIsNoOp(t *testing.T) {
	node := NewNode("n")
	g := TweenPosition(node, Vec3{1, 0, 0}, 0.1, ease.Linear)
	g.Update(0.1)
	node.SetLocalTransform(Identity)
	g.Update(0.1)
	if node.local[12] != 0 {
		t.Error("a finished tween should not write again")
	}
}
