package willowxr

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates the translation of a Node's local transform. Create
// one via TweenPosition or TweenHome and call Update(dt) each frame. If the
// target node is disposed, the group stops immediately.
//
// There is no global animation manager; users call Update themselves.
type TweenGroup struct {
	tweens [3]*gween.Tween
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds and writes the new translation
// into the target's local transform. The rotation and scale part of the
// transform is left as it is at the time of each write, so a manipulation
// session can keep turning a prop while it slides.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target == nil || g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	var p Vec3
	for i, tw := range g.tweens {
		val, finished := tw.Update(dt)
		p[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	m := g.target.LocalTransform()
	m[12], m[13], m[14] = p[0], p[1], p[2]
	g.target.SetLocalTransform(m)
	g.Done = allDone
}

// TweenPosition creates a TweenGroup that moves node's local translation to
// to over duration seconds using the easing function.
func TweenPosition(node *Node, to Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := Position(node.LocalTransform())
	g := &TweenGroup{target: node}
	for i := range g.tweens {
		g.tweens[i] = gween.New(float32(from[i]), float32(to[i]), duration, fn)
	}
	return g
}

// TweenHome slides node back to the translation of home, typically a local
// transform recorded when the prop was built.
func TweenHome(node *Node, home Mat4, duration float32, fn ease.TweenFunc) *TweenGroup {
	return TweenPosition(node, Position(home), duration, fn)
}
