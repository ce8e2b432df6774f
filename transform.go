package willowxr

// LocalTransform returns the node's affine matrix relative to its parent.
func (n *Node) LocalTransform() Mat4 {
	return n.local
}

// SetLocalTransform replaces the node's local matrix. This is the only
// mutation manipulation performs.
func (n *Node) SetLocalTransform(m Mat4) {
	if globalDebug {
		debugCheckDisposed(n, "SetLocalTransform")
	}
	n.local = m
}

// WorldTransform composes every local transform from the root down to n.
// Nothing is cached; the tree is shallow and the walk is O(depth).
func (n *Node) WorldTransform() Mat4 {
	if n.parent == nil {
		return n.local
	}
	return Compose(n.parent.WorldTransform(), n.local)
}

// WorldPosition returns the translation of n's world transform.
func (n *Node) WorldPosition() Vec3 {
	return Position(n.WorldTransform())
}

// --- Construction helpers ---
//
// These post-multiply the local matrix, so successive calls act in the
// node's own (already moved, turned) frame. They return n for chaining.

// Move translates n along its own axes.
func (n *Node) Move(x, y, z float64) *Node {
	n.local = Compose(n.local, Translate(Vec3{x, y, z}))
	return n
}

// ScaleXYZ scales n along its own axes.
func (n *Node) ScaleXYZ(x, y, z float64) *Node {
	n.local = Compose(n.local, Scale(Vec3{x, y, z}))
	return n
}

// ScaleUniform scales n by s on every axis.
func (n *Node) ScaleUniform(s float64) *Node {
	return n.ScaleXYZ(s, s, s)
}

// Turn rotates n about one of its own principal axes.
func (n *Node) Turn(axis Axis, radians float64) *Node {
	n.local = Compose(n.local, RotateAxis(axis, radians))
	return n
}

// Aim rotates n so that its given axis points along dir in the parent frame
// of the current local transform.
func (n *Node) Aim(axis Axis, dir Vec3) *Node {
	n.local = Compose(n.local, AimAxis(axis, dir))
	return n
}
