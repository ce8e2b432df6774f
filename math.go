package willowxr

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrDegenerateFrame is reported when a frame's 3x3 rotation/scale block is
// singular and cannot be inverted.
var ErrDegenerateFrame = errors.New("willowxr: degenerate frame")

// degenerateDet is the smallest |det| of the 3x3 block treated as invertible.
const degenerateDet = 1e-12

// aimParallel is the |dot| above which an aim reference axis is considered
// parallel to the requested direction.
const aimParallel = 1 - 1e-6

// Identity is the identity affine matrix.
var Identity = mgl64.Ident4()

// Compose multiplies the matrices left to right. Compose(A, B) applies B
// first and then A, so a world transform is Compose(parentWorld, local).
// With no arguments it returns the identity.
func Compose(ms ...mgl64.Mat4) mgl64.Mat4 {
	out := Identity
	for _, m := range ms {
		out = out.Mul4(m)
	}
	return out
}

// Translate returns a pure translation by v.
func Translate(v mgl64.Vec3) mgl64.Mat4 {
	return mgl64.Translate3D(v[0], v[1], v[2])
}

// Scale returns a pure non-uniform scale.
func Scale(v mgl64.Vec3) mgl64.Mat4 {
	return mgl64.Scale3D(v[0], v[1], v[2])
}

// TryInvert returns the exact inverse of an affine matrix, or
// ErrDegenerateFrame when its 3x3 block is singular.
func TryInvert(m mgl64.Mat4) (mgl64.Mat4, error) {
	a := m.Mat3()
	det := a.Det()
	if !(math.Abs(det) >= degenerateDet) {
		return mgl64.Mat4{}, ErrDegenerateFrame
	}
	inv := a.Inv()
	t := mgl64.Vec3{m[12], m[13], m[14]}
	it := inv.Mul3x1(t).Mul(-1)
	return mgl64.Mat4{
		inv[0], inv[1], inv[2], 0,
		inv[3], inv[4], inv[5], 0,
		inv[6], inv[7], inv[8], 0,
		it[0], it[1], it[2], 1,
	}, nil
}

// Invert returns the exact inverse of an affine matrix. Scene geometry must
// never produce a non-invertible frame, so a singular 3x3 block panics.
func Invert(m mgl64.Mat4) mgl64.Mat4 {
	inv, err := TryInvert(m)
	if err != nil {
		panic(fmt.Errorf("willowxr: invert %v: %w", m, err))
	}
	return inv
}

// Blend returns the component-wise weighted sum a*wa + b*wb.
// Blend(a, b, 1, -1) is the difference a-b.
func Blend(a, b mgl64.Vec3, wa, wb float64) mgl64.Vec3 {
	return a.Mul(wa).Add(b.Mul(wb))
}

// Lerp interpolates from a (t=0) to b (t=1).
func Lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return Blend(a, b, 1-t, t)
}

// Dot returns the dot product of two 3-vectors.
func Dot(u, v mgl64.Vec3) float64 {
	return u.Dot(v)
}

// Position returns the translation part of m.
func Position(m mgl64.Mat4) mgl64.Vec3 {
	return mgl64.Vec3{m[12], m[13], m[14]}
}

// BasisAxis returns the normalized column of m for the given local axis.
func BasisAxis(m mgl64.Mat4, axis Axis) mgl64.Vec3 {
	c := int(axis) * 4
	return mgl64.Vec3{m[c], m[c+1], m[c+2]}.Normalize()
}

// RotateAxis returns a rotation of radians about a principal axis.
func RotateAxis(axis Axis, radians float64) mgl64.Mat4 {
	switch axis {
	case AxisX:
		return mgl64.HomogRotate3DX(radians)
	case AxisY:
		return mgl64.HomogRotate3DY(radians)
	default:
		return mgl64.HomogRotate3DZ(radians)
	}
}

// aimReference is the world axis used to complete the basis for each aimed
// axis, in order of preference.
var aimReference = [3][2]mgl64.Vec3{
	AxisX: {{0, 1, 0}, {0, 0, 1}},
	AxisY: {{0, 0, 1}, {1, 0, 0}},
	AxisZ: {{0, 1, 0}, {1, 0, 0}},
}

// AimAxis returns a rotation whose local axis points along dir. The other two
// axes are completed from a fixed world reference per axis (X and Z use world
// Y, Y uses world Z), switching to a second reference only when dir is within
// a hair of the first. The result is right-handed and orthonormal.
// A zero dir returns the identity.
func AimAxis(axis Axis, dir mgl64.Vec3) mgl64.Mat4 {
	l := dir.Len()
	if l == 0 {
		return Identity
	}
	d := dir.Mul(1 / l)
	ref := aimReference[axis][0]
	if math.Abs(d.Dot(ref)) > aimParallel {
		ref = aimReference[axis][1]
	}

	var x, y, z mgl64.Vec3
	switch axis {
	case AxisX:
		x = d
		z = x.Cross(ref).Normalize()
		y = z.Cross(x)
	case AxisY:
		y = d
		x = y.Cross(ref).Normalize()
		z = x.Cross(y)
	default:
		z = d
		x = ref.Cross(z).Normalize()
		y = z.Cross(x)
	}
	return mgl64.Mat4FromCols(x.Vec4(0), y.Vec4(0), z.Vec4(0), mgl64.Vec4{0, 0, 0, 1})
}

// aimAxisFrom is AimAxis with the basis completed from hint instead of a
// world reference: the next axis after axis (Y for X, Z for Y, X for Z) is
// hint with its component along dir removed. Successive frames passed the
// previous frame's axis as hint change smoothly through every direction.
// Falls back to AimAxis when hint is zero or parallel to dir.
func aimAxisFrom(axis Axis, dir, hint mgl64.Vec3) mgl64.Mat4 {
	l := dir.Len()
	if l == 0 {
		return Identity
	}
	d := dir.Mul(1 / l)
	h := hint.Sub(d.Mul(hint.Dot(d)))
	hl := h.Len()
	if !(hl > 1e-9) {
		return AimAxis(axis, dir)
	}
	h = h.Mul(1 / hl)

	var x, y, z mgl64.Vec3
	switch axis {
	case AxisX:
		x, y = d, h
		z = x.Cross(y)
	case AxisY:
		y, z = d, h
		x = y.Cross(z)
	default:
		z, x = d, h
		y = z.Cross(x)
	}
	return mgl64.Mat4FromCols(x.Vec4(0), y.Vec4(0), z.Vec4(0), mgl64.Vec4{0, 0, 0, 1})
}

// validPose reports whether m is usable as a controller pose: every element
// finite and the 3x3 block invertible. The zero matrix of an untracked frame
// is not.
func validPose(m mgl64.Mat4) bool {
	for _, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return math.Abs(m.Mat3().Det()) >= degenerateDet
}

// HitBox reports whether the origin of query, expressed in target's local
// space, lies inside the unit box [-0.5, 0.5]^3. Because target carries its
// own scale, this is an oriented-box point test at target's scaled size.
// A degenerate target never hits.
func HitBox(query, target mgl64.Mat4) bool {
	inv, err := TryInvert(target)
	if err != nil {
		return false
	}
	p := inv.Mul4x1(Position(query).Vec4(1))
	return math.Abs(p[0]) <= 0.5 && math.Abs(p[1]) <= 0.5 && math.Abs(p[2]) <= 0.5
}

// clamp1 limits a cosine to [-1, 1] before acos.
func clamp1(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// axisAngle returns the angle in radians between two unit vectors.
func axisAngle(a, b mgl64.Vec3) float64 {
	return math.Acos(clamp1(Dot(a, b)))
}
