package grove

import "github.com/go-gl/mathgl/mgl64"

// identityTransform is the identity matrix.
var identityTransform = mgl64.Ident4()

// localMatrix composes a TRS into a parent-from-node matrix.
//
// Composition order:
//
//	Translate(Position) * Rotate(Rotation) * Scale(Scale)
func localMatrix(t *TRS) mgl64.Mat4 {
	if t == nil {
		return identityTransform
	}
	m := identityTransform
	if t.Position != nil {
		p := *t.Position
		m = mgl64.Translate3D(p[0], p[1], p[2])
	}
	if t.Rotation != nil {
		m = m.Mul4(t.Rotation.Normalize().Mat4())
	}
	if t.Scale != nil {
		s := *t.Scale
		m = m.Mul4(mgl64.Scale3D(s[0], s[1], s[2]))
	}
	return m
}

// invert returns the inverse of m, or the identity matrix if m is singular
// (determinant ≈ 0).
func invert(m mgl64.Mat4) mgl64.Mat4 {
	det := m.Det()
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	return m.Inv()
}

// transformPoint applies m to a point.
func transformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// transformDirection applies m to a direction (w = 0).
func transformDirection(m mgl64.Mat4, d mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(d.Vec4(0)).Vec3()
}

// translationOf returns the translation column of m.
func translationOf(m mgl64.Mat4) mgl64.Vec3 {
	return m.Col(3).Vec3()
}

// panelScale is the length of the node's local +Y axis in universe space,
// used by intersection code to convert panel-local distances.
func panelScale(universeFromNode mgl64.Mat4) float64 {
	return transformDirection(universeFromNode, mgl64.Vec3{0, 1, 0}).Len()
}

// --- Coordinate conversion ---

// WorldToLocal converts a universe-space point into the space of a node whose
// universe-from-node matrix is m.
func WorldToLocal(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return transformPoint(invert(m), p)
}

// LocalToWorld converts a node-local point into universe space.
func LocalToWorld(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return transformPoint(m, p)
}
